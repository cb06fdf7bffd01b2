package quadtree

import (
	"errors"
	"fmt"
	"math"

	"github.com/zyedidia/generic/mapset"

	"firequad/internal/geom"
)

// ErrAdjacency is wrapped by every CheckAdjacency failure.
var ErrAdjacency = errors.New("quadtree: inconsistent adjacency")

const edgeEps = 1e-9

// CheckAdjacency validates baked neighbor lists under root: every neighbor is a
// leaf touching the queried side, adjacency is symmetric, and the shared
// segments tile each interior edge exactly. Sides without neighbors must lie on
// root's outer boundary.
func CheckAdjacency(root *Node) error {
	leaves := root.Leaves()
	sets := make(map[*Node][4]mapset.Set[*Node], len(leaves))
	for _, leaf := range leaves {
		var s [4]mapset.Set[*Node]
		for _, d := range Dirs {
			s[d] = mapset.New[*Node]()
			for _, nb := range leaf.neighbours[d] {
				s[d].Put(nb)
			}
		}
		sets[leaf] = s
	}

	outer := root.Bounds()
	for _, leaf := range leaves {
		for _, d := range Dirs {
			list := leaf.neighbours[d]
			if sets[leaf][d].Size() != len(list) {
				return fmt.Errorf("%w: %s side %s lists a neighbor twice", ErrAdjacency, describe(leaf), d)
			}
			if len(list) == 0 {
				if !onOuterEdge(leaf.Bounds(), outer, d) {
					return fmt.Errorf("%w: %s side %s has no neighbors but is interior", ErrAdjacency, describe(leaf), d)
				}
				continue
			}
			covered := 0.0
			for _, nb := range list {
				if !nb.IsLeaf() {
					return fmt.Errorf("%w: %s side %s lists internal node %s", ErrAdjacency, describe(leaf), d, describe(nb))
				}
				shared := sharedEdge(leaf.Bounds(), nb.Bounds(), d)
				if shared <= 0 {
					return fmt.Errorf("%w: %s side %s lists non-touching %s", ErrAdjacency, describe(leaf), d, describe(nb))
				}
				back, ok := sets[nb]
				if !ok || !back[d.Reverse()].Has(leaf) {
					return fmt.Errorf("%w: %s is %s of %s but not the reverse", ErrAdjacency, describe(nb), d, describe(leaf))
				}
				covered += shared
			}
			if want := edgeLength(leaf.Bounds(), d); math.Abs(covered-want) > edgeEps*math.Max(1, want) {
				return fmt.Errorf("%w: %s side %s covers %g of %g", ErrAdjacency, describe(leaf), d, covered, want)
			}
		}
	}
	return nil
}

func describe(n *Node) string {
	return fmt.Sprintf("leaf@(%g,%g %gx%g)", n.origin.X, n.origin.Y, n.extents.X, n.extents.Y)
}

func edgeLength(r geom.Rect, d Dir) float64 {
	if d == North || d == South {
		return r.Size.X
	}
	return r.Size.Y
}

// sharedEdge returns the length of the segment b shares with side d of a.
func sharedEdge(a, b geom.Rect, d Dir) float64 {
	amax, bmax := a.Max(), b.Max()
	switch d {
	case North:
		if !near(bmax.Y, a.Min.Y) {
			return 0
		}
		return geom.Span(a.Min.X, amax.X, b.Min.X, bmax.X)
	case South:
		if !near(b.Min.Y, amax.Y) {
			return 0
		}
		return geom.Span(a.Min.X, amax.X, b.Min.X, bmax.X)
	case East:
		if !near(b.Min.X, amax.X) {
			return 0
		}
		return geom.Span(a.Min.Y, amax.Y, b.Min.Y, bmax.Y)
	default:
		if !near(bmax.X, a.Min.X) {
			return 0
		}
		return geom.Span(a.Min.Y, amax.Y, b.Min.Y, bmax.Y)
	}
}

func onOuterEdge(r, outer geom.Rect, d Dir) bool {
	switch d {
	case North:
		return near(r.Min.Y, outer.Min.Y)
	case South:
		return near(r.Max().Y, outer.Max().Y)
	case East:
		return near(r.Max().X, outer.Max().X)
	default:
		return near(r.Min.X, outer.Min.X)
	}
}

func near(a, b float64) bool {
	return math.Abs(a-b) <= edgeEps*math.Max(1, math.Max(math.Abs(a), math.Abs(b)))
}
