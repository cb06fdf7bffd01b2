package quadtree

import (
	"errors"
	"math/rand/v2"
	"slices"
	"testing"

	"firequad/internal/geom"
)

func TestBakeFourEqualLeaves(t *testing.T) {
	root := BuildUniform(geom.V(0, 0), geom.V(256, 256), 1)
	BakeAllNeighbours(root)

	nw, ne, sw, se := root.Child(NW), root.Child(NE), root.Child(SW), root.Child(SE)
	expect := map[*Node][4][]*Node{
		nw: {North: nil, East: {ne}, South: {sw}, West: nil},
		ne: {North: nil, East: nil, South: {se}, West: {nw}},
		sw: {North: {nw}, East: {se}, South: nil, West: nil},
		se: {North: {ne}, East: nil, South: nil, West: {sw}},
	}
	for leaf, dirs := range expect {
		for _, d := range Dirs {
			if got := leaf.Neighbours(d); !slices.Equal(got, dirs[d]) {
				t.Fatalf("%s side %s: got %d neighbors, want %d", leaf.Quadrant(), d, len(got), len(dirs[d]))
			}
		}
	}
}

func TestRootHasNoNeighbours(t *testing.T) {
	root := NewRoot(geom.V(0, 0), geom.V(10, 10))
	for _, d := range Dirs {
		if got := FindGreaterOrEqualNeighbour(root, d); got != nil {
			t.Fatalf("root neighbor %s = %v, want nil", d, got)
		}
	}
	BakeAllNeighbours(root)
	for _, d := range Dirs {
		if len(root.Neighbours(d)) != 0 {
			t.Fatalf("single-leaf tree has neighbors on side %s", d)
		}
	}
}

func TestUniformTreeBoundaryCompleteness(t *testing.T) {
	const depth = 3
	const size = 64.0
	root := BuildUniform(geom.V(0, 0), geom.V(size, size), depth)
	BakeAllNeighbours(root)

	for _, leaf := range root.Leaves() {
		o := leaf.Origin()
		m := leaf.Bounds().Max()
		onEdge := [4]bool{
			North: o.Y == 0,
			East:  m.X == size,
			South: m.Y == size,
			West:  o.X == 0,
		}
		for _, d := range Dirs {
			n := len(leaf.Neighbours(d))
			if onEdge[d] && n != 0 {
				t.Fatalf("edge leaf at %v has %d neighbors on side %s", o, n, d)
			}
			if !onEdge[d] && n != 1 {
				t.Fatalf("interior leaf at %v has %d neighbors on side %s, want 1", o, n, d)
			}
		}
	}
}

func TestMixedDepthNeighbourSets(t *testing.T) {
	root := BuildUniform(geom.V(0, 0), geom.V(256, 256), 1)
	ne := root.Child(NE)
	ne.Subdivide()
	BakeAllNeighbours(root)

	nw := root.Child(NW)
	got := nw.Neighbours(East)
	want := []*Node{ne.Child(NW), ne.Child(SW)}
	if !slices.Equal(got, want) {
		t.Fatalf("NW east neighbors = %d leaves, want the two western children of NE", len(got))
	}
	for _, small := range want {
		if back := small.Neighbours(West); !slices.Equal(back, []*Node{nw}) {
			t.Fatalf("small leaf at %v should see only NW to the west, got %d", small.Origin(), len(back))
		}
	}

	se := root.Child(SE)
	if got := se.Neighbours(North); !slices.Equal(got, []*Node{ne.Child(SE), ne.Child(SW)}) {
		t.Fatalf("SE north neighbors = %d leaves, want the two southern children of NE", len(got))
	}
}

func TestMixedDepthExpansionOrder(t *testing.T) {
	root := BuildUniform(geom.V(0, 0), geom.V(256, 256), 1)
	ne := root.Child(NE)
	ne.Subdivide()
	ne.Child(NW).Subdivide()
	BakeAllNeighbours(root)

	got := root.Child(NW).Neighbours(East)
	want := []*Node{ne.Child(SW), ne.Child(NW).Child(NW), ne.Child(NW).Child(SW)}
	if !slices.Equal(got, want) {
		t.Fatalf("expected breadth-first expansion of 3 leaves, got %d", len(got))
	}
}

func TestFindGreaterOrEqualNeighbourReturnsLargerLeaf(t *testing.T) {
	root := BuildUniform(geom.V(0, 0), geom.V(256, 256), 1)
	root.Child(NE).Subdivide()
	small := root.Child(NE).Child(SW)
	if got := FindGreaterOrEqualNeighbour(small, West); got != root.Child(NW) {
		t.Fatal("expected the larger NW leaf west of NE.SW")
	}
	if got := FindGreaterOrEqualNeighbour(small, South); got != root.Child(SE) {
		t.Fatal("expected the larger SE leaf south of NE.SW")
	}
	if got := FindGreaterOrEqualNeighbour(small, East); got != root.Child(NE).Child(SE) {
		t.Fatal("expected sibling SE east of NE.SW")
	}
	if got := FindGreaterOrEqualNeighbour(root.Child(NE).Child(NE), North); got != nil {
		t.Fatal("expected no neighbor north of the top edge")
	}
}

func TestBakedAdjacencyIsSymmetricOnRandomTrees(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		rng := rand.New(rand.NewPCG(seed, 0))
		root := Build(geom.V(0, 0), geom.V(1280, 720), 6, rng)
		BakeAllNeighbours(root)

		for _, a := range root.Leaves() {
			for _, d := range Dirs {
				for _, b := range a.Neighbours(d) {
					if !slices.Contains(b.Neighbours(d.Reverse()), a) {
						t.Fatalf("seed %d: %v lists %v on side %s without the reverse", seed, a.Origin(), b.Origin(), d)
					}
				}
			}
		}
		if err := CheckAdjacency(root); err != nil {
			t.Fatalf("seed %d: %v", seed, err)
		}
	}
}

func TestBakeIsIdempotent(t *testing.T) {
	root := Build(geom.V(0, 0), geom.V(512, 512), 6, rand.New(rand.NewPCG(7, 0)))
	BakeAllNeighbours(root)

	leaves := root.Leaves()
	first := make([][4][]*Node, len(leaves))
	for i, l := range leaves {
		for _, d := range Dirs {
			first[i][d] = slices.Clone(l.Neighbours(d))
		}
	}

	BakeAllNeighbours(root)
	for i, l := range leaves {
		for _, d := range Dirs {
			if !slices.Equal(first[i][d], l.Neighbours(d)) {
				t.Fatalf("leaf %v side %s changed after second bake", l.Origin(), d)
			}
		}
	}
}

func TestCheckAdjacencyDetectsMissingNeighbour(t *testing.T) {
	root := BuildUniform(geom.V(0, 0), geom.V(64, 64), 2)
	BakeAllNeighbours(root)
	if err := CheckAdjacency(root); err != nil {
		t.Fatalf("fresh bake should validate: %v", err)
	}

	leaf := root.Child(NW).Child(SE)
	leaf.neighbours[East] = nil
	if err := CheckAdjacency(root); !errors.Is(err, ErrAdjacency) {
		t.Fatalf("expected ErrAdjacency, got %v", err)
	}
}

func TestCheckAdjacencyDetectsWrongNeighbour(t *testing.T) {
	root := BuildUniform(geom.V(0, 0), geom.V(64, 64), 1)
	BakeAllNeighbours(root)
	root.Child(NW).neighbours[East] = []*Node{root.Child(SE)}
	if err := CheckAdjacency(root); !errors.Is(err, ErrAdjacency) {
		t.Fatalf("expected ErrAdjacency, got %v", err)
	}
}
