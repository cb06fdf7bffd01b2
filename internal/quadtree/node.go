package quadtree

import (
	"errors"
	"fmt"

	"firequad/internal/geom"
)

var (
	// ErrOutOfBounds is returned when a point lies outside the root rectangle.
	ErrOutOfBounds = errors.New("quadtree: point outside root bounds")
	// ErrNotLeaf is returned when leaf-only state is requested from an internal node.
	ErrNotLeaf = errors.New("quadtree: node is not a leaf")
)

// CombustionState is the per-leaf burn state.
type CombustionState uint8

const (
	Idle CombustionState = iota
	Burning
)

func (s CombustionState) String() string {
	if s == Burning {
		return "burning"
	}
	return "idle"
}

// Cell is the runtime state carried by a leaf.
type Cell struct {
	Temperature float64
	Fuel        float64
	State       CombustionState

	pending float64
}

// Node is one rectangle of the surface. A node is a leaf while it has no
// children; only leaves carry a Cell and neighbor lists.
type Node struct {
	origin        geom.Vec2
	extents       geom.Vec2
	area          float64
	concentration float64
	rootArea      float64

	parent   *Node
	quadrant Quadrant
	children [4]*Node

	cell       *Cell
	neighbours [4][]*Node
}

// NewRoot returns a single leaf covering the rectangle at origin with the given
// extents. Leaves start with fuel set to DefaultParams().InitialFuel.
func NewRoot(origin, extents geom.Vec2) *Node {
	area := extents.Area()
	return newNode(origin, extents, nil, NW, area, DefaultParams().InitialFuel)
}

func newNode(origin, extents geom.Vec2, parent *Node, q Quadrant, rootArea, fuel float64) *Node {
	n := &Node{
		origin:   origin,
		extents:  extents,
		area:     extents.Area(),
		rootArea: rootArea,
		parent:   parent,
		quadrant: q,
		cell:     &Cell{Fuel: fuel},
	}
	if rootArea > 0 {
		n.concentration = 1 - n.area/rootArea
	}
	return n
}

// Origin returns the top-left corner.
func (n *Node) Origin() geom.Vec2 { return n.origin }

// Extents returns the width and height.
func (n *Node) Extents() geom.Vec2 { return n.extents }

// Bounds returns the node rectangle.
func (n *Node) Bounds() geom.Rect { return geom.Rect{Min: n.origin, Size: n.extents} }

// Area returns width*height.
func (n *Node) Area() float64 { return n.area }

// Concentration models thermal inertia: 1 - area/rootArea.
func (n *Node) Concentration() float64 { return n.concentration }

// Parent returns the enclosing node, or nil for the root.
func (n *Node) Parent() *Node { return n.parent }

// Quadrant returns the position inside the parent. Meaningless for the root.
func (n *Node) Quadrant() Quadrant { return n.quadrant }

// Child returns the child at q, or nil for a leaf.
func (n *Node) Child(q Quadrant) *Node { return n.children[q] }

// IsLeaf reports whether n has no children.
func (n *Node) IsLeaf() bool { return n.children[0] == nil }

// IsRoot reports whether n has no parent.
func (n *Node) IsRoot() bool { return n.parent == nil }

// Depth returns the number of ancestors.
func (n *Node) Depth() int {
	d := 0
	for p := n.parent; p != nil; p = p.parent {
		d++
	}
	return d
}

// Cell returns the runtime state, or nil when n is internal.
func (n *Node) Cell() *Cell { return n.cell }

// Temperature returns the leaf temperature, zero for internal nodes.
func (n *Node) Temperature() float64 {
	if n.cell == nil {
		return 0
	}
	return n.cell.Temperature
}

// Fuel returns the leaf fuel, zero for internal nodes.
func (n *Node) Fuel() float64 {
	if n.cell == nil {
		return 0
	}
	return n.cell.Fuel
}

// State returns the combustion state, Idle for internal nodes.
func (n *Node) State() CombustionState {
	if n.cell == nil {
		return Idle
	}
	return n.cell.State
}

// SetTemperature overwrites a leaf temperature. Negative values clamp to zero.
func (n *Node) SetTemperature(t float64) error {
	if n.cell == nil {
		return ErrNotLeaf
	}
	if t < 0 {
		t = 0
	}
	n.cell.Temperature = t
	return nil
}

// Neighbours returns the baked leaves adjacent in direction d. The slice is
// shared and must not be modified.
func (n *Node) Neighbours(d Dir) []*Node { return n.neighbours[d] }

// Subdivide turns a leaf into an internal node with four children covering its
// quadrants. The leaf's runtime state is discarded. No-op on internal nodes.
// Neighbor lists baked before the call still point at n; rebake, or expect
// Tree.Simulate to fail with ErrReshaped.
func (n *Node) Subdivide() {
	if !n.IsLeaf() {
		return
	}
	fuel := n.cell.Fuel
	n.cell = nil
	n.neighbours = [4][]*Node{}
	half := n.extents.Scale(0.5)
	for _, q := range Quadrants {
		offset := geom.V(float64(q&1), float64(q>>1)).Mul(half)
		n.children[q] = newNode(n.origin.Add(offset), half, n, q, n.rootArea, fuel)
	}
}

// FindLeafAt returns the leaf whose half-open rectangle contains p.
func (n *Node) FindLeafAt(p geom.Vec2) (*Node, error) {
	if !n.Bounds().Contains(p) {
		return nil, fmt.Errorf("%w: (%g, %g)", ErrOutOfBounds, p.X, p.Y)
	}
	return n.descend(p), nil
}

func (n *Node) descend(p geom.Vec2) *Node {
	for !n.IsLeaf() {
		idx := p.Sub(n.origin).Div(n.extents).Scale(2).Floor()
		x, y := clampHalf(idx.X), clampHalf(idx.Y)
		n = n.children[quadrantAt(x, y)]
	}
	return n
}

// clampHalf guards against rounding pushing an in-bounds point onto index 2.
func clampHalf(v float64) int {
	if v < 1 {
		return 0
	}
	return 1
}

// Walk visits n and every descendant depth-first in quadrant order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	if n.IsLeaf() {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// Leaves returns every leaf under n in quadrant order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(c *Node) {
		if c.IsLeaf() {
			out = append(out, c)
		}
	})
	return out
}

// MaxDepth returns the depth of the deepest leaf relative to n.
func (n *Node) MaxDepth() int {
	if n.IsLeaf() {
		return 0
	}
	best := 0
	for _, c := range n.children {
		if d := c.MaxDepth() + 1; d > best {
			best = d
		}
	}
	return best
}
