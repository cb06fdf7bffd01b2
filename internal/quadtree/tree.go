package quadtree

import (
	"errors"
	"fmt"

	"firequad/internal/geom"
)

var (
	// ErrStepPending is returned by Tree.Simulate when the previous step has not
	// been applied.
	ErrStepPending = errors.New("quadtree: previous step not applied")
	// ErrNoPendingStep is returned by Tree.Apply without a preceding Simulate.
	ErrNoPendingStep = errors.New("quadtree: no simulated step to apply")
	// ErrReshaped is returned by Tree.Simulate when a baked leaf was subdivided
	// after NewTree.
	ErrReshaped = errors.New("quadtree: tree reshaped after bake")
)

// Tree owns a baked quadtree and enforces the Simulate/Apply pairing.
type Tree struct {
	root    *Node
	params  Params
	leaves  []*Node
	pending bool
}

// NewTree validates p, resets every leaf to fresh state and bakes neighbors.
// The shape of root must not change afterwards.
func NewTree(root *Node, p Params) (*Tree, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	root.ResetCells(p)
	BakeAllNeighbours(root)
	return &Tree{root: root, params: p, leaves: root.Leaves()}, nil
}

// Root returns the root node.
func (t *Tree) Root() *Node { return t.root }

// Leaves returns all leaves in quadrant order. The slice is shared.
func (t *Tree) Leaves() []*Node { return t.leaves }

// Params returns the active simulation params.
func (t *Tree) Params() Params { return t.params }

// SetParams replaces the simulation params from the next step on.
func (t *Tree) SetParams(p Params) error {
	if err := p.Validate(); err != nil {
		return err
	}
	t.params = p
	return nil
}

// Simulate runs the compute phase. It must be followed by Apply.
func (t *Tree) Simulate(dt float64) error {
	if t.pending {
		return ErrStepPending
	}
	for _, l := range t.leaves {
		if !l.IsLeaf() {
			return fmt.Errorf("%w: %s", ErrReshaped, describe(l))
		}
	}
	if err := t.root.Simulate(t.params, dt); err != nil {
		return err
	}
	t.pending = true
	return nil
}

// Apply commits the step computed by Simulate.
func (t *Tree) Apply() error {
	if !t.pending {
		return ErrNoPendingStep
	}
	t.root.Apply()
	t.pending = false
	return nil
}

// Step runs Simulate and Apply back to back.
func (t *Tree) Step(dt float64) error {
	if err := t.Simulate(dt); err != nil {
		return err
	}
	return t.Apply()
}

// FindLeafAt returns the leaf under p.
func (t *Tree) FindLeafAt(p geom.Vec2) (*Node, error) {
	return t.root.FindLeafAt(p)
}

// Ignite applies an ignition stimulus to the leaf under p.
func (t *Tree) Ignite(p geom.Vec2) (*Node, error) {
	leaf, err := t.root.FindLeafAt(p)
	if err != nil {
		return nil, err
	}
	if err := leaf.ApplyIgnitionStimulus(t.params); err != nil {
		return nil, err
	}
	return leaf, nil
}

// Reset returns every leaf to fresh state and drops any pending step.
func (t *Tree) Reset() {
	t.root.ResetCells(t.params)
	t.pending = false
}
