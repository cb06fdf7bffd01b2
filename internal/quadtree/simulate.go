package quadtree

import (
	"errors"
	"fmt"
	"math"
)

// ErrNegativeStep is returned by Simulate for dt < 0, NaN or +Inf.
var ErrNegativeStep = errors.New("quadtree: invalid time step")

// Simulate runs the compute phase over every leaf under n: ignition and
// burning, then heat outflow into the neighbors' pending accumulators and loss
// through outer edges. Temperatures only change in Apply, so the result does
// not depend on traversal order.
func (n *Node) Simulate(p Params, dt float64) error {
	if dt < 0 || math.IsNaN(dt) || math.IsInf(dt, 1) {
		return fmt.Errorf("%w: dt = %g", ErrNegativeStep, dt)
	}
	n.simulate(p, dt)
	return nil
}

func (n *Node) simulate(p Params, dt float64) {
	if !n.IsLeaf() {
		for _, c := range n.children {
			c.simulate(p, dt)
		}
		return
	}
	n.combust(p, dt)
	for _, d := range Dirs {
		list := n.neighbours[d]
		if len(list) == 0 {
			n.cell.pending -= n.outflow(p, dt)
			continue
		}
		for _, nb := range list {
			exchange(n, nb, p, dt)
		}
	}
}

// combust advances the Idle/Burning state machine. The transition is checked
// first so a cell burns in the step it crosses the threshold.
func (n *Node) combust(p Params, dt float64) {
	c := n.cell
	if c.State == Idle && c.Fuel > 0 && c.Temperature > p.IgnitionTemp*(1-n.concentration) {
		c.State = Burning
	}
	if c.State != Burning {
		return
	}
	c.Fuel -= p.BurnRate * dt
	c.Temperature += p.BurnTempRate * (1 - n.concentration) * dt
	if c.Fuel <= 0 {
		c.Fuel = 0
		c.State = Idle
	}
}

func (n *Node) outflow(p Params, dt float64) float64 {
	return n.cell.Temperature * n.concentration * p.TransmitSpeed * dt
}

// exchange moves heat one way, from src to dst. The reverse flow is computed
// when dst is visited, from dst's own temperature, concentration and area.
func exchange(src, dst *Node, p Params, dt float64) {
	amount := src.outflow(p, dt) * math.Min(dst.area/src.area, 1)
	dst.cell.pending += amount
	src.cell.pending -= amount
}

// Apply commits the pending deltas computed by Simulate.
func (n *Node) Apply() {
	if !n.IsLeaf() {
		for _, c := range n.children {
			c.Apply()
		}
		return
	}
	c := n.cell
	c.Temperature += c.pending
	if c.Temperature < 0 {
		c.Temperature = 0
	}
	c.pending = 0
}

// ApplyIgnitionStimulus sets a leaf's temperature to the size-scaled stimulus.
func (n *Node) ApplyIgnitionStimulus(p Params) error {
	if n.cell == nil {
		return ErrNotLeaf
	}
	n.cell.Temperature = p.StimulusTemp * (1 - n.concentration)
	return nil
}

// ResetCells gives every leaf under n a fresh cell: cold, unburnt and fully
// fuelled.
func (n *Node) ResetCells(p Params) {
	n.Walk(func(c *Node) {
		if c.IsLeaf() {
			*c.cell = Cell{Fuel: p.InitialFuel}
		}
	})
}

// Pending returns the uncommitted temperature delta of a leaf.
func (n *Node) Pending() float64 {
	if n.cell == nil {
		return 0
	}
	return n.cell.pending
}
