package fire

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"firequad/internal/core"
	"firequad/internal/quadtree"
)

// Stats summarises the surface after the latest step.
type Stats struct {
	Steps    int
	Leaves   int
	Burning  int
	BurntOut int
	// TotalHeat is the area-weighted sum of leaf temperatures.
	TotalHeat float64
	MaxTemp   float64
	// MeanFuel is the area-weighted mean fuel.
	MeanFuel float64
}

// Stats computes the live figures of the surface.
func (w *World) Stats() Stats {
	n := len(w.leaves)
	s := Stats{Steps: w.steps, Leaves: n}
	if n == 0 {
		return s
	}
	temps := make([]float64, n)
	areas := make([]float64, n)
	fuel := make([]float64, n)
	for i, l := range w.leaves {
		temps[i] = l.Temperature()
		areas[i] = l.Area()
		fuel[i] = l.Fuel()
		switch {
		case l.State() == quadtree.Burning:
			s.Burning++
		case l.Fuel() <= 0:
			s.BurntOut++
		}
	}
	total := floats.Sum(areas)
	s.TotalHeat = floats.Dot(temps, areas)
	s.MaxTemp = floats.Max(temps)
	if total > 0 {
		s.MeanFuel = floats.Dot(fuel, areas) / total
	}
	return s
}

// StatLines formats Stats for the hosts.
func (w *World) StatLines() []core.Stat {
	s := w.Stats()
	return []core.Stat{
		{Label: "Step", Value: fmt.Sprintf("%d", s.Steps)},
		{Label: "Leaves", Value: fmt.Sprintf("%d", s.Leaves)},
		{Label: "Burning", Value: fmt.Sprintf("%d", s.Burning)},
		{Label: "Burnt out", Value: fmt.Sprintf("%d", s.BurntOut)},
		{Label: "Max temp", Value: fmt.Sprintf("%.1f", s.MaxTemp)},
		{Label: "Mean fuel", Value: fmt.Sprintf("%.1f", s.MeanFuel)},
		{Label: "Mode", Value: w.ModeName()},
	}
}
