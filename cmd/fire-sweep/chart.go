package main

import (
	"fmt"
	"io"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// renderChart plots total heat (left axis) and burning leaves (right axis)
// per step.
func renderChart(w io.Writer, res scenarioResult) error {
	if len(res.heat) < 2 {
		return fmt.Errorf("scenario %s ran %d steps, need at least 2 to chart", res.params, len(res.heat))
	}
	xs := make([]float64, len(res.heat))
	for i := range xs {
		xs[i] = float64(i + 1)
	}
	graph := chart.Chart{
		Title:  res.params.String(),
		Width:  960,
		Height: 400,
		XAxis: chart.XAxis{
			Name:  "step",
			Style: chart.Style{FontSize: 10.0},
			ValueFormatter: func(v interface{}) string {
				return fmt.Sprintf("%d", int(v.(float64)))
			},
		},
		YAxis: chart.YAxis{
			Name:  "total heat",
			Style: chart.Style{FontSize: 10.0},
		},
		YAxisSecondary: chart.YAxis{
			Name:  "burning leaves",
			Style: chart.Style{FontSize: 10.0},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name:    "Total heat",
				XValues: xs,
				YValues: res.heat,
				Style:   chart.Style{StrokeColor: chart.ColorRed, StrokeWidth: 3.0},
			},
			chart.ContinuousSeries{
				Name:    "Burning leaves",
				YAxis:   chart.YAxisSecondary,
				XValues: xs,
				YValues: res.burning,
				Style:   chart.Style{StrokeColor: drawing.Color{R: 255, G: 165, B: 0, A: 255}, StrokeWidth: 3.0},
			},
		},
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}
	return graph.Render(chart.PNG, w)
}
