package fire

import (
	"firequad/internal/core"
	"firequad/internal/quadtree"
)

// Parameters reports the active world and model settings.
func (w *World) Parameters() core.ParameterSnapshot {
	params := w.tree.Params()
	groups := []core.ParameterGroup{
		{
			Name: "World",
			Params: []core.Parameter{
				core.IntParam("w", "Width", int64(w.cfg.Width)),
				core.IntParam("h", "Height", int64(w.cfg.Height)),
				core.IntParam("seed", "Seed", w.seed),
				core.IntParam("max_depth", "Max depth", int64(w.cfg.MaxDepth)),
				core.StringParam("layout", "Layout", string(w.cfg.Layout)),
				core.IntParam("tps", "Steps per second", int64(w.cfg.TPS)),
				core.StringParam("mode", "Display", w.mode.String()),
			},
		},
		{
			Name: "Heat",
			Params: []core.Parameter{
				core.FloatParam("transmit_speed", "Transmit speed", params.TransmitSpeed),
				core.FloatParam("ignition_temp", "Ignition temp", params.IgnitionTemp),
				core.FloatParam("stimulus_temp", "Stimulus temp", params.StimulusTemp),
			},
		},
		{
			Name: "Combustion",
			Params: []core.Parameter{
				core.FloatParam("burn_rate", "Burn rate", params.BurnRate),
				core.FloatParam("burn_temp_rate", "Burn heat rate", params.BurnTempRate),
				core.FloatParam("initial_fuel", "Initial fuel", params.InitialFuel),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the settings adjustable from the HUD.
func (w *World) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "transmit_speed", Label: "Transmit speed", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
		{Key: "ignition_temp", Label: "Ignition temp", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true},
		{Key: "stimulus_temp", Label: "Stimulus temp", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true},
		{Key: "burn_rate", Label: "Burn rate", Type: core.ParamTypeFloat, Step: 0.1, Min: 0, HasMin: true},
		{Key: "burn_temp_rate", Label: "Burn heat rate", Type: core.ParamTypeFloat, Step: 10, Min: 0, HasMin: true},
		{Key: "tps", Label: "Steps per second", Type: core.ParamTypeInt, Step: 5, Min: 1, Max: 240, HasMin: true, HasMax: true},
	}
}

// SetFloatParameter updates a model setting. Invalid values are rejected and
// the current settings kept. Initial fuel only affects leaves after a reset.
func (w *World) SetFloatParameter(key string, value float64) bool {
	p := w.tree.Params()
	var dst *float64
	switch key {
	case "transmit_speed":
		dst = &p.TransmitSpeed
	case "ignition_temp":
		dst = &p.IgnitionTemp
	case "stimulus_temp":
		dst = &p.StimulusTemp
	case "burn_rate":
		dst = &p.BurnRate
	case "burn_temp_rate":
		dst = &p.BurnTempRate
	case "initial_fuel":
		dst = &p.InitialFuel
	default:
		return false
	}
	*dst = value
	return w.setParams(p)
}

// SetIntParameter updates integer settings.
func (w *World) SetIntParameter(key string, value int) bool {
	switch key {
	case "tps":
		if value <= 0 {
			return false
		}
		w.cfg.TPS = value
		return true
	default:
		return false
	}
}

func (w *World) setParams(p quadtree.Params) bool {
	if err := w.tree.SetParams(p); err != nil {
		return false
	}
	w.cfg.Params = p
	w.rebuildDisplay()
	return true
}
