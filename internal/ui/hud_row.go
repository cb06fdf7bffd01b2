package ui

import (
	"math"
	"strconv"

	"firequad/internal/core"
)

// hudRow is one adjustable parameter with its last known value.
type hudRow struct {
	ctrl  core.ParameterControl
	value float64
	known bool
}

// step returns the increment for one button press.
func (r *hudRow) step() float64 {
	if r.ctrl.Type == core.ParamTypeInt {
		return math.Max(1, math.Round(r.ctrl.Step))
	}
	if r.ctrl.Step <= 0 {
		return 0.05
	}
	return r.ctrl.Step
}

// next returns the value after one press in direction, clamped to the
// control's bounds, and whether the press would change anything.
func (r *hudRow) next(direction float64) (float64, bool) {
	v := r.value + direction*r.step()
	if r.ctrl.HasMin {
		v = math.Max(v, r.ctrl.Min)
	}
	if r.ctrl.HasMax {
		v = math.Min(v, r.ctrl.Max)
	}
	return v, r.known && math.Abs(v-r.value) > 1e-9
}

func (r *hudRow) text() string {
	if !r.known {
		return "--"
	}
	if r.ctrl.Type == core.ParamTypeInt {
		return strconv.Itoa(int(r.value))
	}
	precision := 1
	switch s := r.step(); {
	case s < 0.001:
		precision = 4
	case s < 0.01:
		precision = 3
	case s < 0.1:
		precision = 2
	}
	return strconv.FormatFloat(r.value, 'f', precision, 64)
}
