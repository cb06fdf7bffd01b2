package app

import (
	"testing"

	"firequad/internal/core"
)

type bareSim struct{}

func (bareSim) Name() string { return "bare" }
func (bareSim) Size() core.Size { return core.Size{W: 1, H: 1} }
func (bareSim) Reset(int64) {}
func (bareSim) Step() error { return nil }
func (bareSim) Cells() []uint8 { return []uint8{0} }

type ratedSim struct {
	bareSim
	tps int
}

func (s *ratedSim) TPS() int { return s.tps }

func TestPacerFollowsTickRate(t *testing.T) {
	sim := &ratedSim{tps: 60}
	var p Pacer

	tps, changed := p.Sync(sim)
	if !changed || tps != 60 {
		t.Fatalf("first sync: got %d, %v; want 60, true", tps, changed)
	}
	if _, changed := p.Sync(sim); changed {
		t.Fatal("unchanged rate reported as a change")
	}

	sim.tps = 120
	tps, changed = p.Sync(sim)
	if !changed || tps != 120 {
		t.Fatalf("after retune: got %d, %v; want 120, true", tps, changed)
	}

	sim.tps = 0
	if tps, changed := p.Sync(sim); changed || tps != 120 {
		t.Fatalf("non-positive rate must be ignored, got %d, %v", tps, changed)
	}
}

func TestPacerIgnoresSimsWithoutRate(t *testing.T) {
	var p Pacer
	if _, changed := p.Sync(bareSim{}); changed {
		t.Fatal("sim without a tick rate reported a change")
	}
}
