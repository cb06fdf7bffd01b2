package app

import "firequad/internal/core"

// Pacer remembers the tick rate a host last applied so it can follow sims
// whose rate is tunable at runtime.
type Pacer struct {
	tps int
}

// Sync reports the sim's current tick rate and whether it differs from the
// rate seen on the previous call. Sims without a rate never report a change.
func (p *Pacer) Sync(sim core.Sim) (int, bool) {
	rater, ok := sim.(core.TickRater)
	if !ok {
		return p.tps, false
	}
	tps := rater.TPS()
	if tps <= 0 || tps == p.tps {
		return p.tps, false
	}
	p.tps = tps
	return tps, true
}
