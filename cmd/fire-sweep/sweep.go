package main

import (
	"fmt"
	"sync"

	"firequad/internal/sims/fire"
)

type paramSet struct {
	transmitSpeed float64
	burnRate      float64
	ignitionTemp  float64
}

func (p paramSet) String() string {
	return fmt.Sprintf("transmit=%.2f burn=%.2f ignition=%.0f", p.transmitSpeed, p.burnRate, p.ignitionTemp)
}

type scenarioResult struct {
	params      paramSet
	burned      float64
	peakBurning int
	lastActive  int
	heat        []float64
	burning     []float64
	err         error
}

func buildSets(transmit, burn, ignition []float64) []paramSet {
	var sets []paramSet
	for _, ts := range transmit {
		for _, br := range burn {
			for _, it := range ignition {
				sets = append(sets, paramSet{transmitSpeed: ts, burnRate: br, ignitionTemp: it})
			}
		}
	}
	return sets
}

// runScenario ignites the center of a fresh world and steps it until no leaf
// burns or steps run out.
func runScenario(base fire.Config, params paramSet, steps int) scenarioResult {
	cfg := base
	cfg.Params.TransmitSpeed = params.transmitSpeed
	cfg.Params.BurnRate = params.burnRate
	cfg.Params.IgnitionTemp = params.ignitionTemp

	res := scenarioResult{params: params}
	world, err := fire.NewWithConfig(cfg)
	if err != nil {
		res.err = err
		return res
	}
	if err := world.IgniteAt(float64(cfg.Width)/2, float64(cfg.Height)/2); err != nil {
		res.err = err
		return res
	}

	for step := 0; step < steps; step++ {
		if err := world.Step(); err != nil {
			res.err = err
			return res
		}
		s := world.Stats()
		res.heat = append(res.heat, s.TotalHeat)
		res.burning = append(res.burning, float64(s.Burning))
		if s.Burning > res.peakBurning {
			res.peakBurning = s.Burning
		}
		if s.Burning > 0 {
			res.lastActive = step + 1
		} else if step > 0 {
			break
		}
	}
	res.burned = burnedFraction(world, cfg.Params.InitialFuel)
	return res
}

// burnedFraction is the share of the surface area that consumed any fuel.
func burnedFraction(world *fire.World, initialFuel float64) float64 {
	var burned, total float64
	for _, l := range world.Leaves() {
		total += l.Area()
		if l.Fuel() < initialFuel {
			burned += l.Area()
		}
	}
	if total == 0 {
		return 0
	}
	return burned / total
}

func sweep(base fire.Config, sets []paramSet, steps, workers int) []scenarioResult {
	if workers <= 0 {
		workers = 1
	}
	jobs := make(chan paramSet)
	results := make(chan scenarioResult)
	var wg sync.WaitGroup

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for params := range jobs {
				results <- runScenario(base, params, steps)
			}
		}()
	}

	go func() {
		wg.Wait()
		close(results)
	}()

	go func() {
		for _, params := range sets {
			jobs <- params
		}
		close(jobs)
	}()

	all := make([]scenarioResult, 0, len(sets))
	for res := range results {
		all = append(all, res)
	}
	return all
}
