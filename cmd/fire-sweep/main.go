package main

import (
	"flag"
	"fmt"
	"os"
	"runtime"
	"sort"
	"time"

	log "github.com/sirupsen/logrus"

	"firequad/internal/sims/fire"
)

func main() {
	steps := flag.Int("steps", 600, "steps to simulate per scenario")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	width := flag.Int("width", 256, "surface width")
	height := flag.Int("height", 256, "surface height")
	depth := flag.Int("depth", 6, "maximum tree depth")
	seed := flag.Int64("seed", 1337, "layout seed")
	tps := flag.Int("tps", 60, "steps per simulated second")
	chartPath := flag.String("chart", "", "write a PNG chart of the best scenario to this path")
	check := flag.Bool("check", false, "validate neighbor adjacency of the base layout before sweeping")
	logLevel := flag.String("log-level", "info", "log level")
	flag.Parse()

	level, err := log.ParseLevel(*logLevel)
	if err != nil {
		log.Fatalf("invalid -log-level: %v", err)
	}
	log.SetLevel(level)

	base := fire.DefaultConfig()
	base.Width = *width
	base.Height = *height
	base.MaxDepth = *depth
	base.Seed = *seed
	base.TPS = *tps
	if err := base.Validate(); err != nil {
		log.WithError(err).Fatal("invalid sweep configuration")
	}

	if *check {
		world, err := fire.NewWithConfig(base)
		if err != nil {
			log.WithError(err).Fatal("build base layout")
		}
		if err := world.CheckAdjacency(); err != nil {
			log.WithError(err).Fatal("adjacency check failed")
		}
		log.WithField("leaves", len(world.Leaves())).Info("adjacency check passed")
	}

	sets := buildSets(
		[]float64{0.5, 1, 2},
		[]float64{0.25, 0.5, 1},
		[]float64{150, 200, 250},
	)
	fmt.Printf("Sweeping %d parameter sets (%d workers, %d steps)\n", len(sets), *workers, *steps)

	start := time.Now()
	all := sweep(base, sets, *steps, *workers)
	sort.Slice(all, func(i, j int) bool {
		if all[i].burned != all[j].burned {
			return all[i].burned > all[j].burned
		}
		return all[i].lastActive > all[j].lastActive
	})
	elapsed := time.Since(start)

	fmt.Printf("\nResults (elapsed %s):\n", elapsed.Round(time.Millisecond))
	for i, res := range all {
		if res.err != nil {
			fmt.Printf("%2d) error=%v params=%s\n", i+1, res.err, res.params)
			continue
		}
		fmt.Printf("%2d) burned=%.3f peakBurning=%d lastActive=%d params=%s\n",
			i+1, res.burned, res.peakBurning, res.lastActive, res.params)
	}

	if *chartPath == "" || len(all) == 0 {
		return
	}
	f, err := os.Create(*chartPath)
	if err != nil {
		log.WithError(err).Fatal("create chart file")
	}
	defer f.Close()
	if err := renderChart(f, all[0]); err != nil {
		log.WithError(err).Fatal("render chart")
	}
	log.WithField("path", *chartPath).Info("chart written")
}
