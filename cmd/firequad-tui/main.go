package main

import (
	"flag"
	"fmt"
	"image/color"
	"io"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"firequad/internal/app"
	"firequad/internal/core"
	_ "firequad/internal/sims/fire"
)

const maxStepsPerFrame = 4

type session struct {
	screen tcell.Screen
	sim    core.Sim
	timer  *core.FixedStep
	pacer  app.Pacer
	paused bool
	seed   int64
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	logFile := flag.String("log", "", "write logs to this file (the terminal is owned by the view)")
	flag.Parse()
	if err := cfg.SetupLogging(); err != nil {
		log.Fatalf("invalid -log-level: %v", err)
	}
	if *logFile != "" {
		f, err := os.OpenFile(*logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			log.WithError(err).Fatal("open log file")
		}
		defer f.Close()
		log.SetOutput(f)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.WithError(err).Fatal("create terminal screen")
	}
	if err := screen.Init(); err != nil {
		log.WithError(err).Fatal("init terminal screen")
	}
	if *logFile == "" {
		log.SetOutput(io.Discard)
	}
	screen.EnableMouse()

	s, err := newSession(screen, cfg)
	if err != nil {
		screen.Fini()
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	s.run()
	screen.Fini()
}

func newSession(screen tcell.Screen, cfg *app.Config) (*session, error) {
	factory, ok := core.Sims()[cfg.Sim]
	if !ok {
		return nil, fmt.Errorf("unknown sim %q", cfg.Sim)
	}
	simCfg := cfg.SimConfig()
	tw, th := screen.Size()
	if _, ok := simCfg["w"]; !ok {
		simCfg["w"] = fmt.Sprint(tw)
	}
	if _, ok := simCfg["h"]; !ok {
		// The last row holds the status line.
		simCfg["h"] = fmt.Sprint(2 * max(th-1, 1))
	}
	sim, err := factory(simCfg)
	if err != nil {
		return nil, err
	}
	log.WithFields(log.Fields{"w": sim.Size().W, "h": sim.Size().H}).Info("terminal session started")
	return &session{screen: screen, sim: sim, timer: core.NewFixedStep(cfg.TPS), seed: cfg.Seed}, nil
}

func (s *session) run() {
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := s.screen.PollEvent()
			if ev == nil {
				close(events)
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev, ok := <-events:
			if !ok || !s.handle(ev) {
				return
			}
		case <-ticker.C:
			s.advance()
			s.draw()
		}
	}
}

func (s *session) advance() {
	if tps, changed := s.pacer.Sync(s.sim); changed {
		s.timer.SetTPS(tps)
	}
	for i := 0; i < maxStepsPerFrame && s.timer.ShouldStep(); i++ {
		if s.paused {
			continue
		}
		if err := s.sim.Step(); err != nil {
			log.WithError(err).Error("step failed, pausing")
			s.paused = true
		}
	}
}

func (s *session) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab:
			if cycler, ok := s.sim.(core.ModeCycler); ok {
				cycler.CycleMode()
			}
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case ' ':
				s.paused = !s.paused
			case 'n':
				if err := s.sim.Step(); err != nil {
					log.WithError(err).Error("step failed")
				}
			case 'r':
				s.sim.Reset(s.seed)
			case 's':
				s.seed = time.Now().UnixNano()
				s.sim.Reset(s.seed)
			}
		}
	case *tcell.EventMouse:
		if ev.Buttons()&tcell.Button1 == 0 {
			break
		}
		igniter, ok := s.sim.(core.Igniter)
		if !ok {
			break
		}
		x, y := rasterPoint(ev.Position())
		if err := igniter.IgniteAt(x, y); err != nil {
			log.WithError(err).Debug("ignite ignored")
		}
	case *tcell.EventResize:
		s.screen.Sync()
	}
	return true
}

func (s *session) draw() {
	var palette []color.RGBA
	if p, ok := s.sim.(core.Paletted); ok {
		palette = p.Palette()
	}
	size := s.sim.Size()
	drawCells(s.screen, s.sim.Cells(), size, palette)
	var stats []core.Stat
	if provider, ok := s.sim.(core.StatsProvider); ok {
		stats = provider.StatLines()
	}
	drawStatus(s.screen, (size.H+1)/2, s.paused, stats)
	s.screen.Show()
}
