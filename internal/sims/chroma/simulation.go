package chroma

import (
	"errors"
	"fmt"
	"sync"

	"golang.org/x/sync/errgroup"

	"chroma-ca/internal/core"
)

var (
	// ErrDimensionMismatch reports Worlds of differing sizes.
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrDuplicateChannel reports two Worlds driving the same Color.
	ErrDuplicateChannel = errors.New("duplicate channel")
	// ErrMissingChannel reports a Color with no World.
	ErrMissingChannel = errors.New("missing channel")
)

// Simulation composites one World per Color.
type Simulation struct {
	name string
	cfg  Config
	size core.Size

	// worlds is indexed by Color.
	worlds [3]*World

	// frame is held exclusively while a tick runs so samples never mix
	// channels from different generations.
	frame sync.RWMutex

	mu         sync.Mutex
	generation uint64
	lastTick   [3]TickReport
}

// New returns a Simulation of the given size using the default rules.
func New(w, h int) (*Simulation, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig builds the three Worlds described by cfg.
func NewWithConfig(cfg Config) (*Simulation, error) {
	worlds := make([]*World, 0, len(Colors))
	for _, color := range Colors {
		rule, err := cfg.Channels[color].Rule()
		if err != nil {
			return nil, fmt.Errorf("%s channel: %w", color, err)
		}
		world, err := NewWorld(color, cfg.Width, cfg.Height, rule, cfg.Workers)
		if err != nil {
			return nil, err
		}
		worlds = append(worlds, world)
	}
	sim, err := NewFromWorlds(worlds...)
	if err != nil {
		return nil, err
	}
	sim.cfg = cfg
	return sim, nil
}

// NewFromWorlds assembles a Simulation from prebuilt Worlds. Exactly one World
// per Color is required and all must share the same size.
func NewFromWorlds(worlds ...*World) (*Simulation, error) {
	s := &Simulation{name: "chroma"}
	for i, w := range worlds {
		if w == nil {
			return nil, fmt.Errorf("world %d is nil", i)
		}
		if i == 0 {
			s.size = w.Size()
		} else if w.Size() != s.size {
			return nil, fmt.Errorf("%w: %s world is %dx%d, want %dx%d",
				ErrDimensionMismatch, w.Color(), w.Size().W, w.Size().H, s.size.W, s.size.H)
		}
		c := w.Color()
		if int(c) >= len(s.worlds) {
			return nil, fmt.Errorf("world %d: unknown %s", i, c)
		}
		if s.worlds[c] != nil {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateChannel, c)
		}
		s.worlds[c] = w
	}
	for _, c := range Colors {
		if s.worlds[c] == nil {
			return nil, fmt.Errorf("%w: %s", ErrMissingChannel, c)
		}
	}
	s.cfg = DefaultConfig()
	s.cfg.Width, s.cfg.Height = s.size.W, s.size.H
	return s, nil
}

// Name returns the simulation identifier.
func (s *Simulation) Name() string { return s.name }

// Size reports the grid dimensions shared by every World.
func (s *Simulation) Size() core.Size { return s.size }

// Config returns a copy of the active configuration.
func (s *Simulation) Config() Config {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg
}

// World returns the World driving color.
func (s *Simulation) World(color Color) *World { return s.worlds[color] }

// Generation reports how many ticks have completed since the last Reset.
func (s *Simulation) Generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.generation
}

// LastTick returns the per-channel reports of the most recent tick.
func (s *Simulation) LastTick() [3]TickReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastTick
}

// Reset clears every World. A non-zero seed combined with a positive
// NoiseDensity seeds each channel with deterministic noise; seed zero falls
// back to the configured seed.
func (s *Simulation) Reset(seed int64) {
	s.frame.Lock()
	defer s.frame.Unlock()

	s.mu.Lock()
	effective := seed
	if effective == 0 {
		effective = s.cfg.Seed
	}
	density := s.cfg.NoiseDensity
	s.generation = 0
	s.lastTick = [3]TickReport{}
	s.mu.Unlock()

	for _, c := range Colors {
		var fill func([]float32)
		if effective != 0 && density > 0 {
			rng := core.NewRNG(effective + int64(c))
			fill = func(cells []float32) { rng.FillNoise(cells, density) }
		}
		s.worlds[c].reset(fill)
	}
}

// Tick advances every World by one generation. The first failure is
// returned and leaves the simulation in an undefined state.
func (s *Simulation) Tick() error {
	s.frame.Lock()
	defer s.frame.Unlock()

	var reports [3]TickReport
	if s.Config().ParallelWorlds {
		var g errgroup.Group
		for _, c := range Colors {
			g.Go(func() error {
				report, err := s.worlds[c].Tick()
				reports[c] = report
				return err
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	} else {
		for _, c := range Colors {
			report, err := s.worlds[c].Tick()
			if err != nil {
				return err
			}
			reports[c] = report
		}
	}

	s.mu.Lock()
	s.generation++
	s.lastTick = reports
	s.mu.Unlock()
	return nil
}

// Step implements core.Sim.
func (s *Simulation) Step() error { return s.Tick() }

// Sample returns the per-channel values at (x, y) after the clamp mode.
func (s *Simulation) Sample(x, y int) (core.Sample, error) {
	s.frame.RLock()
	defer s.frame.RUnlock()
	var vals [3]float32
	clamp := s.Config().Clamp
	for _, c := range Colors {
		v, err := s.worlds[c].At(x, y)
		if err != nil {
			return core.Sample{}, err
		}
		vals[c] = clamp.Apply(v)
	}
	return core.Sample{R: vals[Red], G: vals[Green], B: vals[Blue]}, nil
}

// SetClamp switches the clamp mode used by Sample.
func (s *Simulation) SetClamp(mode ClampMode) {
	s.mu.Lock()
	s.cfg.Clamp = mode
	s.mu.Unlock()
}

func init() {
	core.Register("chroma", func(cfg map[string]string) (core.Sim, error) {
		c, err := FromMap(cfg)
		if err != nil {
			return nil, err
		}
		return NewWithConfig(c)
	})
	core.Register("chroma-legacy", func(cfg map[string]string) (core.Sim, error) {
		c, err := Overlay(LegacyConfig(), cfg)
		if err != nil {
			return nil, err
		}
		sim, err := NewWithConfig(c)
		if err != nil {
			return nil, err
		}
		sim.name = "chroma-legacy"
		return sim, nil
	})
}
