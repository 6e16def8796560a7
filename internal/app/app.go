//go:build ebiten

package app

import (
	"fmt"
	"log"
	"time"

	"chroma-ca/internal/core"
	"chroma-ca/internal/render"
	"chroma-ca/internal/sims/chroma"
	"chroma-ca/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

type clampSwitcher interface {
	Config() chroma.Config
	SetClamp(chroma.ClampMode)
}

var clampCycle = []chroma.ClampMode{chroma.ClampNone, chroma.ClampUnit, chroma.ClampLegacy}

// Game adapts a core simulation to the ebiten.Game interface.
type Game struct {
	sim     core.Sim
	painter *render.GridPainter
	overlay *ui.Overlay
	hud     *ui.HUD
	step    *core.FixedStep

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
	seed     int64

	// err holds a fatal draw failure until the next Update returns it.
	err error
}

// New constructs a Game for the provided simulation.
func New(sim core.Sim, cfg *Config) *Game {
	size := sim.Size()
	return &Game{
		sim:      sim,
		painter:  render.NewGridPainter(size.W, size.H),
		overlay:  ui.NewOverlay(sim, cfg.Scale),
		hud:      ui.NewHUD(sim, cfg.HUDWidth),
		step:     core.NewFixedStep(cfg.TPS),
		scale:    cfg.Scale,
		hudWidth: cfg.HUDWidth,
		seed:     cfg.Seed,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
	g.step.Reset()
}

// Update handles per-frame logic and advances the simulation.
func (g *Game) Update() error {
	if g.err != nil {
		return g.err
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
		g.step.Reset()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		g.cycleClamp()
	}

	g.overlay.Update()
	g.hud.Update(g.sim.Size().W * g.scale)

	if (!g.paused && g.step.ShouldStep()) || g.tickOnce {
		g.tickOnce = false
		if err := g.sim.Step(); err != nil {
			log.Printf("%s: tick failed: %v", g.sim.Name(), err)
			return fmt.Errorf("step %s: %w", g.sim.Name(), err)
		}
	}
	return nil
}

func (g *Game) cycleClamp() {
	sw, ok := g.sim.(clampSwitcher)
	if !ok {
		return
	}
	current := sw.Config().Clamp
	next := clampCycle[0]
	for i, mode := range clampCycle {
		if mode == current {
			next = clampCycle[(i+1)%len(clampCycle)]
			break
		}
	}
	sw.SetClamp(next)
	log.Printf("clamp mode: %s", next)
}

// Draw renders the current simulation state.
func (g *Game) Draw(screen *ebiten.Image) {
	if err := g.painter.Blit(screen, g.sim, g.overlay.Mask(), g.scale); err != nil {
		if g.err == nil {
			g.err = fmt.Errorf("draw %s: %w", g.sim.Name(), err)
		}
		return
	}
	g.overlay.Draw(screen)
	if g.paused {
		ebitenutil.DebugPrintAt(screen, "PAUSED", g.sim.Size().W*g.scale-56, 4)
	}
	g.hud.Draw(screen, g.sim.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
