package main

import (
	"flag"
	"fmt"
	"log"
	"time"

	"chroma-ca/internal/app"
	"chroma-ca/internal/core"
	"chroma-ca/internal/render"
	_ "chroma-ca/internal/sims/chroma"

	"github.com/gdamore/tcell/v2"
)

// view renders a simulation into a terminal using half-block cells, two grid
// rows per terminal row.
type view struct {
	screen tcell.Screen
	sim    core.Sim
	mask   render.ChannelMask

	// offX and offY pan the grid when it is larger than the terminal.
	offX, offY int
	paused     bool
	gen        int
	// seed is reused by the reset key.
	seed int64
}

func main() {
	cfg := app.NewConfig()
	cfg.Bind(flag.CommandLine)
	flag.Parse()

	sim, err := cfg.Build()
	if err != nil {
		log.Fatal(err)
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatal(err)
	}
	if err := screen.Init(); err != nil {
		log.Fatal(err)
	}

	v := &view{screen: screen, sim: sim, mask: render.MaskAll, seed: cfg.Seed}
	err = v.run(cfg.TPS)
	screen.Fini()
	if err != nil {
		log.Fatal(err)
	}
}

func (v *view) run(tps int) error {
	step := core.NewFixedStep(tps)
	ticker := time.NewTicker(16 * time.Millisecond)
	defer ticker.Stop()

	events := make(chan tcell.Event, 100)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	for {
		select {
		case ev := <-events:
			quit, err := v.handle(ev)
			if err != nil {
				return err
			}
			if quit {
				return nil
			}
		case <-ticker.C:
			if !v.paused && step.ShouldStep() {
				if err := v.sim.Step(); err != nil {
					return fmt.Errorf("step %s: %w", v.sim.Name(), err)
				}
				v.gen++
			}
			if err := v.draw(); err != nil {
				return err
			}
		}
	}
}

// handle applies one input event and reports whether the driver should quit.
func (v *view) handle(ev tcell.Event) (bool, error) {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return true, nil
		case tcell.KeyLeft:
			v.offX--
		case tcell.KeyRight:
			v.offX++
		case tcell.KeyUp:
			v.offY -= 2
		case tcell.KeyDown:
			v.offY += 2
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return true, nil
			case ' ':
				v.paused = !v.paused
			case 'n':
				if err := v.sim.Step(); err != nil {
					return true, fmt.Errorf("step %s: %w", v.sim.Name(), err)
				}
				v.gen++
			case 'r':
				v.sim.Reset(v.seed)
				v.gen = 0
			case '1':
				v.mask = v.mask.Toggle(render.MaskRed)
			case '2':
				v.mask = v.mask.Toggle(render.MaskGreen)
			case '3':
				v.mask = v.mask.Toggle(render.MaskBlue)
			case '0':
				v.mask = render.MaskAll
			}
		}
	case *tcell.EventResize:
		v.screen.Sync()
	}
	return false, nil
}

func (v *view) draw() error {
	cols, rows := v.screen.Size()
	size := v.sim.Size()
	// The last terminal row holds the status line.
	viewRows := rows - 1
	v.offX = clampOffset(v.offX, size.W, cols)
	v.offY = clampOffset(v.offY, size.H, viewRows*2)

	v.screen.Clear()
	for ty := 0; ty < viewRows; ty++ {
		top := v.offY + ty*2
		if top >= size.H {
			break
		}
		for tx := 0; tx < cols && v.offX+tx < size.W; tx++ {
			x := v.offX + tx
			fg, err := v.cellColor(x, top)
			if err != nil {
				return err
			}
			bg := tcell.ColorBlack
			if top+1 < size.H {
				if bg, err = v.cellColor(x, top+1); err != nil {
					return err
				}
			}
			v.screen.SetContent(tx, ty, '▀', nil, tcell.StyleDefault.Foreground(fg).Background(bg))
		}
	}

	state := "running"
	if v.paused {
		state = "paused"
	}
	status := fmt.Sprintf(" %s %dx%d gen %d %s  [q]uit [space] pause [n]ext [r]eset [1-3] channels", v.sim.Name(), size.W, size.H, v.gen, state)
	for i, r := range []rune(status) {
		if i >= cols {
			break
		}
		v.screen.SetContent(i, rows-1, r, nil, tcell.StyleDefault.Foreground(tcell.ColorSilver))
	}
	v.screen.Show()
	return nil
}

func (v *view) cellColor(x, y int) (tcell.Color, error) {
	s, err := v.sim.Sample(x, y)
	if err != nil {
		return tcell.ColorDefault, err
	}
	var r, g, b int32
	if v.mask.Has(render.MaskRed) {
		r = int32(render.ToByte(s.R))
	}
	if v.mask.Has(render.MaskGreen) {
		g = int32(render.ToByte(s.G))
	}
	if v.mask.Has(render.MaskBlue) {
		b = int32(render.ToByte(s.B))
	}
	return tcell.NewRGBColor(r, g, b), nil
}

func clampOffset(off, extent, visible int) int {
	maxOff := extent - visible
	if maxOff < 0 {
		maxOff = 0
	}
	if off > maxOff {
		off = maxOff
	}
	if off < 0 {
		off = 0
	}
	return off
}
