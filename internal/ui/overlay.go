//go:build ebiten

package ui

import (
	"image/color"

	"chroma-ca/internal/core"
	"chroma-ca/internal/render"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

// Overlay tracks which channels are composited and draws a small legend on
// top of the simulation view.
type Overlay struct {
	sim   core.Sim
	scale int
	mask  render.ChannelMask
	// legend toggles with L.
	legend bool
}

// NewOverlay constructs a new overlay instance with every channel visible.
func NewOverlay(sim core.Sim, scale int) *Overlay {
	return &Overlay{sim: sim, scale: scale, mask: render.MaskAll, legend: true}
}

// Mask reports the channels currently composited.
func (o *Overlay) Mask() render.ChannelMask { return o.mask }

// Update handles the channel toggle keys.
func (o *Overlay) Update() {
	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit1):
		o.mask = o.mask.Toggle(render.MaskRed)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit2):
		o.mask = o.mask.Toggle(render.MaskGreen)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit3):
		o.mask = o.mask.Toggle(render.MaskBlue)
	case inpututil.IsKeyJustPressed(ebiten.KeyDigit0):
		o.mask = render.MaskAll
	case inpututil.IsKeyJustPressed(ebiten.KeyL):
		o.legend = !o.legend
	}
}

// Draw renders the legend onto the provided screen.
func (o *Overlay) Draw(screen *ebiten.Image) {
	if !o.legend {
		return
	}
	size := o.sim.Size()
	if size.W <= 0 || size.H <= 0 {
		return
	}

	const (
		pad    = 4
		swatch = 10
		rowH   = 14
	)
	entries := []struct {
		label string
		bit   render.ChannelMask
		col   color.RGBA
	}{
		{"1 red", render.MaskRed, color.RGBA{R: 230, G: 60, B: 60, A: 255}},
		{"2 green", render.MaskGreen, color.RGBA{R: 60, G: 200, B: 80, A: 255}},
		{"3 blue", render.MaskBlue, color.RGBA{R: 70, G: 110, B: 240, A: 255}},
	}

	vector.DrawFilledRect(screen, 0, 0, 80, float32(pad*2+rowH*len(entries)), color.RGBA{R: 0, G: 0, B: 0, A: 150}, false)
	face := basicfont.Face7x13
	for i, e := range entries {
		y := pad + i*rowH
		col := e.col
		textCol := color.RGBA{R: 220, G: 220, B: 230, A: 255}
		if !o.mask.Has(e.bit) {
			col = color.RGBA{R: 60, G: 60, B: 66, A: 255}
			textCol = color.RGBA{R: 120, G: 120, B: 130, A: 255}
		}
		vector.DrawFilledRect(screen, pad, float32(y+2), swatch, swatch, col, false)
		text.Draw(screen, e.label, face, pad+swatch+6, y+rowH-2, textCol)
	}
}
