//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// GridPainter uploads composited frames into a single RGBA image.
type GridPainter struct {
	frame *Frame
	img   *ebiten.Image
}

// NewGridPainter allocates a painter for a grid of size w*h.
func NewGridPainter(w, h int) *GridPainter {
	return &GridPainter{frame: NewFrame(w, h), img: ebiten.NewImage(w, h)}
}

// Blit composites src into the painter image and draws it scaled onto dst.
func (gp *GridPainter) Blit(dst *ebiten.Image, src sampler, mask ChannelMask, scale int) error {
	if err := gp.frame.Compose(src, mask); err != nil {
		return err
	}
	gp.img.WritePixels(gp.frame.Pix)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(gp.img, op)
	return nil
}

// Size returns the dimensions of the underlying image.
func (gp *GridPainter) Size() (int, int) { return gp.frame.W, gp.frame.H }
