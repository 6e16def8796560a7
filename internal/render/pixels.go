package render

import (
	"fmt"
	"math"

	"chroma-ca/internal/core"
)

// ChannelMask selects which channels reach the output image.
type ChannelMask uint8

const (
	MaskRed ChannelMask = 1 << iota
	MaskGreen
	MaskBlue

	MaskAll = MaskRed | MaskGreen | MaskBlue
)

// Has reports whether every channel in other is enabled.
func (m ChannelMask) Has(other ChannelMask) bool { return m&other == other }

// Toggle flips the channels in other.
func (m ChannelMask) Toggle(other ChannelMask) ChannelMask { return m ^ other }

// sampler is the read side of a multi-channel sim.
type sampler interface {
	Size() core.Size
	Sample(x, y int) (core.Sample, error)
}

// ToByte converts a channel value to an 8-bit intensity: v*255 truncated
// toward zero and saturated to [0, 255]. NaN maps to 0.
func ToByte(v float32) uint8 {
	f := float64(v) * 255
	switch {
	case math.IsNaN(f), f <= 0:
		return 0
	case f >= 255:
		return 255
	default:
		return uint8(f)
	}
}

// fillChannelRGBA composites every cell of src into opaque RGBA pixels in buf.
// Channels missing from mask are written as zero.
func fillChannelRGBA(buf []byte, src sampler, mask ChannelMask) error {
	size := src.Size()
	for y := 0; y < size.H; y++ {
		for x := 0; x < size.W; x++ {
			s, err := src.Sample(x, y)
			if err != nil {
				return err
			}
			base := (y*size.W + x) * 4
			buf[base+0] = 0
			buf[base+1] = 0
			buf[base+2] = 0
			if mask.Has(MaskRed) {
				buf[base+0] = ToByte(s.R)
			}
			if mask.Has(MaskGreen) {
				buf[base+1] = ToByte(s.G)
			}
			if mask.Has(MaskBlue) {
				buf[base+2] = ToByte(s.B)
			}
			buf[base+3] = 255
		}
	}
	return nil
}

// Frame holds the RGBA pixels of one composited frame.
type Frame struct {
	W, H int
	Pix  []byte
}

// NewFrame allocates a frame for a grid of size w*h.
func NewFrame(w, h int) *Frame {
	return &Frame{W: w, H: h, Pix: make([]byte, 4*w*h)}
}

// Compose redraws the frame from src. src must match the frame size.
func (f *Frame) Compose(src sampler, mask ChannelMask) error {
	size := src.Size()
	if size.W != f.W || size.H != f.H {
		return fmt.Errorf("%w: frame %dx%d, source %dx%d", core.ErrInvalidSize, f.W, f.H, size.W, size.H)
	}
	return fillChannelRGBA(f.Pix, src, mask)
}

// At returns the RGB bytes of pixel (x, y).
func (f *Frame) At(x, y int) (r, g, b uint8) {
	base := (y*f.W + x) * 4
	return f.Pix[base], f.Pix[base+1], f.Pix[base+2]
}
