package render

import (
	"errors"
	"math"
	"testing"

	"chroma-ca/internal/core"
)

type fakeSim struct {
	size  core.Size
	cells map[[2]int]core.Sample
	fail  bool
}

func (f *fakeSim) Size() core.Size { return f.size }

func (f *fakeSim) Sample(x, y int) (core.Sample, error) {
	if f.fail {
		return core.Sample{}, core.ErrOutOfRange
	}
	return f.cells[[2]int{x, y}], nil
}

func TestToByte(t *testing.T) {
	cases := []struct {
		in   float32
		want uint8
	}{
		{0, 0},
		{1, 255},
		{0.5, 127},
		{-0.2, 0},
		{7, 255},
		{float32(math.NaN()), 0},
		{float32(math.Inf(1)), 255},
		{float32(math.Inf(-1)), 0},
	}
	for _, tc := range cases {
		if got := ToByte(tc.in); got != tc.want {
			t.Fatalf("ToByte(%v) = %d, want %d", tc.in, got, tc.want)
		}
	}
}

func TestComposeWritesOpaquePixels(t *testing.T) {
	src := &fakeSim{
		size: core.Size{W: 2, H: 2},
		cells: map[[2]int]core.Sample{
			{1, 0}: {R: 1, G: 0.5, B: 2},
			{0, 1}: {R: -1, G: 1, B: 0},
		},
	}
	frame := NewFrame(2, 2)
	if err := frame.Compose(src, MaskAll); err != nil {
		t.Fatal(err)
	}
	if r, g, b := frame.At(1, 0); r != 255 || g != 127 || b != 255 {
		t.Fatalf("pixel (1,0) = %d,%d,%d", r, g, b)
	}
	if r, g, b := frame.At(0, 1); r != 0 || g != 255 || b != 0 {
		t.Fatalf("pixel (0,1) = %d,%d,%d", r, g, b)
	}
	for i := 3; i < len(frame.Pix); i += 4 {
		if frame.Pix[i] != 255 {
			t.Fatalf("alpha at byte %d = %d", i, frame.Pix[i])
		}
	}
}

func TestComposeHonoursMask(t *testing.T) {
	src := &fakeSim{
		size:  core.Size{W: 1, H: 1},
		cells: map[[2]int]core.Sample{{0, 0}: {R: 1, G: 1, B: 1}},
	}
	frame := NewFrame(1, 1)
	mask := MaskAll.Toggle(MaskGreen)
	if err := frame.Compose(src, mask); err != nil {
		t.Fatal(err)
	}
	if r, g, b := frame.At(0, 0); r != 255 || g != 0 || b != 255 {
		t.Fatalf("masked pixel = %d,%d,%d", r, g, b)
	}
	if !mask.Has(MaskRed|MaskBlue) || mask.Has(MaskGreen) {
		t.Fatalf("unexpected mask %b", mask)
	}
}

func TestComposeErrors(t *testing.T) {
	frame := NewFrame(2, 2)
	if err := frame.Compose(&fakeSim{size: core.Size{W: 3, H: 2}}, MaskAll); !errors.Is(err, core.ErrInvalidSize) {
		t.Fatalf("expected ErrInvalidSize, got %v", err)
	}
	if err := frame.Compose(&fakeSim{size: core.Size{W: 2, H: 2}, fail: true}, MaskAll); !errors.Is(err, core.ErrOutOfRange) {
		t.Fatalf("expected sample error to propagate, got %v", err)
	}
}
