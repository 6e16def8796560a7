package core

import (
	"errors"
	"testing"
)

func mustGrid(t *testing.T, w, h int) *FloatGrid {
	t.Helper()
	g, err := NewFloatGrid(w, h)
	if err != nil {
		t.Fatalf("NewFloatGrid(%d, %d): %v", w, h, err)
	}
	return g
}

func TestNewFloatGridRejectsInvalidSize(t *testing.T) {
	for _, tc := range []struct{ w, h int }{{0, 4}, {4, 0}, {-1, 3}} {
		if _, err := NewFloatGrid(tc.w, tc.h); !errors.Is(err, ErrInvalidSize) {
			t.Fatalf("NewFloatGrid(%d, %d) err = %v, want ErrInvalidSize", tc.w, tc.h, err)
		}
	}
}

func TestNewFloatGridZeroFilled(t *testing.T) {
	g := mustGrid(t, 5, 3)
	if len(g.Cells()) != 15 {
		t.Fatalf("expected 15 cells, got %d", len(g.Cells()))
	}
	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("cell %d = %f, want 0", i, v)
		}
	}
}

func TestWrap(t *testing.T) {
	g := mustGrid(t, 4, 3)
	cases := []struct {
		x, y   int
		wx, wy int
	}{
		{0, 0, 0, 0},
		{-1, -1, 3, 2},
		{4, 3, 0, 0},
		{-5, 7, 3, 1},
	}
	for _, tc := range cases {
		x, y := g.Wrap(tc.x, tc.y)
		if x != tc.wx || y != tc.wy {
			t.Fatalf("Wrap(%d,%d) = (%d,%d), want (%d,%d)", tc.x, tc.y, x, y, tc.wx, tc.wy)
		}
	}
}

func TestDirectAccessRejectsOutOfRange(t *testing.T) {
	g := mustGrid(t, 4, 4)
	if _, err := g.At(4, 0); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("At(4,0) err = %v, want ErrOutOfRange", err)
	}
	if err := g.Set(-1, 0, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Set(-1,0) err = %v, want ErrOutOfRange", err)
	}
	if err := g.Add(0, 4, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Add(0,4) err = %v, want ErrOutOfRange", err)
	}
	if err := g.Mul(0, -1, 1); !errors.Is(err, ErrOutOfRange) {
		t.Fatalf("Mul(0,-1) err = %v, want ErrOutOfRange", err)
	}
	for i, v := range g.Cells() {
		if v != 0 {
			t.Fatalf("rejected write leaked into cell %d", i)
		}
	}
}

func TestSetAddMul(t *testing.T) {
	g := mustGrid(t, 3, 3)
	if err := g.Set(1, 2, 2); err != nil {
		t.Fatal(err)
	}
	if err := g.Add(1, 2, 0.5); err != nil {
		t.Fatal(err)
	}
	if err := g.Mul(1, 2, 4); err != nil {
		t.Fatal(err)
	}
	got, err := g.At(1, 2)
	if err != nil {
		t.Fatal(err)
	}
	if got != 10 {
		t.Fatalf("expected 10, got %f", got)
	}
	if g.Cells()[g.Index(1, 2)] != 10 {
		t.Fatal("Index does not address the written cell")
	}
}

func TestNeighborSumWrapsCorner(t *testing.T) {
	g := mustGrid(t, 6, 5)
	if err := g.Set(5, 4, 1); err != nil {
		t.Fatal(err)
	}
	if got := g.NeighborSum(0, 0, 1); got != 1 {
		t.Fatalf("NeighborSum(0,0,1) = %f, want 1 from wrapped corner", got)
	}
}

func TestNeighborSumAsymmetricWindow(t *testing.T) {
	g := mustGrid(t, 5, 5)
	for i := range g.Cells() {
		g.Cells()[i] = float32(i + 1)
	}
	// radius 1 covers {x-1, x} x {y-1, y}.
	want := g.Cells()[g.Index(1, 1)] + g.Cells()[g.Index(2, 1)] +
		g.Cells()[g.Index(1, 2)] + g.Cells()[g.Index(2, 2)]
	if got := g.NeighborSum(2, 2, 1); got != want {
		t.Fatalf("NeighborSum(2,2,1) = %f, want %f", got, want)
	}

	g.Clear()
	if err := g.Set(3, 3, 1); err != nil {
		t.Fatal(err)
	}
	if got := g.NeighborSum(2, 2, 1); got != 0 {
		t.Fatalf("cell at +1,+1 must fall outside the radius-1 window, got %f", got)
	}
}

func TestNeighborSumRadiusTwoCoversSixteen(t *testing.T) {
	g := mustGrid(t, 3, 3)
	for i := range g.Cells() {
		g.Cells()[i] = 1
	}
	// A 4x4 window on a 3x3 torus visits some cells twice.
	if got := g.NeighborSum(1, 1, 2); got != 16 {
		t.Fatalf("NeighborSum(1,1,2) = %f, want 16", got)
	}
}

func TestSnapshotLookup(t *testing.T) {
	snap := ParameterSnapshot{Groups: []ParameterGroup{
		{Name: "A", Params: []Parameter{{Key: "a", Value: "1"}}},
		{Name: "B", Params: []Parameter{{Key: "b", Value: "2"}}},
	}}
	if p, ok := snap.Lookup("b"); !ok || p.Value != "2" {
		t.Fatalf("Lookup(b) = %+v, %v", p, ok)
	}
	if _, ok := snap.Lookup("missing"); ok {
		t.Fatal("Lookup(missing) should fail")
	}
}

func TestFillNoiseDeterministic(t *testing.T) {
	a := make([]float32, 64)
	b := make([]float32, 64)
	NewRNG(7).FillNoise(a, 0.5)
	NewRNG(7).FillNoise(b, 0.5)
	nonZero := 0
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise differs at %d", i)
		}
		if a[i] < 0 || a[i] >= 1 {
			t.Fatalf("noise value %f outside [0,1)", a[i])
		}
		if a[i] != 0 {
			nonZero++
		}
	}
	if nonZero == 0 {
		t.Fatal("expected some cells to be seeded")
	}
}
