package chroma

import (
	"errors"
	"testing"
)

func TestLadderTiers(t *testing.T) {
	l := GreenLadder()
	cases := []struct {
		name string
		sum  float32
		x, y int
		want Event
	}{
		{"high", 6, 2, 3, Add(2, 3, l.HighValue)},
		{"high boundary falls to mid", 5, 2, 5, Mul(2, 5, l.MidFactor*float32(5))},
		{"mid", 4.5, 1, 13, Mul(1, 13, l.MidFactor*float32(13%8))},
		{"mid boundary falls to narrow", 4, 3, 6, Mul(3, 6, l.NarrowFactor*float32(3+6))},
		{"narrow", 3.95, 11, 9, Mul(11, 9, l.NarrowFactor*float32(11%8+9%8))},
		{"narrow boundary falls to low", 3.9, 10, 0, Mul(10, 0, l.LowFactor*float32(10%8))},
		{"low", 3.5, 7, 1, Mul(7, 1, l.LowFactor*float32(7))},
		{"low boundary falls to base", 3, 4, 4, Add(4, 4, l.BaseDelta*float32(1))},
		{"base odd column", 0, 5, 0, Add(5, 0, l.BaseDelta*float32(2))},
		{"base negative sum", -2, 6, 1, Add(6, 1, l.BaseDelta*float32(1))},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := l.Evaluate(tc.sum, tc.x, tc.y); got != tc.want {
				t.Fatalf("Evaluate(%v, %d, %d) = %s, want %s", tc.sum, tc.x, tc.y, got, tc.want)
			}
		})
	}
}

func TestChannelLaddersDiffer(t *testing.T) {
	x, y := 5, 6
	red := RedLadder().Evaluate(3.95, x, y)
	green := GreenLadder().Evaluate(3.95, x, y)
	if red == green {
		t.Fatalf("red and green narrow tier should differ, both %s", red)
	}
	blueMid := BlueLadder().Evaluate(4.5, x, y)
	greenMid := GreenLadder().Evaluate(4.5, x, y)
	if blueMid.Value != BlueLadder().MidFactor*float32(y%4) {
		t.Fatalf("blue mid tier uses y mod 4, got %s", blueMid)
	}
	if greenMid.Value != GreenLadder().MidFactor*float32(y%8) {
		t.Fatalf("green mid tier uses y mod 8, got %s", greenMid)
	}
}

func TestLadderZeroModulusContributesZero(t *testing.T) {
	l := GreenLadder()
	l.LowXMod = 0
	l.ParityMod = 0
	if got := l.Evaluate(3.5, 7, 0); got.Value != 0 {
		t.Fatalf("zero modulus should zero the factor, got %s", got)
	}
	if got := l.Evaluate(0, 7, 0); got.Value != l.BaseDelta {
		t.Fatalf("zero parity modulus should give the flat delta, got %s", got)
	}
}

func TestLadderHighOpConfigurable(t *testing.T) {
	l := RedLadder()
	l.HighOp = OpMul
	l.HighValue = 0.5
	if got := l.Evaluate(9, 1, 1); got != Mul(1, 1, 0.5) {
		t.Fatalf("expected Mul high tier, got %s", got)
	}
}

func TestConstantRule(t *testing.T) {
	r := ConstantRule{Op: OpSet, Value: 1}
	for _, sum := range []float32{-1, 0, 3.95, 100} {
		if got := r.Evaluate(sum, 2, 3); got != Set(2, 3, 1) {
			t.Fatalf("sum %v: got %s", sum, got)
		}
	}
}

func TestParseRuleMode(t *testing.T) {
	if m, err := ParseRuleMode(" Ladder "); err != nil || m != RuleModeLadder {
		t.Fatalf("ParseRuleMode(ladder) = %q, %v", m, err)
	}
	if m, err := ParseRuleMode("constant"); err != nil || m != RuleModeConstant {
		t.Fatalf("ParseRuleMode(constant) = %q, %v", m, err)
	}
	if _, err := ParseRuleMode("chaos"); !errors.Is(err, ErrUnknownRuleMode) {
		t.Fatalf("expected ErrUnknownRuleMode, got %v", err)
	}
}

func TestParseOpRoundTrip(t *testing.T) {
	for _, op := range []Op{OpSet, OpAdd, OpMul} {
		got, err := ParseOp(op.String())
		if err != nil || got != op {
			t.Fatalf("ParseOp(%s) = %v, %v", op, got, err)
		}
	}
	if _, err := ParseOp("div"); err == nil {
		t.Fatal("expected unknown op to fail")
	}
}
