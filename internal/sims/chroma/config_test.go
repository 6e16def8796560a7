package chroma

import (
	"errors"
	"testing"
)

func TestFromMapDefaults(t *testing.T) {
	c, err := FromMap(nil)
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if c.Width != def.Width || c.Height != def.Height || c.Clamp != ClampNone {
		t.Fatalf("unexpected defaults %+v", c)
	}
	for _, color := range Colors {
		if c.Channels[color].Mode != RuleModeLadder {
			t.Fatalf("%s should default to the ladder", color)
		}
	}
}

func TestFromMapOverrides(t *testing.T) {
	c, err := FromMap(map[string]string{
		"w":                  "64",
		"h":                  "32",
		"seed":               "9",
		"workers":            "3",
		"parallel_worlds":    "true",
		"noise":              "0.25",
		"clamp":              "unit",
		"red_mode":           "constant",
		"red_constant_op":    "add",
		"red_constant_value": "0.5",
		"green_mid_y_mod":    "5",
		"green_high_op":      "mul",
		"green_high_value":   "0.75",
		"blue_low":           "2.5",
		"blue_parity_mod":    "3",
	})
	if err != nil {
		t.Fatal(err)
	}
	if c.Width != 64 || c.Height != 32 || c.Seed != 9 || c.Workers != 3 {
		t.Fatalf("world overrides not applied: %+v", c)
	}
	if !c.ParallelWorlds || c.NoiseDensity != 0.25 || c.Clamp != ClampUnit {
		t.Fatalf("engine overrides not applied: %+v", c)
	}
	red := c.Channels[Red]
	if red.Mode != RuleModeConstant || red.Constant != (ConstantRule{Op: OpAdd, Value: 0.5}) {
		t.Fatalf("red overrides not applied: %+v", red)
	}
	green := c.Channels[Green].Ladder
	if green.MidYMod != 5 || green.HighOp != OpMul || green.HighValue != 0.75 {
		t.Fatalf("green overrides not applied: %+v", green)
	}
	blue := c.Channels[Blue].Ladder
	if blue.Low != 2.5 || blue.ParityMod != 3 {
		t.Fatalf("blue overrides not applied: %+v", blue)
	}
	if c.Channels[Blue].Ladder.MidYMod != BlueLadder().MidYMod {
		t.Fatal("untouched keys must keep their defaults")
	}
}

func TestFromMapIgnoresMalformedNumbers(t *testing.T) {
	c, err := FromMap(map[string]string{"w": "-4", "h": "tall", "noise": "2", "green_mid_y_mod": "-1"})
	if err != nil {
		t.Fatal(err)
	}
	def := DefaultConfig()
	if c.Width != def.Width || c.Height != def.Height || c.NoiseDensity != 0 {
		t.Fatalf("malformed values should be ignored: %+v", c)
	}
	if c.Channels[Green].Ladder.MidYMod != GreenLadder().MidYMod {
		t.Fatal("negative modulus should be ignored")
	}
}

func TestFromMapRejectsUnknownNames(t *testing.T) {
	if _, err := FromMap(map[string]string{"clamp": "soft"}); !errors.Is(err, ErrUnknownClampMode) {
		t.Fatalf("expected ErrUnknownClampMode, got %v", err)
	}
	if _, err := FromMap(map[string]string{"blue_mode": "chaos"}); !errors.Is(err, ErrUnknownRuleMode) {
		t.Fatalf("expected ErrUnknownRuleMode, got %v", err)
	}
	if _, err := FromMap(map[string]string{"green_high_op": "div"}); err == nil {
		t.Fatal("expected unknown op to fail")
	}
}

func TestLegacyConfig(t *testing.T) {
	c := LegacyConfig()
	if c.Width != 30 || c.Height != 1080 {
		t.Fatalf("unexpected legacy size %dx%d", c.Width, c.Height)
	}
	if c.Clamp != ClampLegacy {
		t.Fatalf("unexpected legacy clamp %s", c.Clamp)
	}
	rule, err := c.Channels[Red].Rule()
	if err != nil {
		t.Fatal(err)
	}
	if got := rule.Evaluate(4.5, 3, 3); got != Set(3, 3, 1) {
		t.Fatalf("legacy red should always set 1, got %s", got)
	}
	if _, err := c.Channels[Green].Rule(); err != nil {
		t.Fatalf("legacy green rule: %v", err)
	}
}

func TestParseClampMode(t *testing.T) {
	for in, want := range map[string]ClampMode{"": ClampNone, "NONE": ClampNone, "unit": ClampUnit, " legacy ": ClampLegacy} {
		got, err := ParseClampMode(in)
		if err != nil || got != want {
			t.Fatalf("ParseClampMode(%q) = %q, %v", in, got, err)
		}
	}
}
