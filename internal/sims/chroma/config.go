package chroma

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrUnknownClampMode reports an unrecognised clamp mode name.
var ErrUnknownClampMode = errors.New("unknown clamp mode")

// ClampMode selects how Sample post-processes raw cell values.
type ClampMode string

const (
	// ClampNone returns raw cell values.
	ClampNone ClampMode = "none"
	// ClampUnit limits values to [0, 1].
	ClampUnit ClampMode = "unit"
	// ClampLegacy applies max(1) followed by min(0), which always yields 0.
	ClampLegacy ClampMode = "legacy"
)

// ParseClampMode resolves a clamp mode name.
func ParseClampMode(s string) (ClampMode, error) {
	switch ClampMode(strings.ToLower(strings.TrimSpace(s))) {
	case ClampNone, "":
		return ClampNone, nil
	case ClampUnit:
		return ClampUnit, nil
	case ClampLegacy:
		return ClampLegacy, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownClampMode, s)
	}
}

// Apply post-processes v according to the mode.
func (m ClampMode) Apply(v float32) float32 {
	switch m {
	case ClampUnit:
		if math.IsNaN(float64(v)) || v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	case ClampLegacy:
		// max(v, 1) is never below 1, so the trailing min(_, 0) always wins.
		return 0
	default:
		return v
	}
}

// ChannelConfig selects and parameterizes the rule of one channel.
type ChannelConfig struct {
	Mode     RuleMode
	Ladder   Ladder
	Constant ConstantRule
}

// Rule builds the channel's rule from its mode.
func (c ChannelConfig) Rule() (Rule, error) {
	switch c.Mode {
	case RuleModeLadder, "":
		return c.Ladder, nil
	case RuleModeConstant:
		return c.Constant, nil
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownRuleMode, c.Mode)
	}
}

// Config controls the chroma simulation.
type Config struct {
	Width  int
	Height int

	Seed int64

	// Workers bounds concurrent row tasks per World; zero uses GOMAXPROCS.
	Workers int
	// ParallelWorlds ticks the three Worlds concurrently.
	ParallelWorlds bool

	Clamp ClampMode

	// NoiseDensity is the fraction of cells Reset seeds with random values
	// when given a non-zero seed.
	NoiseDensity float64

	Channels [3]ChannelConfig
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  320,
		Height: 180,
		Seed:   0,
		Clamp:  ClampNone,
		Channels: [3]ChannelConfig{
			Red:   {Mode: RuleModeLadder, Ladder: RedLadder(), Constant: ConstantRule{Op: OpSet, Value: 1}},
			Green: {Mode: RuleModeLadder, Ladder: GreenLadder(), Constant: ConstantRule{Op: OpSet, Value: 1}},
			Blue:  {Mode: RuleModeLadder, Ladder: BlueLadder(), Constant: ConstantRule{Op: OpSet, Value: 1}},
		},
	}
}

// LegacyConfig reproduces the first observed build: a 30x1080 field, the red
// ladder disabled in favour of Set(1.0), and the inverted clamp.
func LegacyConfig() Config {
	c := DefaultConfig()
	c.Width = 1920 / 64
	c.Height = 1080
	c.Clamp = ClampLegacy
	c.Channels[Red].Mode = RuleModeConstant
	// The disabled red ladder used a flat base delta.
	c.Channels[Red].Ladder.ParityMod = 0
	return c
}

// Channel returns the config of one channel.
func (c *Config) Channel(color Color) *ChannelConfig {
	return &c.Channels[color]
}

// FromMap populates the config from a string map (flag-style key/value pairs).
// Malformed numbers are ignored; unknown mode names are errors.
func FromMap(cfg map[string]string) (Config, error) {
	return Overlay(DefaultConfig(), cfg)
}

// Overlay applies key/value overrides onto base.
func Overlay(base Config, cfg map[string]string) (Config, error) {
	c := base
	if cfg == nil {
		return c, nil
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["workers"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Workers = parsed
		}
	}
	if v, ok := cfg["parallel_worlds"]; ok {
		if parsed, err := strconv.ParseBool(v); err == nil {
			c.ParallelWorlds = parsed
		}
	}
	if v, ok := cfg["noise"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 && parsed <= 1 {
			c.NoiseDensity = parsed
		}
	}
	if v, ok := cfg["clamp"]; ok {
		mode, err := ParseClampMode(v)
		if err != nil {
			return c, err
		}
		c.Clamp = mode
	}
	for _, color := range Colors {
		if err := overlayChannel(c.Channel(color), color.String()+"_", cfg); err != nil {
			return c, fmt.Errorf("%s channel: %w", color, err)
		}
	}
	return c, nil
}

func overlayChannel(ch *ChannelConfig, prefix string, cfg map[string]string) error {
	if v, ok := cfg[prefix+"mode"]; ok {
		mode, err := ParseRuleMode(v)
		if err != nil {
			return err
		}
		ch.Mode = mode
	}
	if v, ok := cfg[prefix+"constant_op"]; ok {
		op, err := ParseOp(v)
		if err != nil {
			return err
		}
		ch.Constant.Op = op
	}
	if v, ok := cfg[prefix+"high_op"]; ok {
		op, err := ParseOp(v)
		if err != nil {
			return err
		}
		ch.Ladder.HighOp = op
	}
	for key, dst := range ladderFloats(ch) {
		if v, ok := cfg[prefix+key]; ok {
			if parsed, err := strconv.ParseFloat(v, 32); err == nil {
				*dst = float32(parsed)
			}
		}
	}
	for key, dst := range ladderInts(&ch.Ladder) {
		if v, ok := cfg[prefix+key]; ok {
			if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
				*dst = parsed
			}
		}
	}
	return nil
}

// ladderFloats maps the float tunables of a channel to their key suffixes.
func ladderFloats(ch *ChannelConfig) map[string]*float32 {
	l := &ch.Ladder
	return map[string]*float32{
		"high":           &l.High,
		"mid":            &l.Mid,
		"narrow":         &l.Narrow,
		"low":            &l.Low,
		"high_value":     &l.HighValue,
		"mid_factor":     &l.MidFactor,
		"narrow_factor":  &l.NarrowFactor,
		"low_factor":     &l.LowFactor,
		"base_delta":     &l.BaseDelta,
		"constant_value": &ch.Constant.Value,
	}
}

// ladderInts maps the modulus tunables of a ladder to their key suffixes.
func ladderInts(l *Ladder) map[string]*int {
	return map[string]*int{
		"mid_y_mod":    &l.MidYMod,
		"narrow_x_mod": &l.NarrowXMod,
		"narrow_y_mod": &l.NarrowYMod,
		"low_x_mod":    &l.LowXMod,
		"parity_mod":   &l.ParityMod,
	}
}
