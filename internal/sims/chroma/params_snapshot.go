package chroma

import (
	"fmt"
	"strconv"
	"strings"

	"chroma-ca/internal/core"
)

// Parameters reports the active tunables grouped for the HUD.
func (s *Simulation) Parameters() core.ParameterSnapshot {
	cfg := s.Config()
	groups := []core.ParameterGroup{
		{
			Name:    "World",
			Summary: fmt.Sprintf("%dx%d clamp %s", cfg.Width, cfg.Height, cfg.Clamp),
			Params: []core.Parameter{
				intParam("w", "Width", cfg.Width),
				intParam("h", "Height", cfg.Height),
				int64Param("seed", "Seed", cfg.Seed),
				intParam("workers", "Row workers", cfg.Workers),
				boolParam("parallel_worlds", "Parallel worlds", cfg.ParallelWorlds),
				floatParam("noise", "Noise density", cfg.NoiseDensity),
				stringParam("clamp", "Clamp", string(cfg.Clamp)),
			},
		},
	}
	for _, color := range Colors {
		ch := cfg.Channels[color]
		prefix := color.String() + "_"
		label := strings.ToUpper(color.String()[:1]) + color.String()[1:]
		l := ch.Ladder
		groups = append(groups, core.ParameterGroup{
			Name:    label,
			Summary: channelSummary(ch),
			Params: []core.Parameter{
				stringParam(prefix+"mode", "Mode", string(ch.Mode)),
				float32Param(prefix+"high", "High threshold", l.High),
				float32Param(prefix+"mid", "Mid threshold", l.Mid),
				float32Param(prefix+"narrow", "Narrow threshold", l.Narrow),
				float32Param(prefix+"low", "Low threshold", l.Low),
				stringParam(prefix+"high_op", "High op", l.HighOp.String()),
				float32Param(prefix+"high_value", "High value", l.HighValue),
				float32Param(prefix+"mid_factor", "Mid factor", l.MidFactor),
				intParam(prefix+"mid_y_mod", "Mid y mod", l.MidYMod),
				float32Param(prefix+"narrow_factor", "Narrow factor", l.NarrowFactor),
				intParam(prefix+"narrow_x_mod", "Narrow x mod", l.NarrowXMod),
				intParam(prefix+"narrow_y_mod", "Narrow y mod", l.NarrowYMod),
				float32Param(prefix+"low_factor", "Low factor", l.LowFactor),
				intParam(prefix+"low_x_mod", "Low x mod", l.LowXMod),
				float32Param(prefix+"base_delta", "Base delta", l.BaseDelta),
				intParam(prefix+"parity_mod", "Parity mod", l.ParityMod),
				stringParam(prefix+"constant_op", "Constant op", ch.Constant.Op.String()),
				float32Param(prefix+"constant_value", "Constant value", ch.Constant.Value),
			},
		})
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the HUD-adjustable tunables.
func (s *Simulation) ParameterControls() []core.ParameterControl {
	controls := []core.ParameterControl{
		{Key: "workers", Label: "Row workers", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 256, HasMax: true},
		{Key: "noise", Label: "Noise density", Type: core.ParamTypeFloat, Step: 0.05, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "clamp", Label: "Clamp", Type: core.ParamTypeString, Options: []string{string(ClampNone), string(ClampUnit), string(ClampLegacy)}},
	}
	for _, color := range Colors {
		prefix := color.String() + "_"
		name := color.String()
		controls = append(controls,
			core.ParameterControl{Key: prefix + "mode", Label: name + " mode", Type: core.ParamTypeString, Options: []string{string(RuleModeLadder), string(RuleModeConstant)}},
			core.ParameterControl{Key: prefix + "high_op", Label: name + " high op", Type: core.ParamTypeString, Options: opNames},
			core.ParameterControl{Key: prefix + "mid_y_mod", Label: name + " mid y mod", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 64, HasMax: true},
			core.ParameterControl{Key: prefix + "narrow_x_mod", Label: name + " narrow x mod", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 64, HasMax: true},
			core.ParameterControl{Key: prefix + "low_x_mod", Label: name + " low x mod", Type: core.ParamTypeInt, Step: 1, Min: 0, HasMin: true, Max: 64, HasMax: true},
			core.ParameterControl{Key: prefix + "base_delta", Label: name + " base delta", Type: core.ParamTypeFloat, Step: 0.005, Min: -1, HasMin: true, Max: 1, HasMax: true},
		)
	}
	return controls
}

// SetIntParameter updates an integer tunable and reports whether key was
// recognised. Rule changes take effect on the next tick.
func (s *Simulation) SetIntParameter(key string, value int) bool {
	if key == "workers" {
		if value < 0 {
			value = 0
		}
		s.mu.Lock()
		s.cfg.Workers = value
		s.mu.Unlock()
		for _, c := range Colors {
			s.worlds[c].SetWorkers(value)
		}
		return true
	}
	color, suffix, ok := splitChannelKey(key)
	if !ok {
		return false
	}
	if value < 0 {
		value = 0
	}
	return s.updateChannel(color, func(ch *ChannelConfig) bool {
		dst, ok := ladderInts(&ch.Ladder)[suffix]
		if !ok {
			return false
		}
		*dst = value
		return true
	})
}

// SetFloatParameter updates a floating point tunable and reports whether key
// was recognised.
func (s *Simulation) SetFloatParameter(key string, value float64) bool {
	if key == "noise" {
		if value < 0 {
			value = 0
		}
		if value > 1 {
			value = 1
		}
		s.mu.Lock()
		s.cfg.NoiseDensity = value
		s.mu.Unlock()
		return true
	}
	color, suffix, ok := splitChannelKey(key)
	if !ok {
		return false
	}
	return s.updateChannel(color, func(ch *ChannelConfig) bool {
		dst, ok := ladderFloats(ch)[suffix]
		if !ok {
			return false
		}
		*dst = float32(value)
		return true
	})
}

// SetStringParameter updates an enumerated tunable: the clamp mode, a
// channel's rule mode or one of its ops.
func (s *Simulation) SetStringParameter(key, value string) bool {
	if key == "clamp" {
		mode, err := ParseClampMode(value)
		if err != nil {
			return false
		}
		s.SetClamp(mode)
		return true
	}
	color, suffix, ok := splitChannelKey(key)
	if !ok {
		return false
	}
	return s.updateChannel(color, func(ch *ChannelConfig) bool {
		switch suffix {
		case "mode":
			mode, err := ParseRuleMode(value)
			if err != nil {
				return false
			}
			ch.Mode = mode
		case "high_op", "constant_op":
			op, err := ParseOp(value)
			if err != nil {
				return false
			}
			if suffix == "high_op" {
				ch.Ladder.HighOp = op
			} else {
				ch.Constant.Op = op
			}
		default:
			return false
		}
		return true
	})
}

var opNames = []string{OpSet.String(), OpAdd.String(), OpMul.String()}

func channelSummary(ch ChannelConfig) string {
	if ch.Mode == RuleModeConstant {
		return fmt.Sprintf("constant %s %g", ch.Constant.Op, ch.Constant.Value)
	}
	l := ch.Ladder
	return fmt.Sprintf("ladder %g/%g/%g/%g", l.High, l.Mid, l.Narrow, l.Low)
}

func (s *Simulation) updateChannel(color Color, mutate func(*ChannelConfig) bool) bool {
	s.mu.Lock()
	ch := s.cfg.Channels[color]
	if !mutate(&ch) {
		s.mu.Unlock()
		return false
	}
	rule, err := ch.Rule()
	if err != nil {
		s.mu.Unlock()
		return false
	}
	s.cfg.Channels[color] = ch
	s.mu.Unlock()
	s.worlds[color].SetRule(rule)
	return true
}

func splitChannelKey(key string) (Color, string, bool) {
	for _, c := range Colors {
		prefix := c.String() + "_"
		if strings.HasPrefix(key, prefix) {
			return c, strings.TrimPrefix(key, prefix), true
		}
	}
	return 0, "", false
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.Itoa(value),
	}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeInt,
		Value: strconv.FormatInt(value, 10),
	}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(value, 'f', -1, 64),
	}
}

func float32Param(key, label string, value float32) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeFloat,
		Value: strconv.FormatFloat(float64(value), 'f', -1, 32),
	}
}

func boolParam(key, label string, value bool) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeBool,
		Value: strconv.FormatBool(value),
	}
}

func stringParam(key, label, value string) core.Parameter {
	return core.Parameter{
		Key:   key,
		Label: label,
		Type:  core.ParamTypeString,
		Value: value,
	}
}
