package chroma

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownRuleMode reports an unrecognised rule mode name.
var ErrUnknownRuleMode = errors.New("unknown rule mode")

// Rule maps a cell's neighbor sum and coordinates to the event for that cell.
// Implementations must be pure: they are evaluated from many scan tasks at
// once without synchronization.
type Rule interface {
	Evaluate(sum float32, x, y int) Event
}

// RuleFunc adapts a plain function to the Rule interface.
type RuleFunc func(sum float32, x, y int) Event

// Evaluate calls f(sum, x, y).
func (f RuleFunc) Evaluate(sum float32, x, y int) Event { return f(sum, x, y) }

// Ladder is the five-tier threshold policy. Every tier compares the neighbor
// sum against its threshold with a strict greater-than, checked from the top:
//
//	sum > High            HighOp(HighValue)
//	sum > Mid             Mul(MidFactor * (y mod MidYMod))
//	sum > Narrow          Mul(NarrowFactor * ((x mod NarrowXMod) + (y mod NarrowYMod)))
//	sum > Low             Mul(LowFactor * (x mod LowXMod))
//	otherwise             Add(BaseDelta * (1 + (x mod ParityMod)))
//
// A modulus of zero or less contributes zero.
type Ladder struct {
	High   float32
	Mid    float32
	Narrow float32
	Low    float32

	HighOp    Op
	HighValue float32

	MidFactor float32
	MidYMod   int

	NarrowFactor float32
	NarrowXMod   int
	NarrowYMod   int

	LowFactor float32
	LowXMod   int

	BaseDelta float32
	ParityMod int
}

// Evaluate implements Rule.
func (l Ladder) Evaluate(sum float32, x, y int) Event {
	switch {
	case sum > l.High:
		return Event{Op: l.HighOp, X: x, Y: y, Value: l.HighValue}
	case sum > l.Mid:
		return Mul(x, y, l.MidFactor*float32(mod(y, l.MidYMod)))
	case sum > l.Narrow:
		return Mul(x, y, l.NarrowFactor*float32(mod(x, l.NarrowXMod)+mod(y, l.NarrowYMod)))
	case sum > l.Low:
		return Mul(x, y, l.LowFactor*float32(mod(x, l.LowXMod)))
	default:
		return Add(x, y, l.BaseDelta*float32(1+mod(x, l.ParityMod)))
	}
}

func mod(v, k int) int {
	if k <= 0 {
		return 0
	}
	return v % k
}

// baseLadder carries the thresholds and factors shared by every channel.
func baseLadder() Ladder {
	return Ladder{
		High:         5.0,
		Mid:          4.0,
		Narrow:       3.9,
		Low:          3.0,
		HighOp:       OpAdd,
		HighValue:    -0.01,
		MidFactor:    0.9,
		NarrowFactor: 1.1,
		LowFactor:    0.9,
		BaseDelta:    0.01,
		ParityMod:    2,
	}
}

// RedLadder returns the default red channel policy.
func RedLadder() Ladder {
	l := baseLadder()
	l.MidYMod = 8
	l.NarrowXMod, l.NarrowYMod = 4, 4
	l.LowXMod = 8
	return l
}

// GreenLadder returns the default green channel policy.
func GreenLadder() Ladder {
	l := baseLadder()
	l.MidYMod = 8
	l.NarrowXMod, l.NarrowYMod = 8, 8
	l.LowXMod = 8
	return l
}

// BlueLadder returns the default blue channel policy.
func BlueLadder() Ladder {
	l := baseLadder()
	l.MidYMod = 4
	l.NarrowXMod, l.NarrowYMod = 8, 8
	l.LowXMod = 4
	return l
}

// ConstantRule emits the same operation and value for every cell regardless
// of the neighbor sum.
type ConstantRule struct {
	Op    Op
	Value float32
}

// Evaluate implements Rule.
func (c ConstantRule) Evaluate(_ float32, x, y int) Event {
	return Event{Op: c.Op, X: x, Y: y, Value: c.Value}
}

// RuleMode selects which policy drives a channel.
type RuleMode string

const (
	// RuleModeLadder runs the channel's threshold ladder.
	RuleModeLadder RuleMode = "ladder"
	// RuleModeConstant emits the channel's constant event for every cell.
	RuleModeConstant RuleMode = "constant"
)

// ParseRuleMode resolves a rule mode name.
func ParseRuleMode(s string) (RuleMode, error) {
	switch RuleMode(strings.ToLower(strings.TrimSpace(s))) {
	case RuleModeLadder:
		return RuleModeLadder, nil
	case RuleModeConstant:
		return RuleModeConstant, nil
	default:
		return "", fmt.Errorf("%w %q", ErrUnknownRuleMode, s)
	}
}

// ParseOp resolves an op name as printed by Op.String.
func ParseOp(s string) (Op, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "set":
		return OpSet, nil
	case "add":
		return OpAdd, nil
	case "mul":
		return OpMul, nil
	default:
		return 0, fmt.Errorf("unknown op %q", s)
	}
}
