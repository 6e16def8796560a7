package chroma

import (
	"fmt"

	"chroma-ca/internal/core"
)

// Op enumerates the mutations an Event can carry.
type Op uint8

const (
	OpSet Op = iota
	OpAdd
	OpMul
)

func (o Op) String() string {
	switch o {
	case OpSet:
		return "set"
	case OpAdd:
		return "add"
	case OpMul:
		return "mul"
	default:
		return fmt.Sprintf("op(%d)", uint8(o))
	}
}

// Event is one pending mutation of one cell produced during a scan.
type Event struct {
	Op    Op
	X, Y  int
	Value float32
}

// Set returns an event assigning v to (x, y).
func Set(x, y int, v float32) Event { return Event{Op: OpSet, X: x, Y: y, Value: v} }

// Add returns an event adding delta to (x, y).
func Add(x, y int, delta float32) Event { return Event{Op: OpAdd, X: x, Y: y, Value: delta} }

// Mul returns an event multiplying (x, y) by factor.
func Mul(x, y int, factor float32) Event { return Event{Op: OpMul, X: x, Y: y, Value: factor} }

// Apply commits the event to g.
func (e Event) Apply(g *core.FloatGrid) error {
	switch e.Op {
	case OpSet:
		return g.Set(e.X, e.Y, e.Value)
	case OpAdd:
		return g.Add(e.X, e.Y, e.Value)
	case OpMul:
		return g.Mul(e.X, e.Y, e.Value)
	default:
		return fmt.Errorf("unknown event %s", e.Op)
	}
}

func (e Event) String() string {
	return fmt.Sprintf("%s(%d,%d,%g)", e.Op, e.X, e.Y, e.Value)
}
