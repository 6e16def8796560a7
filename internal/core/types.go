package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Sample holds the per-channel values of one cell.
type Sample struct {
	R, G, B float32
}

// Sim defines the minimal contract a multi-channel automaton must implement.
// Step returns an error when a tick could not be completed; drivers treat that
// as fatal.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step() error
	Sample(x, y int) (Sample, error)
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) (Sim, error)

var sims = map[string]Factory{}

// Register adds a simulation factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available simulation factories.
func Sims() map[string]Factory {
	return sims
}
