package chroma

import (
	"fmt"
	"math"
	"time"
)

// ChannelStats summarises the raw values of one channel.
type ChannelStats struct {
	Color   Color
	Min     float32
	Max     float32
	Mean    float64
	NonZero int
	// NaN counts cells whose value is not a number.
	NaN int
}

// Stats computes per-channel statistics over the committed grids.
func (s *Simulation) Stats() [3]ChannelStats {
	s.frame.RLock()
	defer s.frame.RUnlock()
	var out [3]ChannelStats
	for _, c := range Colors {
		out[c] = s.worlds[c].stats()
	}
	return out
}

func (w *World) stats() ChannelStats {
	w.mu.RLock()
	defer w.mu.RUnlock()
	st := ChannelStats{Color: w.color}
	first := true
	var sum float64
	counted := 0
	for _, v := range w.grid.Cells() {
		if math.IsNaN(float64(v)) {
			st.NaN++
			continue
		}
		if v != 0 {
			st.NonZero++
		}
		if first || v < st.Min {
			st.Min = v
		}
		if first || v > st.Max {
			st.Max = v
		}
		first = false
		sum += float64(v)
		counted++
	}
	if counted > 0 {
		st.Mean = sum / float64(counted)
	}
	return st
}

// StatusLines returns short status text for the HUD.
func (s *Simulation) StatusLines() []string {
	s.mu.Lock()
	gen := s.generation
	clamp := s.cfg.Clamp
	reports := s.lastTick
	s.mu.Unlock()

	var scan, apply time.Duration
	events := 0
	for _, r := range reports {
		scan += r.Scan
		apply += r.Apply
		events += r.Events
	}
	return []string{
		fmt.Sprintf("gen %d  clamp %s", gen, clamp),
		fmt.Sprintf("scan %s", scan.Round(time.Microsecond)),
		fmt.Sprintf("apply %s", apply.Round(time.Microsecond)),
		fmt.Sprintf("events %d", events),
	}
}
