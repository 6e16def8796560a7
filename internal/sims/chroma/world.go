package chroma

import (
	"errors"
	"fmt"
	"runtime"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"chroma-ca/internal/core"
)

var (
	// ErrScanFault reports a scan task that failed to complete.
	ErrScanFault = errors.New("scan fault")
	// ErrApplyFault reports an event that could not be committed.
	ErrApplyFault = errors.New("apply fault")
	// ErrQueueNotEmpty reports a scan started while events were still pending.
	ErrQueueNotEmpty = errors.New("event queue not empty")
)

// Color identifies the channel a World drives.
type Color uint8

const (
	Red Color = iota
	Green
	Blue
)

// Colors lists every channel in compositing order.
var Colors = [...]Color{Red, Green, Blue}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Green:
		return "green"
	case Blue:
		return "blue"
	default:
		return fmt.Sprintf("color(%d)", uint8(c))
	}
}

// Phase is the tick state of a World.
type Phase int32

const (
	PhaseIdle Phase = iota
	PhaseScanning
	PhaseApplying
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseScanning:
		return "scanning"
	case PhaseApplying:
		return "applying"
	default:
		return fmt.Sprintf("phase(%d)", int32(p))
	}
}

// TickReport summarises one completed tick of a World.
type TickReport struct {
	Color    Color
	Events   int
	Scan     time.Duration
	Apply    time.Duration
	Duration time.Duration
}

// World owns one channel: its grid, its event queue and its rule.
//
// mu gates the two phases. Scan holds the read lock while row tasks read the
// grid; Apply holds the write lock while it commits events. Readers such as
// At never observe a partially applied tick.
type World struct {
	color   Color
	rule    Rule
	workers int

	grid  *core.FloatGrid
	queue *EventQueue

	mu     sync.RWMutex
	tickMu sync.Mutex
	phase  atomic.Int32
}

// NewWorld returns a zero-filled World of the given size driven by rule.
// workers bounds the number of concurrent row tasks; zero or less uses
// GOMAXPROCS.
func NewWorld(color Color, w, h int, rule Rule, workers int) (*World, error) {
	if rule == nil {
		return nil, fmt.Errorf("%s world: nil rule", color)
	}
	grid, err := core.NewFloatGrid(w, h)
	if err != nil {
		return nil, fmt.Errorf("%s world: %w", color, err)
	}
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	return &World{
		color:   color,
		rule:    rule,
		workers: workers,
		grid:    grid,
		queue:   NewEventQueue(w * h),
	}, nil
}

// Color returns the channel this World drives.
func (w *World) Color() Color { return w.color }

// Size reports the grid dimensions.
func (w *World) Size() core.Size { return w.grid.Size() }

// Phase reports the current tick state.
func (w *World) Phase() Phase { return Phase(w.phase.Load()) }

// Queue exposes the pending event queue.
func (w *World) Queue() *EventQueue { return w.queue }

// SetRule swaps the rule used by subsequent ticks.
func (w *World) SetRule(rule Rule) {
	if rule == nil {
		return
	}
	w.tickMu.Lock()
	w.rule = rule
	w.tickMu.Unlock()
}

// SetWorkers changes the row task limit used by subsequent ticks.
func (w *World) SetWorkers(n int) {
	if n <= 0 {
		n = runtime.GOMAXPROCS(0)
	}
	w.tickMu.Lock()
	w.workers = n
	w.tickMu.Unlock()
}

// At returns the committed value at (x, y).
func (w *World) At(x, y int) (float32, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.grid.At(x, y)
}

// Set assigns a value outside of a tick. It waits for any running tick.
func (w *World) Set(x, y int, v float32) error {
	w.tickMu.Lock()
	defer w.tickMu.Unlock()
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.grid.Set(x, y, v)
}

// Snapshot copies the committed grid values in row-major order.
func (w *World) Snapshot() []float32 {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return append([]float32(nil), w.grid.Cells()...)
}

// Load replaces the grid contents with cells, which must match the grid size.
func (w *World) Load(cells []float32) error {
	w.tickMu.Lock()
	defer w.tickMu.Unlock()
	w.mu.Lock()
	defer w.mu.Unlock()
	if len(cells) != len(w.grid.Cells()) {
		return fmt.Errorf("%s world: load %d cells into %dx%d grid: %w", w.color, len(cells), w.grid.W, w.grid.H, ErrDimensionMismatch)
	}
	copy(w.grid.Cells(), cells)
	return nil
}

// reset clears the grid and any pending events, then lets seed fill it.
func (w *World) reset(seed func([]float32)) {
	w.tickMu.Lock()
	defer w.tickMu.Unlock()
	w.mu.Lock()
	defer w.mu.Unlock()
	w.queue.Drain()
	w.grid.Clear()
	if seed != nil {
		seed(w.grid.Cells())
	}
}

// Tick runs one full scan then apply cycle. Ticks of the same World never
// overlap. A failed scan leaves the grid untouched; a failed apply leaves it
// partially updated and the World should not be ticked again.
func (w *World) Tick() (TickReport, error) {
	w.tickMu.Lock()
	defer w.tickMu.Unlock()

	report := TickReport{Color: w.color}
	start := time.Now()
	if err := w.scan(); err != nil {
		return report, err
	}
	report.Scan = time.Since(start)

	applyStart := time.Now()
	n, err := w.apply()
	report.Events = n
	report.Apply = time.Since(applyStart)
	report.Duration = time.Since(start)
	return report, err
}

// Scan runs only the scan phase, leaving the produced events queued. The
// grid is not modified.
func (w *World) Scan() error {
	w.tickMu.Lock()
	defer w.tickMu.Unlock()
	return w.scan()
}

// Apply drains the queue into the grid and reports how many events were
// committed.
func (w *World) Apply() (int, error) {
	w.tickMu.Lock()
	defer w.tickMu.Unlock()
	return w.apply()
}

func (w *World) scan() error {
	if n := w.queue.Len(); n != 0 {
		return fmt.Errorf("%s world: %w: %d pending", w.color, ErrQueueNotEmpty, n)
	}

	w.mu.RLock()
	defer w.mu.RUnlock()
	w.phase.Store(int32(PhaseScanning))
	defer w.phase.Store(int32(PhaseIdle))

	var g errgroup.Group
	g.SetLimit(w.workers)
	for y := 0; y < w.grid.H; y++ {
		g.Go(func() error { return w.scanRow(y) })
	}
	if err := g.Wait(); err != nil {
		// Partial scans are never applied.
		w.queue.Drain()
		return err
	}
	return nil
}

func (w *World) scanRow(y int) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%s world: row %d: %w: %v", w.color, y, ErrScanFault, r)
		}
	}()
	events := make([]Event, 0, w.grid.W)
	for x := 0; x < w.grid.W; x++ {
		sum := w.grid.NeighborSum(x, y, 1)
		events = append(events, w.rule.Evaluate(sum, x, y))
	}
	w.queue.PushBatch(events)
	return nil
}

func (w *World) apply() (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.phase.Store(int32(PhaseApplying))
	defer w.phase.Store(int32(PhaseIdle))

	events := w.queue.Drain()
	for i, ev := range events {
		if err := ev.Apply(w.grid); err != nil {
			return i, fmt.Errorf("%s world: event %d %s: %w: %w", w.color, i, ev, ErrApplyFault, err)
		}
	}
	return len(events), nil
}
