package domain

import "sync"

// Gauge values the orchestrator moves through during a run
const (
	GaugeIdle     = 0
	GaugeSelect   = 25
	GaugeDownload = 50
	GaugeUpload   = 75
	GaugeComplete = 100
)

// GaugeSnapshot is a consistent read of the gauge
type GaugeSnapshot struct {
	Value   int
	Running bool
}

// Gauge is the progress state shared between the orchestrator and the
// tone feedback loop. The orchestrator is the only writer.
type Gauge struct {
	mu      sync.Mutex
	value   int
	running bool
	done    chan struct{}
	closed  bool
}

// NewGauge returns an idle gauge
func NewGauge() *Gauge {
	done := make(chan struct{})
	close(done)
	return &Gauge{done: done, closed: true}
}

// Begin admits a new run. It returns false if a run is already active,
// in which case the gauge is left untouched.
func (g *Gauge) Begin() bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.running {
		return false
	}
	g.running = true
	g.value = GaugeSelect
	g.done = make(chan struct{})
	g.closed = false
	return true
}

// Set moves the gauge, clamped to [0,100]
func (g *Gauge) Set(value int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = clampGauge(value)
}

// Complete sets the gauge to 100 and signals completion to readers.
// Running stays true until Release.
func (g *Gauge) Complete() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = GaugeComplete
	g.signal()
}

// Release clears the running flag
func (g *Gauge) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.running = false
}

// Reset returns the gauge to idle without passing through 100
func (g *Gauge) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.value = GaugeIdle
	g.running = false
	g.signal()
}

// Value returns the current gauge value
func (g *Gauge) Value() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.value
}

// Running reports whether a run is active
func (g *Gauge) Running() bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.running
}

// Snapshot returns value and running flag read together
func (g *Gauge) Snapshot() GaugeSnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()
	return GaugeSnapshot{Value: g.value, Running: g.running}
}

// Done returns a channel closed when the current run completes or resets
func (g *Gauge) Done() <-chan struct{} {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.done
}

// signal closes the done channel once per run. Caller holds mu.
func (g *Gauge) signal() {
	if !g.closed {
		close(g.done)
		g.closed = true
	}
}

func clampGauge(v int) int {
	if v < GaugeIdle {
		return GaugeIdle
	}
	if v > GaugeComplete {
		return GaugeComplete
	}
	return v
}
