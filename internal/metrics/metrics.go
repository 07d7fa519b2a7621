// Package metrics provides lightweight counters for the binding layer.
//
// Features:
//   - Counters for native calls, native errors, handle lifecycle
//   - Gauge for currently open handles
//   - Thread-safe operations
//   - Snapshot export for diagnostics
package metrics

import (
	"sort"
	"sync/atomic"
)

// Counter is a monotonically increasing counter.
type Counter struct {
	name  string
	value atomic.Uint64
}

// NewCounter creates a new Counter.
func NewCounter(name string) *Counter {
	return &Counter{name: name}
}

// Inc increments the counter by 1.
func (c *Counter) Inc() {
	c.value.Add(1)
}

// Add adds the given value to the counter.
func (c *Counter) Add(v uint64) {
	c.value.Add(v)
}

// Value returns the current value.
func (c *Counter) Value() uint64 {
	return c.value.Load()
}

// Name returns the metric name.
func (c *Counter) Name() string {
	return c.name
}

// Gauge is a value that can go up and down.
type Gauge struct {
	name  string
	value atomic.Int64
}

// NewGauge creates a new Gauge.
func NewGauge(name string) *Gauge {
	return &Gauge{name: name}
}

// Inc increments the gauge by 1.
func (g *Gauge) Inc() {
	g.value.Add(1)
}

// Dec decrements the gauge by 1.
func (g *Gauge) Dec() {
	g.value.Add(-1)
}

// Value returns the current value.
func (g *Gauge) Value() int64 {
	return g.value.Load()
}

// Name returns the metric name.
func (g *Gauge) Name() string {
	return g.name
}

// Registry holds the binding's metrics. Each engine instance owns one
// registry, so tests never share counter state.
type Registry struct {
	// NativeCalls counts every dispatched native call.
	NativeCalls *Counter
	// NativeErrors counts calls that returned a negative result,
	// excluding the benign iteration-complete sentinel.
	NativeErrors *Counter
	// HandlesOpened counts native handles wrapped since start.
	HandlesOpened *Counter
	// HandlesClosed counts handles released since start.
	HandlesClosed *Counter
	// OpenHandles tracks handles currently alive.
	OpenHandles *Gauge
}

// NewRegistry creates a registry with all metrics at zero.
func NewRegistry() *Registry {
	return &Registry{
		NativeCalls:   NewCounter("git2_native_calls_total"),
		NativeErrors:  NewCounter("git2_native_errors_total"),
		HandlesOpened: NewCounter("git2_handles_opened_total"),
		HandlesClosed: NewCounter("git2_handles_closed_total"),
		OpenHandles:   NewGauge("git2_open_handles"),
	}
}

// Snapshot returns the current values keyed by metric name.
func (r *Registry) Snapshot() map[string]int64 {
	return map[string]int64{
		r.NativeCalls.Name():   int64(r.NativeCalls.Value()),
		r.NativeErrors.Name():  int64(r.NativeErrors.Value()),
		r.HandlesOpened.Name(): int64(r.HandlesOpened.Value()),
		r.HandlesClosed.Name(): int64(r.HandlesClosed.Value()),
		r.OpenHandles.Name():   r.OpenHandles.Value(),
	}
}

// Names returns the metric names in sorted order.
func (r *Registry) Names() []string {
	snap := r.Snapshot()
	names := make([]string, 0, len(snap))
	for n := range snap {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
