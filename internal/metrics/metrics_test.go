package metrics

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCounter(t *testing.T) {
	c := NewCounter("calls")
	assert.Equal(t, uint64(0), c.Value())
	c.Inc()
	c.Add(4)
	assert.Equal(t, uint64(5), c.Value())
	assert.Equal(t, "calls", c.Name())
}

func TestGauge(t *testing.T) {
	g := NewGauge("open")
	g.Inc()
	g.Inc()
	g.Dec()
	assert.Equal(t, int64(1), g.Value())
}

func TestCounterConcurrent(t *testing.T) {
	c := NewCounter("calls")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				c.Inc()
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, uint64(8000), c.Value())
}

func TestRegistrySnapshot(t *testing.T) {
	r := NewRegistry()
	r.NativeCalls.Add(3)
	r.HandlesOpened.Inc()
	r.OpenHandles.Inc()

	snap := r.Snapshot()
	assert.Equal(t, int64(3), snap["git2_native_calls_total"])
	assert.Equal(t, int64(1), snap["git2_handles_opened_total"])
	assert.Equal(t, int64(1), snap["git2_open_handles"])
	assert.Equal(t, int64(0), snap["git2_native_errors_total"])

	assert.Len(t, r.Names(), 5)
	assert.Equal(t, "git2_handles_closed_total", r.Names()[0])
}
