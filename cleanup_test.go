package git2

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCleanupRunsLIFO(t *testing.T) {
	var order []string
	var cu Cleanup
	cu.Add(func() { order = append(order, "first") })
	cu.Add(func() { order = append(order, "second") })
	cu.Add(func() { order = append(order, "third") })

	cu.Clean()
	assert.Equal(t, []string{"third", "second", "first"}, order)
}

func TestCleanupCleanIsIdempotent(t *testing.T) {
	runs := 0
	var cu Cleanup
	cu.Add(func() { runs++ })

	cu.Clean()
	cu.Clean()
	assert.Equal(t, 1, runs)
}

func TestCleanupReleaseCancelsSteps(t *testing.T) {
	runs := 0
	var cu Cleanup
	cu.Add(func() { runs++ })
	cu.Add(func() { runs++ })

	cu.Release()
	cu.Clean()
	assert.Zero(t, runs, "released steps never run")
}

func TestCleanupEmptyCleanIsNoop(t *testing.T) {
	var cu Cleanup
	assert.NotPanics(t, func() { cu.Clean() })
}
