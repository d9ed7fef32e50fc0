package main

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelayBounds(t *testing.T) {
	setupTest()
	cfg := SimulationConfig{
		Seed:                 42,
		UserLatencyMinMs:     50,
		UserLatencyMaxMs:     300,
		DBInsertLatencyMinMs: 10,
		DBInsertLatencyMaxMs: 100,
		SlowLatencyMinMs:     1000,
		SlowLatencyMaxMs:     3000,
	}
	s := newSimulator(cfg)

	tests := []struct {
		name  string
		class endpointClass
		min   time.Duration
		max   time.Duration
	}{
		{"normal", classNormal, 50 * time.Millisecond, 300 * time.Millisecond},
		{"db insert", classDBInsert, 10 * time.Millisecond, 100 * time.Millisecond},
		{"slow", classSlow, 1000 * time.Millisecond, 3000 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 1000; i++ {
				d := s.delay(tt.class)
				require.GreaterOrEqual(t, d, tt.min)
				require.LessOrEqual(t, d, tt.max)
			}
		})
	}
}

func TestOutcomeStatistics(t *testing.T) {
	setupTest()
	cfg := testSimulation()
	cfg.Seed = 7
	s := newSimulator(cfg)

	// p=0.1 over 1000 trials: expect 100 within 3 sigma (~28.5)
	const trials = 1000
	const p = 0.1
	hits := 0
	for i := 0; i < trials; i++ {
		if s.outcome(p) {
			hits++
		}
	}
	assert.InDelta(t, trials*p, hits, 29, "observed rate outside 3 sigma of configured probability")
}

func TestOutcomeExtremes(t *testing.T) {
	setupTest()
	s := newSimulator(testSimulation())
	for i := 0; i < 100; i++ {
		assert.False(t, s.outcome(0))
		assert.True(t, s.outcome(1))
	}
}

func TestDeterministicWithSeed(t *testing.T) {
	setupTest()
	cfg := testSimulation()
	cfg.Seed = 99

	a := newSimulator(cfg)
	b := newSimulator(cfg)
	for i := 0; i < 100; i++ {
		require.Equal(t, a.delay(classNormal), b.delay(classNormal))
		require.Equal(t, a.outcome(0.5), b.outcome(0.5))
		require.Equal(t, a.intBetween(1, 10), b.intBetween(1, 10))
		require.Equal(t, a.floatBetween(10, 1000), b.floatBetween(10, 1000))
	}
}

func TestIntBetweenInclusive(t *testing.T) {
	setupTest()
	s := newSimulator(testSimulation())
	seen := map[int]bool{}
	for i := 0; i < 1000; i++ {
		n := s.intBetween(1, 5)
		require.GreaterOrEqual(t, n, 1)
		require.LessOrEqual(t, n, 5)
		seen[n] = true
	}
	assert.Len(t, seen, 5, "all values in range should occur over 1000 draws")
}

func TestFloatBetweenBounds(t *testing.T) {
	setupTest()
	s := newSimulator(testSimulation())
	for i := 0; i < 1000; i++ {
		v := s.floatBetween(10, 1000)
		require.GreaterOrEqual(t, v, 10.0)
		require.Less(t, v, 1000.0)
	}
}

func TestHoldCompletes(t *testing.T) {
	start := time.Now()
	err := hold(context.Background(), 20*time.Millisecond)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}

func TestHoldCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()
	start := time.Now()
	err := hold(ctx, 5*time.Second)
	require.Error(t, err)
	assert.Less(t, time.Since(start), time.Second, "hold should return promptly on cancellation")
}
