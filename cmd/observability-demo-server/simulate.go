package main

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// endpointClass selects which configured latency range a delay is drawn from.
type endpointClass int

const (
	classNormal endpointClass = iota
	classSlow
	classDBInsert
)

// simulator draws randomized delays and outcomes from an injected PRNG so
// tests can seed determinism. The mutex serializes access because handlers
// run concurrently and rand.Rand is not safe for concurrent use.
type simulator struct {
	mu  sync.Mutex
	rng *rand.Rand
	cfg SimulationConfig
}

// newSimulator seeds the PRNG from cfg.Seed, or the clock when the seed is 0.
func newSimulator(cfg SimulationConfig) *simulator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &simulator{
		rng: rand.New(rand.NewSource(seed)),
		cfg: cfg,
	}
}

// delay draws a uniform duration from the configured [min,max] for the class.
func (s *simulator) delay(class endpointClass) time.Duration {
	var minMs, maxMs int
	switch class {
	case classSlow:
		minMs, maxMs = s.cfg.SlowLatencyMinMs, s.cfg.SlowLatencyMaxMs
	case classDBInsert:
		minMs, maxMs = s.cfg.DBInsertLatencyMinMs, s.cfg.DBInsertLatencyMaxMs
	default:
		minMs, maxMs = s.cfg.UserLatencyMinMs, s.cfg.UserLatencyMaxMs
	}
	if maxMs < minMs {
		maxMs = minMs
	}
	s.mu.Lock()
	ms := minMs + s.rng.Intn(maxMs-minMs+1)
	s.mu.Unlock()
	return time.Duration(ms) * time.Millisecond
}

// outcome returns true with probability p, independently per call.
func (s *simulator) outcome(p float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rng.Float64() < p
}

// intBetween returns a uniform int in [lo,hi].
func (s *simulator) intBetween(lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Intn(hi-lo+1)
}

// floatBetween returns a uniform float in [lo,hi).
func (s *simulator) floatBetween(lo, hi float64) float64 {
	if hi < lo {
		hi = lo
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return lo + s.rng.Float64()*(hi-lo)
}

// hold sleeps for d without busy-waiting, returning early when ctx is
// cancelled (client disconnect). Metric mutations already applied by the
// caller are never rolled back.
func hold(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
