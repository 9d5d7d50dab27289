package qcircuit

import (
	"math/rand/v2"
	"sync"
)

/*
Source produces uniform samples in [0, 1) for measurement. A Source is owned
by a single engine and is not expected to be safe for concurrent use.
*/
type Source interface {
	Float64() float64
}

// NewSource returns a deterministic PCG-backed source for seed.
func NewSource(seed uint64) Source {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewShotSource derives an independent, reproducible source for one shot.
func NewShotSource(seed uint64, shot int) Source {
	return rand.New(rand.NewPCG(seed, uint64(shot)))
}

// RuntimeSource draws from the runtime-seeded global generator.
type RuntimeSource struct{}

func (RuntimeSource) Float64() float64 { return rand.Float64() }

/*
ScriptedSource replays a fixed list of samples, then cycles back to the
start. It exists for tests that need to force a particular measurement
outcome.
*/
type ScriptedSource struct {
	mu      sync.Mutex
	samples []float64
	next    int
}

func NewScriptedSource(samples ...float64) *ScriptedSource {
	if len(samples) == 0 {
		samples = []float64{0}
	}
	return &ScriptedSource{samples: samples}
}

func (s *ScriptedSource) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	v := s.samples[s.next%len(s.samples)]
	s.next++
	return v
}

// Draws returns how many samples have been taken.
func (s *ScriptedSource) Draws() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.next
}
