package qcircuit

import (
	"context"
	"fmt"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/theapemachine/errnie"
	"golang.org/x/sync/errgroup"
)

// Counts maps a classical register bit string (c0 rightmost) to its frequency.
type Counts map[string]int

// Keys returns the observed bit strings in ascending order.
func (c Counts) Keys() []string {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Total is the number of shots counted.
func (c Counts) Total() int {
	total := 0
	for _, n := range c {
		total += n
	}
	return total
}

// SampleResult aggregates the classical registers of many independent runs.
type SampleResult struct {
	ID       uuid.UUID
	Circuit  string
	Shots    int
	Counts   Counts
	Duration time.Duration
}

/*
Sampler runs the same circuit many times ("shots"), each on its own fresh
register and its own random source, and histograms the classical register.

Shots are spread over a fixed number of worker goroutines. A single shot is
still a strictly sequential fold; the parallelism is only between shots, which
share nothing but the Metrics. With a non-zero Seed, shot n always draws from
the same source, so the counts do not depend on scheduling.
*/
type Sampler struct {
	config  *Config
	metrics *Metrics
	logger  *log.Logger
}

type SamplerOption func(*Sampler)

func WithSamplerMetrics(m *Metrics) SamplerOption {
	return func(s *Sampler) {
		s.metrics = m
	}
}

func WithSamplerLogger(l *log.Logger) SamplerOption {
	return func(s *Sampler) {
		s.logger = l
	}
}

func NewSampler(config *Config, opts ...SamplerOption) *Sampler {
	if config == nil {
		config = NewConfig()
	}

	errnie.Info("NewSampler - shots %v, workers %v, seed %v", config.Shots, config.Workers, config.Seed)

	s := &Sampler{
		config:  config,
		metrics: NewMetrics(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.logger == nil {
		s.logger = NewLogger(os.Stderr, config.Level())
	}

	return s
}

func (s *Sampler) Metrics() *Metrics { return s.metrics }

// Sample runs c for the configured number of shots.
func (s *Sampler) Sample(ctx context.Context, c *Circuit) (*SampleResult, error) {
	return s.SampleN(ctx, c, s.config.Shots)
}

// SampleN runs c for shots shots.
func (s *Sampler) SampleN(ctx context.Context, c *Circuit, shots int) (*SampleResult, error) {
	if shots < 1 {
		return nil, fmt.Errorf("shots must be at least 1, got %d", shots)
	}

	result := &SampleResult{
		ID:      uuid.New(),
		Circuit: c.Name,
		Shots:   shots,
		Counts:  make(Counts),
	}
	start := time.Now()

	workers := s.config.Workers
	if workers < 1 {
		workers = 1
	}
	if workers > shots {
		workers = shots
	}

	g, ctx := errgroup.WithContext(ctx)
	jobs := make(chan int, workers)

	g.Go(func() error {
		defer close(jobs)
		for shot := 0; shot < shots; shot++ {
			select {
			case jobs <- shot:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	var mu sync.Mutex
	for i := 0; i < workers; i++ {
		g.Go(func() error {
			local, err := s.work(ctx, c, jobs)

			mu.Lock()
			for k, n := range local {
				result.Counts[k] += n
			}
			mu.Unlock()

			return err
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	s.logger.Debug(
		"sampling finished",
		"sample", result.ID,
		"circuit", c.Name,
		"shots", shots,
		"outcomes", len(result.Counts),
		"duration", result.Duration,
	)

	return result, nil
}

func (s *Sampler) work(ctx context.Context, c *Circuit, jobs <-chan int) (Counts, error) {
	local := make(Counts)

	for {
		select {
		case <-ctx.Done():
			return local, ctx.Err()
		case shot, ok := <-jobs:
			if !ok {
				return local, nil
			}

			run, err := s.runShot(c, shot)
			if err != nil {
				return local, fmt.Errorf("shot %d: %w", shot, err)
			}
			local[run.State.Bits()]++
			s.metrics.recordShot()
		}
	}
}

func (s *Sampler) runShot(c *Circuit, shot int) (*Run, error) {
	var src Source = RuntimeSource{}
	if s.config.Seed != 0 {
		src = NewShotSource(s.config.Seed, shot)
	}

	engine := NewEngine(
		WithSource(src),
		WithMetrics(s.metrics),
		WithLogger(s.logger),
	)
	return NewRunner(engine).Run(c)
}
