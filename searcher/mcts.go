package searcher

import (
	"errors"
	"fmt"
	"time"

	"tickets/experiments/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
	"golang.org/x/sync/errgroup"
)

const DefaultSimulationTimeout = time.Second

var ErrDivergentRoots = errors.New("parallel trees expanded different root successors")

type Option func(mcts *MCTS)

type MCTS struct {
	goroutines        int
	duration          time.Duration
	simulationTimeout time.Duration
	seed              uint64
	metrics           metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithSimulationTimeout(timeout time.Duration) Option {
	return func(m *MCTS) {
		if timeout > 0 {
			m.simulationTimeout = timeout
		}
	}
}

// WithGoroutines searches that many independent trees and merges their root
// statistics.
func WithGoroutines(goroutines int) Option {
	return func(m *MCTS) {
		if goroutines > 0 {
			m.goroutines = goroutines
		}
	}
}

// WithSeed makes tree policies reproducible. Tree i uses seed+i.
func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines:        1,
		simulationTimeout: DefaultSimulationTimeout,
		metrics:           metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	return m
}

// Search runs a single tree search from initial for duration and returns the
// state after the suggested move.
func Search(initial State, duration, simulationTimeout time.Duration) (State, error) {
	if duration <= 0 || simulationTimeout <= 0 {
		return nil, ErrInvalidBudget
	}
	m := NewMCTS(WithDuration(duration), WithSimulationTimeout(simulationTimeout))
	suggested, _, err := m.Search(initial)
	return suggested, err
}

// Search returns the most visited successor of state.
func (m *MCTS) Search(state State) (State, metrics.SearchMetric, error) {
	candidates, metric, err := m.Simulate(state)
	if err != nil {
		return nil, metric, err
	}

	best := candidates[robust(candidates)]
	log.Info().
		Int("episodes", metric.Episodes).
		Int("timeouts", metric.Timeouts).
		Float64("seconds", metric.Duration.Seconds()).
		Msgf("expected value = %.1f%%", best.expectedValue())

	return best.State, metric, nil
}

// Simulate builds the search tree(s) and returns root successor statistics in
// the order the root state produced them.
func (m *MCTS) Simulate(state State) ([]Candidate, metrics.SearchMetric, error) {
	if m.duration <= 0 || m.simulationTimeout <= 0 {
		return nil, metrics.SearchMetric{}, ErrInvalidBudget
	}

	m.metrics.Start(m.goroutines, m.duration, m.simulationTimeout)

	var candidates []Candidate
	var err error
	if m.goroutines <= 1 {
		candidates, err = newTree(state, m.duration, m.simulationTimeout, m.newRand(0), m.metrics).run()
	} else {
		candidates, err = m.parallel(state)
	}

	metric := m.metrics.Complete()
	return candidates, metric, err
}

func (m *MCTS) parallel(state State) ([]Candidate, error) {
	results := make([][]Candidate, m.goroutines)

	var g errgroup.Group
	for i := 0; i < m.goroutines; i++ {
		g.Go(func() error {
			t := newTree(state, m.duration, m.simulationTimeout, m.newRand(i), m.metrics)
			candidates, err := t.run()
			if err != nil {
				return err
			}
			results[i] = candidates
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return merge(results)
}

// merge sums root statistics of independent trees index by index.
func merge(results [][]Candidate) ([]Candidate, error) {
	merged := make([]Candidate, len(results[0]))
	copy(merged, results[0])

	for i, candidates := range results[1:] {
		if len(candidates) != len(merged) {
			return nil, fmt.Errorf("%w: tree %d has %d successors, tree 0 has %d",
				ErrDivergentRoots, i+1, len(candidates), len(merged))
		}
		for j, candidate := range candidates {
			merged[j].Visits += candidate.Visits
			merged[j].Wins += candidate.Wins
		}
	}
	return merged, nil
}

func (m *MCTS) newRand(i int) *rand.Rand {
	seed := m.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewSource(seed + uint64(i)))
}
