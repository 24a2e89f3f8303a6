package metrics

import (
	"sync/atomic"
	"time"
)

type SearchMetric struct {
	Goroutines        int
	Budget            time.Duration
	SimulationTimeout time.Duration
	Duration          time.Duration
	Episodes          int
	FullPlayouts      int
	Timeouts          int
}

type MoveMetric struct {
	Step int
	Seat int
	SearchMetric
}

type GameMetric struct {
	Seats      int
	Winners    []int // Empty if the turn cap was reached
	StartTime  time.Time
	EndTime    time.Time
	Duration   time.Duration
	TotalMoves int
}

// Collector accumulates statistics of one search. Counters may be updated
// from several goroutines.
type Collector interface {
	Start(goroutines int, budget, simulationTimeout time.Duration)
	AddFullPlayout()
	AddTimeout()
	AddEpisode()
	Complete() SearchMetric
}

type collector struct {
	goroutines        int
	budget            time.Duration
	simulationTimeout time.Duration
	startTime         time.Time
	episodes          atomic.Int32
	fullPlayouts      atomic.Int32
	timeouts          atomic.Int32
}

func NewCollector() Collector {
	return &collector{}
}

func (m *collector) Start(goroutines int, budget, simulationTimeout time.Duration) {
	m.startTime = time.Now()
	m.goroutines = goroutines
	m.budget = budget
	m.simulationTimeout = simulationTimeout
	m.episodes.Store(0)
	m.fullPlayouts.Store(0)
	m.timeouts.Store(0)
}

func (m *collector) AddFullPlayout() {
	m.fullPlayouts.Add(1)
}

func (m *collector) AddTimeout() {
	m.timeouts.Add(1)
}

func (m *collector) AddEpisode() {
	m.episodes.Add(1)
}

func (m *collector) Complete() SearchMetric {
	return SearchMetric{
		Goroutines:        m.goroutines,
		Budget:            m.budget,
		SimulationTimeout: m.simulationTimeout,
		Duration:          time.Since(m.startTime),
		Episodes:          int(m.episodes.Load()),
		FullPlayouts:      int(m.fullPlayouts.Load()),
		Timeouts:          int(m.timeouts.Load()),
	}
}

type dummyCollector struct{}

func NewDummyCollector() Collector {
	return &dummyCollector{}
}

func (m *dummyCollector) Start(goroutines int, budget, simulationTimeout time.Duration) {}
func (m *dummyCollector) AddFullPlayout()                                             {}
func (m *dummyCollector) AddTimeout()                                                 {}
func (m *dummyCollector) AddEpisode()                                                 {}
func (m *dummyCollector) Complete() SearchMetric                                      { return SearchMetric{} }
