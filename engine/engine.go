package engine

import (
	"tickets/experiments/metrics"
	"tickets/searcher"
)

type Engine interface {
	// Run plays a game till it is over or a max number of turns is reached
	Run() (winners []searcher.Seat, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric, err error)
}
