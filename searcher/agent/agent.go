package agent

import (
	"tickets/experiments/metrics"
	"tickets/game"
)

type Agent interface {
	// FindMove returns the state after the chosen move and performance metrics (if collected) from the simulation process
	FindMove(state *game.GameState) (*game.GameState, metrics.SearchMetric, error)
}
