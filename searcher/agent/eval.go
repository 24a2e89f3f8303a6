package agent

import (
	"fmt"

	"tickets/experiments/metrics"
	"tickets/game"
	"tickets/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state *game.GameState) (*game.GameState, metrics.SearchMetric, error) {
	suggested, metric, err := a.mcts.Search(state)
	if err != nil {
		return nil, metric, err
	}
	return toGameState(suggested), metric, nil
}

func toGameState(state searcher.State) *game.GameState {
	g, ok := state.(*game.GameState)
	if !ok {
		panic(fmt.Sprintf("search returned %T, want *game.GameState", state))
	}
	return g
}
