package agent

import (
	"math"

	"tickets/experiments/metrics"
	"tickets/game"
	"tickets/searcher"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
}

// NewTrainingAgent returns a new agent for self-play during training. It
// samples root children with probability proportional to visits^(1/temperature).
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return trainingAgent{mcts: mcts, temperature: temperature}
}

func (a trainingAgent) FindMove(state *game.GameState) (*game.GameState, metrics.SearchMetric, error) {
	candidates, metric, err := a.mcts.Simulate(state)
	if err != nil {
		return nil, metric, err
	}
	policy := adjustTemperature(candidates, a.temperature)
	return toGameState(candidates[sample(policy)].State), metric, nil
}

func adjustTemperature(candidates []searcher.Candidate, temperature float64) []float64 {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make([]float64, len(candidates))
	for i, candidate := range candidates {
		prob := math.Pow(float64(candidate.Visits), exponent)
		sum += prob
		adjusted[i] = prob
	}
	if sum == 0 { // No visits at all
		for i := range adjusted {
			adjusted[i] = 1.0 / float64(len(adjusted))
		}
		return adjusted
	}
	// Normalize
	for i := range adjusted {
		adjusted[i] /= sum
	}
	return adjusted
}

func sample(policy []float64) int {
	sampled := rand.Float64()
	cumulative := 0.0
	for i, prob := range policy {
		cumulative += prob
		if sampled < cumulative {
			return i
		}
	}
	return len(policy) - 1 // Fallback in case of rounding errors
}
