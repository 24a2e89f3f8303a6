package experiments

import (
	"fmt"
	"time"

	"tickets/engine"
	"tickets/experiments/metrics"
	"tickets/game"
	"tickets/meta"
	"tickets/searcher"
	"tickets/searcher/agent"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

const (
	NumGames   = meta.GAMES // Per match up
	TimeBudget = 100 * time.Millisecond
)

var budgetConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 1, Budget: 2 * TimeBudget, SimulationTimeout: meta.SIMULATION_TIMEOUT},
	{ID: 2, Goroutines: 1, Budget: 5 * TimeBudget, SimulationTimeout: meta.SIMULATION_TIMEOUT},
	{ID: 3, Goroutines: 1, Budget: 10 * TimeBudget, SimulationTimeout: meta.SIMULATION_TIMEOUT},
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 2, Budget: TimeBudget, SimulationTimeout: meta.SIMULATION_TIMEOUT},
	{ID: 2, Goroutines: 4, Budget: TimeBudget, SimulationTimeout: meta.SIMULATION_TIMEOUT},
	{ID: 3, Goroutines: 8, Budget: TimeBudget, SimulationTimeout: meta.SIMULATION_TIMEOUT},
}

// RunBudgetExperiment pairs agents with larger search budgets against the
// baseline and writes the results under dir. It returns the output directory.
func RunBudgetExperiment(dir string) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Budget: TimeBudget, SimulationTimeout: meta.SIMULATION_TIMEOUT}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range budgetConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(dir, "budget", append(budgetConfigs, baseline), matchUps, NumGames, meta.MAX_TURNS)
}

// RunParallelizationExperiment pairs root-parallel agents against the
// sequential baseline at the same time budget.
func RunParallelizationExperiment(dir string) (string, error) {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Budget: TimeBudget, SimulationTimeout: meta.SIMULATION_TIMEOUT}
	matchUps := [][]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, []metrics.AgentConfig{baseline, config})
	}

	return runExperiment(dir, "parallelization", append(parallelConfigs, baseline), matchUps, NumGames, meta.MAX_TURNS)
}

func runExperiment(dir, name string, configs []metrics.AgentConfig, matchUps [][]metrics.AgentConfig, numGames, maxTurns int) (string, error) {
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment...", name)

	for mi, matchUp := range matchUps {
		log.Info().Msgf("starting matchup %d of %d between %+v...", mi+1, len(matchUps), matchUp)

		for i := 0; i < numGames; i++ {
			// Rotate seats so every agent gets to start
			seating := rotate(matchUp, i)

			winners, gameMetric, moveMetrics, err := runGame(seating, maxTurns)
			if err != nil {
				return "", fmt.Errorf("failed to run matchup %d game %d: %w", mi+1, i+1, err)
			}

			id := uuid.New()
			agents := make([]int, len(seating))
			for seat, config := range seating {
				agents[seat] = config.ID
			}
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         id,
				Agents:     agents,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       id,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winners: %v", mi+1, len(matchUps), i+1, winners)
		}
	}

	log.Info().Msgf("completed %s experiment", name)

	writer, err := metrics.NewWriter(dir, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}
	if err := writer.WriteAgentConfigs(configs); err != nil {
		return "", err
	}
	if err := writer.WriteGameRecords(gameRecords); err != nil {
		return "", err
	}
	if err := writer.WriteMoveRecords(moveRecords); err != nil {
		return "", err
	}
	log.Info().Str("dir", writer.Dir()).Msg("stored experiment records")

	return writer.Dir(), nil
}

// runGame plays one match with an agent per config, seated in order.
func runGame(configs []metrics.AgentConfig, maxTurns int) ([]searcher.Seat, metrics.GameMetric, []metrics.MoveMetric, error) {
	state, err := game.NewGame(game.DefaultConfig(len(configs)), 0)
	if err != nil {
		return nil, metrics.GameMetric{}, nil, err
	}

	agents := make([]agent.Agent, len(configs))
	for i, config := range configs {
		agents[i] = agent.NewEvaluationAgent(createMCTS(config))
	}

	return engine.NewLocalEngine(state, agents, engine.WithMaxTurns(maxTurns)).Run()
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	return searcher.NewMCTS(
		searcher.WithGoroutines(config.Goroutines),
		searcher.WithDuration(config.Budget),
		searcher.WithSimulationTimeout(config.SimulationTimeout),
		searcher.WithMetrics(),
	)
}

func rotate[T any](items []T, by int) []T {
	by %= len(items)
	return append(append([]T{}, items[by:]...), items[:by]...)
}
