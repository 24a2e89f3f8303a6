package engine

import (
	"errors"
	"testing"
	"time"

	"tickets/experiments/metrics"
	"tickets/game"
	"tickets/searcher"
	"tickets/searcher/agent"

	"github.com/stretchr/testify/require"
)

// firstAgent always plays the first legal move.
type firstAgent struct {
	observed []searcher.Seat
}

func (a *firstAgent) FindMove(state *game.GameState) (*game.GameState, metrics.SearchMetric, error) {
	a.observed = append(a.observed, state.Current)
	successors := state.LegalSuccessors()
	if len(successors) == 0 {
		return nil, metrics.SearchMetric{}, searcher.ErrNoLegalMoves
	}
	return successors[0].(*game.GameState), metrics.SearchMetric{Episodes: 1}, nil
}

type failingAgent struct{}

func (failingAgent) FindMove(*game.GameState) (*game.GameState, metrics.SearchMetric, error) {
	return nil, metrics.SearchMetric{}, errors.New("no idea")
}

// cheatingAgent claims a route it cannot pay for.
type cheatingAgent struct{}

func (cheatingAgent) FindMove(state *game.GameState) (*game.GameState, metrics.SearchMetric, error) {
	fake := state.Copy()
	fake.Action = game.Action{Kind: game.ClaimRoute, Route: 1, Color: game.Blue}
	return fake, metrics.SearchMetric{}, nil
}

func newTestGame(t *testing.T) *game.GameState {
	t.Helper()
	g, err := game.NewGame(game.DefaultConfig(2), 11)
	require.NoError(t, err)
	return g
}

func TestLocalEngineRun(t *testing.T) {
	t.Run("playing a match to the end", func(t *testing.T) {
		first, second := &firstAgent{}, &firstAgent{}
		e := NewLocalEngine(newTestGame(t), []agent.Agent{first, second}, WithMaxTurns(1000))

		winners, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.NotEmpty(t, winners, "The game should finish before the cap")
		require.True(t, searcher.IsTerminal(e.State))
		require.Len(t, moveMetrics, gameMetric.TotalMoves)
		require.Len(t, gameMetric.Winners, len(winners))
		require.Equal(t, 2, gameMetric.Seats)
		for _, seat := range first.observed {
			require.Equal(t, searcher.Seat(0), seat, "Agent 0 should only be asked on its own turns")
		}
		for _, seat := range second.observed {
			require.Equal(t, searcher.Seat(1), seat)
		}
	})

	t.Run("stopping at the turn cap", func(t *testing.T) {
		e := NewLocalEngine(newTestGame(t), []agent.Agent{&firstAgent{}, &firstAgent{}}, WithMaxTurns(3))

		winners, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Empty(t, winners, "A capped match has no winner")
		require.Empty(t, gameMetric.Winners)
		require.Equal(t, 3, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 3)
		require.Equal(t, 1, moveMetrics[1].Seat)
	})

	t.Run("failing when an agent finds no move", func(t *testing.T) {
		e := NewLocalEngine(newTestGame(t), []agent.Agent{failingAgent{}, &firstAgent{}})

		_, _, _, err := e.Run()

		require.ErrorContains(t, err, "no idea")
	})

	t.Run("rejecting an illegal suggestion", func(t *testing.T) {
		e := NewLocalEngine(newTestGame(t), []agent.Agent{cheatingAgent{}, &firstAgent{}})

		_, _, _, err := e.Run()

		require.ErrorIs(t, err, game.ErrIllegalAction)
	})

	t.Run("playing with search agents", func(t *testing.T) {
		mcts := searcher.NewMCTS(searcher.WithDuration(10 * time.Millisecond))
		agents := []agent.Agent{agent.NewEvaluationAgent(mcts), agent.NewTrainingAgent(mcts, 1.0)}
		e := NewLocalEngine(newTestGame(t), agents, WithMaxTurns(4))

		_, gameMetric, moveMetrics, err := e.Run()

		require.NoError(t, err)
		require.Equal(t, 4, gameMetric.TotalMoves)
		require.Len(t, moveMetrics, 4)
	})
}

func TestNewLocalEngine(t *testing.T) {
	require.Panics(t, func() {
		NewLocalEngine(newTestGame(t), []agent.Agent{&firstAgent{}})
	}, "Should panic when seats and agents do not match")
}
