package engine

import (
	"fmt"
	"time"

	"tickets/experiments/metrics"
	"tickets/game"
	"tickets/meta"
	"tickets/searcher"
	"tickets/searcher/agent"

	"github.com/rs/zerolog/log"
)

// LocalEngine runs a self-play match in process. It owns the authoritative
// state and hands each seat only its own information set.
type LocalEngine struct {
	State    *game.GameState
	Agents   []agent.Agent
	maxTurns int
}

type Option func(e *LocalEngine)

func WithMaxTurns(maxTurns int) Option {
	return func(e *LocalEngine) {
		if maxTurns > 0 {
			e.maxTurns = maxTurns
		}
	}
}

func NewLocalEngine(state *game.GameState, agents []agent.Agent, options ...Option) *LocalEngine {
	if len(state.Players) != len(agents) {
		panic("number of seats does not match number of agents")
	}
	e := &LocalEngine{
		State:    state,
		Agents:   agents,
		maxTurns: meta.MAX_TURNS,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the game loop until the game is over or the turn cap is hit.
// Winners are empty if the cap was reached.
func (e *LocalEngine) Run() ([]searcher.Seat, metrics.GameMetric, []metrics.MoveMetric, error) {
	gameMetric := metrics.GameMetric{
		Seats:     len(e.Agents),
		StartTime: time.Now(),
	}
	var moveMetrics []metrics.MoveMetric

	log.Info().Int("seats", len(e.Agents)).Msg("match started")

	turn := 0
	for !searcher.IsTerminal(e.State) && turn < e.maxTurns {
		seat := e.State.Current

		suggested, searchMetric, err := e.Agents[seat].FindMove(e.State.ObservedBy(seat))
		if err != nil {
			return nil, gameMetric, moveMetrics, fmt.Errorf("seat %d failed to find a move: %w", seat, err)
		}
		action := suggested.LastAction()

		next, err := e.State.Apply(action)
		if err != nil {
			return nil, gameMetric, moveMetrics, fmt.Errorf("seat %d suggested %s: %w", seat, action, err)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         turn,
			Seat:         int(seat),
			SearchMetric: searchMetric,
		})
		log.Debug().
			Int("turn", turn).
			Int("seat", int(seat)).
			Stringer("action", action).
			Msg("move played")

		e.State = next
		turn++
	}

	winners := e.State.Winners()
	gameMetric.Winners = make([]int, len(winners))
	for i, winner := range winners {
		gameMetric.Winners[i] = int(winner)
	}
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = turn

	if len(winners) == 0 {
		log.Warn().Int("turns", turn).Msg("stopped at the turn cap without a winner")
	} else {
		log.Info().
			Ints("winners", gameMetric.Winners).
			Int("turns", turn).
			Float64("seconds", gameMetric.Duration.Seconds()).
			Msg("match over")
	}

	return winners, gameMetric, moveMetrics, nil
}
