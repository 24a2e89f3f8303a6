package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"tickets/engine"
	"tickets/experiments"
	"tickets/game"
	"tickets/meta"
	"tickets/searcher"
	"tickets/searcher/agent"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type config struct {
	mode              string
	experiment        string
	seats             int
	budget            time.Duration
	simulationTimeout time.Duration
	goroutines        int
	maxTurns          int
	seed              uint64
	out               string
	logLevel          string
	pretty            bool
}

func main() {
	cfg := parseFlags()
	if err := setupLogging(cfg); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	var err error
	switch cfg.mode {
	case "match":
		err = runMatch(cfg)
	case "experiment":
		err = runExperiment(cfg)
	default:
		err = fmt.Errorf("unknown mode %q, want match or experiment", cfg.mode)
	}
	if err != nil {
		log.Fatal().Err(err).Msg("run failed")
	}
}

func parseFlags() config {
	var cfg config
	flag.StringVar(&cfg.mode, "mode", "match", "What to run: match or experiment")
	flag.StringVar(&cfg.experiment, "experiment", "budget", "Experiment to run: budget or parallelization")
	flag.IntVar(&cfg.seats, "seats", meta.SEATS, "Number of seats in a match")
	flag.DurationVar(&cfg.budget, "budget", meta.BUDGET, "Search time per move")
	flag.DurationVar(&cfg.simulationTimeout, "sim-timeout", meta.SIMULATION_TIMEOUT, "Time limit of a single playout")
	flag.IntVar(&cfg.goroutines, "goroutines", meta.GO_ROUTINES, "Number of independent search trees per move")
	flag.IntVar(&cfg.maxTurns, "max-turns", meta.MAX_TURNS, "Turn cap of a match")
	flag.Uint64Var(&cfg.seed, "seed", 0, "Seed of the deal, 0 for a random deal")
	flag.StringVar(&cfg.out, "out", "experiments", "Directory for experiment records")
	flag.StringVar(&cfg.logLevel, "log-level", "info", "Log level")
	flag.BoolVar(&cfg.pretty, "pretty", false, "Human-friendly console logs")
	flag.Parse()
	return cfg
}

func setupLogging(cfg config) error {
	level, err := zerolog.ParseLevel(cfg.logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	zerolog.SetGlobalLevel(level)
	if cfg.pretty {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen})
	}
	return nil
}

// runMatch plays a single self-play match with the same search for every seat.
func runMatch(cfg config) error {
	state, err := game.NewGame(game.DefaultConfig(cfg.seats), cfg.seed)
	if err != nil {
		return err
	}

	e := engine.NewLocalEngine(state, newAgents(cfg), engine.WithMaxTurns(cfg.maxTurns))
	winners, _, _, err := e.Run()
	if err != nil {
		return err
	}

	for seat, score := range e.State.Scores() {
		log.Info().
			Int("seat", seat).
			Int("total", score.Total).
			Int("routes", score.Routes).
			Int("tickets", score.Tickets).
			Int("completed", score.Completed).
			Int("longest", score.Longest).
			Msg("final score")
	}
	log.Info().Msgf("winners: %v", winners)
	return nil
}

func newAgents(cfg config) []agent.Agent {
	agents := make([]agent.Agent, cfg.seats)
	for i := range agents {
		agents[i] = agent.NewEvaluationAgent(createMCTS(cfg, i))
	}
	return agents
}

// createMCTS builds the search of seat. A seeded match seeds every seat's
// search differently.
func createMCTS(cfg config, seat int) *searcher.MCTS {
	options := []searcher.Option{
		searcher.WithDuration(cfg.budget),
		searcher.WithSimulationTimeout(cfg.simulationTimeout),
		searcher.WithGoroutines(cfg.goroutines),
		searcher.WithMetrics(),
	}
	if cfg.seed != 0 {
		options = append(options, searcher.WithSeed(cfg.seed+uint64(seat)))
	}
	return searcher.NewMCTS(options...)
}

func runExperiment(cfg config) error {
	var dir string
	var err error
	switch cfg.experiment {
	case "budget":
		dir, err = experiments.RunBudgetExperiment(cfg.out)
	case "parallelization":
		dir, err = experiments.RunParallelizationExperiment(cfg.out)
	default:
		return fmt.Errorf("unknown experiment %q", cfg.experiment)
	}
	if err != nil {
		return err
	}
	log.Info().Str("dir", dir).Msg("experiment records written")
	return nil
}
