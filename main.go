package main

import (
	"context"
	"flag"
	"fmt"
	"morris/communication/server"
	"morris/engine"
	"morris/experiments"
	"morris/gamemaster"
	"morris/meta"
	"morris/player"
	"morris/searcher"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"
)

func main() {
	mode := flag.String("mode", "serve", "One of serve, selfplay or experiment")
	levelName := flag.String("level", meta.DEFAULT_LEVEL, "Level to play in selfplay and experiment modes")
	numGoroutines := flag.Int("goroutines", meta.GO_ROUTINES, "Number of goroutines for parallel playouts")
	numEpisodes := flag.Int("episodes", meta.EPISODES, "Number of playouts per move")
	duration := flag.Duration("duration", 0, "Duration of playouts per move, instead of a number of playouts")
	cutoff := flag.Int("cutoff", meta.WITH_CUTOFF, "Maximum rollout depth")
	experiment := flag.String("experiment", "baseline", "Experiment to run: parallelization, cutoff, baseline or throughput")
	out := flag.String("out", experiments.ResultsDir, "Folder for experiment records")
	acknowledge := flag.Bool("ack", false, "Require clients to acknowledge each transition")
	flag.Parse()

	config, err := meta.LoadServerConfig()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	if err := meta.SetupLogging(config.LogLevel, config.PrettyLogs); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	levels, err := config.Levels()
	if err != nil {
		log.Fatal().Msgf("failed to load levels: %v", err)
	}

	switch *mode {
	case "serve":
		serve(config, levels, *acknowledge)
	case "selfplay":
		level, err := meta.FindLevel(levels, *levelName)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		selfPlay(level, *numGoroutines, *numEpisodes, *duration, *cutoff)
	case "experiment":
		level, err := meta.FindLevel(levels, *levelName)
		if err != nil {
			log.Fatal().Msg(err.Error())
		}
		e, ok := experiments.Named(*experiment, level)
		if !ok {
			log.Fatal().Msgf("unknown experiment %q", *experiment)
		}
		dir, err := e.Run(*out)
		if err != nil {
			log.Fatal().Msgf("experiment failed: %v", err)
		}
		log.Info().Msgf("records written to %s", dir)
	default:
		log.Fatal().Msgf("unknown mode %q", *mode)
	}
}

func serve(config meta.ServerConfig, levels []meta.Level, acknowledge bool) {
	var options []engine.Option
	if acknowledge {
		options = append(options, engine.WithAcknowledgement())
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	s := server.New(gamemaster.NewMaster(options...), levels, config)
	if err := s.Run(ctx); err != nil {
		log.Fatal().Msgf("server stopped: %v", err)
	}
}

// selfPlay plays one game between two equally configured search agents.
func selfPlay(level meta.Level, goroutines, episodes int, duration time.Duration, cutoff int) {
	newAgent := func() player.Agent {
		options := []searcher.Option{searcher.WithCutoff(cutoff), searcher.WithMetrics()}
		if duration > 0 {
			options = append(options, searcher.WithDuration(duration))
		} else {
			options = append(options, searcher.WithEpisodes(episodes))
		}
		return player.NewSearchAgent(searcher.NewMCTS(goroutines, options...))
	}

	e, err := engine.LocalEngine(level.Rules, [2]player.Agent{newAgent(), newAgent()}, nil, meta.MAX_MOVES)
	if err != nil {
		log.Fatal().Msgf("failed to load %s: %v", level.Name, err)
	}

	winner, gameMetric, moveMetrics := e.Run()
	for _, m := range moveMetrics {
		log.Debug().Msgf("%3d %v %v (%d episodes)", m.Step, m.Player, m.Action, m.Episodes)
	}
	log.Info().Msgf("%s over after %d moves in %v, winner: %v", level.Name, gameMetric.TotalMoves, gameMetric.Duration, winner)
}
