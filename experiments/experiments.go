package experiments

import (
	"fmt"
	"morris/engine"
	"morris/experiments/metrics"
	"morris/game"
	"morris/meta"
	"morris/player"
	"morris/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

const (
	NumGames   = 30 // Per match up
	TimeBudget = 10 * time.Millisecond
	ResultsDir = "results"
)

// Experiment plays every match up a number of games on one level.
type Experiment struct {
	Name     string
	Level    meta.Level
	Configs  []metrics.AgentConfig
	MatchUps [][2]metrics.AgentConfig
	Games    int // Per match up
	MaxMoves int
}

var parallelConfigs = []metrics.AgentConfig{
	{ID: 1, Goroutines: 1, Duration: TimeBudget},
	{ID: 2, Goroutines: 4, Duration: TimeBudget},
	{ID: 3, Goroutines: 8, Duration: TimeBudget},
	{ID: 4, Goroutines: 16, Duration: TimeBudget},
	{ID: 5, Goroutines: 32, Duration: TimeBudget},
}

// ParallelizationExperiment pairs each parallel agent against the baseline
// sequential agent.
func ParallelizationExperiment(level meta.Level) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: 1, Duration: TimeBudget}
	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range parallelConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Experiment{
		Name:     "parallelization",
		Level:    level,
		Configs:  append([]metrics.AgentConfig{baseline}, parallelConfigs...),
		MatchUps: matchUps,
		Games:    NumGames,
		MaxMoves: meta.MAX_MOVES,
	}
}

// CutoffExperiment pairs full playouts against rollouts cut off early and
// scored by the material evaluation.
func CutoffExperiment(level meta.Level) Experiment {
	baseline := metrics.AgentConfig{ID: 0, Goroutines: meta.GO_ROUTINES, Duration: TimeBudget, Cutoff: searcher.MaxCutoff}
	cutoffConfigs := []metrics.AgentConfig{
		{ID: 1, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 10},
		{ID: 2, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: 50},
		{ID: 3, Goroutines: baseline.Goroutines, Duration: baseline.Duration, Cutoff: meta.WITH_CUTOFF},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range cutoffConfigs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{baseline, config})
	}

	return Experiment{
		Name:     "cutoff",
		Level:    level,
		Configs:  append([]metrics.AgentConfig{baseline}, cutoffConfigs...),
		MatchUps: matchUps,
		Games:    NumGames,
		MaxMoves: meta.MAX_MOVES,
	}
}

// BaselineExperiment pairs a search agent against a random one, both ways round.
func BaselineExperiment(level meta.Level) Experiment {
	random := metrics.AgentConfig{ID: 0, Seed: 1}
	search := metrics.AgentConfig{ID: 1, Goroutines: meta.GO_ROUTINES, Episodes: meta.EPISODES, Cutoff: meta.WITH_CUTOFF}

	return Experiment{
		Name:     "baseline",
		Level:    level,
		Configs:  []metrics.AgentConfig{random, search},
		MatchUps: [][2]metrics.AgentConfig{{random, search}, {search, random}},
		Games:    NumGames,
		MaxMoves: meta.MAX_MOVES,
	}
}

// Run plays the experiment and stores its records under root. It returns the
// folder the records were written to.
func (e Experiment) Run(root string) (string, error) {
	// Run a number of games for each matchup
	count := 0
	gameRecords := []metrics.GameRecord{}
	moveRecords := []metrics.MoveRecord{}

	log.Info().Msgf("starting %s experiment on %s...", e.Name, e.Level.Name)

	for mi, matchup := range e.MatchUps {
		config1 := matchup[0]
		config2 := matchup[1]

		log.Info().Msgf("starting matchup %d of %d between agent1=%+v and agent2=%+v...", mi+1, len(e.MatchUps), config1, config2)

		for i := 0; i < e.Games; i++ {
			log.Debug().Msgf("starting matchup %d of %d game %d of %d...", mi+1, len(e.MatchUps), i+1, e.Games)

			winner, gameMetric, moveMetrics, err := runGame(e.Level, config1, config2, e.MaxMoves)
			if err != nil {
				return "", err
			}
			count++
			gameRecords = append(gameRecords, metrics.GameRecord{
				ID:         count,
				Level:      e.Level.Name,
				Agent1:     config1.ID,
				Agent2:     config2.ID,
				GameMetric: gameMetric,
			})
			for _, mm := range moveMetrics {
				moveRecords = append(moveRecords, metrics.MoveRecord{
					Game:       count,
					MoveMetric: mm,
				})
			}

			log.Info().Msgf("completed matchup %d of %d game %d with winner: %v", mi+1, len(e.MatchUps), i+1, winner)
		}
	}

	log.Info().Msgf("completed %s experiment", e.Name)

	return store(root, e.Name, e.Configs, gameRecords, moveRecords)
}

func store(root, name string, configs []metrics.AgentConfig, games []metrics.GameRecord, moves []metrics.MoveRecord) (string, error) {
	writer, err := metrics.NewWriter(root, name)
	if err != nil {
		return "", fmt.Errorf("failed to create experiment writer: %w", err)
	}

	err = writer.WriteAgentConfigs(configs)
	if err != nil {
		return "", fmt.Errorf("failed to store agent configs: %w", err)
	}
	log.Info().Msg("stored agent configs")

	err = writer.WriteGameRecords(games)
	if err != nil {
		return "", fmt.Errorf("failed to write game records: %w", err)
	}
	log.Info().Msg("stored game records")

	err = writer.WriteMoveRecords(moves)
	if err != nil {
		return "", fmt.Errorf("failed to write move records: %w", err)
	}
	log.Info().Msg("stored move records")

	return writer.Dir(), nil
}

// runGame executes a single game between two agents and returns the winner
func runGame(level meta.Level, config1, config2 metrics.AgentConfig, maxMoves int) (game.PlayerID, metrics.GameMetric, []metrics.MoveMetric, error) {
	agents := [2]player.Agent{createAgent(config1), createAgent(config2)}
	e, err := engine.LocalEngine(level.Rules, agents, nil, maxMoves)
	if err != nil {
		return game.NoPlayer, metrics.GameMetric{}, nil, fmt.Errorf("failed to load %s: %w", level.Name, err)
	}

	winner, gameMetric, moveMetrics := e.Run()
	return winner, gameMetric, moveMetrics, nil
}

// createAgent builds a search agent, or a random agent for configs without goroutines.
func createAgent(config metrics.AgentConfig) player.Agent {
	if config.Goroutines <= 0 {
		return player.NewRandomAgent(config.Seed)
	}
	return player.NewSearchAgent(createMCTS(config))
}

func createMCTS(config metrics.AgentConfig) *searcher.MCTS {
	options := []searcher.Option{}

	if config.Episodes > 0 {
		options = append(options, searcher.WithEpisodes(config.Episodes))
	}
	if config.Duration > 0 {
		options = append(options, searcher.WithDuration(config.Duration))
	}
	if config.Cutoff > 0 {
		options = append(options, searcher.WithCutoff(config.Cutoff))
	}

	options = append(options, searcher.WithMetrics())
	return searcher.NewMCTS(config.Goroutines, options...)
}
