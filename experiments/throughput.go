package experiments

import (
	"morris/experiments/metrics"
	"morris/meta"
	"time"
)

// ThroughputExperiment measures search episodes per move as the number of
// goroutines grows. Both players use the same config in each game for the
// same playing strength and similar game length.
func ThroughputExperiment(level meta.Level) Experiment {
	const Duration = 10 * time.Millisecond
	configs := []metrics.AgentConfig{
		{ID: 1, Goroutines: 1, Duration: Duration},
		{ID: 2, Goroutines: 2, Duration: Duration},
		{ID: 3, Goroutines: 4, Duration: Duration},
		{ID: 4, Goroutines: 8, Duration: Duration},
		{ID: 5, Goroutines: 16, Duration: Duration},
		{ID: 6, Goroutines: 32, Duration: Duration},
		{ID: 7, Goroutines: 64, Duration: Duration},
	}

	matchUps := [][2]metrics.AgentConfig{}
	for _, config := range configs {
		matchUps = append(matchUps, [2]metrics.AgentConfig{config, config})
	}

	return Experiment{
		Name:     "throughput",
		Level:    level,
		Configs:  configs,
		MatchUps: matchUps,
		Games:    1,
		MaxMoves: meta.MAX_MOVES,
	}
}

// Named returns the experiment called name, if there is one.
func Named(name string, level meta.Level) (Experiment, bool) {
	switch name {
	case "parallelization":
		return ParallelizationExperiment(level), true
	case "cutoff":
		return CutoffExperiment(level), true
	case "baseline":
		return BaselineExperiment(level), true
	case "throughput":
		return ThroughputExperiment(level), true
	}
	return Experiment{}, false
}
