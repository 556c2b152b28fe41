package player

import (
	"math"
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"
	"slices"
	"strings"

	"golang.org/x/exp/rand"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	rng         *rand.Rand
}

// NewTrainingAgent returns an agent that samples its action from the search
// visit counts instead of always playing the best one, so that self-play
// games explore different lines.
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		panic("temperature must be positive")
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindAction(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric) {
	visits, metric := a.mcts.Simulate(state, updates)
	// TODO: apply a temperature schedule as training progresses
	policy := adjustTemperature(visits, a.temperature)
	return sample(policy, a.rng.Float64()), metric
}

func adjustTemperature(visits map[game.Action]float64, temperature float64) map[game.Action]float64 {
	// Compute temperature-adjusted action probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	policy := make(map[game.Action]float64, len(visits))
	for action, visit := range visits {
		prob := math.Pow(visit, exponent)
		sum += prob
		policy[action] = prob
	}
	// Normalize
	for action := range policy {
		policy[action] /= sum
	}
	return policy
}

// sample walks the cumulative distribution in a fixed action order, so a
// given draw always maps to the same action.
func sample(policy map[game.Action]float64, draw float64) game.Action {
	actions := make([]game.Action, 0, len(policy))
	for action := range policy {
		actions = append(actions, action)
	}
	slices.SortFunc(actions, func(a, b game.Action) int {
		return strings.Compare(a.String(), b.String())
	})

	cumulative := 0.0
	for _, action := range actions {
		cumulative += policy[action]
		if draw < cumulative {
			return action
		}
	}
	return actions[len(actions)-1] // Fallback in case of rounding errors
}
