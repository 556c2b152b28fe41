package player

import (
	"morris/experiments/metrics"
	"morris/game"
	"morris/searcher"

	"golang.org/x/exp/rand"
)

// Agent picks the next action for the player to act.
type Agent interface {
	// FindAction returns an action and performance metrics (if collected).
	// updates lists every step played since the agent's previous action.
	FindAction(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric)
}

type randomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns an agent that plays uniformly random legal actions.
// Equal seeds play equal games.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindAction(state game.State, _ []searcher.Segment) (game.Action, metrics.SearchMetric) {
	actions := state.LegalActions()
	if len(actions) == 0 {
		panic("no legal actions")
	}
	return actions[a.rng.Intn(len(actions))], metrics.SearchMetric{}
}

type searchAgent struct {
	mcts *searcher.MCTS
}

// NewSearchAgent returns an agent for actual game play that always picks the
// most visited action.
func NewSearchAgent(mcts *searcher.MCTS) Agent {
	return searchAgent{mcts: mcts}
}

func (a searchAgent) FindAction(state game.State, updates []searcher.Segment) (game.Action, metrics.SearchMetric) {
	return a.mcts.FindAction(state, updates)
}
