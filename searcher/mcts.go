package searcher

import (
	"morris/experiments/metrics"
	"morris/game"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// Segment is one step of play since the last search: the action taken and
// the hash of the state it led to.
type Segment struct {
	Action    game.Action
	StateHash game.StateHash
}

// MCTS is a tree-parallel UCT search with virtual loss. The tree is kept
// between searches and reused when the game followed an explored line.
type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(u *MCTS) {
		if duration > 0 {
			u.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(u *MCTS) {
		if episodes > 0 {
			u.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(u *MCTS) {
		if depth > 0 {
			u.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: max(goroutines, 1),
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateMaterial,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches state and returns the visit count of every root action.
// lineage lists the steps played since the previous search so that its
// subtree can be reused.
func (m *MCTS) Simulate(state game.State, lineage []Segment) (map[game.Action]float64, metrics.SearchMetric) {
	m.findRoot(lineage, state)

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	// Output move policy and move finding metrics
	return m.root.Policy(), metric
}

// FindAction searches state and returns the most visited action.
func (m *MCTS) FindAction(state game.State, lineage []Segment) (game.Action, metrics.SearchMetric) {
	policy, metric := m.Simulate(state, lineage)
	return BestAction(policy), metric
}

// BestAction picks the action with the highest visit count. Ties go to the
// smallest action so that the choice does not depend on map order.
func BestAction(policy map[game.Action]float64) game.Action {
	if len(policy) == 0 {
		panic("policy has no actions")
	}

	var best game.Action
	maxVisits := -1.0
	for action, visits := range policy {
		if visits > maxVisits || (visits == maxVisits && action.String() < best.String()) {
			maxVisits = visits
			best = action
		}
	}
	return best
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) findRoot(lineage []Segment, state game.State) {
	root := traverse(m.root, lineage)
	if root == nil || root.hash != state.Hash() {
		m.root = newDecision(nil, state)
		m.metrics.SetTreeReset(true)
	} else {
		root.parent = nil
		m.root = root
		m.metrics.SetTreeReset(false)
	}
}

func traverse(root *decision, lineage []Segment) *decision {
	if root == nil || len(lineage) == 0 {
		return nil
	}

	node := root
	for _, segment := range lineage {
		child, ok := node.child(segment.Action)
		if !ok { // Node has not expanded this action
			return nil
		}
		if child.hash != segment.StateHash {
			log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", child.hash, segment.StateHash)
			return nil
		}
		node = child
	}
	return node
}

func (m *MCTS) simulate(state game.State) {
	newNode, newState := selectThenExpand(m.root, state)
	reward := rollout(newState, m.cutoff, m.evaluate, m.metrics)
	backup(newNode, reward)
}

func selectThenExpand(root Node, state game.State) (Node, game.State) {
	parent := root
	child, state, selected := parent.SelectOrExpand(state)
	for selected && (child != parent) {
		parent = child
		child, state, selected = parent.SelectOrExpand(state)
	}
	return child, state
}

func rollout(state game.State, cutoff int, evaluate game.Evaluate, metrics metrics.Collector) Rewarder {
	depth := 0
	actions := state.LegalActions()
	// Rollout till game over or for cutoff number of actions
	for len(actions) > 0 && (depth < cutoff) {
		action := actions[rand.Intn(len(actions))] // Random rollout policy
		state = state.Play(action)
		actions = state.LegalActions()
		depth++
	}

	if state.Terminal() { // Game over before cutoff
		metrics.AddFullPlayout()
		return outcome(state.Winner())
	}

	// At cutoff state, return an evaluation score from current player's perspective
	return evaluation(state.Player(), evaluate(state))
}

func backup(newNode Node, reward Rewarder) {
	node := newNode
	for node != nil {
		parent := node.Backup(reward)
		node = parent
	}
}
