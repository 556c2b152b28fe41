package searcher

import (
	"math"
	"morris/game"
	"sync"

	"golang.org/x/exp/rand"
)

// decision is a tree node for a game state. Its rewards are kept from the
// perspective of the mover, the player whose action led to the node, so a
// parent always maximizes over its children regardless of turn changes.
type decision struct {
	sync.RWMutex
	parent     Node
	player     game.PlayerID // Player to act in the node's state
	mover      game.PlayerID
	hash       game.StateHash
	unexplored []game.Action
	explored   []game.Action // Parallel to children
	children   []Node
	rewards    float64
	visits     float64
}

func newDecision(parent *decision, state game.State) *decision {
	actions := state.LegalActions()
	rand.Shuffle(len(actions), func(i, j int) {
		actions[i], actions[j] = actions[j], actions[i]
	})

	d := &decision{
		player:     state.Player(),
		mover:      game.NoPlayer,
		hash:       state.Hash(),
		unexplored: actions,
		explored:   make([]game.Action, 0, len(actions)),
		children:   make([]Node, 0, len(actions)),
	}
	if parent != nil {
		d.parent = parent
		d.mover = parent.player
	}
	return d
}

func (d *decision) SelectOrExpand(state game.State) (Node, game.State, bool) {
	d.Lock()
	defer d.Unlock()

	if len(d.unexplored) > 0 { // Expandable node
		child, childState := d.addChild(state)
		child.ApplyLoss()
		return child, childState, false
	}

	if len(d.children) == 0 { // Terminal node
		return d, state, false
	}

	// Fully expanded node
	ith := d.pickChild()
	child := d.children[ith]
	child.ApplyLoss()
	return child, state.Play(d.explored[ith]), true
}

func (d *decision) addChild(state game.State) (Node, game.State) {
	last := len(d.unexplored) - 1
	action := d.unexplored[last]
	d.unexplored = d.unexplored[:last]

	childState := state.Play(action)
	child := newDecision(d, childState)
	d.explored = append(d.explored, action)
	d.children = append(d.children, child)
	return child, childState
}

func (d *decision) pickChild() int {
	// Children carry virtual losses of episodes still running, so their visits
	// can run ahead of the node's own
	total := 0.0
	for _, child := range d.children {
		total += child.Visits()
	}
	if total == 0 {
		panic("node has children but no visits")
	}
	policy := newUCT(CSquared, total)

	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range d.children {
		score := child.Score(policy)
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (d *decision) ApplyLoss() {
	d.Lock()
	defer d.Unlock()

	d.rewards += Loss
	d.visits++
}

func (d *decision) Score(policy uct) float64 {
	d.RLock()
	defer d.RUnlock()

	return policy.evaluate(d.rewards, d.visits)
}

func (d *decision) Backup(reward Rewarder) Node {
	d.Lock()
	defer d.Unlock()

	if d.parent != nil { // Non-root node
		d.reverseLoss()
	}

	d.rewards += reward(d.mover)
	d.visits++

	return d.parent
}

func (d *decision) reverseLoss() {
	d.rewards -= Loss
	d.visits--
}

func (d *decision) Visits() float64 {
	d.RLock()
	defer d.RUnlock()

	return d.visits
}

// Policy returns the visit count of each explored action.
func (d *decision) Policy() map[game.Action]float64 {
	d.RLock()
	defer d.RUnlock()

	policy := make(map[game.Action]float64, len(d.children))
	for i, child := range d.children {
		policy[d.explored[i]] = child.Visits()
	}
	return policy
}

// child returns the node reached by action, if it was explored.
func (d *decision) child(action game.Action) (*decision, bool) {
	d.RLock()
	defer d.RUnlock()

	for i, explored := range d.explored {
		if explored == action {
			child, ok := d.children[i].(*decision)
			return child, ok
		}
	}
	return nil, false
}
