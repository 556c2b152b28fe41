package engine

import (
	"fmt"
	"morris/experiments/metrics"
	"morris/game"
	"morris/player"
	"morris/searcher"
	"time"

	"github.com/rs/zerolog/log"
)

// Engine plays a session headlessly between two agents.
type Engine struct {
	session  *Session
	agents   [2]player.Agent
	maxMoves int
}

// LocalEngine creates a game between two agents, indexed by player. sink may
// be nil. maxMoves <= 0 uses MaxMoves.
func LocalEngine(rules game.Rules, agents [2]player.Agent, sink Sink, maxMoves int) (*Engine, error) {
	for i, agent := range agents {
		if agent == nil {
			panic(fmt.Sprintf("agent %d is missing", i+1))
		}
	}
	if maxMoves <= 0 {
		maxMoves = MaxMoves
	}

	session, err := NewSession(rules, game.DefaultProfiles(), sink)
	if err != nil {
		return nil, err
	}
	return &Engine{session: session, agents: agents, maxMoves: maxMoves}, nil
}

// Session exposes the session being played.
func (e *Engine) Session() *Session {
	return e.session
}

// Run executes the entire game loop until the game ends or the move limit
// is reached.
func (e *Engine) Run() (game.PlayerID, metrics.GameMetric, []metrics.MoveMetric) {
	// Steps played since each agent's last action, to let searches reuse their tree
	var updates [2][]searcher.Segment

	state := e.session.State()
	gameMetric := metrics.GameMetric{
		StartingPlayer: state.Player(),
		StartTime:      time.Now(),
	}
	log.Info().Msgf("player %v is starting", state.Player())

	var moveMetrics []metrics.MoveMetric
	moves := 0
	for !state.Terminal() && moves < e.maxMoves {
		current := state.Player()

		action, searchMetric := e.agents[current].FindAction(state, updates[current])
		updates[current] = nil
		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         moves + 1,
			Player:       current,
			Action:       action,
			SearchMetric: searchMetric,
		})

		err := e.session.Play(action)
		if err != nil {
			panic(fmt.Sprintf("%v chose an illegal action %v: %v", current, action, err))
		}
		state = e.session.State()

		segment := searcher.Segment{Action: action, StateHash: state.Hash()}
		for i := range updates {
			updates[i] = append(updates[i], segment)
		}
		moves++
	}

	if !state.Terminal() {
		log.Info().Msgf("stopped after %d moves without a result", moves)
	}

	gameMetric.Winner = state.Winner()
	gameMetric.Phase = state.Phase()
	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = moves
	return state.Winner(), gameMetric, moveMetrics
}
