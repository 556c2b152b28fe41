package searcher

import (
	"morris/experiments/metrics"
	"morris/game"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

// almostWon returns a three men's morris position where player one completes
// a mill with (1,1,1) and player two would do the same with (1,-1,1).
func almostWon(t *testing.T) *game.GameState {
	t.Helper()
	rules := game.Rules{Rings: 1, TokensForMill: 3, TokensPerPlayer: 3}
	state, _, err := game.New(rules, game.DefaultProfiles())
	require.NoError(t, err)

	for _, to := range []game.Coordinate{
		{X: -1, Y: 1, Ring: 1}, {X: -1, Y: -1, Ring: 1},
		{X: 0, Y: 1, Ring: 1}, {X: 0, Y: -1, Ring: 1},
	} {
		state = state.Play(game.Action{Kind: game.PlaceAction, To: to}).(*game.GameState)
	}
	require.Equal(t, game.PlayerOne, state.Player())
	return state
}

func TestMCTS(t *testing.T) {
	winning := game.Action{Kind: game.PlaceAction, To: game.Coordinate{X: 1, Y: 1, Ring: 1}}

	t.Run("finds the winning mill", func(t *testing.T) {
		state := almostWon(t)
		mcts := NewMCTS(4, WithEpisodes(2000), WithMetrics())

		action, metric := mcts.FindAction(state, nil)

		require.Equal(t, winning, action, "Search should complete the mill")
		require.Equal(t, 2000, metric.Episodes)
		require.Equal(t, 4, metric.Goroutines)
		require.True(t, metric.IsTreeReset, "First search should build a new tree")
		require.Greater(t, metric.FullPlayouts, 0)
	})

	t.Run("policy covers every legal action", func(t *testing.T) {
		state := almostWon(t)
		mcts := NewMCTS(2, WithEpisodes(200))

		policy, _ := mcts.Simulate(state, nil)

		require.Len(t, policy, len(state.LegalActions()))
		total := 0.0
		for _, visits := range policy {
			require.GreaterOrEqual(t, visits, 1.0)
			total += visits
		}
		require.LessOrEqual(t, total, 200.0)
	})

	t.Run("reuses the subtree of the played line", func(t *testing.T) {
		state := almostWon(t)
		mcts := NewMCTS(2, WithEpisodes(500), WithMetrics())
		action, _ := mcts.FindAction(state, nil)

		next := state.Play(action)
		_, metric := mcts.Simulate(next, []Segment{{Action: action, StateHash: next.Hash()}})

		require.False(t, metric.IsTreeReset, "Search should continue from the explored child")
	})

	t.Run("resets the tree on an unknown line", func(t *testing.T) {
		state := almostWon(t)
		mcts := NewMCTS(2, WithEpisodes(50), WithMetrics())
		mcts.FindAction(state, nil)

		next := state.Play(winning)
		_, metric := mcts.Simulate(next, []Segment{{Action: winning, StateHash: next.Hash() + 1}})

		require.True(t, metric.IsTreeReset, "Hash mismatch should discard the tree")
	})

	t.Run("searches for a duration", func(t *testing.T) {
		state := almostWon(t)
		mcts := NewMCTS(2, WithDuration(20*time.Millisecond), WithCutoff(10), WithMetrics())

		_, metric := mcts.Simulate(state, nil)

		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
		require.Greater(t, metric.Episodes, 0)
		require.Equal(t, 10, metric.Cutoff)
	})

	t.Run("requires a budget", func(t *testing.T) {
		require.Panics(t, func() { NewMCTS(1) })
	})
}

func TestRollout(t *testing.T) {
	t.Run("terminal state rewards the winner", func(t *testing.T) {
		reward := rollout(mockState{winner: game.PlayerTwo}, MaxCutoff, nil, metrics.NewDummyCollector())

		require.Equal(t, Win, reward(game.PlayerTwo))
		require.Equal(t, Loss, reward(game.PlayerOne))
	})

	t.Run("cutoff evaluates the state", func(t *testing.T) {
		state := mockState{player: game.PlayerOne, actions: []game.Action{mockAction(0)}}
		evaluate := func(game.State) float64 { return 0.25 }

		reward := rollout(state, 0, evaluate, metrics.NewDummyCollector())

		require.Equal(t, 0.25, reward(game.PlayerOne))
		require.Equal(t, -0.25, reward(game.PlayerTwo))
	})
}
