package searcher

import (
	"morris/game"
	"slices"
)

func mockAction(id int) game.Action {
	return game.Action{Kind: game.PlaceAction, To: game.Coordinate{X: id}}
}

type mockState struct {
	player  game.PlayerID
	actions []game.Action
	played  []game.Action
	hash    game.StateHash
	winner  game.PlayerID
}

func (m mockState) Player() game.PlayerID {
	return m.player
}

func (m mockState) LegalActions() []game.Action {
	return slices.Clone(m.actions)
}

func (m mockState) Play(action game.Action) game.State {
	return mockState{played: append(slices.Clone(m.played), action), winner: game.NoPlayer}
}

func (m mockState) Hash() game.StateHash {
	return m.hash
}

func (m mockState) Winner() game.PlayerID {
	return m.winner
}

func (m mockState) Terminal() bool {
	return len(m.actions) == 0
}
