package engine

import (
	"morris/game"

	"github.com/stretchr/testify/mock"
)

type MockSink struct {
	mock.Mock
}

func (m *MockSink) OnPhaseChanged(phase game.Phase, player game.PlayerID) {
	m.Called(phase, player)
}

func (m *MockSink) OnTokenSelected(node game.Coordinate, destinations []game.Coordinate) {
	m.Called(node, destinations)
}

func (m *MockSink) OnTokenPlaced(node game.Coordinate, player game.PlayerID) {
	m.Called(node, player)
}

func (m *MockSink) OnTokenMoved(from, to game.Coordinate, player game.PlayerID) {
	m.Called(from, to, player)
}

func (m *MockSink) OnTokenCaptured(node game.Coordinate) {
	m.Called(node)
}

func (m *MockSink) OnMillFormed(nodes game.Mill) {
	m.Called(nodes)
}

func (m *MockSink) OnPlayerWins(player game.PlayerID) {
	m.Called(player)
}

func (m *MockSink) OnDrawGame() {
	m.Called()
}

// recordingSink keeps the phases it saw, in order.
type recordingSink struct {
	NopSink
	phases []game.Phase
	wins   []game.PlayerID
	draws  int
}

func (r *recordingSink) OnPhaseChanged(phase game.Phase, _ game.PlayerID) {
	r.phases = append(r.phases, phase)
}

func (r *recordingSink) OnPlayerWins(player game.PlayerID) {
	r.wins = append(r.wins, player)
}

func (r *recordingSink) OnDrawGame() {
	r.draws++
}
