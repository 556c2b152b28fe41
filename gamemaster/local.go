package gamemaster

import (
	"morris/communication"
	"morris/engine"
	"morris/game"
	"sync"

	"github.com/rs/zerolog/log"
)

// SubscriberBuffer is the number of events a subscriber may lag behind.
// Events to a full subscriber are dropped.
const SubscriberBuffer = 64

// table is one game in play: its session and the subscribers to its events.
// It is the session's sink, so events are published while mu is held.
type table struct {
	mu          sync.Mutex
	id          string
	session     *engine.Session
	subscribers map[int]chan communication.EventMessage
	next        int
	closed      bool
}

func newTable(id string) *table {
	return &table{
		id:          id,
		subscribers: make(map[int]chan communication.EventMessage),
	}
}

func (t *table) snapshot() communication.Snapshot {
	return communication.NewSnapshot(t.id, t.session.State(), t.session.Awaiting())
}

func (t *table) subscribe() (<-chan communication.EventMessage, func()) {
	t.mu.Lock()
	defer t.mu.Unlock()

	ch := make(chan communication.EventMessage, SubscriberBuffer)
	if t.closed {
		close(ch)
		return ch, func() {}
	}

	key := t.next
	t.next++
	t.subscribers[key] = ch

	return ch, func() {
		t.mu.Lock()
		defer t.mu.Unlock()
		if sub, ok := t.subscribers[key]; ok {
			delete(t.subscribers, key)
			close(sub)
		}
	}
}

func (t *table) close() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.closed = true
	for key, ch := range t.subscribers {
		delete(t.subscribers, key)
		close(ch)
	}
}

func (t *table) publish(message communication.EventMessage) {
	for key, ch := range t.subscribers {
		select {
		case ch <- message:
		default:
			log.Warn().Msgf("game %s: subscriber %d is lagging, dropped %s", t.id, key, message.Type)
		}
	}
}

func (t *table) OnPhaseChanged(phase game.Phase, player game.PlayerID) {
	t.publish(communication.PhaseChangedMessage(phase, player))
}

func (t *table) OnTokenSelected(node game.Coordinate, destinations []game.Coordinate) {
	t.publish(communication.TokenSelectedMessage(node, destinations))
}

func (t *table) OnTokenPlaced(node game.Coordinate, player game.PlayerID) {
	t.publish(communication.TokenPlacedMessage(node, player))
}

func (t *table) OnTokenMoved(from, to game.Coordinate, player game.PlayerID) {
	t.publish(communication.TokenMovedMessage(from, to, player))
}

func (t *table) OnTokenCaptured(node game.Coordinate) {
	t.publish(communication.TokenCapturedMessage(node))
}

func (t *table) OnMillFormed(nodes game.Mill) {
	t.publish(communication.MillFormedMessage(nodes))
}

func (t *table) OnPlayerWins(player game.PlayerID) {
	t.publish(communication.PlayerWinsMessage(player))
}

func (t *table) OnDrawGame() {
	t.publish(communication.DrawGameMessage())
}
