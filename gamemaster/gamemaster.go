package gamemaster

import (
	"errors"
	"morris/communication"
	"morris/engine"
	"morris/game"
	"sync"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

var ErrGameNotFound = errors.New("game not found")

// Master keeps the sessions of concurrently played games. Every game is
// guarded by its own lock, so games never wait on each other.
type Master struct {
	mu      sync.RWMutex
	games   map[string]*table
	options []engine.Option
}

// NewMaster creates an empty registry. options apply to every new session.
func NewMaster(options ...engine.Option) *Master {
	return &Master{
		games:   make(map[string]*table),
		options: options,
	}
}

// Create loads a new game and returns its id and initial snapshot.
func (m *Master) Create(rules game.Rules, profiles [2]game.Profile) (string, communication.Snapshot, error) {
	id := uuid.NewString()
	t := newTable(id)

	session, err := engine.NewSession(rules, profiles, t, m.options...)
	if err != nil {
		return "", communication.Snapshot{}, err
	}
	t.session = session
	// Nobody else can reach t until it is registered
	snapshot := t.snapshot()

	m.mu.Lock()
	m.games[id] = t
	m.mu.Unlock()

	log.Info().Msgf("created game %s", id)
	return id, snapshot, nil
}

func (m *Master) lookup(id string) (*table, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.games[id]
	if !ok {
		return nil, ErrGameNotFound
	}
	return t, nil
}

// Select feeds a node selection into a game. Illegal selections return the
// rejection along with the unchanged snapshot.
func (m *Master) Select(id string, c game.Coordinate) (communication.Snapshot, error) {
	t, err := m.lookup(id)
	if err != nil {
		return communication.Snapshot{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	err = t.session.OnNodeSelected(c)
	return t.snapshot(), err
}

func (m *Master) Snapshot(id string) (communication.Snapshot, error) {
	t, err := m.lookup(id)
	if err != nil {
		return communication.Snapshot{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.snapshot(), nil
}

// Acknowledge releases the input of a game after its last transition.
func (m *Master) Acknowledge(id string) (communication.Snapshot, error) {
	t, err := m.lookup(id)
	if err != nil {
		return communication.Snapshot{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	t.session.Acknowledge()
	return t.snapshot(), nil
}

// Subscribe streams the events of a game from now on. The channel is closed
// by cancel or when the game is removed.
func (m *Master) Subscribe(id string) (<-chan communication.EventMessage, func(), error) {
	t, err := m.lookup(id)
	if err != nil {
		return nil, nil, err
	}
	ch, cancel := t.subscribe()
	return ch, cancel, nil
}

// Remove ends a game and closes its subscriptions.
func (m *Master) Remove(id string) error {
	m.mu.Lock()
	t, ok := m.games[id]
	delete(m.games, id)
	m.mu.Unlock()

	if !ok {
		return ErrGameNotFound
	}
	t.close()
	log.Info().Msgf("removed game %s", id)
	return nil
}

// Len returns the number of games in play.
func (m *Master) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.games)
}
