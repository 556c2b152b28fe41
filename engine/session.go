package engine

import (
	"errors"
	"morris/game"

	"github.com/rs/zerolog/log"
)

// ErrAwaitingAck is returned for input that arrives before the sink
// acknowledged the previous notifications.
var ErrAwaitingAck = errors.New("waiting for acknowledgement of the previous transition")

type Option func(s *Session)

// WithAcknowledgement makes the session refuse new input after every
// transition until Acknowledge is called.
func WithAcknowledgement() Option {
	return func(s *Session) {
		s.acknowledge = true
	}
}

// Session drives one game: it feeds node selections into the state machine
// and forwards the resulting events to its sink. A session is not safe for
// concurrent use.
type Session struct {
	state       *game.GameState
	sink        Sink
	acknowledge bool
	pending     bool
}

// NewSession loads a game and dispatches the events of the load phase.
func NewSession(rules game.Rules, profiles [2]game.Profile, sink Sink, options ...Option) (*Session, error) {
	state, events, err := game.New(rules, profiles)
	if err != nil {
		return nil, err
	}
	if sink == nil {
		sink = NopSink{}
	}

	s := &Session{state: state, sink: sink}
	for _, option := range options {
		option(s)
	}

	log.Debug().Msgf("loaded %d ring board with %d tokens per player", rules.Rings, rules.TokensPerPlayer)
	s.dispatch(events)
	return s, nil
}

// OnNodeSelected is the single input of the game. It returns the rejection
// of an illegal selection, nil otherwise.
func (s *Session) OnNodeSelected(c game.Coordinate) error {
	if s.pending {
		return ErrAwaitingAck
	}

	next, events, err := s.state.Select(c)
	if err != nil {
		log.Debug().Msgf("%v: %v", s.state.CurrentPlayer(), err)
		return err
	}

	s.state = next
	s.dispatch(events)
	return nil
}

// Play applies a whole action, which is one or two node selections.
func (s *Session) Play(action game.Action) error {
	if s.pending {
		return ErrAwaitingAck
	}

	next, events, err := s.state.Apply(action)
	if err != nil {
		log.Debug().Msgf("%v: %v", s.state.CurrentPlayer(), err)
		return err
	}

	s.state = next
	s.dispatch(events)
	return nil
}

// Acknowledge releases the input after a transition. It does nothing unless
// the session was created WithAcknowledgement.
func (s *Session) Acknowledge() {
	s.pending = false
}

// Awaiting reports whether input is blocked by a missing acknowledgement.
func (s *Session) Awaiting() bool {
	return s.pending
}

func (s *Session) dispatch(events []game.Event) {
	for _, event := range events {
		switch e := event.(type) {
		case game.PhaseChanged:
			log.Debug().Msgf("entered %v for %v", e.Phase, e.Player)
		case game.PlayerWins:
			log.Info().Msgf("%v (%s) wins after %d turns", e.Player, s.state.Profile(e.Player).Name, s.state.Turn())
		case game.GameDrawn:
			log.Info().Msgf("game drawn after %d turns", s.state.Turn())
		}
	}

	Dispatch(s.sink, events)
	if s.acknowledge && len(events) > 0 {
		s.pending = true
	}
}

// State returns the current immutable game state.
func (s *Session) State() *game.GameState {
	return s.state
}

func (s *Session) CurrentPlayer() game.PlayerID {
	return s.state.CurrentPlayer()
}

func (s *Session) CurrentPhaseName() string {
	return s.state.Phase().String()
}

func (s *Session) LegalSelectableNodes() []game.Coordinate {
	return s.state.LegalSelectableNodes()
}

func (s *Session) LegalDestinationNodes() []game.Coordinate {
	return s.state.LegalDestinationNodes()
}

func (s *Session) MillsContaining(c game.Coordinate) []game.Mill {
	return s.state.MillsContaining(c)
}
