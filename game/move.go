package game

import (
	"encoding/binary"
	"fmt"
	"hash/fnv"
	"slices"
)

// ActionKind is the kind of turn step an Action performs.
type ActionKind int

const (
	PlaceAction ActionKind = iota
	MoveAction
	CaptureAction
)

// Action is one complete step of a player: a placement, a move (two node
// selections) or a capture. From is only used by moves.
type Action struct {
	Kind ActionKind
	From Coordinate
	To   Coordinate
}

func (a Action) String() string {
	switch a.Kind {
	case PlaceAction:
		return fmt.Sprintf("place %v", a.To)
	case MoveAction:
		return fmt.Sprintf("move %v->%v", a.From, a.To)
	case CaptureAction:
		return fmt.Sprintf("capture %v", a.To)
	default:
		return "unknown"
	}
}

// Player returns the player to act.
func (s *GameState) Player() PlayerID {
	return s.current
}

// LegalActions returns all legal actions for the current player.
func (s *GameState) LegalActions() []Action {
	var actions []Action
	switch s.phase {
	case AddTokenFromSupply:
		for _, c := range s.selectable {
			actions = append(actions, Action{Kind: PlaceAction, To: c})
		}
	case MoveTokenOnBoard:
		for _, from := range s.selectable {
			for _, to := range s.destinationsFrom(from) {
				actions = append(actions, Action{Kind: MoveAction, From: from, To: to})
			}
		}
	case DestroyToken:
		for _, c := range s.selectable {
			actions = append(actions, Action{Kind: CaptureAction, To: c})
		}
	}
	return actions
}

// Play applies an action as the matching node selections. Playing an
// illegal action panics.
func (s *GameState) Play(a Action) State {
	next, _, err := s.Apply(a)
	if err != nil {
		panic(err)
	}
	return next
}

// Apply applies an action and returns the events of every selection it took.
func (s *GameState) Apply(a Action) (*GameState, []Event, error) {
	var events []Event
	cur := s
	if a.Kind == MoveAction {
		if cur.phase != MoveTokenOnBoard {
			return s, nil, fmt.Errorf("cannot apply %v in %v", a, cur.phase)
		}
		next, evs, err := cur.Select(a.From)
		if err != nil {
			return s, nil, err
		}
		cur = next
		events = append(events, evs...)
	}
	next, evs, err := cur.Select(a.To)
	if err != nil {
		return s, nil, err
	}
	return next, append(events, evs...), nil
}

// Hash identifies the position: phase, player to act, supplies, the owner
// of every node and the tracked mills. Move selections in progress are not
// part of it.
func (s *GameState) Hash() StateHash {
	hasher := fnv.New64a()

	binary.Write(hasher, binary.LittleEndian, int64(s.phase))
	binary.Write(hasher, binary.LittleEndian, int64(s.current))

	for _, p := range []PlayerID{PlayerOne, PlayerTwo} {
		binary.Write(hasher, binary.LittleEndian, int64(s.board.InSupply(p)))
	}

	for _, c := range s.board.topology.nodes {
		binary.Write(hasher, binary.LittleEndian, int64(s.board.OwnerAt(c)))
	}

	// Tracked mills decide capture protection, independent of their order
	mills := slices.Clone(s.mills)
	slices.SortFunc(mills, compareMills)
	binary.Write(hasher, binary.LittleEndian, int64(len(mills)))
	for _, m := range mills {
		for _, c := range m {
			binary.Write(hasher, binary.LittleEndian, [3]int64{int64(c.X), int64(c.Y), int64(c.Ring)})
		}
	}

	return StateHash(hasher.Sum64())
}
