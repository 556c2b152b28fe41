package game

import (
	"fmt"
	"slices"
)

// GameState is one immutable snapshot of a game session: the board, the
// tracked mills, the current phase and player. Select never mutates its
// receiver; it returns the next state together with the events of the
// transition.
type GameState struct {
	rules        Rules
	profiles     [2]Profile
	board        *Board
	phase        Phase
	current      PlayerID
	mills        []Mill       // Every mill currently standing on the board
	newMills     []Mill       // Mills formed by the last placement or move
	selected     *Coordinate  // Token picked by the first click of a move
	destinations []Coordinate // Legal destinations of the selected token
	selectable   []Coordinate // Legal targets of the current input phase
	winner       PlayerID
	turn         int
}

// New validates the configuration and runs the Load phase. The returned
// state waits for the first player's placement.
func New(rules Rules, profiles [2]Profile) (*GameState, []Event, error) {
	if err := rules.Validate(); err != nil {
		return nil, nil, err
	}
	if err := ValidateProfiles(profiles); err != nil {
		return nil, nil, err
	}

	s := &GameState{
		rules:    rules,
		profiles: profiles,
		phase:    Load,
		current:  NoPlayer,
		winner:   NoPlayer,
	}
	events := s.changePhase(Load)
	return s, events, nil
}

// Copy returns an independent copy of the state.
func (s *GameState) Copy() *GameState {
	c := *s
	c.board = s.board.Copy()
	c.mills = slices.Clone(s.mills)
	c.newMills = slices.Clone(s.newMills)
	c.destinations = slices.Clone(s.destinations)
	c.selectable = slices.Clone(s.selectable)
	if s.selected != nil {
		selected := *s.selected
		c.selected = &selected
	}
	return &c
}

// Select applies one node selection, the single input of the game. On
// rejection it returns the receiver unchanged with a *RejectionError.
func (s *GameState) Select(c Coordinate) (*GameState, []Event, error) {
	if s.phase.Terminal() {
		return s, nil, reject(s.phase, c, GameOver)
	}
	if !s.board.topology.Has(c) {
		return s, nil, reject(s.phase, c, UnknownNode)
	}

	next := s.Copy()
	var events []Event
	var err error
	switch s.phase {
	case AddTokenFromSupply:
		events, err = next.addToken(c)
	case MoveTokenOnBoard:
		events, err = next.moveToken(c)
	case DestroyToken:
		events, err = next.destroyToken(c)
	default:
		panic(fmt.Sprintf("phase %v does not accept input", s.phase))
	}
	if err != nil {
		return s, nil, err
	}
	return next, events, nil
}

// changePhase exits the current phase and enters p, following automatic
// transitions until a phase that waits for input or ends the game.
func (s *GameState) changePhase(p Phase) []Event {
	var events []Event
	for {
		s.exit(s.phase)
		s.phase = p
		next, entered := s.enter(p)
		events = append(events, PhaseChanged{Phase: p, Player: s.current})
		events = append(events, entered...)
		if next == p {
			return events
		}
		p = next
	}
}

// enter runs the entry action of p and returns the phase to move on to, p
// itself when the machine should stay.
func (s *GameState) enter(p Phase) (Phase, []Event) {
	switch p {
	case Load:
		s.board = NewBoard(newTopology(s.rules.Rings, s.rules.Diagonals, s.rules.CenterNode), s.rules.TokensPerPlayer)
		return SwitchPlayer, nil

	case SwitchPlayer:
		s.current = s.current.Opponent()
		s.turn++
		if s.board.InSupply(s.current) == 0 { // All of the player's tokens are on the board
			return MoveTokenOnBoard, nil
		}
		return AddTokenFromSupply, nil

	case AddTokenFromSupply:
		s.selectable = s.board.EmptyNodes()
		return p, nil

	case MoveTokenOnBoard:
		s.selectable = s.movableNodes(s.current)
		return p, nil

	case EvaluatePlayerMove:
		return s.evaluate()

	case DestroyToken:
		s.selectable = s.capturableNodes(s.current.Opponent())
		return p, nil

	case WinGame:
		s.winner = s.current
		return p, []Event{PlayerWins{Player: s.current}}

	case DrawGame:
		return p, []Event{GameDrawn{}}

	default:
		panic(fmt.Sprintf("unknown phase %d", p))
	}
}

func (s *GameState) exit(p Phase) {
	s.selected = nil
	s.destinations = nil
	s.selectable = nil
	if p == EvaluatePlayerMove {
		s.newMills = nil
	}
}

func (s *GameState) evaluate() (Phase, []Event) {
	// The player has made at least one mill and must destroy an enemy token
	if len(s.newMills) > 0 {
		events := make([]Event, 0, len(s.newMills))
		for _, m := range s.newMills {
			events = append(events, MillFormed{Nodes: m, Player: s.current})
		}
		return DestroyToken, events
	}
	// The board is full and nobody can act
	if s.board.IsFull() {
		return DrawGame, nil
	}
	// The opponent is boxed in
	if !s.HasLegalMoves(s.current.Opponent()) {
		return WinGame, nil
	}
	return SwitchPlayer, nil
}

func (s *GameState) addToken(c Coordinate) ([]Event, error) {
	if !s.board.IsEmpty(c) {
		return nil, reject(s.phase, c, NotEmptyNode)
	}

	s.board.PlaceFromSupply(s.current, c)
	s.trackMills(nil, c)

	events := []Event{TokenPlaced{Node: c, Player: s.current}}
	return append(events, s.changePhase(EvaluatePlayerMove)...), nil
}

// moveToken implements the two-click protocol: the first click picks one of
// the player's own tokens, the second one a legal destination. Clicking
// another own token picks that one instead.
func (s *GameState) moveToken(c Coordinate) ([]Event, error) {
	owner := s.board.OwnerAt(c)

	if owner == s.current {
		dests := s.destinationsFrom(c)
		if len(dests) == 0 {
			return nil, reject(s.phase, c, NotAdjacent)
		}
		selected := c
		s.selected = &selected
		s.destinations = dests
		return []Event{TokenSelected{Node: c, Player: s.current, Destinations: slices.Clone(dests)}}, nil
	}

	if s.selected == nil {
		return nil, reject(s.phase, c, NotOwnToken)
	}
	if owner != NoPlayer {
		return nil, reject(s.phase, c, NotEmptyNode)
	}
	if !slices.Contains(s.destinations, c) {
		return nil, reject(s.phase, c, NotAdjacent)
	}

	from := *s.selected
	flying := s.CanFly(s.current)
	s.board.MoveToken(from, c)
	s.trackMills(&from, c)

	events := []Event{TokenMoved{From: from, To: c, Player: s.current, Flying: flying}}
	return append(events, s.changePhase(EvaluatePlayerMove)...), nil
}

func (s *GameState) destroyToken(c Coordinate) ([]Event, error) {
	enemy := s.current.Opponent()
	if s.board.OwnerAt(c) != enemy {
		return nil, reject(s.phase, c, NotEnemyToken)
	}
	if !slices.Contains(s.selectable, c) {
		return nil, reject(s.phase, c, ProtectedByMill)
	}

	s.board.Capture(c)
	s.pruneMills(c)

	events := []Event{TokenCaptured{Node: c, Owner: enemy, Player: s.current}}
	if s.board.Living(enemy) < s.rules.TokensForMill || !s.HasLegalMoves(enemy) {
		return append(events, s.changePhase(WinGame)...), nil
	}
	return append(events, s.changePhase(SwitchPlayer)...), nil
}

// trackMills records the mills formed at pivot and drops every mill that
// included the vacated node, if any.
func (s *GameState) trackMills(vacated *Coordinate, pivot Coordinate) {
	if vacated != nil {
		s.pruneMills(*vacated)
	}
	s.newMills = s.board.FindMills(pivot, s.current, s.rules.TokensForMill)
	for _, m := range s.newMills {
		s.mills = appendUnique(s.mills, m)
	}
}

func (s *GameState) pruneMills(c Coordinate) {
	s.mills = slices.DeleteFunc(s.mills, func(m Mill) bool {
		return m.Contains(c)
	})
}

// CanFly reports whether p may move to any empty node. It is evaluated from
// the current token count every time.
func (s *GameState) CanFly(p PlayerID) bool {
	return s.board.Living(p) <= s.rules.MaxTokensForFlying
}

// HasLegalMoves reports whether p could act if it were p's turn.
func (s *GameState) HasLegalMoves(p PlayerID) bool {
	if s.CanFly(p) || s.board.InSupply(p) > 0 {
		return len(s.board.EmptyNodes()) > 0
	}
	for _, c := range s.board.NodesOwnedBy(p) {
		for _, n := range s.board.ConnectingNodes(c) {
			if s.board.IsEmpty(n) {
				return true
			}
		}
	}
	return false
}

func (s *GameState) destinationsFrom(c Coordinate) []Coordinate {
	if s.CanFly(s.board.OwnerAt(c)) {
		return s.board.EmptyNodes()
	}
	var dests []Coordinate
	for _, n := range s.board.ConnectingNodes(c) {
		if s.board.IsEmpty(n) {
			dests = append(dests, n)
		}
	}
	return dests
}

func (s *GameState) movableNodes(p PlayerID) []Coordinate {
	var nodes []Coordinate
	for _, c := range s.board.NodesOwnedBy(p) {
		if len(s.destinationsFrom(c)) > 0 {
			nodes = append(nodes, c)
		}
	}
	return nodes
}

// capturableNodes returns the enemy nodes outside of any mill, or every enemy
// node when all of them are protected.
func (s *GameState) capturableNodes(enemy PlayerID) []Coordinate {
	all := s.board.NodesOwnedBy(enemy)
	outside := slices.DeleteFunc(slices.Clone(all), s.inMill)
	if len(outside) == 0 {
		return all
	}
	return outside
}

func (s *GameState) inMill(c Coordinate) bool {
	for _, m := range s.mills {
		if m.Contains(c) {
			return true
		}
	}
	return false
}

// Phase returns the current phase.
func (s *GameState) Phase() Phase {
	return s.phase
}

// CurrentPlayer returns the player whose turn it is.
func (s *GameState) CurrentPlayer() PlayerID {
	return s.current
}

// LegalSelectableNodes returns the nodes the current player may click in the
// current phase: empty nodes while placing, movable own tokens while moving,
// capturable enemy tokens while destroying.
func (s *GameState) LegalSelectableNodes() []Coordinate {
	return slices.Clone(s.selectable)
}

// LegalDestinationNodes returns where the selected token may move, if a
// token is selected.
func (s *GameState) LegalDestinationNodes() []Coordinate {
	return slices.Clone(s.destinations)
}

// Selected returns the token node picked by the first click of a move.
func (s *GameState) Selected() (Coordinate, bool) {
	if s.selected == nil {
		return Coordinate{}, false
	}
	return *s.selected, true
}

// MillsContaining returns the tracked mills that include c.
func (s *GameState) MillsContaining(c Coordinate) []Mill {
	var result []Mill
	for _, m := range s.mills {
		if m.Contains(c) {
			result = append(result, m)
		}
	}
	return result
}

// Mills returns every tracked mill.
func (s *GameState) Mills() []Mill {
	return slices.Clone(s.mills)
}

// Winner returns the winning player, or NoPlayer.
func (s *GameState) Winner() PlayerID {
	return s.winner
}

// Terminal reports whether the game is won or drawn.
func (s *GameState) Terminal() bool {
	return s.phase.Terminal()
}

// Board returns a copy of the board. Changes to it do not affect the game.
func (s *GameState) Board() *Board {
	return s.board.Copy()
}

// Topology returns the shared, immutable board shape.
func (s *GameState) Topology() *Topology {
	return s.board.topology
}

// OwnerAt returns the owner of the token on c, or NoPlayer.
func (s *GameState) OwnerAt(c Coordinate) PlayerID {
	return s.board.OwnerAt(c)
}

func (s *GameState) InSupply(p PlayerID) int { return s.board.InSupply(p) }
func (s *GameState) OnBoard(p PlayerID) int  { return s.board.OnBoard(p) }
func (s *GameState) Living(p PlayerID) int   { return s.board.Living(p) }

func (s *GameState) Rules() Rules {
	return s.rules
}

func (s *GameState) Profiles() [2]Profile {
	return s.profiles
}

// Profile returns the identity of p.
func (s *GameState) Profile(p PlayerID) Profile {
	if p == NoPlayer {
		return Profile{}
	}
	return s.profiles[p]
}

// Turn counts player switches since the start of the game.
func (s *GameState) Turn() int {
	return s.turn
}
