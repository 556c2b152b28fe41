package communication

import (
	"morris/game"
)

// Node is the wire form of a board coordinate.
type Node struct {
	X    int `json:"x"`
	Y    int `json:"y"`
	Ring int `json:"ring"`
}

func FromCoordinate(c game.Coordinate) Node {
	return Node{X: c.X, Y: c.Y, Ring: c.Ring}
}

func (n Node) Coordinate() game.Coordinate {
	return game.Coordinate{X: n.X, Y: n.Y, Ring: n.Ring}
}

func fromCoordinates(cs []game.Coordinate) []Node {
	nodes := make([]Node, len(cs))
	for i, c := range cs {
		nodes[i] = FromCoordinate(c)
	}
	return nodes
}

// EdgeView is one undirected line of the board.
type EdgeView struct {
	A Node `json:"a"`
	B Node `json:"b"`
}

// BoardView is the static shape of a board, enough to render it.
type BoardView struct {
	Nodes []Node     `json:"nodes"`
	Edges []EdgeView `json:"edges"`
}

func NewBoardView(topology *game.Topology) BoardView {
	edges := topology.Edges()
	view := BoardView{
		Nodes: fromCoordinates(topology.Nodes()),
		Edges: make([]EdgeView, len(edges)),
	}
	for i, e := range edges {
		view.Edges[i] = EdgeView{A: FromCoordinate(e.A), B: FromCoordinate(e.B)}
	}
	return view
}

type TokenView struct {
	Node  Node   `json:"node"`
	Owner string `json:"owner"`
}

type PlayerView struct {
	game.Profile
	InSupply int  `json:"inSupply"`
	OnBoard  int  `json:"onBoard"`
	Living   int  `json:"living"`
	CanFly   bool `json:"canFly"`
}

// Snapshot is everything a client needs to render a game.
type Snapshot struct {
	ID            string        `json:"id"`
	Rules         game.Rules    `json:"rules"`
	Board         BoardView     `json:"board"`
	Phase         string        `json:"phase"`
	CurrentPlayer string        `json:"currentPlayer"`
	Players       [2]PlayerView `json:"players"`
	Tokens        []TokenView   `json:"tokens"`
	Mills         [][]Node      `json:"mills"`
	Selected      *Node         `json:"selected,omitempty"`
	Selectable    []Node        `json:"selectable"`
	Destinations  []Node        `json:"destinations"`
	Winner        string        `json:"winner,omitempty"`
	Terminal      bool          `json:"terminal"`
	Turn          int           `json:"turn"`
	Awaiting      bool          `json:"awaiting"` // Input blocked until acknowledged
}

func NewSnapshot(id string, state *game.GameState, awaiting bool) Snapshot {
	snapshot := Snapshot{
		ID:            id,
		Rules:         state.Rules(),
		Board:         NewBoardView(state.Topology()),
		Phase:         state.Phase().String(),
		CurrentPlayer: state.CurrentPlayer().String(),
		Tokens:        []TokenView{},
		Mills:         [][]Node{},
		Selectable:    fromCoordinates(state.LegalSelectableNodes()),
		Destinations:  fromCoordinates(state.LegalDestinationNodes()),
		Terminal:      state.Terminal(),
		Turn:          state.Turn(),
		Awaiting:      awaiting,
	}

	for _, p := range []game.PlayerID{game.PlayerOne, game.PlayerTwo} {
		snapshot.Players[p] = PlayerView{
			Profile:  state.Profile(p),
			InSupply: state.InSupply(p),
			OnBoard:  state.OnBoard(p),
			Living:   state.Living(p),
			CanFly:   state.CanFly(p),
		}
	}
	for _, c := range state.Board().OccupiedNodes() {
		snapshot.Tokens = append(snapshot.Tokens, TokenView{Node: FromCoordinate(c), Owner: state.OwnerAt(c).String()})
	}
	for _, mill := range state.Mills() {
		snapshot.Mills = append(snapshot.Mills, fromCoordinates(mill))
	}
	if selected, ok := state.Selected(); ok {
		node := FromCoordinate(selected)
		snapshot.Selected = &node
	}
	if winner := state.Winner(); winner != game.NoPlayer {
		snapshot.Winner = winner.String()
	}
	return snapshot
}

// Event types, named after the notifications of a session
const (
	PhaseChanged  = "PhaseChanged"
	TokenSelected = "TokenSelected"
	TokenPlaced   = "TokenPlaced"
	TokenMoved    = "TokenMoved"
	TokenCaptured = "TokenCaptured"
	MillFormed    = "MillFormed"
	PlayerWins    = "PlayerWins"
	DrawGame      = "DrawGame"
)

// EventMessage is one notification of a session as streamed to clients.
type EventMessage struct {
	Type         string `json:"type"`
	Phase        string `json:"phase,omitempty"`
	Player       string `json:"player,omitempty"`
	Node         *Node  `json:"node,omitempty"`
	From         *Node  `json:"from,omitempty"`
	To           *Node  `json:"to,omitempty"`
	Destinations []Node `json:"destinations,omitempty"`
	Mill         []Node `json:"mill,omitempty"`
}

func nodeRef(c game.Coordinate) *Node {
	n := FromCoordinate(c)
	return &n
}

func PhaseChangedMessage(phase game.Phase, player game.PlayerID) EventMessage {
	return EventMessage{Type: PhaseChanged, Phase: phase.String(), Player: player.String()}
}

func TokenSelectedMessage(node game.Coordinate, destinations []game.Coordinate) EventMessage {
	return EventMessage{Type: TokenSelected, Node: nodeRef(node), Destinations: fromCoordinates(destinations)}
}

func TokenPlacedMessage(node game.Coordinate, player game.PlayerID) EventMessage {
	return EventMessage{Type: TokenPlaced, Node: nodeRef(node), Player: player.String()}
}

func TokenMovedMessage(from, to game.Coordinate, player game.PlayerID) EventMessage {
	return EventMessage{Type: TokenMoved, From: nodeRef(from), To: nodeRef(to), Player: player.String()}
}

func TokenCapturedMessage(node game.Coordinate) EventMessage {
	return EventMessage{Type: TokenCaptured, Node: nodeRef(node)}
}

func MillFormedMessage(mill game.Mill) EventMessage {
	return EventMessage{Type: MillFormed, Mill: fromCoordinates(mill)}
}

func PlayerWinsMessage(player game.PlayerID) EventMessage {
	return EventMessage{Type: PlayerWins, Player: player.String()}
}

func DrawGameMessage() EventMessage {
	return EventMessage{Type: DrawGame}
}

// CreateRequest starts a game from a named level or from explicit rules.
// Both are optional; the default level is played without them.
type CreateRequest struct {
	Level    string           `json:"level,omitempty"`
	Rules    *game.Rules      `json:"rules,omitempty"`
	Profiles *[2]game.Profile `json:"profiles,omitempty"`
}

type SelectRequest struct {
	Node *Node `json:"node" binding:"required"`
}

type ErrorResponse struct {
	Error  string `json:"error"`
	Reason string `json:"reason,omitempty"` // Rejection reason of an illegal selection
}
