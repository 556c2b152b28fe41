package game

import (
	"fmt"
	"maps"
	"slices"
)

// PlayerID identifies one of the two players. NoPlayer marks the absence of
// a player, e.g. the winner of an unfinished game.
type PlayerID int

const (
	NoPlayer  PlayerID = -1
	PlayerOne PlayerID = 0
	PlayerTwo PlayerID = 1
)

// Opponent returns the other player. The opponent of NoPlayer is PlayerOne.
func (p PlayerID) Opponent() PlayerID {
	if p == PlayerOne {
		return PlayerTwo
	}
	return PlayerOne
}

func (p PlayerID) String() string {
	switch p {
	case PlayerOne:
		return "Player1"
	case PlayerTwo:
		return "Player2"
	default:
		return "None"
	}
}

// TokenState is where a token currently is in its lifecycle.
type TokenState int

const (
	InSupply TokenState = iota
	OnBoard
	Captured
)

// Token is one physical piece. Tokens go supply -> on board -> captured and
// are never reused.
type Token struct {
	ID    int
	Owner PlayerID
	State TokenState
	Node  Coordinate // Only meaningful while OnBoard
}

// Board wraps a topology with live occupancy.
type Board struct {
	topology  *Topology
	tokens    []Token
	occupancy map[Coordinate]int // Node -> token ID
}

// NewBoard creates an empty board with tokensPerPlayer tokens in each
// player's supply.
func NewBoard(t *Topology, tokensPerPlayer int) *Board {
	b := &Board{
		topology:  t,
		tokens:    make([]Token, 0, 2*tokensPerPlayer),
		occupancy: make(map[Coordinate]int),
	}
	for _, p := range []PlayerID{PlayerOne, PlayerTwo} {
		for i := 0; i < tokensPerPlayer; i++ {
			b.tokens = append(b.tokens, Token{ID: len(b.tokens), Owner: p, State: InSupply})
		}
	}
	return b
}

// Copy returns an independent board sharing the immutable topology.
func (b *Board) Copy() *Board {
	return &Board{
		topology:  b.topology,
		tokens:    slices.Clone(b.tokens),
		occupancy: maps.Clone(b.occupancy),
	}
}

func (b *Board) Topology() *Topology {
	return b.topology
}

// AllNodes returns every node coordinate.
func (b *Board) AllNodes() []Coordinate {
	return b.topology.Nodes()
}

// EmptyNodes returns the nodes without a token.
func (b *Board) EmptyNodes() []Coordinate {
	return b.filter(func(c Coordinate) bool {
		_, ok := b.occupancy[c]
		return !ok
	})
}

// OccupiedNodes returns the nodes holding a token.
func (b *Board) OccupiedNodes() []Coordinate {
	return b.filter(func(c Coordinate) bool {
		_, ok := b.occupancy[c]
		return ok
	})
}

// NodesOwnedBy returns the nodes holding one of p's tokens.
func (b *Board) NodesOwnedBy(p PlayerID) []Coordinate {
	return b.filter(func(c Coordinate) bool {
		return b.OwnerAt(c) == p
	})
}

func (b *Board) filter(keep func(Coordinate) bool) []Coordinate {
	var result []Coordinate
	for _, c := range b.topology.nodes {
		if keep(c) {
			result = append(result, c)
		}
	}
	return result
}

// ConnectingNodes returns the existing nodes adjacent to c.
func (b *Board) ConnectingNodes(c Coordinate) []Coordinate {
	return b.topology.Neighbors(c)
}

// IsEmpty reports whether c is a node without a token.
func (b *Board) IsEmpty(c Coordinate) bool {
	_, ok := b.occupancy[c]
	return b.topology.Has(c) && !ok
}

// IsFull reports whether every node holds a token.
func (b *Board) IsFull() bool {
	return len(b.occupancy) == b.topology.Len()
}

// TokenAt returns the token on c, if any.
func (b *Board) TokenAt(c Coordinate) (Token, bool) {
	id, ok := b.occupancy[c]
	if !ok {
		return Token{}, false
	}
	return b.tokens[id], true
}

// OwnerAt returns the owner of the token on c, or NoPlayer if c is empty.
func (b *Board) OwnerAt(c Coordinate) PlayerID {
	id, ok := b.occupancy[c]
	if !ok {
		return NoPlayer
	}
	return b.tokens[id].Owner
}

// LinkToken places token id on c. Linking onto an occupied node breaks the
// board contract and panics.
func (b *Board) LinkToken(c Coordinate, id int) {
	if !b.topology.Has(c) {
		panic(fmt.Sprintf("cannot link token %d: %v is not on the board", id, c))
	}
	if other, ok := b.occupancy[c]; ok {
		panic(fmt.Sprintf("cannot link token %d: %v already holds token %d", id, c, other))
	}
	b.occupancy[c] = id
	b.tokens[id].State = OnBoard
	b.tokens[id].Node = c
}

// UnlinkToken clears c and returns the token that was there. Unlinking an
// empty node does nothing.
func (b *Board) UnlinkToken(c Coordinate) (int, bool) {
	id, ok := b.occupancy[c]
	if !ok {
		return 0, false
	}
	delete(b.occupancy, c)
	b.tokens[id].Node = Coordinate{}
	return id, true
}

// PlaceFromSupply links p's next supply token onto c.
func (b *Board) PlaceFromSupply(p PlayerID, c Coordinate) int {
	for _, t := range b.tokens {
		if t.Owner == p && t.State == InSupply {
			b.LinkToken(c, t.ID)
			return t.ID
		}
	}
	panic(fmt.Sprintf("cannot place token: %v has no tokens in supply", p))
}

// MoveToken unlinks the token on from and links it onto to.
func (b *Board) MoveToken(from, to Coordinate) int {
	id, ok := b.UnlinkToken(from)
	if !ok {
		panic(fmt.Sprintf("cannot move token: %v is empty", from))
	}
	b.LinkToken(to, id)
	return id
}

// Capture removes the token on c from the game for good.
func (b *Board) Capture(c Coordinate) Token {
	id, ok := b.UnlinkToken(c)
	if !ok {
		panic(fmt.Sprintf("cannot capture token: %v is empty", c))
	}
	b.tokens[id].State = Captured
	return b.tokens[id]
}

// Tokens returns a copy of every token, captured ones included.
func (b *Board) Tokens() []Token {
	return slices.Clone(b.tokens)
}

func (b *Board) count(p PlayerID, state TokenState) int {
	n := 0
	for _, t := range b.tokens {
		if t.Owner == p && t.State == state {
			n++
		}
	}
	return n
}

// InSupply returns the number of p's tokens not yet placed.
func (b *Board) InSupply(p PlayerID) int {
	return b.count(p, InSupply)
}

// OnBoard returns the number of p's tokens on the board.
func (b *Board) OnBoard(p PlayerID) int {
	return b.count(p, OnBoard)
}

// Living returns the number of p's tokens that are not captured.
func (b *Board) Living(p PlayerID) int {
	return b.InSupply(p) + b.OnBoard(p)
}
