package game

// Event is a notification produced by a transition. Events are facts about
// what already happened; the state has moved on by the time they are read.
type Event interface {
	event()
}

type PhaseChanged struct {
	Phase  Phase
	Player PlayerID
}

type TokenSelected struct {
	Node         Coordinate
	Player       PlayerID
	Destinations []Coordinate
}

type TokenPlaced struct {
	Node   Coordinate
	Player PlayerID
}

type TokenMoved struct {
	From   Coordinate
	To     Coordinate
	Player PlayerID
	Flying bool
}

type TokenCaptured struct {
	Node   Coordinate
	Owner  PlayerID
	Player PlayerID // The capturing player
}

type MillFormed struct {
	Nodes  Mill
	Player PlayerID
}

type PlayerWins struct {
	Player PlayerID
}

type GameDrawn struct{}

func (PhaseChanged) event()  {}
func (TokenSelected) event() {}
func (TokenPlaced) event()   {}
func (TokenMoved) event()    {}
func (TokenCaptured) event() {}
func (MillFormed) event()    {}
func (PlayerWins) event()    {}
func (GameDrawn) event()     {}
