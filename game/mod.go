package game

// TODO: State should live in the searcher package so that any game can be searched without the searcher importing game

type StateHash uint64

// State should be immutable - operations on State always return a new copy
type State interface {
	Player() PlayerID
	LegalActions() []Action
	Play(Action) State
	Hash() StateHash
	Winner() PlayerID
	Terminal() bool
}

// Evaluates the game state to a score between -1 and 1 indicating how
// favorable the current player's position is to a winning (positive) outcome.
type Evaluate func(State) float64
