package game

// Phase is the tag of the game phase state machine.
type Phase int

const (
	Load Phase = iota
	SwitchPlayer
	AddTokenFromSupply
	MoveTokenOnBoard
	EvaluatePlayerMove
	DestroyToken
	WinGame
	DrawGame
)

var phaseNames = map[Phase]string{
	Load:               "Load",
	SwitchPlayer:       "SwitchPlayer",
	AddTokenFromSupply: "AddTokenFromSupply",
	MoveTokenOnBoard:   "MoveTokenOnBoard",
	EvaluatePlayerMove: "EvaluatePlayerMove",
	DestroyToken:       "DestroyToken",
	WinGame:            "WinGame",
	DrawGame:           "DrawGame",
}

func (p Phase) String() string {
	if name, ok := phaseNames[p]; ok {
		return name
	}
	return "Unknown"
}

// Terminal reports whether the phase ends the session.
func (p Phase) Terminal() bool {
	return p == WinGame || p == DrawGame
}

// AwaitsInput reports whether the phase waits for a node selection.
func (p Phase) AwaitsInput() bool {
	return p == AddTokenFromSupply || p == MoveTokenOnBoard || p == DestroyToken
}
