package game

// EvaluateMaterial tallies each player's living tokens, tokens standing in
// mills and mobility to produce a score between -1 and 1 from the
// perspective of the player to act.
func EvaluateMaterial(s State) float64 {
	gs, ok := s.(*GameState)
	if !ok {
		panic("unexpected state type")
	}
	if gs.Terminal() {
		switch gs.winner {
		case NoPlayer:
			return 0
		case gs.current:
			return 1
		default:
			return -1
		}
	}

	current := gs.current
	opponent := current.Opponent()

	livingScore := normalize(float64(gs.board.Living(current)), float64(gs.board.Living(opponent)))
	millScore := normalize(gs.millTokens(current), gs.millTokens(opponent))
	mobilityScore := normalize(gs.mobility(current), gs.mobility(opponent))

	// Living tokens decide the game, so they weigh double
	return (2*livingScore + millScore + mobilityScore) / 4
}

func (s *GameState) millTokens(p PlayerID) float64 {
	n := 0
	for _, c := range s.board.NodesOwnedBy(p) {
		if s.inMill(c) {
			n++
		}
	}
	return float64(n)
}

// mobility counts the moves p could make on the current board.
func (s *GameState) mobility(p PlayerID) float64 {
	if s.board.InSupply(p) > 0 {
		return float64(len(s.board.EmptyNodes()))
	}
	n := 0
	for _, c := range s.board.NodesOwnedBy(p) {
		n += len(s.destinationsFrom(c))
	}
	return float64(n)
}

// normalize converts two values into a single score between -1 and 1
func normalize(value float64, otherValue float64) float64 {
	total := value + otherValue
	if total == 0 {
		return 0
	}
	// [a/(a+b)-0.5]*2 = (a-b)/(a+b)
	return (value - otherValue) / total
}
