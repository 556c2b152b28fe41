package searcher

import "morris/game"

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const Win = 1.0   // Reward for winning outcome
const Loss = -Win // Reward for loss outcome (negate from opponent perspective)
const Draw = 0.0  // Reward for a drawn game

// MaxCutoff bounds rollouts, since the moving phase can repeat positions forever
const MaxCutoff = 200

type Node interface {
	SelectOrExpand(state game.State) (child Node, childState game.State, selected bool)
	Backup(reward Rewarder) Node
	Visits() float64
	ApplyLoss()
	Score(policy uct) float64
}

// Rewarder scores the outcome of an episode from the perspective of a player
type Rewarder func(player game.PlayerID) float64

// outcome rewards the winner of a finished game. NoPlayer means a draw.
func outcome(winner game.PlayerID) Rewarder {
	return func(player game.PlayerID) float64 {
		switch winner {
		case game.NoPlayer:
			return Draw
		case player:
			return Win
		default:
			return Loss
		}
	}
}

// evaluation spreads a heuristic score of the player to act at the cutoff
func evaluation(toAct game.PlayerID, score float64) Rewarder {
	return func(player game.PlayerID) float64 {
		if player == toAct {
			return score
		}
		return -score
	}
}
