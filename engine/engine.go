package engine

import (
	"morris/experiments/metrics"
	"morris/game"
)

// MaxMoves bounds headless games, since the moving phase can cycle forever
const MaxMoves = 1000

type Runner interface {
	// Run plays a game till there's a winner, a draw or a max number of moves is reached
	Run() (winner game.PlayerID, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}
