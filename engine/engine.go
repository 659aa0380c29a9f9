package engine

import (
	"ringrush/experiments/metrics"
	"ringrush/game"
)

// MaxMoves bounds a game whose state never reports an outcome.
const MaxMoves = 10000

type Engine interface {
	// Run plays a game till it is over or a max number of moves is reached
	Run() (result Result, gameMetric metrics.GameMetric, moveMetrics []metrics.MoveMetric)
}

type Result struct {
	Rewards    game.Rewards
	Scores     [game.NumPlayers]int
	Winner     game.Player // NoPlayer for a draw or an unfinished game
	Plies      int
	Terminated bool
}
