package searcher

import (
	"math"

	"ringrush/game"
)

// Hyperparameters for MCTS

const CSquared = 2.0 // Exploration constant

const (
	Win  = game.WinReward
	Loss = game.LossReward
	Draw = game.DrawReward
)

// MaxCutoff plays every rollout to the end of the game.
const MaxCutoff = math.MaxInt

// Policy maps each root move to its visit count.
type Policy map[game.Move]float64

type uct struct {
	numerator float64
}

func newUCT(cSquared float64, N float64) *uct {
	if N == 0 {
		panic("N cannot be 0")
	}
	return &uct{numerator: cSquared * math.Log(N)}
}

func (u uct) evaluate(q float64, n float64) float64 {
	if n == 0 {
		panic("n cannot be 0")
	}
	// UCT = q/n + sqrt(c^2*ln(N)/n)
	return q/n + math.Sqrt(u.numerator/n)
}
