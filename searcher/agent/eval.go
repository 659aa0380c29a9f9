package agent

import (
	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/searcher"
)

type evaluationAgent struct {
	mcts *searcher.MCTS
}

// NewEvaluationAgent returns a new agent for actual game play during evaluation.
func NewEvaluationAgent(mcts *searcher.MCTS) Agent {
	return evaluationAgent{mcts: mcts}
}

func (a evaluationAgent) FindMove(state game.State, lineage []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, lineage)
	return findMax(policy), metric
}

// findMax returns the most visited move, or nil for an empty policy.
func findMax(policy searcher.Policy) game.Move {
	var maxMove game.Move
	maxVisit := -1.0
	for _, move := range sortedMoves(policy) {
		if visit := policy[move]; visit > maxVisit {
			maxVisit = visit
			maxMove = move
		}
	}
	return maxMove
}
