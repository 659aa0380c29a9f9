package agent

import (
	"golang.org/x/exp/rand"

	"ringrush/game"
	"ringrush/searcher"
)

// GreedyRollout lets the search play out episodes with a greedy agent
// instead of uniformly random moves.
func GreedyRollout(greedy Agent) searcher.RolloutPolicy {
	return func(state game.State, moves []game.Move, _ *rand.Rand) game.Move {
		move, _ := greedy.FindMove(state, nil)
		if move == nil {
			return moves[0]
		}
		return move
	}
}
