package agent

import (
	"fmt"
	"sort"

	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/searcher"
)

type Agent interface {
	// FindMove returns the chosen move and performance metrics (if collected)
	// from the search. lineage lists the plies since the agent's last move.
	FindMove(state game.State, lineage []searcher.Segment) (game.Move, metrics.SearchMetric)
}

// sortedMoves lists the policy's moves in a fixed order so that ties and
// sampling do not depend on map iteration.
func sortedMoves(policy searcher.Policy) []game.Move {
	moves := make([]game.Move, 0, len(policy))
	for move := range policy {
		moves = append(moves, move)
	}
	sort.Slice(moves, func(i, j int) bool {
		return fmt.Sprint(moves[i]) < fmt.Sprint(moves[j])
	})
	return moves
}
