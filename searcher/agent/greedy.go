package agent

import (
	"fmt"

	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/searcher"
)

// positiveCorners are the cells where a released goal counts double.
var positiveCorners = []game.Cell{{Row: game.Rows - 1, Col: 0}, {Row: game.Rows - 1, Col: game.Cols - 1}}

type greedyAgent struct{}

// NewGreedyAgent plays the core rules by a fixed plan: fetch the nearest free
// goal, fill it with rings of its own color, then park it in a free bottom
// corner.
func NewGreedyAgent() Agent {
	return greedyAgent{}
}

func (greedyAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	s, ok := state.(game.GameState)
	if !ok {
		panic(fmt.Sprintf("greedy agent cannot play %T", state))
	}
	return GreedyAction(s), metrics.SearchMetric{}
}

// GreedyAction picks the greedy action for the player to move.
func GreedyAction(s game.GameState) game.Action {
	me := s.CurrentPlayer
	pos := s.Players[me].Position
	mask := game.LegalActions(s)
	opponent := s.Players[me.Opponent()].Position
	passable := func(c game.Cell) bool { return c != opponent }

	step := func(targets map[game.Cell]bool) (game.Action, bool) {
		_, path := game.ShortestPath(pos, targets, passable)
		if len(path) == 0 {
			return 0, false
		}
		return game.MoveToward(path[0]), true
	}

	if _, carrying := s.CarriedGoal(me); !carrying {
		if mask[game.GrabGoal] {
			return game.GrabGoal
		}
		goals := map[game.Cell]bool{}
		for _, g := range s.Goals {
			if g.IsFree() {
				goals[g.Position] = true
			}
		}
		if move, ok := step(goals); ok {
			return move
		}
	} else {
		if mask[game.PickUpRing] {
			return game.PickUpRing
		}
		if s.Players[me].CarriedRings < game.MaxCarriedRings {
			rings := map[game.Cell]bool{}
			for i, count := range s.Supply[me] {
				if count > 0 {
					rings[game.CellAt(i)] = true
				}
			}
			if move, ok := step(rings); ok {
				return move
			}
		}

		corners := map[game.Cell]bool{}
		for _, c := range positiveCorners {
			if _, taken := s.FreeGoalAt(c); !taken {
				corners[c] = true
			}
		}
		if corners[pos] && mask[game.ReleaseGoal] {
			return game.ReleaseGoal
		}
		if move, ok := step(corners); ok {
			return move
		}
	}

	return mask.Actions()[0]
}
