package agent

import (
	"fmt"

	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/game/field"
	"ringrush/searcher"
)

type fieldGreedyAgent struct{}

// NewFieldGreedyAgent plays the extended rules: fetch a goal, score onto it,
// park a full goal in a free bottom corner, feed the wall stakes and collect
// rings of its own color.
func NewFieldGreedyAgent() Agent {
	return fieldGreedyAgent{}
}

func (fieldGreedyAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	f, ok := state.(field.Field)
	if !ok {
		panic(fmt.Sprintf("field greedy agent cannot play %T", state))
	}
	return FieldGreedyAction(f, f.ToMove), metrics.SearchMetric{}
}

// FieldGreedyAction picks the greedy action for robot i.
func FieldGreedyAction(f field.Field, i game.Player) field.Action {
	robot := f.Robots[i]
	mask := f.LegalActions(i)

	if robot.Goal == field.NoGoal {
		goals := map[game.Cell]bool{}
		for _, g := range f.Goals {
			if g.IsFree() && !g.Tipped && g.Rings.Len() < field.MaxGoalRings {
				goals[g.Position] = true
			}
		}
		_, path := f.ShortestPath(robot.Position, goals)
		if len(path) == 0 && goals[robot.Position] && mask[field.GrabMobileGoal] {
			return field.GrabMobileGoal
		}
		if len(path) > 0 {
			return path[0]
		}
	} else {
		if mask[field.ScoreMobileGoal] {
			return field.ScoreMobileGoal
		}
		if f.Goals[robot.Goal].Rings.Len() == field.MaxGoalRings {
			corners := map[game.Cell]bool{}
			for _, c := range positiveCorners {
				corners[c] = true
			}
			for _, g := range f.Goals {
				if g.IsFree() {
					delete(corners, g.Position)
				}
			}
			if len(corners) > 0 {
				end, path := f.ShortestPath(robot.Position, corners)
				if len(path) > 0 {
					return path[0]
				}
				// Only release in a positive corner, otherwise keep the goal
				if corners[end] && mask[field.ReleaseMobileGoal] {
					return field.ReleaseMobileGoal
				}
			}
		}
	}

	if !robot.Rings.Empty() {
		stakes := map[game.Cell]bool{}
		for _, s := range f.Stakes {
			if s.Rings.Len() < field.MaxStakeRings {
				stakes[s.Position] = true
			}
		}
		if _, path := f.ShortestPath(robot.Position, stakes); len(path) > 0 {
			return path[0]
		}
	}
	if mask[field.ScoreWallStake] {
		return field.ScoreWallStake
	}

	own := field.BlueRing
	if robot.Red {
		own = field.RedRing
	}
	if pickUp := field.PickUp(own); mask[pickUp] {
		return pickUp
	}
	rings := map[game.Cell]bool{}
	for idx, count := range f.Supply[own.Player()] {
		if count > 0 {
			rings[game.CellAt(idx)] = true
		}
	}
	if len(rings) > 0 {
		if _, path := f.ShortestPath(robot.Position, rings); len(path) > 0 {
			return path[0]
		}
	}

	return mask.Actions()[0]
}
