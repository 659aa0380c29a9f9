package game

import "math"

// EvaluateScore compares both colors' current totals to produce a relative
// score between -1 and 1 from the current player's perspective
func EvaluateScore(s State) float64 {
	gs, ok := s.(GameState)
	if !ok {
		panic("unexpected state type")
	}
	scores := Scores(gs)
	me := gs.CurrentPlayer
	return Normalize(float64(scores[me]), float64(scores[me.Opponent()]))
}

// EvaluatePotential adds the rings each color could still score onto goals
// it carries, weighted down, to the current totals.
func EvaluatePotential(s State) float64 {
	gs, ok := s.(GameState)
	if !ok {
		panic("unexpected state type")
	}
	scores := Scores(gs)
	me := gs.CurrentPlayer
	opp := me.Opponent()

	score := float64(scores[me]) + 0.5*gs.potential(me)
	otherScore := float64(scores[opp]) + 0.5*gs.potential(opp)
	return (Normalize(score, otherScore) + EvaluateScore(s)) / 2
}

// potential counts the supply a carrying player can still reach before
// filling the goal.
func (s GameState) potential(p Player) float64 {
	if _, ok := s.CarriedGoal(p); !ok {
		return 0
	}
	remaining := 0
	for _, count := range s.Supply[p] {
		remaining += count
	}
	room := MaxCarriedRings - s.Players[p].CarriedRings
	return float64(min(remaining, room))
}

// Normalize maps two totals onto [-1, 1]; totals may be negative.
func Normalize(value float64, otherValue float64) float64 {
	total := math.Abs(value) + math.Abs(otherValue)
	if total == 0 {
		return 0
	}
	return (value - otherValue) / total
}
