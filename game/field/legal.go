package field

import "ringrush/game"

// LegalActions evaluates the mask for robot i, whoever is to move.
func (f Field) LegalActions(i game.Player) ActionMask {
	var mask ActionMask
	r := f.Robots[i]
	pos := r.Position

	for d, dir := range game.Directions {
		mask[d] = f.open(pos.Offset(dir))
	}

	goal, onGoal := f.freeGoalAt(pos)
	switch {
	case r.Goal == NoGoal && onGoal:
		if f.Goals[goal].Tipped {
			mask[UntipMobileGoal] = true
		} else {
			mask[GrabMobileGoal] = true
			mask[TipMobileGoal] = true
		}
	case r.Goal != NoGoal:
		carried := f.Goals[r.Goal].Rings
		mask[ReleaseMobileGoal] = !onGoal
		mask[ScoreMobileGoal] = !r.Rings.Empty() && carried.Len() < MaxGoalRings
		mask[DescoreMobileGoal] = !carried.Empty() && r.Rings.Len() < MaxRobotRings
	}

	if r.Rings.Len() < MaxRobotRings {
		mask[PickUpRed] = f.Supply[game.Red][pos.Index()] > 0
		mask[PickUpBlue] = f.Supply[game.Blue][pos.Index()] > 0
	}
	mask[ReleaseRing] = !r.Rings.Empty()

	if stake, ok := f.stakeAt(pos); ok {
		rings := f.Stakes[stake].Rings
		mask[ScoreWallStake] = !r.Rings.Empty() && rings.Len() < MaxStakeRings
		mask[DescoreWallStake] = !rings.Empty() && r.Rings.Len() < MaxRobotRings
	}

	return mask
}
