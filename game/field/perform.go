package field

import (
	"fmt"

	"ringrush/game"
)

// Perform applies a for robot i without touching the turn or the clock.
func (f Field) Perform(i game.Player, a Action) (Field, error) {
	if !a.Valid() {
		return f, fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	if !f.LegalActions(i)[a] {
		return f, fmt.Errorf("%w: %s for robot %d at %+v", ErrIllegalAction, a, int(i), f.Robots[i].Position)
	}
	f.apply(i, a)
	return f, nil
}

func (f *Field) apply(i game.Player, a Action) {
	r := &f.Robots[i]
	cell := r.Position.Index()

	switch a {
	case MoveNorth, MoveSouth, MoveEast, MoveWest:
		d, _ := a.Direction()
		r.Position = r.Position.Offset(d)
		if r.Goal != NoGoal {
			f.Goals[r.Goal].Position = r.Position
		}
	case GrabMobileGoal:
		goal, _ := f.freeGoalAt(r.Position)
		f.Goals[goal].Placement = game.Held
		r.Goal = goal
	case ReleaseMobileGoal:
		f.Goals[r.Goal].Placement = game.Free
		f.Goals[r.Goal].Position = r.Position
		r.Goal = NoGoal
	case TipMobileGoal, UntipMobileGoal:
		goal, _ := f.freeGoalAt(r.Position)
		f.Goals[goal].Tipped = a == TipMobileGoal
	case PickUpRed:
		f.Supply[game.Red][cell]--
		r.Rings.PushBack(RedRing)
	case PickUpBlue:
		f.Supply[game.Blue][cell]--
		r.Rings.PushBack(BlueRing)
	case ReleaseRing:
		ring := r.Rings.PopBack()
		f.Supply[ring.Player()][cell]++
	case ScoreMobileGoal:
		f.Goals[r.Goal].Rings.PushBack(r.Rings.PopFront())
	case DescoreMobileGoal:
		r.Rings.PushFront(f.Goals[r.Goal].Rings.PopBack())
	case ScoreWallStake:
		stake, _ := f.stakeAt(r.Position)
		f.Stakes[stake].Rings.PushBack(r.Rings.PopFront())
	case DescoreWallStake:
		stake, _ := f.stakeAt(r.Position)
		r.Rings.PushFront(f.Stakes[stake].Rings.PopBack())
	}
}

// Step plays a for the robot to move and hands the turn over. The clock runs
// down after blue's ply.
func (f Field) Step(a Action) (Field, error) {
	if f.Terminated() {
		return f, ErrTimeUp
	}
	next, err := f.Perform(f.ToMove, a)
	if err != nil {
		return f, err
	}
	if next.ToMove == game.Blue {
		next.TimeRemaining--
	}
	next.ToMove = next.ToMove.Opponent()
	return next, nil
}

func (f Field) Terminated() bool {
	return f.TimeRemaining <= 0
}
