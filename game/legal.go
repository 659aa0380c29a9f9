package game

// LegalActions evaluates the mask for the player to move. Moving into the
// opponent is not filtered here; the move resolves as a bump.
func LegalActions(s GameState) ActionMask {
	var mask ActionMask

	me := s.Players[s.CurrentPlayer]
	pos := me.Position
	_, carrying := s.CarriedGoal(s.CurrentPlayer)
	_, goalHere := s.FreeGoalAt(pos)

	mask[MoveNorth] = pos.Row > 0
	mask[MoveSouth] = pos.Row < Rows-1
	mask[MoveEast] = pos.Col < Cols-1
	mask[MoveWest] = pos.Col > 0
	mask[GrabGoal] = !carrying && goalHere
	mask[PickUpRing] = carrying && me.CarriedRings < MaxCarriedRings && s.Supply[s.CurrentPlayer][pos.Index()] > 0
	mask[ReleaseGoal] = carrying && !goalHere

	return mask
}
