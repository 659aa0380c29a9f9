package field

import "ringrush/game"

// ShortestPath searches legal moves from begin, treating both robots as
// walls, and returns the first target reached with the moves leading there.
// An unreachable target set yields begin and no moves.
func (f Field) ShortestPath(begin game.Cell, targets map[game.Cell]bool) (game.Cell, []Action) {
	end, directions := game.ShortestPath(begin, targets, f.open)
	if directions == nil {
		return end, nil
	}
	moves := make([]Action, len(directions))
	for i, d := range directions {
		moves[i] = Action(game.MoveToward(d))
	}
	return end, moves
}
