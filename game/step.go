package game

import "fmt"

// Step plays one ply for the player to move and hands the turn over.
//
// An action outside the action set returns ErrInvalidAction, and an action the
// mask forbids returns ErrIllegalAction. In both cases the input state comes
// back untouched, turn and step count included, with its own metadata.
func Step(s GameState, a Action) (GameState, Metadata, error) {
	if !a.Valid() {
		return s, s.Metadata(), fmt.Errorf("%w: %d", ErrInvalidAction, int(a))
	}
	if !LegalActions(s)[a] {
		return s, s.Metadata(), fmt.Errorf("%w: %s for %s at %+v", ErrIllegalAction, a, s.CurrentPlayer, s.Players[s.CurrentPlayer].Position)
	}

	next := s
	next.apply(a)
	next.CurrentPlayer = s.CurrentPlayer.Opponent()
	next.StepCount = s.StepCount + 1

	return next, next.Metadata(), nil
}
