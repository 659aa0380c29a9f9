package field

import (
	"fmt"

	"ringrush/game"
)

// Field is searched and self-played through game.State like the core rules.
var _ game.State = Field{}

func (f Field) Player() game.Player {
	return f.ToMove
}

func (f Field) LegalMoves() []game.Move {
	if f.Terminated() {
		return nil
	}
	actions := f.LegalActions(f.ToMove).Actions()
	moves := make([]game.Move, len(actions))
	for i, a := range actions {
		moves[i] = a
	}
	return moves
}

func (f Field) Play(move game.Move) game.State {
	action, ok := move.(Action)
	if !ok {
		panic(fmt.Sprintf("unexpected move type %T", move))
	}
	next, err := f.Step(action)
	if err != nil {
		panic(fmt.Sprintf("cannot play %s: %v", action, err))
	}
	return next
}

func (f Field) Outcome() (game.Rewards, bool) {
	if !f.Terminated() {
		return game.Rewards{}, false
	}
	return game.RewardsFor(f.Scores()), true
}

// EvaluateScore is the relative score of the robot to move, in [-1, 1].
func EvaluateScore(s game.State) float64 {
	f, ok := s.(Field)
	if !ok {
		panic("unexpected state type")
	}
	scores := f.Scores()
	return game.Normalize(float64(scores[f.ToMove]), float64(scores[f.ToMove.Opponent()]))
}
