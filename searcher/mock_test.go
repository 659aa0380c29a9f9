package searcher

import (
	"fmt"

	"ringrush/game"
)

type mockMove struct {
	id int
}

func (m mockMove) IsStochastic() bool {
	return false
}

// mockState records played moves and offers a fixed move list.
type mockState struct {
	player game.Player
	moves  []game.Move
	played []game.Move
	hash   game.StateHash
}

func (m mockState) Player() game.Player {
	return m.player
}

func (m mockState) LegalMoves() []game.Move {
	return m.moves
}

func (m mockState) Play(move game.Move) game.State {
	played := append(append([]game.Move{}, m.played...), move)
	return mockState{player: m.player.Opponent(), played: played}
}

func (m mockState) Hash() game.StateHash {
	return m.hash
}

func (m mockState) Outcome() (game.Rewards, bool) {
	return game.Rewards{}, len(m.moves) == 0
}

// raceState is a counting race: players alternately add 1 or 2 to a total
// and whoever reaches target wins.
type raceState struct {
	player game.Player
	total  int
	target int
}

func (r raceState) Player() game.Player {
	return r.player
}

func (r raceState) LegalMoves() []game.Move {
	if r.total >= r.target {
		return nil
	}
	return []game.Move{mockMove{id: 1}, mockMove{id: 2}}
}

func (r raceState) Play(move game.Move) game.State {
	step, ok := move.(mockMove)
	if !ok {
		panic(fmt.Sprintf("unexpected move type %T", move))
	}
	return raceState{player: r.player.Opponent(), total: r.total + step.id, target: r.target}
}

func (r raceState) Hash() game.StateHash {
	return game.StateHash(r.total*2 + int(r.player))
}

// Outcome credits the player who made the last move.
func (r raceState) Outcome() (game.Rewards, bool) {
	if r.total < r.target {
		return game.Rewards{}, false
	}
	winner := r.player.Opponent()
	var rewards game.Rewards
	rewards[winner] = Win
	rewards[winner.Opponent()] = Loss
	return rewards, true
}

func evaluateRace(state game.State) float64 {
	return 0
}
