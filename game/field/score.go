package field

import "ringrush/game"

// goalMultiplier: a free goal in a bottom corner counts double and one in a
// top corner counts against its rings. Held goals count once.
func goalMultiplier(g MobileGoal) int {
	if !g.IsFree() {
		return 1
	}
	corner := g.Position.Col == 0 || g.Position.Col == Cols-1
	switch {
	case corner && g.Position.Row == Rows-1:
		return 2
	case corner && g.Position.Row == 0:
		return -1
	default:
		return 1
	}
}

// stackScore gives each ring's color m points and the top ring's color 2m.
func stackScore(s Stack, m int) [game.NumPlayers]int {
	var score [game.NumPlayers]int
	if s.Empty() {
		return score
	}
	score[game.Red] = s.Count(RedRing) * m
	score[game.Blue] = s.Count(BlueRing) * m
	score[s.Back().Player()] += 2 * m
	return score
}

// Scores totals goals and stakes per color, never below zero.
func (f Field) Scores() [game.NumPlayers]int {
	var total [game.NumPlayers]int
	add := func(score [game.NumPlayers]int) {
		total[game.Red] += score[game.Red]
		total[game.Blue] += score[game.Blue]
	}

	for _, g := range f.Goals {
		add(stackScore(g.Rings, goalMultiplier(g)))
	}
	for _, s := range f.Stakes {
		add(stackScore(s.Rings, 1))
	}

	for p := range total {
		total[p] = max(total[p], 0)
	}
	return total
}
