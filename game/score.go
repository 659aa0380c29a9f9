package game

const (
	WinReward  = 1.0
	LossReward = -WinReward
	DrawReward = 0.0
)

// cornerMultiplier: goals in a bottom corner count double, goals in a top
// corner count against their rings.
func cornerMultiplier(c Cell) int {
	onEdge := c.Col == 0 || c.Col == Cols-1
	switch {
	case onEdge && c.Row == Rows-1:
		return 2
	case onEdge && c.Row == 0:
		return -1
	default:
		return 1
	}
}

// GoalScore is the contribution of one goal to each color's total.
func GoalScore(g Goal) [NumPlayers]int {
	score := g.Rings
	if owner, ok := g.Top.Player(); ok {
		score[owner] += 2
	}
	m := cornerMultiplier(g.Position)
	score[Red] *= m
	score[Blue] *= m
	return score
}

// Scores sums every goal's contribution per color.
func Scores(s GameState) [NumPlayers]int {
	var total [NumPlayers]int
	for _, g := range s.Goals {
		score := GoalScore(g)
		total[Red] += score[Red]
		total[Blue] += score[Blue]
	}
	return total
}

// Scorer is implemented by states that report running scores per seat.
type Scorer interface {
	Scores() [NumPlayers]int
}

func (s GameState) Scores() [NumPlayers]int {
	return Scores(s)
}

// TerminalRewards is zero-sum on the final ply and zero before it.
func TerminalRewards(s GameState) (Rewards, bool) {
	if !s.Terminated() {
		return Rewards{}, false
	}
	return RewardsFor(Scores(s)), true
}

// RewardsFor gives +1 to the strictly higher score and -1 to the other.
func RewardsFor(scores [NumPlayers]int) Rewards {
	switch {
	case scores[Red] > scores[Blue]:
		return Rewards{WinReward, LossReward}
	case scores[Blue] > scores[Red]:
		return Rewards{LossReward, WinReward}
	default:
		return Rewards{DrawReward, DrawReward}
	}
}

// Winner returns the seat with a positive reward, or NoPlayer on a draw.
func (r Rewards) Winner() Player {
	switch {
	case r[Red] > r[Blue]:
		return Red
	case r[Blue] > r[Red]:
		return Blue
	default:
		return NoPlayer
	}
}
