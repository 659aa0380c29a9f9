package game

// Observation channels, all from the point of view of the player to move.
const (
	OwnSupplyChannel = iota
	OpponentSupplyChannel
	OwnScoredChannel
	OpponentScoredChannel
	TopChannel
	FreeGoalChannel
	PlayersChannel
	NumChannels
)

type Observation [NumChannels][Rows][Cols]float32

// Observe encodes s as "self versus opponent" planes. Goal planes are written
// in goal order, so a later goal wins a shared cell.
func Observe(s GameState) Observation {
	var obs Observation
	me := s.CurrentPlayer
	opp := me.Opponent()

	for i := 0; i < Cells; i++ {
		c := CellAt(i)
		obs[OwnSupplyChannel][c.Row][c.Col] = float32(s.Supply[me][i])
		obs[OpponentSupplyChannel][c.Row][c.Col] = float32(s.Supply[opp][i])
	}

	for _, g := range s.Goals {
		r, c := g.Position.Row, g.Position.Col
		obs[OwnScoredChannel][r][c] = float32(g.Rings[me])
		obs[OpponentScoredChannel][r][c] = float32(g.Rings[opp])
		obs[TopChannel][r][c] = g.Top.Sign(me)
		if g.IsFree() {
			obs[FreeGoalChannel][r][c] = 1
		}
	}

	mine := s.Players[me].Position
	theirs := s.Players[opp].Position
	obs[PlayersChannel][mine.Row][mine.Col] = 1
	obs[PlayersChannel][theirs.Row][theirs.Col] = -1

	return obs
}

// Flatten lays the planes out channel by channel, row-major.
func (o Observation) Flatten() []float32 {
	flat := make([]float32, 0, NumChannels*Cells)
	for ch := range o {
		for r := range o[ch] {
			flat = append(flat, o[ch][r][:]...)
		}
	}
	return flat
}
