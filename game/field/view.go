package field

import "ringrush/game"

type GoalView struct {
	X      int    `json:"x"`
	Y      int    `json:"y"`
	Rings  string `json:"rings"`
	Tipped bool   `json:"tipped"`
}

type StakeView struct {
	Rings string `json:"rings"`
}

type RobotView struct {
	X     int    `json:"x"`
	Y     int    `json:"y"`
	Goal  int    `json:"goal"`
	IsRed bool   `json:"is_red"`
	Rings string `json:"rings"`
}

type ScoreView struct {
	Red  int `json:"red"`
	Blue int `json:"blue"`
}

type RingGrid [Rows][Cols]int

// View is the line protocol encoding of a field. X is the row and Y the
// column; a held goal reports -1 for both.
type View struct {
	Goals         []GoalView  `json:"goals"`
	Stakes        []StakeView `json:"stakes"`
	Robots        []RobotView `json:"robots"`
	TimeRemaining int         `json:"time_remaining"`
	LegalActions  []Action    `json:"legal_actions"`
	Scores        ScoreView   `json:"scores"`
	RedRings      RingGrid    `json:"red_rings"`
	BlueRings     RingGrid    `json:"blue_rings"`
	Error         string      `json:"error,omitempty"`
}

// View encodes f with the legal actions of robot i.
func (f Field) View(i game.Player) View {
	v := View{
		Goals:         make([]GoalView, 0, NumGoals),
		Stakes:        make([]StakeView, 0, NumStakes),
		Robots:        make([]RobotView, 0, NumRobots),
		TimeRemaining: f.TimeRemaining,
		LegalActions:  f.LegalActions(i).Actions(),
	}

	for _, g := range f.Goals {
		gv := GoalView{X: -1, Y: -1, Rings: g.Rings.String(), Tipped: g.Tipped}
		if g.IsFree() {
			gv.X, gv.Y = g.Position.Row, g.Position.Col
		}
		v.Goals = append(v.Goals, gv)
	}
	for _, s := range f.Stakes {
		v.Stakes = append(v.Stakes, StakeView{Rings: s.Rings.String()})
	}
	for _, r := range f.Robots {
		v.Robots = append(v.Robots, RobotView{
			X:     r.Position.Row,
			Y:     r.Position.Col,
			Goal:  r.Goal,
			IsRed: r.Red,
			Rings: r.Rings.String(),
		})
	}

	scores := f.Scores()
	v.Scores = ScoreView{Red: scores[game.Red], Blue: scores[game.Blue]}
	for idx := 0; idx < game.Cells; idx++ {
		c := game.CellAt(idx)
		v.RedRings[c.Row][c.Col] = f.Supply[game.Red][idx]
		v.BlueRings[c.Row][c.Col] = f.Supply[game.Blue][idx]
	}
	return v
}
