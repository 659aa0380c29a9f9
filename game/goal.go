package game

const NumGoals = 3

type GoalID int

// Placement tells whether a goal rests on the board or is held by a robot.
type Placement int8

const (
	Free Placement = iota
	Held
)

// Goal is a movable scoring object. A free goal rests on Position; a held
// goal's Position follows its Carrier.
type Goal struct {
	Position  Cell            `json:"position"`
	Placement Placement       `json:"placement"`
	Carrier   Player          `json:"carrier"`
	Rings     [NumPlayers]int `json:"rings"`
	Top       Owner           `json:"top"`
}

func (g Goal) IsFree() bool {
	return g.Placement == Free
}

func (g Goal) HeldBy(p Player) bool {
	return g.Placement == Held && g.Carrier == p
}

func (g Goal) TotalRings() int {
	return g.Rings[Red] + g.Rings[Blue]
}

var initialGoals = [NumGoals]Goal{
	{Position: Cell{Row: 1, Col: 2}, Placement: Free, Carrier: NoPlayer},
	{Position: Cell{Row: 2, Col: 2}, Placement: Free, Carrier: NoPlayer},
	{Position: Cell{Row: 3, Col: 2}, Placement: Free, Carrier: NoPlayer},
}
