package game

import "fmt"

const NumPlayers = 2

// Player is a seat at the table. Red always plays ring supply 0.
type Player int

const (
	Red Player = iota
	Blue
)

// NoPlayer marks a drawn game wherever a winner is reported.
const NoPlayer Player = -1

func (p Player) Opponent() Player {
	return 1 - p
}

func (p Player) String() string {
	switch p {
	case Red:
		return "red"
	case Blue:
		return "blue"
	case NoPlayer:
		return "none"
	default:
		return fmt.Sprintf("player(%d)", int(p))
	}
}

// PlayerState is a robot's position and the rings it has scored onto the
// goal it carries. Which goal it carries is recorded on the goal itself.
type PlayerState struct {
	Position     Cell `json:"position"`
	CarriedRings int  `json:"carried_rings"`
}

// Owner is the color of the top ring on a goal.
type Owner int8

const (
	Nobody Owner = iota
	OwnedByRed
	OwnedByBlue
)

func OwnerOf(p Player) Owner {
	if p == Red {
		return OwnedByRed
	}
	return OwnedByBlue
}

// Player returns the seat that owns the top ring, if any.
func (o Owner) Player() (Player, bool) {
	switch o {
	case OwnedByRed:
		return Red, true
	case OwnedByBlue:
		return Blue, true
	default:
		return NoPlayer, false
	}
}

// Sign is +1 for p, -1 for p's opponent and 0 for Nobody.
func (o Owner) Sign(p Player) float32 {
	owner, ok := o.Player()
	if !ok {
		return 0
	}
	if owner == p {
		return 1
	}
	return -1
}
