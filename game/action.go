package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Action is one of the seven discrete actions of the core rules.
type Action int

const (
	MoveNorth Action = iota
	MoveSouth
	MoveEast
	MoveWest
	GrabGoal
	PickUpRing
	ReleaseGoal
)

const NumActions = 7

var actionNames = [NumActions]string{
	"move_north",
	"move_south",
	"move_east",
	"move_west",
	"grab_goal",
	"pick_up_ring",
	"release_goal",
}

// Actions lists every action in index order.
func Actions() []Action {
	actions := make([]Action, NumActions)
	for i := range actions {
		actions[i] = Action(i)
	}
	return actions
}

func (a Action) Valid() bool {
	return a >= 0 && a < NumActions
}

func (a Action) IsStochastic() bool {
	return false
}

func (a Action) String() string {
	if !a.Valid() {
		return fmt.Sprintf("action(%d)", int(a))
	}
	return actionNames[a]
}

// Direction reports the movement offset of a move action.
func (a Action) Direction() (Direction, bool) {
	if a >= MoveNorth && a <= MoveWest {
		return Directions[a], true
	}
	return Direction{}, false
}

// MoveToward is the move action that steps in direction d.
func MoveToward(d Direction) Action {
	for i, dir := range Directions {
		if dir == d {
			return Action(i)
		}
	}
	panic(fmt.Sprintf("unknown direction %+v", d))
}

// ParseAction accepts an action name (as printed by String) or its index.
func ParseAction(s string) (Action, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range actionNames {
		if n == name {
			return Action(i), nil
		}
	}
	if index, err := strconv.Atoi(name); err == nil {
		a := Action(index)
		if !a.Valid() {
			return a, fmt.Errorf("%w: %d", ErrInvalidAction, index)
		}
		return a, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidAction, s)
}

// ActionMask flags the legal actions of a ply.
type ActionMask [NumActions]bool

func (m ActionMask) Legal(a Action) bool {
	return a.Valid() && m[a]
}

// Actions lists the legal actions in index order.
func (m ActionMask) Actions() []Action {
	actions := make([]Action, 0, NumActions)
	for i, ok := range m {
		if ok {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

func (m ActionMask) Count() int {
	n := 0
	for _, ok := range m {
		if ok {
			n++
		}
	}
	return n
}
