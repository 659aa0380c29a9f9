package field

import (
	"fmt"
	"strconv"
	"strings"

	"ringrush/game"
)

type Action int

const (
	MoveNorth Action = iota
	MoveSouth
	MoveEast
	MoveWest
	GrabMobileGoal
	ReleaseMobileGoal
	TipMobileGoal
	UntipMobileGoal
	PickUpRed
	PickUpBlue
	ReleaseRing
	ScoreMobileGoal
	ScoreWallStake
	DescoreMobileGoal
	DescoreWallStake
)

const NumActions = 15

var actionNames = [NumActions]string{
	"move_north",
	"move_south",
	"move_east",
	"move_west",
	"grab_mobile_goal",
	"release_mobile_goal",
	"tip_mobile_goal",
	"untip_mobile_goal",
	"pick_up_red",
	"pick_up_blue",
	"release_ring",
	"score_mobile_goal",
	"score_wall_stake",
	"descore_mobile_goal",
	"descore_wall_stake",
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

func (a Action) Direction() (game.Direction, bool) {
	if a >= MoveNorth && a <= MoveWest {
		return game.Directions[a], true
	}
	return game.Direction{}, false
}

// PickUp is the pick up action for rings of color r.
func PickUp(r Ring) Action {
	if r == RedRing {
		return PickUpRed
	}
	return PickUpBlue
}

// ParseAction accepts an action name or its index.
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

type ActionMask [NumActions]bool

// Actions lists the set actions in index order.
func (m ActionMask) Actions() []Action {
	actions := make([]Action, 0, NumActions)
	for i, ok := range m {
		if ok {
			actions = append(actions, Action(i))
		}
	}
	return actions
}

func (m ActionMask) Legal(a Action) bool {
	return a.Valid() && m[a]
}
