package game

import "errors"

var (
	// ErrInvalidAction is returned for an action index outside the action set.
	ErrInvalidAction = errors.New("invalid action")
	// ErrIllegalAction is returned for an action the current mask forbids.
	ErrIllegalAction = errors.New("illegal action")
)
