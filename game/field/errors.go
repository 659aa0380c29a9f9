package field

import "errors"

var (
	ErrInvalidAction = errors.New("invalid action")
	ErrIllegalAction = errors.New("illegal action")
	// ErrTimeUp is returned for a ply played after the last round.
	ErrTimeUp = errors.New("no time remaining")
)
