// Package communication holds the wire types shared by the HTTP server, its
// client and remote players.
package communication

import (
	"context"
	"errors"
	"net/http"

	"ringrush/game"
	"ringrush/gamemaster"
)

// Communicator is how a remote player reaches a hosted game.
type Communicator interface {
	GetGame(ctx context.Context, id string) (gamemaster.Session, error)
	Play(ctx context.Context, id string, action game.Action) (gamemaster.Update, error)
}

type CreateGameRequest struct {
	Seed uint64 `json:"seed"`
}

type PlayRequest struct {
	Action game.Action `json:"action"`
}

type ListGamesResponse struct {
	Count int                  `json:"count"`
	Games []gamemaster.Session `json:"games"`
}

type LegalResponse struct {
	Player  game.Player   `json:"player"`
	Mask    []bool        `json:"mask"`
	Actions []game.Action `json:"actions"`
	Names   []string      `json:"names"`
}

type RenderResponse struct {
	Board string `json:"board"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

// NewLegalResponse lists what the player to move may do.
func NewLegalResponse(s game.GameState) LegalResponse {
	mask := game.LegalActions(s)
	if s.Terminated() {
		mask = game.ActionMask{}
	}
	actions := mask.Actions()
	names := make([]string, len(actions))
	for i, a := range actions {
		names[i] = a.String()
	}
	return LegalResponse{
		Player:  s.CurrentPlayer,
		Mask:    mask[:],
		Actions: actions,
		Names:   names,
	}
}

// StatusOf maps the errors of a hosted game to HTTP status codes.
func StatusOf(err error) int {
	switch {
	case errors.Is(err, gamemaster.ErrSessionNotFound):
		return http.StatusNotFound
	case errors.Is(err, gamemaster.ErrGameOver):
		return http.StatusConflict
	case errors.Is(err, game.ErrIllegalAction), errors.Is(err, game.ErrInvalidAction):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// ErrorOf is the inverse of StatusOf for the client side.
func ErrorOf(status int) error {
	switch status {
	case http.StatusNotFound:
		return gamemaster.ErrSessionNotFound
	case http.StatusConflict:
		return gamemaster.ErrGameOver
	case http.StatusUnprocessableEntity:
		return game.ErrIllegalAction
	default:
		return nil
	}
}
