// Package gamemaster hosts core games for remote players. A Manager keeps
// sessions in memory, referees every action through game.Step and tells
// subscribers about each ply played.
package gamemaster

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"ringrush/game"
)

// Session is one hosted game. Values handed out by the Manager are copies.
type Session struct {
	ID        string         `json:"id"`
	Seed      uint64         `json:"seed"`
	CreatedAt time.Time      `json:"created_at"`
	State     game.GameState `json:"state"`
	Metadata  game.Metadata  `json:"metadata"`
	History   []game.Action  `json:"history"`
}

// Update describes one ply played in a session.
type Update struct {
	GameID   string         `json:"game_id"`
	Ply      int            `json:"ply"`
	Player   game.Player    `json:"player"`
	Action   game.Action    `json:"action"`
	State    game.GameState `json:"state"`
	Metadata game.Metadata  `json:"metadata"`
}

func newSession(seed uint64) *Session {
	state, metadata := game.Init(seed)
	return &Session{
		ID:        uuid.New().String(),
		Seed:      seed,
		CreatedAt: time.Now(),
		State:     state,
		Metadata:  metadata,
		History:   []game.Action{},
	}
}

func (s *Session) play(a game.Action) (Update, error) {
	if s.Metadata.Terminated {
		return Update{}, ErrGameOver
	}

	player := s.State.CurrentPlayer
	next, metadata, err := game.Step(s.State, a)
	if err != nil {
		return Update{}, fmt.Errorf("game %s: %w", s.ID, err)
	}

	s.State = next
	s.Metadata = metadata
	s.History = append(s.History, a)

	return Update{
		GameID:   s.ID,
		Ply:      len(s.History),
		Player:   player,
		Action:   a,
		State:    next,
		Metadata: metadata,
	}, nil
}

func (s *Session) snapshot() Session {
	c := *s
	c.History = append([]game.Action{}, s.History...)
	return c
}
