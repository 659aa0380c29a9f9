// Package stdio plays the field variant over a line-delimited JSON protocol.
// Each output line is a field.View for robot 0; each input line is
// {"action":N} for robot 0, after which the opponent agent moves robot 1.
package stdio

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"ringrush/game"
	"ringrush/game/field"
	"ringrush/searcher"
	"ringrush/searcher/agent"
)

type Request struct {
	Action *int `json:"action"`
}

type Server struct {
	in       *bufio.Scanner
	out      *json.Encoder
	opponent agent.Agent
	field    field.Field
	// Plies since the opponent last moved
	lineage []searcher.Segment
}

func NewServer(in io.Reader, out io.Writer, opponent agent.Agent) *Server {
	return &Server{
		in:       bufio.NewScanner(in),
		out:      json.NewEncoder(out),
		opponent: opponent,
		field:    field.New(),
	}
}

// Run prints the starting state and serves requests until the time runs out
// or the input ends.
func (s *Server) Run(ctx context.Context) error {
	if err := s.write(""); err != nil {
		return err
	}

	for !s.field.Terminated() {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !s.in.Scan() {
			if err := s.in.Err(); err != nil {
				return fmt.Errorf("failed to read action: %w", err)
			}
			log.Info().Msg("input closed before the end of the game")
			return nil
		}
		line := bytes.TrimSpace(s.in.Bytes())
		if len(line) == 0 {
			continue
		}

		message := ""
		a, err := parseRequest(line)
		if err == nil {
			err = s.play(a)
		}
		if err != nil {
			log.Warn().Err(err).Msg("action refused")
			message = err.Error()
		}
		if err := s.write(message); err != nil {
			return err
		}
	}

	log.Info().Msgf("game over with scores %v", s.field.Scores())
	return nil
}

func parseRequest(line []byte) (field.Action, error) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		return 0, fmt.Errorf("%w: %v", field.ErrInvalidAction, err)
	}
	if req.Action == nil {
		return 0, fmt.Errorf("%w: missing action", field.ErrInvalidAction)
	}
	return field.Action(*req.Action), nil
}

// play applies a for robot 0 and lets the opponent answer for robot 1.
func (s *Server) play(a field.Action) error {
	next, err := s.field.Step(a)
	if err != nil {
		return err
	}
	s.field = next
	s.lineage = append(s.lineage, searcher.Segment{Move: a, StateHash: next.Hash()})

	move, _ := s.opponent.FindMove(s.field, s.lineage)
	s.lineage = nil

	mask := s.field.LegalActions(game.Blue)
	reply, ok := move.(field.Action)
	if !ok || !mask.Legal(reply) {
		legal := mask.Actions()
		if len(legal) == 0 {
			return errors.New("opponent has no legal action")
		}
		log.Warn().Msgf("opponent returned an illegal move %v, playing %s instead", move, legal[0])
		reply = legal[0]
	}

	next, err = s.field.Step(reply)
	if err != nil {
		return fmt.Errorf("opponent: %w", err)
	}
	s.field = next
	s.lineage = append(s.lineage, searcher.Segment{Move: reply, StateHash: next.Hash()})
	return nil
}

func (s *Server) write(message string) error {
	v := s.field.View(game.Red)
	if s.field.Terminated() {
		v.LegalActions = []field.Action{}
	}
	v.Error = message
	if err := s.out.Encode(v); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
