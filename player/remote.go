// Package player runs an agent against a game hosted elsewhere.
package player

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"ringrush/communication"
	"ringrush/game"
	"ringrush/gamemaster"
	"ringrush/searcher"
	"ringrush/searcher/agent"
)

type Option func(r *Remote)

func WithPollInterval(interval time.Duration) Option {
	return func(r *Remote) {
		if interval > 0 {
			r.pollInterval = interval
		}
	}
}

// Remote plays one seat of a hosted game by polling it and answering with
// its agent whenever that seat is to move.
type Remote struct {
	comm         communication.Communicator
	agent        agent.Agent
	gameID       string
	seat         game.Player
	pollInterval time.Duration

	// The game just before the agent's last move. Plies from there on are
	// replayed locally into the lineage.
	known    game.GameState
	knownLen int
	started  bool
}

func NewRemote(comm communication.Communicator, a agent.Agent, gameID string, seat game.Player, options ...Option) *Remote {
	r := &Remote{
		comm:         comm,
		agent:        a,
		gameID:       gameID,
		seat:         seat,
		pollInterval: 100 * time.Millisecond,
	}
	for _, option := range options {
		option(r)
	}
	return r
}

// Run plays until the game is over and returns the final session.
func (r *Remote) Run(ctx context.Context) (gamemaster.Session, error) {
	log.Info().Msgf("playing %s in game %s", r.seat, r.gameID)
	for {
		session, err := r.comm.GetGame(ctx, r.gameID)
		if err != nil {
			return gamemaster.Session{}, fmt.Errorf("failed to get game: %w", err)
		}
		if session.Metadata.Terminated {
			log.Info().Msgf("game %s over after %d plies", r.gameID, len(session.History))
			return session, nil
		}

		if session.State.CurrentPlayer != r.seat {
			select {
			case <-ctx.Done():
				return session, ctx.Err()
			case <-time.After(r.pollInterval):
			}
			continue
		}

		move, _ := r.agent.FindMove(session.State, r.lineage(session))
		action, ok := move.(game.Action)
		if !ok || !session.Metadata.ActionMask.Legal(action) {
			legal := session.Metadata.ActionMask.Actions()
			log.Warn().Msgf("agent returned an illegal move %v, playing %s instead", move, legal[0])
			action = legal[0]
		}

		_, err = r.comm.Play(ctx, r.gameID, action)
		if errors.Is(err, gamemaster.ErrGameOver) {
			continue
		}
		if err != nil {
			return session, fmt.Errorf("failed to play %s: %w", action, err)
		}
		// The next lineage starts with this move
		r.known, r.knownLen = session.State, len(session.History)
	}
}

// lineage replays the plies played since the agent's last move. A history
// that does not lead to the hosted state yields no lineage.
func (r *Remote) lineage(session gamemaster.Session) []searcher.Segment {
	if !r.started {
		r.known, _ = game.Init(session.Seed)
		r.knownLen = 0
		r.started = true
		// A fresh search has no tree to reuse
		if len(session.History) == 0 {
			return nil
		}
	}
	if r.knownLen > len(session.History) {
		return nil
	}

	state := r.known
	segments := make([]searcher.Segment, 0, len(session.History)-r.knownLen)
	for _, a := range session.History[r.knownLen:] {
		next, _, err := game.Step(state, a)
		if err != nil {
			log.Warn().Err(err).Msg("cannot replay game history")
			return nil
		}
		state = next
		segments = append(segments, searcher.Segment{Move: a, StateHash: state.Hash()})
	}
	if state.Hash() != session.State.Hash() {
		log.Warn().Msgf("replayed history of game %s does not match its state", r.gameID)
		return nil
	}
	return segments
}
