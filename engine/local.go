package engine

import (
	"fmt"
	"slices"
	"time"

	"github.com/rs/zerolog/log"

	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/searcher"
	"ringrush/searcher/agent"
)

type Option func(e *LocalEngine)

func WithMaxMoves(moves int) Option {
	return func(e *LocalEngine) {
		if moves > 0 {
			e.maxMoves = moves
		}
	}
}

// WithObserver is called after every ply with the move played and the new state.
func WithObserver(observe func(ply int, move game.Move, state game.State)) Option {
	return func(e *LocalEngine) {
		e.observe = observe
	}
}

type LocalEngine struct {
	state    game.State
	agents   [game.NumPlayers]agent.Agent
	maxMoves int
	observe  func(ply int, move game.Move, state game.State)
}

var _ Engine = (*LocalEngine)(nil)

// NewLocalEngine seats agents[p] at player p.
func NewLocalEngine(state game.State, agents [game.NumPlayers]agent.Agent, options ...Option) *LocalEngine {
	for _, a := range agents {
		if a == nil {
			panic("need an agent for every player")
		}
	}
	e := &LocalEngine{
		state:    state,
		agents:   agents,
		maxMoves: MaxMoves,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

func (e *LocalEngine) Run() (Result, metrics.GameMetric, []metrics.MoveMetric) {
	// Plies played since each agent last moved
	var lineages [game.NumPlayers][]searcher.Segment

	gameMetric := metrics.GameMetric{
		StartingPlayer: int(e.state.Player()),
		StartTime:      time.Now(),
	}
	var moveMetrics []metrics.MoveMetric
	log.Info().Msgf("player %s is starting", e.state.Player())

	plies := 0
	_, over := e.state.Outcome()
	for !over && plies < e.maxMoves {
		player := e.state.Player()
		move, searchMetric := e.agents[player].FindMove(e.state, lineages[player])
		lineages[player] = nil

		move, ok := e.validate(move)
		if !ok {
			log.Warn().Msgf("player %s has no legal moves, stopping after %d plies", player, plies)
			break
		}

		e.state = e.state.Play(move)
		plies++
		segment := searcher.Segment{Move: move, StateHash: e.state.Hash()}
		for p := range lineages {
			lineages[p] = append(lineages[p], segment)
		}

		moveMetrics = append(moveMetrics, metrics.MoveMetric{
			Step:         plies,
			Player:       int(player),
			Move:         fmt.Sprint(move),
			SearchMetric: searchMetric,
		})
		if e.observe != nil {
			e.observe(plies, move, e.state)
		}
		_, over = e.state.Outcome()
	}

	rewards, terminated := e.state.Outcome()
	result := Result{
		Rewards:    rewards,
		Winner:     game.NoPlayer,
		Plies:      plies,
		Terminated: terminated,
	}
	if terminated {
		result.Winner = rewards.Winner()
	}
	if s, ok := e.state.(game.Scorer); ok {
		result.Scores = s.Scores()
	}

	gameMetric.EndTime = time.Now()
	gameMetric.Duration = gameMetric.EndTime.Sub(gameMetric.StartTime)
	gameMetric.TotalMoves = plies
	gameMetric.Winner = int(result.Winner)
	gameMetric.Scores = result.Scores

	if terminated {
		log.Info().Msgf("game over after %d plies: winner %s, scores %v", plies, result.Winner, result.Scores)
	} else {
		log.Info().Msgf("stopped after %d plies without a result", plies)
	}
	return result, gameMetric, moveMetrics
}

// validate falls back to the first legal move when an agent returns a move
// the state does not allow.
func (e *LocalEngine) validate(move game.Move) (game.Move, bool) {
	moves := e.state.LegalMoves()
	if len(moves) == 0 {
		return nil, false
	}
	if move == nil || !slices.Contains(moves, move) {
		log.Warn().Msgf("player %s returned an illegal move %v, playing %v instead", e.state.Player(), move, moves[0])
		return moves[0], true
	}
	return move, true
}
