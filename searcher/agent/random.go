package agent

import (
	"sync"

	"golang.org/x/exp/rand"

	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/searcher"
)

type randomAgent struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomAgent picks uniformly among the legal moves.
func NewRandomAgent(seed uint64) Agent {
	return &randomAgent{rng: rand.New(rand.NewSource(seed))}
}

func (a *randomAgent) FindMove(state game.State, _ []searcher.Segment) (game.Move, metrics.SearchMetric) {
	moves := state.LegalMoves()
	if len(moves) == 0 {
		return nil, metrics.SearchMetric{}
	}

	a.mu.Lock()
	defer a.mu.Unlock()
	return moves[a.rng.Intn(len(moves))], metrics.SearchMetric{}
}
