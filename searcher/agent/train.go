package agent

import (
	"math"
	"sync"

	"golang.org/x/exp/rand"

	"ringrush/experiments/metrics"
	"ringrush/game"
	"ringrush/searcher"
)

type trainingAgent struct {
	mcts        *searcher.MCTS
	temperature float64
	mu          sync.Mutex
	rng         *rand.Rand
}

// NewTrainingAgent returns a new agent for self-play during training. It
// samples moves in proportion to visits^(1/temperature).
func NewTrainingAgent(mcts *searcher.MCTS, temperature float64, seed uint64) Agent {
	if temperature <= 0 {
		temperature = 1.0
	}
	return &trainingAgent{
		mcts:        mcts,
		temperature: temperature,
		rng:         rand.New(rand.NewSource(seed)),
	}
}

func (a *trainingAgent) FindMove(state game.State, lineage []searcher.Segment) (game.Move, metrics.SearchMetric) {
	policy, metric := a.mcts.Simulate(state, lineage)
	policy = adjustTemperature(policy, a.temperature)

	a.mu.Lock()
	defer a.mu.Unlock()
	return sample(policy, a.rng.Float64()), metric
}

func adjustTemperature(policy searcher.Policy, temperature float64) searcher.Policy {
	// Compute temperature-adjusted move probabilities
	exponent := 1.0 / temperature
	sum := 0.0
	adjusted := make(searcher.Policy, len(policy))
	for move, visit := range policy {
		prob := math.Pow(visit, exponent)
		sum += prob
		adjusted[move] = prob
	}
	if sum == 0 {
		return adjusted
	}
	// Normalize
	for move := range adjusted {
		adjusted[move] /= sum
	}
	return adjusted
}

// sample walks the cumulative distribution up to sampled, a draw in [0, 1).
func sample(policy searcher.Policy, sampled float64) game.Move {
	cumulative := 0.0
	var lastMove game.Move
	for _, move := range sortedMoves(policy) {
		lastMove = move
		cumulative += policy[move]
		if sampled < cumulative {
			return move
		}
	}
	return lastMove // Fallback in case of rounding errors
}
