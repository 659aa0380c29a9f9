package searcher

import (
	"sync"

	"golang.org/x/exp/rand"

	"ringrush/game"
)

// RolloutPolicy picks the next move of a playout among the legal moves.
type RolloutPolicy func(state game.State, moves []game.Move, rng *rand.Rand) game.Move

// UniformRollout picks uniformly at random.
func UniformRollout(_ game.State, moves []game.Move, rng *rand.Rand) game.Move {
	return moves[rng.Intn(len(moves))]
}

// rollout plays from state until the game ends or cutoff moves were made. It
// reports whether the playout reached the end of the game.
func rollout(state game.State, cutoff int, evaluate game.Evaluate, policy RolloutPolicy, rng *rand.Rand) (game.Rewards, bool) {
	for depth := 0; depth < cutoff; depth++ {
		if rewards, over := state.Outcome(); over {
			return rewards, true
		}
		moves := state.LegalMoves()
		if len(moves) == 0 {
			return game.Rewards{}, true
		}
		state = state.Play(policy(state, moves, rng))
	}

	if rewards, over := state.Outcome(); over {
		return rewards, true
	}
	// At cutoff state, score from the current player's perspective
	return evaluation(state, evaluate), false
}

func evaluation(state game.State, evaluate game.Evaluate) game.Rewards {
	score := evaluate(state)
	player := state.Player()

	var rewards game.Rewards
	rewards[player] = score
	rewards[player.Opponent()] = -score
	return rewards
}

// rolloutCache remembers the outcome of full playouts by starting state.
type rolloutCache struct {
	sync.RWMutex
	results map[game.StateHash]game.Rewards
}

func newRolloutCache() *rolloutCache {
	return &rolloutCache{results: make(map[game.StateHash]game.Rewards)}
}

func (c *rolloutCache) get(hash game.StateHash) (game.Rewards, bool) {
	c.RLock()
	defer c.RUnlock()

	rewards, ok := c.results[hash]
	return rewards, ok
}

func (c *rolloutCache) put(hash game.StateHash, rewards game.Rewards) {
	c.Lock()
	defer c.Unlock()

	c.results[hash] = rewards
}

func (c *rolloutCache) len() int {
	c.RLock()
	defer c.RUnlock()

	return len(c.results)
}
