package searcher

import (
	"sync"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"

	"ringrush/experiments/metrics"
	"ringrush/game"
)

type Option func(mcts *MCTS)

// Segment is one ply of a lineage: the move played and the hash of the state
// it produced.
type Segment struct {
	Move      game.Move
	StateHash game.StateHash
}

type MCTS struct {
	goroutines int
	duration   time.Duration
	episodes   int
	cutoff     int
	evaluate   game.Evaluate
	policy     RolloutPolicy
	cache      *rolloutCache
	seed       uint64
	searches   uint64
	root       *decision
	metrics    metrics.Collector
}

func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithCutoff(depth int) Option {
	return func(m *MCTS) {
		if depth > 0 {
			m.cutoff = depth
		}
	}
}

func WithEvaluationFn(evaluate game.Evaluate) Option {
	return func(m *MCTS) {
		if evaluate != nil {
			m.evaluate = evaluate
		}
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.seed = seed
	}
}

func WithRolloutPolicy(policy RolloutPolicy) Option {
	return func(m *MCTS) {
		if policy != nil {
			m.policy = policy
		}
	}
}

// WithRolloutCache reuses the outcome of earlier full playouts from the same
// state. Only sound with a deterministic rollout policy.
func WithRolloutCache() Option {
	return func(m *MCTS) {
		m.cache = newRolloutCache()
	}
}

func NewMCTS(goroutines int, options ...Option) *MCTS {
	m := &MCTS{ // Default values
		goroutines: goroutines,
		cutoff:     MaxCutoff,
		evaluate:   game.EvaluateScore,
		policy:     UniformRollout,
		seed:       1,
		metrics:    metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.goroutines <= 0 {
		m.goroutines = 1
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches from state and returns the visit counts of its moves.
// lineage lists the plies played since the previous search; when they lead to
// a node of the previous tree, that subtree is searched further.
func (m *MCTS) Simulate(state game.State, lineage []Segment) (Policy, metrics.SearchMetric) {
	m.findRoot(lineage, state)
	m.searches++

	// Run simulations to collect statistics
	m.metrics.Start(m.goroutines, m.cutoff)
	if m.episodes > 0 {
		m.iterate(state)
	} else {
		m.countdown(state)
	}
	metric := m.metrics.Complete()

	// Output move policy and move finding metrics
	return m.root.Policy(), metric
}

func (m *MCTS) workerRand(worker int) *rand.Rand {
	return rand.New(rand.NewSource(m.seed + m.searches<<16 + uint64(worker)))
}

func (m *MCTS) iterate(state game.State) {
	task := make(chan any, m.episodes)
	for i := 0; i < m.episodes; i++ {
		task <- nil
	}
	close(task)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := m.workerRand(i)
		go func() {
			defer wg.Done()

			for range task {
				m.simulate(state, rng)
				m.metrics.AddEpisode()
			}
		}()
	}

	wg.Wait()
}

func (m *MCTS) countdown(state game.State) {
	done := make(chan any)

	var wg sync.WaitGroup
	for i := 0; i < m.goroutines; i++ {
		wg.Add(1)
		rng := m.workerRand(i)
		go func() {
			defer wg.Done()
			for {
				select {
				case <-done:
					return
				default:
					m.simulate(state, rng)
					m.metrics.AddEpisode()
				}
			}
		}()
	}

	<-time.After(m.duration)
	close(done)
	wg.Wait()
}

func (m *MCTS) findRoot(path []Segment, state game.State) {
	root := traverse(m.root, path)
	if root == nil || root.hash != state.Hash() {
		m.root = newDecision(nil, state)
		m.metrics.SetTreeReset(true)
	} else {
		root.parent = nil
		m.root = root
		m.metrics.SetTreeReset(false)
	}
}

func traverse(root *decision, path []Segment) *decision {
	if root == nil {
		return nil
	}

	node := root
	for _, segment := range path {
		child := node.child(segment.Move)
		if child == nil { // Node has not expanded this move
			return nil
		}
		if child.hash != segment.StateHash {
			log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", child.hash, segment.StateHash)
			return nil
		}
		node = child
	}
	return node
}

func (m *MCTS) simulate(state game.State, rng *rand.Rand) {
	newNode, newState := selectThenExpand(m.root, state)
	rewards := m.playout(newState, rng)
	backup(newNode, rewards)
}

func selectThenExpand(root *decision, state game.State) (*decision, game.State) {
	child, state, selected := root.SelectOrExpand(state)
	for selected {
		child, state, selected = child.SelectOrExpand(state)
	}
	return child, state
}

func (m *MCTS) playout(state game.State, rng *rand.Rand) game.Rewards {
	if m.cache != nil {
		if rewards, ok := m.cache.get(state.Hash()); ok {
			m.metrics.AddCacheHit()
			return rewards
		}
	}

	rewards, full := rollout(state, m.cutoff, m.evaluate, m.policy, rng)
	if full {
		m.metrics.AddFullPlayout()
		if m.cache != nil {
			m.cache.put(state.Hash(), rewards)
		}
	}
	return rewards
}

func backup(newNode *decision, rewards game.Rewards) {
	node := newNode
	for node != nil {
		node = node.Backup(rewards)
	}
}
