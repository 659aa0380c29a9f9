package searcher

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"ringrush/game"
)

func TestNewMCTS(t *testing.T) {
	require.Panics(t, func() { NewMCTS(2) }, "A search needs a budget")
	require.NotPanics(t, func() { NewMCTS(2, WithEpisodes(10)) })
	require.NotPanics(t, func() { NewMCTS(2, WithDuration(time.Millisecond)) })
}

func TestSimulate(t *testing.T) {
	t.Run("prefers the winning move", func(t *testing.T) {
		mcts := NewMCTS(4, WithEpisodes(400), WithMetrics())
		state := raceState{player: game.Red, total: 2, target: 4}

		policy, metric := mcts.Simulate(state, nil)

		require.Len(t, policy, 2)
		require.Greater(t, policy[mockMove{id: 2}], policy[mockMove{id: 1}],
			"Reaching the target now should collect most visits")
		require.Equal(t, 400, metric.Episodes)
		require.Equal(t, 4, metric.Goroutines)
		require.True(t, metric.IsTreeReset)
		require.Positive(t, metric.FullPlayouts)
	})

	t.Run("visits add up to episodes", func(t *testing.T) {
		mcts := NewMCTS(3, WithEpisodes(300))
		policy, _ := mcts.Simulate(raceState{target: 10}, nil)

		total := 0.0
		for _, visits := range policy {
			total += visits
		}
		require.Equal(t, 300.0, total, "Every episode passes through one root child")
	})

	t.Run("duration budget", func(t *testing.T) {
		mcts := NewMCTS(2, WithDuration(20*time.Millisecond), WithMetrics())
		_, metric := mcts.Simulate(raceState{target: 10}, nil)

		require.Positive(t, metric.Episodes)
		require.GreaterOrEqual(t, metric.Duration, 20*time.Millisecond)
	})

	t.Run("terminal root has no policy", func(t *testing.T) {
		mcts := NewMCTS(2, WithEpisodes(10))
		policy, _ := mcts.Simulate(raceState{total: 4, target: 4}, nil)
		require.Empty(t, policy)
	})
}

func TestTreeReuse(t *testing.T) {
	root := raceState{player: game.Red, total: 0, target: 12}
	first := mockMove{id: 1}
	reply := mockMove{id: 2}
	afterFirst := root.Play(first)
	afterReply := afterFirst.Play(reply)

	t.Run("descends into the subtree of the lineage", func(t *testing.T) {
		mcts := NewMCTS(2, WithEpisodes(200), WithMetrics())
		mcts.Simulate(root, nil)

		lineage := []Segment{{first, afterFirst.Hash()}, {reply, afterReply.Hash()}}
		_, metric := mcts.Simulate(afterReply, lineage)

		require.False(t, metric.IsTreeReset, "Tree should be reused")
		require.Nil(t, mcts.root.parent, "Reused root should be detached")
		require.Equal(t, afterReply.Hash(), mcts.root.hash)
	})

	t.Run("resets on a hash mismatch", func(t *testing.T) {
		mcts := NewMCTS(2, WithEpisodes(200), WithMetrics())
		mcts.Simulate(root, nil)

		lineage := []Segment{{first, afterFirst.Hash() + 1}, {reply, afterReply.Hash()}}
		_, metric := mcts.Simulate(afterReply, lineage)

		require.True(t, metric.IsTreeReset)
	})

	t.Run("resets when the state differs from the reached node", func(t *testing.T) {
		mcts := NewMCTS(2, WithEpisodes(50), WithMetrics())
		mcts.Simulate(root, nil)

		_, metric := mcts.Simulate(afterReply, nil)
		require.True(t, metric.IsTreeReset)
	})
}

func TestRollout(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	t.Run("plays to the end", func(t *testing.T) {
		rewards, full := rollout(raceState{target: 6}, MaxCutoff, evaluateRace, UniformRollout, rng)
		require.True(t, full)
		require.Equal(t, 0.0, rewards[game.Red]+rewards[game.Blue], "Rewards should be zero-sum")
		require.NotEqual(t, game.Rewards{}, rewards)
	})

	t.Run("evaluates at the cutoff", func(t *testing.T) {
		evaluate := func(game.State) float64 { return 0.5 }
		rewards, full := rollout(raceState{target: 30}, 2, evaluate, UniformRollout, rng)
		require.False(t, full)
		require.Equal(t, game.Rewards{0.5, -0.5}, rewards, "Red is to move again after two plies")
	})

	t.Run("follows the rollout policy", func(t *testing.T) {
		alwaysTwo := func(game.State, []game.Move, *rand.Rand) game.Move { return mockMove{id: 2} }
		// Red plays 0->2, blue 2->4, red 4->6
		rewards, full := rollout(raceState{target: 6}, MaxCutoff, evaluateRace, alwaysTwo, rng)
		require.True(t, full)
		require.Equal(t, game.Rewards{Win, Loss}, rewards)
	})
}

func TestRolloutCache(t *testing.T) {
	alwaysOne := func(game.State, []game.Move, *rand.Rand) game.Move { return mockMove{id: 1} }
	mcts := NewMCTS(1, WithEpisodes(50), WithRolloutPolicy(alwaysOne), WithRolloutCache(), WithMetrics())

	_, metric := mcts.Simulate(raceState{target: 5}, nil)

	require.Positive(t, metric.CacheHits, "Revisited leaves should hit the cache")
	require.Positive(t, mcts.cache.len())
	require.Equal(t, 50, metric.Episodes)
}
