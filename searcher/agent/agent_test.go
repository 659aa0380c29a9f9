package agent

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"ringrush/game"
	"ringrush/game/field"
	"ringrush/searcher"
)

func TestFindMax(t *testing.T) {
	policy := searcher.Policy{game.MoveNorth: 3, game.MoveEast: 9, game.MoveSouth: 1}
	require.Equal(t, game.MoveEast, findMax(policy))

	tie := searcher.Policy{game.MoveNorth: 4, game.GrabGoal: 4}
	require.Equal(t, game.GrabGoal, findMax(tie), "Ties should resolve the same way every time")

	require.Nil(t, findMax(searcher.Policy{}))
}

func TestAdjustTemperature(t *testing.T) {
	policy := searcher.Policy{game.MoveNorth: 1, game.MoveSouth: 3}

	adjusted := adjustTemperature(policy, 1.0)
	require.InDelta(t, 0.25, adjusted[game.MoveNorth], 1e-9)
	require.InDelta(t, 0.75, adjusted[game.MoveSouth], 1e-9)

	sharpened := adjustTemperature(policy, 0.5)
	require.InDelta(t, 0.1, sharpened[game.MoveNorth], 1e-9)
	require.InDelta(t, 0.9, sharpened[game.MoveSouth], 1e-9)
}

func TestSample(t *testing.T) {
	// Sorted by name: grab_goal then move_north
	policy := searcher.Policy{game.GrabGoal: 0.25, game.MoveNorth: 0.75}

	require.Equal(t, game.GrabGoal, sample(policy, 0.1))
	require.Equal(t, game.MoveNorth, sample(policy, 0.5))
	require.Equal(t, game.MoveNorth, sample(policy, 0.99999))
}

func TestSearchAgents(t *testing.T) {
	state, _ := game.Init(5)

	t.Run("evaluation agent plays a legal move", func(t *testing.T) {
		a := NewEvaluationAgent(searcher.NewMCTS(2, searcher.WithEpisodes(200), searcher.WithMetrics()))
		move, metric := a.FindMove(state, nil)

		require.Contains(t, state.LegalMoves(), move)
		require.Equal(t, 200, metric.Episodes)
	})

	t.Run("training agent is reproducible with one worker", func(t *testing.T) {
		newAgent := func() Agent {
			mcts := searcher.NewMCTS(1, searcher.WithEpisodes(100), searcher.WithSeed(9))
			return NewTrainingAgent(mcts, 1.0, 42)
		}
		first, second := newAgent(), newAgent()

		for i := 0; i < 3; i++ {
			a, _ := first.FindMove(state, nil)
			b, _ := second.FindMove(state, nil)
			require.Equal(t, a, b, "Same seeds should sample the same move")
			require.Contains(t, state.LegalMoves(), a)
		}
	})

	t.Run("field search with greedy rollouts", func(t *testing.T) {
		mcts := searcher.NewMCTS(2,
			searcher.WithEpisodes(60),
			searcher.WithRolloutPolicy(GreedyRollout(NewFieldGreedyAgent())),
			searcher.WithRolloutCache(),
			searcher.WithEvaluationFn(field.EvaluateScore),
		)
		f := field.New()
		move, _ := NewEvaluationAgent(mcts).FindMove(f, nil)
		require.Contains(t, f.LegalMoves(), move)
	})
}

func TestGreedyAction(t *testing.T) {
	t.Run("heads for the nearest free goal", func(t *testing.T) {
		s, _ := game.Init(0)
		s.CurrentPlayer = game.Red
		require.Equal(t, game.MoveEast, GreedyAction(s))
	})

	t.Run("grabs and then collects own rings", func(t *testing.T) {
		s, _ := game.Init(0)
		s.CurrentPlayer = game.Red
		s.Players[game.Red].Position = game.Cell{Row: 2, Col: 2}
		require.Equal(t, game.GrabGoal, GreedyAction(s))

		s, _, err := game.Step(s, game.GrabGoal)
		require.NoError(t, err)
		s.CurrentPlayer = game.Red
		require.Equal(t, game.MoveEast, GreedyAction(s), "Nearest red ring is at (2,3)")

		s.Players[game.Red].Position = game.Cell{Row: 2, Col: 3}
		s.Goals[1].Position = game.Cell{Row: 2, Col: 3}
		require.Equal(t, game.PickUpRing, GreedyAction(s))
	})

	t.Run("parks a full goal in a bottom corner", func(t *testing.T) {
		s, _ := game.Init(0)
		s.CurrentPlayer = game.Blue
		s.Players[game.Blue].Position = game.Cell{Row: 4, Col: 4}
		s.Players[game.Blue].CarriedRings = game.MaxCarriedRings
		s.Goals[2].Placement = game.Held
		s.Goals[2].Carrier = game.Blue
		s.Goals[2].Position = game.Cell{Row: 4, Col: 4}

		require.Equal(t, game.ReleaseGoal, GreedyAction(s))

		s.Players[game.Blue].Position = game.Cell{Row: 3, Col: 4}
		s.Goals[2].Position = game.Cell{Row: 3, Col: 4}
		require.Equal(t, game.MoveSouth, GreedyAction(s))
	})

	t.Run("always legal", func(t *testing.T) {
		a := NewGreedyAgent()
		rng := rand.New(rand.NewSource(1))
		s, meta := game.Init(11)
		for !meta.Terminated {
			move, _ := a.FindMove(s, nil)
			require.True(t, meta.ActionMask.Legal(move.(game.Action)), "%s should be legal", move)
			if rng.Intn(4) == 0 { // Shake things up
				legal := meta.ActionMask.Actions()
				move = legal[rng.Intn(len(legal))]
			}
			var err error
			s, meta, err = game.Step(s, move.(game.Action))
			require.NoError(t, err)
		}
	})
}

func TestFieldGreedyAction(t *testing.T) {
	t.Run("heads for a goal then grabs it", func(t *testing.T) {
		f := field.New()
		require.Equal(t, field.MoveEast, FieldGreedyAction(f, game.Red))

		f.Robots[game.Red].Position = game.Cell{Row: 1, Col: 2}
		require.Equal(t, field.GrabMobileGoal, FieldGreedyAction(f, game.Red))
	})

	t.Run("scores onto the carried goal", func(t *testing.T) {
		f := field.New()
		f.Robots[game.Red].Position = game.Cell{Row: 1, Col: 2}
		f, err := f.Perform(game.Red, field.GrabMobileGoal)
		require.NoError(t, err)
		f.Robots[game.Red].Rings = field.StackOf(field.RedRing)

		require.Equal(t, field.ScoreMobileGoal, FieldGreedyAction(f, game.Red))
	})

	t.Run("feeds a stake when the goal is full and corners are taken", func(t *testing.T) {
		f := field.New()
		full := field.StackOf(field.RedRing, field.RedRing, field.RedRing, field.RedRing, field.RedRing, field.RedRing)
		f.Robots[game.Red].Position = game.Cell{Row: 0, Col: 2}
		f.Robots[game.Red].Goal = 0
		f.Robots[game.Red].Rings = field.StackOf(field.RedRing)
		f.Goals[0] = field.MobileGoal{Position: game.Cell{Row: 0, Col: 2}, Placement: game.Held, Rings: full}
		f.Goals[1].Position = game.Cell{Row: 4, Col: 0}
		f.Goals[2].Position = game.Cell{Row: 4, Col: 4}

		require.Equal(t, field.ScoreWallStake, FieldGreedyAction(f, game.Red))
	})

	t.Run("releases a full goal in a free corner", func(t *testing.T) {
		f := field.New()
		full := field.StackOf(field.BlueRing, field.BlueRing, field.BlueRing, field.BlueRing, field.BlueRing, field.BlueRing)
		f.Robots[game.Blue].Position = game.Cell{Row: 4, Col: 4}
		f.Robots[game.Blue].Goal = 2
		f.Goals[2] = field.MobileGoal{Position: game.Cell{Row: 4, Col: 4}, Placement: game.Held, Rings: full}

		require.Equal(t, field.ReleaseMobileGoal, FieldGreedyAction(f, game.Blue))
	})

	t.Run("always legal", func(t *testing.T) {
		var s game.State = field.New()
		a := NewFieldGreedyAgent()
		for {
			if _, over := s.Outcome(); over {
				break
			}
			move, _ := a.FindMove(s, nil)
			require.Contains(t, s.LegalMoves(), move)
			s = s.Play(move)
		}
	})
}

func TestRandomAgent(t *testing.T) {
	state, _ := game.Init(0)
	a, b := NewRandomAgent(3), NewRandomAgent(3)
	for i := 0; i < 10; i++ {
		moveA, _ := a.FindMove(state, nil)
		moveB, _ := b.FindMove(state, nil)
		require.Equal(t, moveA, moveB)
		require.Contains(t, state.LegalMoves(), moveA)
	}

	over := state
	over.StepCount = game.MaxSteps
	move, _ := a.FindMove(over, nil)
	require.Nil(t, move)
}
