package field

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"

	"ringrush/game"
)

func mustPerform(t *testing.T, f Field, i game.Player, actions ...Action) Field {
	t.Helper()
	for _, a := range actions {
		var err error
		f, err = f.Perform(i, a)
		require.NoError(t, err, "performing %s", a)
	}
	return f
}

func TestNew(t *testing.T) {
	f := New()

	require.Equal(t, Rounds, f.TimeRemaining)
	require.Equal(t, game.Red, f.ToMove)
	require.Equal(t, game.Cell{Row: 2, Col: 0}, f.Robots[game.Red].Position)
	require.True(t, f.Robots[game.Red].Red)
	require.Equal(t, NoGoal, f.Robots[game.Blue].Goal)
	require.Equal(t, game.Cell{Row: 0, Col: 2}, f.Stakes[0].Position)
	require.Equal(t, game.Cell{Row: 4, Col: 2}, f.Stakes[1].Position)
	for i, g := range f.Goals {
		require.Equal(t, game.Cell{Row: i + 1, Col: 2}, g.Position)
		require.True(t, g.IsFree())
		require.False(t, g.Tipped)
	}

	require.Equal(t, []Action{MoveNorth, MoveSouth, MoveEast}, f.LegalActions(game.Red).Actions())
	require.Equal(t, []Action{MoveNorth, MoveSouth, MoveWest}, f.LegalActions(game.Blue).Actions())
}

func TestMobileGoals(t *testing.T) {
	t.Run("grab score and descore", func(t *testing.T) {
		f := New()
		f.Robots[game.Red].Position = game.Cell{Row: 1, Col: 2}
		mask := f.LegalActions(game.Red)
		require.True(t, mask[GrabMobileGoal])
		require.True(t, mask[TipMobileGoal])
		require.False(t, mask[ReleaseMobileGoal])

		f = mustPerform(t, f, game.Red, GrabMobileGoal, MoveWest, PickUpRed, PickUpBlue)
		robot := f.Robots[game.Red]
		require.Equal(t, 0, robot.Goal)
		require.Equal(t, game.Cell{Row: 1, Col: 1}, f.Goals[0].Position, "Held goal should follow")
		require.Equal(t, "rb", robot.Rings.String(), "Pick ups go to the back")
		require.Equal(t, 0, f.Supply[game.Red][robot.Position.Index()])
		require.False(t, f.LegalActions(game.Red)[PickUpRed], "Robot holds two rings at most")

		f = mustPerform(t, f, game.Red, ScoreMobileGoal)
		require.Equal(t, "r", f.Goals[0].Rings.String(), "Front ring is scored")
		require.Equal(t, "b", f.Robots[game.Red].Rings.String())

		f = mustPerform(t, f, game.Red, DescoreMobileGoal)
		require.Equal(t, "rb", f.Robots[game.Red].Rings.String(), "Descored ring goes to the front")
		require.True(t, f.Goals[0].Rings.Empty())

		f = mustPerform(t, f, game.Red, ScoreMobileGoal, ScoreMobileGoal)
		require.Equal(t, "rb", f.Goals[0].Rings.String())
		require.Equal(t, [game.NumPlayers]int{1, 3}, f.Scores(), "Blue holds the top")
		require.False(t, f.LegalActions(game.Red)[ReleaseRing])
	})

	t.Run("release needs a cell without a free goal", func(t *testing.T) {
		f := New()
		f.Robots[game.Red].Position = game.Cell{Row: 1, Col: 2}
		f = mustPerform(t, f, game.Red, GrabMobileGoal, MoveSouth)
		require.Equal(t, game.Cell{Row: 2, Col: 2}, f.Robots[game.Red].Position)
		require.False(t, f.LegalActions(game.Red)[ReleaseMobileGoal])

		_, err := f.Perform(game.Red, ReleaseMobileGoal)
		require.ErrorIs(t, err, ErrIllegalAction)

		f = mustPerform(t, f, game.Red, MoveWest, ReleaseMobileGoal)
		require.True(t, f.Goals[0].IsFree())
		require.Equal(t, game.Cell{Row: 2, Col: 1}, f.Goals[0].Position)
		require.Equal(t, NoGoal, f.Robots[game.Red].Goal)
	})

	t.Run("tipped goals cannot be grabbed", func(t *testing.T) {
		f := New()
		f.Robots[game.Blue].Position = game.Cell{Row: 3, Col: 2}
		f = mustPerform(t, f, game.Blue, TipMobileGoal)
		require.True(t, f.Goals[2].Tipped)

		mask := f.LegalActions(game.Blue)
		require.True(t, mask[UntipMobileGoal])
		require.False(t, mask[GrabMobileGoal])
		require.False(t, mask[TipMobileGoal])

		f = mustPerform(t, f, game.Blue, UntipMobileGoal)
		require.False(t, f.Goals[2].Tipped)
	})
}

func TestRingsAndStakes(t *testing.T) {
	f := New()
	f.Robots[game.Red].Position = game.Cell{Row: 0, Col: 2}
	f.Robots[game.Red].Rings = StackOf(BlueRing, RedRing)

	f = mustPerform(t, f, game.Red, ScoreWallStake)
	require.Equal(t, "b", f.Stakes[0].Rings.String())
	require.True(t, f.LegalActions(game.Red)[DescoreWallStake])

	f = mustPerform(t, f, game.Red, ScoreWallStake)
	require.Equal(t, "br", f.Stakes[0].Rings.String())
	require.Equal(t, [game.NumPlayers]int{3, 1}, f.Scores())
	require.False(t, f.LegalActions(game.Red)[ScoreWallStake], "Nothing left to score")

	f = mustPerform(t, f, game.Red, DescoreWallStake, ReleaseRing)
	require.Equal(t, "b", f.Stakes[0].Rings.String())
	require.True(t, f.Robots[game.Red].Rings.Empty())
	require.Equal(t, 2, f.Supply[game.Red][game.Cell{Row: 0, Col: 2}.Index()], "Released ring lands in the cell supply")
}

func TestMovesBlockedByRobots(t *testing.T) {
	f := New()
	f.Robots[game.Red].Position = game.Cell{Row: 2, Col: 3}

	require.False(t, f.LegalActions(game.Red)[MoveEast])
	next, err := f.Perform(game.Red, MoveEast)
	require.ErrorIs(t, err, ErrIllegalAction)
	require.Equal(t, f, next)

	_, err = f.Perform(game.Red, Action(NumActions))
	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestScores(t *testing.T) {
	tests := []struct {
		name     string
		goal     MobileGoal
		expected [game.NumPlayers]int
	}{
		{"bottom corner doubles", MobileGoal{Position: game.Cell{Row: 4, Col: 0}, Rings: StackOf(RedRing, RedRing)}, [game.NumPlayers]int{8, 0}},
		{"top corner negates and clamps", MobileGoal{Position: game.Cell{Row: 0, Col: 4}, Rings: StackOf(BlueRing)}, [game.NumPlayers]int{0, 0}},
		{"held goal counts once", MobileGoal{Position: game.Cell{Row: 0, Col: 0}, Placement: game.Held, Rings: StackOf(RedRing)}, [game.NumPlayers]int{3, 0}},
		{"tipping changes nothing", MobileGoal{Position: game.Cell{Row: 2, Col: 2}, Tipped: true, Rings: StackOf(BlueRing, RedRing)}, [game.NumPlayers]int{3, 1}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f Field
			f.Goals[0] = tt.goal
			require.Equal(t, tt.expected, f.Scores())
		})
	}

	t.Run("negative corner offsets other points", func(t *testing.T) {
		var f Field
		f.Goals[0] = MobileGoal{Position: game.Cell{Row: 0, Col: 0}, Rings: StackOf(RedRing)}
		f.Stakes[1].Rings = StackOf(BlueRing, RedRing, RedRing)
		require.Equal(t, [game.NumPlayers]int{4 - 3, 1}, f.Scores())
	})
}

func TestStep(t *testing.T) {
	f := New()

	f, err := f.Step(MoveNorth)
	require.NoError(t, err)
	require.Equal(t, game.Blue, f.ToMove)
	require.Equal(t, Rounds, f.TimeRemaining, "Clock runs after blue")

	f, err = f.Step(MoveSouth)
	require.NoError(t, err)
	require.Equal(t, game.Red, f.ToMove)
	require.Equal(t, Rounds-1, f.TimeRemaining)

	_, err = f.Step(TipMobileGoal)
	require.ErrorIs(t, err, ErrIllegalAction)

	f.TimeRemaining = 0
	require.True(t, f.Terminated())
	require.Empty(t, f.LegalMoves())
	_, err = f.Step(MoveNorth)
	require.ErrorIs(t, err, ErrTimeUp)

	rewards, over := f.Outcome()
	require.True(t, over)
	require.Equal(t, game.Rewards{game.DrawReward, game.DrawReward}, rewards)
}

func TestShortestPath(t *testing.T) {
	f := New()
	start := f.Robots[game.Red].Position

	end, moves := f.ShortestPath(start, map[game.Cell]bool{{Row: 2, Col: 3}: true})
	require.Equal(t, game.Cell{Row: 2, Col: 3}, end)
	require.Equal(t, []Action{MoveEast, MoveEast, MoveEast}, moves)

	f.Robots[game.Blue].Position = game.Cell{Row: 2, Col: 2}
	_, moves = f.ShortestPath(start, map[game.Cell]bool{{Row: 2, Col: 3}: true})
	require.Equal(t, []Action{MoveNorth, MoveEast, MoveEast, MoveEast, MoveSouth}, moves, "Robots block the way")

	end, moves = f.ShortestPath(start, map[game.Cell]bool{{Row: 2, Col: 2}: true})
	require.Equal(t, start, end, "A robot's cell is never reached")
	require.Empty(t, moves)
}

func TestView(t *testing.T) {
	f := New()
	f.Robots[game.Red].Position = game.Cell{Row: 1, Col: 2}
	f = mustPerform(t, f, game.Red, GrabMobileGoal, MoveWest, PickUpRed)

	v := f.View(game.Red)
	require.Equal(t, GoalView{X: -1, Y: -1}, v.Goals[0], "Held goals have no coordinates")
	require.Equal(t, GoalView{X: 2, Y: 2}, v.Goals[1])
	require.Equal(t, RobotView{X: 1, Y: 1, Goal: 0, IsRed: true, Rings: "r"}, v.Robots[0])
	require.Equal(t, RobotView{X: 2, Y: 4, Goal: NoGoal}, v.Robots[1])
	require.Len(t, v.Stakes, NumStakes)
	require.Equal(t, 2, v.BlueRings[0][0])

	data, err := json.Marshal(v)
	require.NoError(t, err)
	require.Contains(t, string(data), `"time_remaining":30`)
	require.Contains(t, string(data), `"scores":{"red":0,"blue":0}`)
	require.NotContains(t, string(data), `"error"`)
}

func TestRender(t *testing.T) {
	out := New().Render(false)
	require.Contains(t, out, ".S11", "Stake on a cell with one ring of each color")
	require.Contains(t, out, ".G..")
	require.Contains(t, out, "time remaining 30/30")
	require.Contains(t, out, "to move: red")
}

func TestRandomPlayouts(t *testing.T) {
	total := 0
	for _, count := range game.InitialRings {
		total += count
	}

	for seed := uint64(0); seed < 30; seed++ {
		rng := rand.New(rand.NewSource(seed))
		var s game.State = New()
		plies := 0

		for {
			if _, over := s.Outcome(); over {
				break
			}
			moves := s.LegalMoves()
			require.NotEmpty(t, moves)
			s = s.Play(moves[rng.Intn(len(moves))])
			plies++
			requireFieldInvariants(t, s.(Field), total)
		}

		require.Equal(t, 2*Rounds, plies)
	}
}

func requireFieldInvariants(t *testing.T, f Field, total int) {
	t.Helper()

	require.NotEqual(t, f.Robots[0].Position, f.Robots[1].Position)
	for _, r := range f.Robots {
		require.True(t, r.Position.InBounds())
		require.LessOrEqual(t, r.Rings.Len(), MaxRobotRings)
		if r.Goal != NoGoal {
			require.False(t, f.Goals[r.Goal].IsFree())
			require.Equal(t, r.Position, f.Goals[r.Goal].Position)
		}
	}

	for color := RedRing; color <= BlueRing; color++ {
		count := 0
		for _, n := range f.Supply[color.Player()] {
			require.GreaterOrEqual(t, n, 0)
			count += n
		}
		for _, g := range f.Goals {
			count += g.Rings.Count(color)
		}
		for _, s := range f.Stakes {
			count += s.Rings.Count(color)
		}
		for _, r := range f.Robots {
			count += r.Rings.Count(color)
		}
		require.Equal(t, total, count, "Rings of color %s are conserved", color)
	}

	scores := f.Scores()
	require.GreaterOrEqual(t, scores[game.Red], 0)
	require.GreaterOrEqual(t, scores[game.Blue], 0)
}
