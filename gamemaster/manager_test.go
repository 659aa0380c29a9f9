package gamemaster

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"ringrush/game"
)

func TestManager(t *testing.T) {
	t.Run("create get list delete", func(t *testing.T) {
		m := NewManager()
		first := m.Create(1)
		second := m.Create(2)
		require.NotEqual(t, first.ID, second.ID)

		got, err := m.Get(first.ID)
		require.NoError(t, err)
		require.Equal(t, first.State, got.State)
		require.Empty(t, got.History)

		expected, _ := game.Init(1)
		require.Equal(t, expected, got.State, "The seed should decide the starting state")

		require.Len(t, m.List(), 2)

		require.NoError(t, m.Delete(first.ID))
		_, err = m.Get(first.ID)
		require.ErrorIs(t, err, ErrSessionNotFound)
		require.ErrorIs(t, m.Delete(first.ID), ErrSessionNotFound)
		require.Len(t, m.List(), 1)
	})

	t.Run("play records history", func(t *testing.T) {
		m := NewManager()
		s := m.Create(0)
		mover := s.State.CurrentPlayer

		update, err := m.Play(s.ID, game.MoveNorth)
		require.NoError(t, err)
		require.Equal(t, 1, update.Ply)
		require.Equal(t, mover, update.Player)
		require.Equal(t, mover.Opponent(), update.State.CurrentPlayer)

		got, err := m.Get(s.ID)
		require.NoError(t, err)
		require.Equal(t, []game.Action{game.MoveNorth}, got.History)
		require.Equal(t, update.State, got.State)

		got.History[0] = game.GrabGoal
		again, _ := m.Get(s.ID)
		require.Equal(t, game.MoveNorth, again.History[0], "Sessions handed out should be copies")
	})

	t.Run("rejects bad actions", func(t *testing.T) {
		m := NewManager()
		s := m.Create(0)

		_, err := m.Play(s.ID, game.GrabGoal)
		require.ErrorIs(t, err, game.ErrIllegalAction)
		_, err = m.Play(s.ID, game.Action(9))
		require.ErrorIs(t, err, game.ErrInvalidAction)
		_, err = m.Play("missing", game.MoveNorth)
		require.ErrorIs(t, err, ErrSessionNotFound)

		got, _ := m.Get(s.ID)
		require.Equal(t, s.State, got.State, "Refused actions leave the game as it was")
		require.Empty(t, got.History)
	})

	t.Run("refuses plays after the end", func(t *testing.T) {
		m := NewManager()
		s := m.Create(0)
		actions := []game.Action{game.MoveNorth, game.MoveSouth}
		var update Update
		for i := 0; i < game.MaxSteps; i++ {
			var err error
			update, err = m.Play(s.ID, actions[(i/2)%2])
			require.NoError(t, err)
		}
		require.True(t, update.Metadata.Terminated)

		_, err := m.Play(s.ID, game.MoveNorth)
		require.ErrorIs(t, err, ErrGameOver)
	})

	t.Run("notifies subscribers", func(t *testing.T) {
		m := NewManager()
		var mu sync.Mutex
		var updates []Update
		m.Subscribe(func(u Update) {
			mu.Lock()
			defer mu.Unlock()
			updates = append(updates, u)
		})

		s := m.Create(0)
		_, err := m.Play(s.ID, game.MoveNorth)
		require.NoError(t, err)
		_, err = m.Play(s.ID, game.GrabGoal)
		require.Error(t, err)

		require.Len(t, updates, 1, "Only successful plays are broadcast")
		require.Equal(t, s.ID, updates[0].GameID)
		require.Equal(t, game.MoveNorth, updates[0].Action)
	})

	t.Run("concurrent games", func(t *testing.T) {
		m := NewManager()
		ids := make([]string, 8)
		for i := range ids {
			ids[i] = m.Create(uint64(i)).ID
		}

		var wg sync.WaitGroup
		for _, id := range ids {
			wg.Add(1)
			go func(id string) {
				defer wg.Done()
				for i := 0; i < 10; i++ {
					s, err := m.Get(id)
					if err != nil {
						return
					}
					_, _ = m.Play(id, s.Metadata.ActionMask.Actions()[0])
					_ = m.List()
				}
			}(id)
		}
		wg.Wait()

		for _, id := range ids {
			s, err := m.Get(id)
			require.NoError(t, err)
			require.Len(t, s.History, 10)
		}
	})
}
