package gamemaster

import (
	"errors"
	"sort"
	"sync"

	"github.com/rs/zerolog/log"

	"ringrush/game"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrGameOver        = errors.New("game is over")
)

// Subscriber is called after every successful play, outside the manager's lock.
type Subscriber func(Update)

type Manager struct {
	mu          sync.RWMutex
	sessions    map[string]*Session
	subscribers []Subscriber
}

func NewManager() *Manager {
	return &Manager{
		sessions: make(map[string]*Session),
	}
}

// Subscribe registers fn for the updates of every session.
func (m *Manager) Subscribe(fn Subscriber) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subscribers = append(m.subscribers, fn)
}

func (m *Manager) Create(seed uint64) Session {
	s := newSession(seed)

	m.mu.Lock()
	m.sessions[s.ID] = s
	m.mu.Unlock()

	log.Info().Msgf("created game %s with seed %d, %s to move", s.ID, seed, s.State.CurrentPlayer)
	return s.snapshot()
}

func (m *Manager) Get(id string) (Session, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	s, ok := m.sessions[id]
	if !ok {
		return Session{}, ErrSessionNotFound
	}
	return s.snapshot(), nil
}

// List returns every session, oldest first.
func (m *Manager) List() []Session {
	m.mu.RLock()
	sessions := make([]Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s.snapshot())
	}
	m.mu.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})
	return sessions
}

func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.sessions[id]; !ok {
		return ErrSessionNotFound
	}
	delete(m.sessions, id)
	log.Info().Msgf("deleted game %s", id)
	return nil
}

// Play applies a for the player to move. It returns ErrGameOver once the game
// has ended and wraps game.ErrInvalidAction or game.ErrIllegalAction for
// actions the game refuses.
func (m *Manager) Play(id string, a game.Action) (Update, error) {
	m.mu.Lock()
	s, ok := m.sessions[id]
	if !ok {
		m.mu.Unlock()
		return Update{}, ErrSessionNotFound
	}
	update, err := s.play(a)
	subscribers := append([]Subscriber{}, m.subscribers...)
	m.mu.Unlock()

	if err != nil {
		return Update{}, err
	}
	if update.Metadata.Terminated {
		log.Info().Msgf("game %s over with scores %v", id, game.Scores(update.State))
	}
	for _, notify := range subscribers {
		notify(update)
	}
	return update, nil
}
