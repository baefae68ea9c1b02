package quiz

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/bloops-games/quiz/internal/logging"
	"github.com/bloops-games/quiz/internal/quiz/game"
	"github.com/jonboulle/clockwork"
)

func NewManager(config *Config, questions game.QuestionRepository, clock clockwork.Clock) *Manager {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}

	return &Manager{
		config:    config,
		questions: questions,
		clock:     clock,
		sessions:  map[string]*game.Session{},
	}
}

// Manager is the session registry: it owns every live session and is the
// only place sessions are created and destroyed.
type Manager struct {
	mtx sync.RWMutex

	config    *Config
	questions game.QuestionRepository
	clock     clockwork.Clock

	// key: session id
	sessions map[string]*game.Session
	closed   bool
}

// Clock is the clock every session of this registry schedules on.
func (m *Manager) Clock() clockwork.Clock {
	return m.clock
}

func (m *Manager) Create(ctx context.Context, rounds, timeForQuestionSeconds int) (*game.Session, error) {
	session, err := game.NewSession(ctx, game.Config{
		Rounds:                 rounds,
		TimeForQuestionSeconds: timeForQuestionSeconds,
		MaxPlayers:             m.config.MaxPlayers,
		Intermission:           m.config.Intermission,
		Questions:              m.questions,
		Clock:                  m.clock,
	})
	if err != nil {
		return nil, fmt.Errorf("new session: %w", err)
	}

	m.mtx.Lock()
	defer m.mtx.Unlock()

	if m.closed {
		session.NotifyDestroy()
		return nil, fmt.Errorf("registry is shut down: %w", game.ErrState)
	}

	m.sessions[session.ID] = session
	logging.FromContext(ctx).Named("quiz.Manager").Infof(
		"The game session created, id: %s, rounds: %d, seconds: %d", session.ID, rounds, timeForQuestionSeconds)

	return session, nil
}

func (m *Manager) Session(id string) (*game.Session, error) {
	m.mtx.RLock()
	defer m.mtx.RUnlock()

	session, ok := m.sessions[id]
	if !ok {
		return nil, fmt.Errorf("session %s: %w", id, game.ErrNotFound)
	}

	return session, nil
}

// Sessions returns live sessions ordered by creation time.
func (m *Manager) Sessions() []*game.Session {
	m.mtx.RLock()
	sessions := make([]*game.Session, 0, len(m.sessions))
	for _, s := range m.sessions {
		sessions = append(sessions, s)
	}
	m.mtx.RUnlock()

	sort.Slice(sessions, func(i, j int) bool {
		if sessions[i].CreatedAt.Equal(sessions[j].CreatedAt) {
			return sessions[i].ID < sessions[j].ID
		}
		return sessions[i].CreatedAt.Before(sessions[j].CreatedAt)
	})

	return sessions
}

// Delete destroys the session and reports whether it existed.
func (m *Manager) Delete(id string) bool {
	m.mtx.Lock()
	session, ok := m.sessions[id]
	delete(m.sessions, id)
	m.mtx.Unlock()

	if !ok {
		return false
	}

	session.NotifyDestroy()
	return true
}

// Shutdown destroys every session and rejects further creation.
func (m *Manager) Shutdown(ctx context.Context) {
	logger := logging.FromContext(ctx).Named("quiz.Manager")

	m.mtx.Lock()
	sessions := m.sessions
	m.sessions = map[string]*game.Session{}
	m.closed = true
	m.mtx.Unlock()

	start := time.Now()
	for _, s := range sessions {
		s.NotifyDestroy()
	}

	logger.Infof("Sessions destroyed: %d, took %s", len(sessions), time.Since(start))
}
