package quiz

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/bloops-games/quiz/internal/quiz/game"
	"github.com/jonboulle/clockwork"
)

type noQuestions struct{}

func (noQuestions) FetchAll() ([]model.Question, error) { return nil, nil }

func newTestManager(t *testing.T) (*Manager, *clockwork.FakeClock) {
	t.Helper()
	clock := clockwork.NewFakeClock()
	config := &Config{MaxPlayers: 20, Intermission: 5 * time.Second}
	m := NewManager(config, noQuestions{}, clock)
	t.Cleanup(func() { m.Shutdown(context.Background()) })
	return m, clock
}

func TestManager_CreateAndFetch(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.Create(ctx, 2, 30)
	if err != nil {
		t.Fatal(err)
	}

	got, err := m.Session(s.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got != s {
		t.Error("registry returned another session")
	}

	if _, err := m.Session("missing"); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("got %v, want %v", err, game.ErrNotFound)
	}

	if _, err := m.Create(ctx, 0, 30); !errors.Is(err, game.ErrValidation) {
		t.Errorf("got %v, want %v", err, game.ErrValidation)
	}
	if n := len(m.Sessions()); n != 1 {
		t.Errorf("got %d sessions, want 1", n)
	}
}

func TestManager_SessionsOrdered(t *testing.T) {
	t.Parallel()

	m, clock := newTestManager(t)
	ctx := context.Background()

	var ids []string
	for i := 0; i < 3; i++ {
		s, err := m.Create(ctx, 1, 10)
		if err != nil {
			t.Fatal(err)
		}
		ids = append(ids, s.ID)
		clock.Advance(time.Second)
	}

	for i, s := range m.Sessions() {
		if s.ID != ids[i] {
			t.Errorf("position %d: got %s, want %s", i, s.ID, ids[i])
		}
	}
}

func TestManager_Delete(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	s, err := m.Create(context.Background(), 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	var last game.View
	if _, _, err := s.Subscribe(func(v game.View) { last = v }); err != nil {
		t.Fatal(err)
	}

	if !m.Delete(s.ID) {
		t.Fatal("session was not deleted")
	}
	if m.Delete(s.ID) {
		t.Error("second delete reported success")
	}

	if last == nil || last.Phase() != game.PhaseDestroyed {
		t.Errorf("got last view %+v, want destroyed", last)
	}
	if _, err := m.Session(s.ID); !errors.Is(err, game.ErrNotFound) {
		t.Errorf("got %v, want %v", err, game.ErrNotFound)
	}
}

func TestManager_Shutdown(t *testing.T) {
	t.Parallel()

	m, _ := newTestManager(t)
	ctx := context.Background()

	s, err := m.Create(ctx, 1, 10)
	if err != nil {
		t.Fatal(err)
	}

	m.Shutdown(ctx)

	if p := s.PublicState().Phase(); p != game.PhaseDestroyed {
		t.Errorf("got phase %s, want %s", p, game.PhaseDestroyed)
	}
	if _, err := m.Create(ctx, 1, 10); !errors.Is(err, game.ErrState) {
		t.Errorf("got %v, want %v", err, game.ErrState)
	}
}
