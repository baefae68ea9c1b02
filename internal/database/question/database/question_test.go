package database

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/bloops-games/quiz/internal/cache"
	"github.com/bloops-games/quiz/internal/database"
	"github.com/bloops-games/quiz/internal/database/question/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()

	ctx := context.Background()
	db, err := database.NewFromEnv(ctx, &database.Config{
		FilePath: filepath.Join(t.TempDir(), "questions.db"),
		Timeout:  time.Second,
	})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = db.Close(ctx) })

	c, err := cache.NewLRU[string, model.Question](16)
	if err != nil {
		t.Fatal(err)
	}

	return New(db, c)
}

func newQuestion(t *testing.T, text string) model.Question {
	t.Helper()

	q, err := model.NewQuestion(model.QuestionInput{Text: text, Options: []model.OptionInput{
		{Text: "yes", Correct: true},
		{Text: "no"},
	}})
	if err != nil {
		t.Fatal(err)
	}
	return q
}

func TestFetchAllEmpty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	list, err := db.FetchAll()
	if err != nil {
		t.Fatal(err)
	}
	if list == nil || len(list) != 0 {
		t.Errorf("expected empty non-nil list got %#v", list)
	}

	if _, err := db.Fetch("missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found got %v", err)
	}
}

func TestStoreFetchDelete(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	q := newQuestion(t, "first")

	if err := db.Store(q); err != nil {
		t.Fatal(err)
	}

	got, err := db.Fetch(q.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Text != "first" || len(got.Options) != 2 {
		t.Errorf("unexpected question %+v", got)
	}

	q.Text = "updated"
	if err := db.Store(q); err != nil {
		t.Fatal(err)
	}

	list, err := db.FetchAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].Text != "updated" {
		t.Errorf("expected single updated question got %+v", list)
	}

	deleted, err := db.Delete(q.ID)
	if err != nil || !deleted {
		t.Fatalf("expected delete to succeed got %v, %v", deleted, err)
	}

	deleted, err = db.Delete(q.ID)
	if err != nil || deleted {
		t.Fatalf("expected second delete to report false got %v, %v", deleted, err)
	}

	if _, err := db.Fetch(q.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected not found after delete got %v", err)
	}
}

func TestStoreInvalid(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	q := newQuestion(t, "q")
	q.Options[1].Correct = true

	if err := db.Store(q); !errors.Is(err, model.ErrValidation) {
		t.Errorf("expected validation error got %v", err)
	}
}

func TestSeedIfEmpty(t *testing.T) {
	t.Parallel()

	db := newTestDB(t)
	first := []model.Question{newQuestion(t, "a"), newQuestion(t, "b")}

	seeded, err := db.SeedIfEmpty(first, false)
	if err != nil || !seeded {
		t.Fatalf("expected seed on empty store got %v, %v", seeded, err)
	}

	seeded, err = db.SeedIfEmpty([]model.Question{newQuestion(t, "c")}, false)
	if err != nil || seeded {
		t.Fatalf("expected no seed on populated store got %v, %v", seeded, err)
	}

	if _, err := db.Fetch(first[0].ID); err != nil {
		t.Fatal(err)
	}

	replacement := []model.Question{newQuestion(t, "c")}
	seeded, err = db.SeedIfEmpty(replacement, true)
	if err != nil || !seeded {
		t.Fatalf("expected forced seed got %v, %v", seeded, err)
	}

	list, err := db.FetchAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 || list[0].ID != replacement[0].ID {
		t.Errorf("expected replacement only got %+v", list)
	}

	if _, err := db.Fetch(first[0].ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected stale cache entry to be purged got %v", err)
	}
}
