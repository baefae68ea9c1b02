package main

import (
	"strings"
	"testing"

	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/enescakir/emoji"
)

func TestRenderQuestion(t *testing.T) {
	q, err := model.NewQuestion(model.QuestionInput{Text: "2+2?", Options: []model.OptionInput{
		{Text: "3"},
		{Text: "4", Correct: true},
	}})
	if err != nil {
		t.Fatal(err)
	}

	out := renderQuestion(q)
	lines := strings.Split(strings.TrimSpace(out), "\n")
	if len(lines) != 4 {
		t.Fatalf("got %d lines, want 4:\n%s", len(lines), out)
	}

	if !strings.Contains(lines[0], "2+2?") || !strings.Contains(lines[1], q.ID) {
		t.Errorf("unexpected header:\n%s", out)
	}
	if !strings.Contains(lines[2], emoji.CrossMark.String()) {
		t.Errorf("wrong option is not crossed: %q", lines[2])
	}
	if !strings.Contains(lines[3], emoji.CheckMarkButton.String()) {
		t.Errorf("correct option is not checked: %q", lines[3])
	}

	// Pooled builders must not leak between renders.
	if again := renderQuestion(q); again != out {
		t.Errorf("second render differs:\n%s", again)
	}
}
