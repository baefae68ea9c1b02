package model

import (
	"errors"
	"testing"

	"github.com/google/uuid"
)

func opts(correct ...bool) []OptionInput {
	out := make([]OptionInput, len(correct))
	for i, c := range correct {
		out[i] = OptionInput{Text: uuid.New().String()[:4], Correct: c}
	}
	return out
}

func TestQuestionInputValidate(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name    string
		input   QuestionInput
		wantErr bool
	}{
		{name: "valid_two", input: QuestionInput{Text: "q", Options: opts(true, false)}},
		{name: "valid_four", input: QuestionInput{Text: "q", Options: opts(false, false, false, true)}},
		{name: "empty_text", input: QuestionInput{Text: "", Options: opts(true, false)}, wantErr: true},
		{name: "one_option", input: QuestionInput{Text: "q", Options: opts(true)}, wantErr: true},
		{name: "five_options", input: QuestionInput{Text: "q", Options: opts(true, false, false, false, false)}, wantErr: true},
		{name: "no_correct", input: QuestionInput{Text: "q", Options: opts(false, false)}, wantErr: true},
		{name: "two_correct", input: QuestionInput{Text: "q", Options: opts(true, true, false)}, wantErr: true},
	}

	for _, tc := range testCases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			err := tc.input.Validate()
			if tc.wantErr && !errors.Is(err, ErrValidation) {
				t.Errorf("expected validation error got %v", err)
			}
			if !tc.wantErr && err != nil {
				t.Errorf("unexpected error %v", err)
			}
		})
	}
}

func TestNewQuestion(t *testing.T) {
	t.Parallel()

	q, err := NewQuestion(QuestionInput{Text: "Capital of France?", Options: []OptionInput{
		{Text: "Paris", Correct: true},
		{Text: "Lyon"},
	}})
	if err != nil {
		t.Fatal(err)
	}

	if err := q.Validate(); err != nil {
		t.Fatalf("generated question is invalid: %v", err)
	}

	if q.Options[0].ID == q.Options[1].ID {
		t.Error("expected distinct option ids")
	}

	correct, ok := q.CorrectOption()
	if !ok || correct.Text != "Paris" {
		t.Errorf("unexpected correct option %+v", correct)
	}
}

func TestQuestionValidateIDs(t *testing.T) {
	t.Parallel()

	id := uuid.New().String()
	q := Question{ID: "not-a-uuid", Text: "q", Options: []Option{
		{ID: id, Text: "a", Correct: true},
		{ID: uuid.New().String(), Text: "b"},
	}}
	if err := q.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for bad id got %v", err)
	}

	q.ID = uuid.New().String()
	q.Options[1].ID = id
	if err := q.Validate(); !errors.Is(err, ErrValidation) {
		t.Errorf("expected validation error for duplicate option id got %v", err)
	}
}
