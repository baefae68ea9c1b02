package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const (
	MinOptions = 2
	MaxOptions = 4
)

var ErrValidation = fmt.Errorf("validation errors")

var validate = validator.New()

type Option struct {
	ID      string `json:"id" validate:"required,uuid"`
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

// Question is a stored multiple-choice item. Exactly one option is correct.
type Question struct {
	ID      string   `json:"id" validate:"required,uuid"`
	Text    string   `json:"text" validate:"required"`
	Options []Option `json:"options" validate:"min=2,max=4,dive"`
}

func (q Question) Validate() error {
	if err := validate.Struct(q); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	if err := exactlyOneCorrect(len(q.Options), func(i int) bool { return q.Options[i].Correct }); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(q.Options))
	for _, o := range q.Options {
		if _, ok := seen[o.ID]; ok {
			return fmt.Errorf("%w: duplicate option id %s", ErrValidation, o.ID)
		}
		seen[o.ID] = struct{}{}
	}

	return nil
}

func (q Question) CorrectOption() (Option, bool) {
	for _, o := range q.Options {
		if o.Correct {
			return o, true
		}
	}
	return Option{}, false
}

type OptionInput struct {
	Text    string `json:"text" yaml:"text"`
	Correct bool   `json:"correct" yaml:"correct"`
}

// QuestionInput is a question as submitted by a client, before ids are
// assigned.
type QuestionInput struct {
	Text    string        `json:"text" yaml:"text" validate:"required"`
	Options []OptionInput `json:"options" yaml:"options" validate:"min=2,max=4"`
}

func (in QuestionInput) Validate() error {
	if err := validate.Struct(in); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}

	return exactlyOneCorrect(len(in.Options), func(i int) bool { return in.Options[i].Correct })
}

// NewQuestion assigns fresh ids to a validated input.
func NewQuestion(in QuestionInput) (Question, error) {
	if err := in.Validate(); err != nil {
		return Question{}, err
	}

	q := Question{
		ID:      uuid.New().String(),
		Text:    in.Text,
		Options: make([]Option, len(in.Options)),
	}

	for i, o := range in.Options {
		q.Options[i] = Option{ID: uuid.New().String(), Text: o.Text, Correct: o.Correct}
	}

	return q, nil
}

func exactlyOneCorrect(n int, correct func(i int) bool) error {
	var count int
	for i := 0; i < n; i++ {
		if correct(i) {
			count++
		}
	}

	if count != 1 {
		return fmt.Errorf("%w: only one option can be marked as correct, got %d", ErrValidation, count)
	}

	return nil
}
