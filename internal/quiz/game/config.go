package game

import (
	"fmt"
	"time"

	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/jonboulle/clockwork"
)

const (
	MinRounds                 = 1
	MaxRounds                 = 20
	MinTimeForQuestionSeconds = 1
	MaxTimeForQuestionSeconds = 120

	defaultMaxPlayers   = 20
	defaultIntermission = 5 * time.Second
)

// QuestionRepository is the read side of the question store a session
// draws round content from.
type QuestionRepository interface {
	FetchAll() ([]model.Question, error)
}

type Config struct {
	Rounds                 int
	TimeForQuestionSeconds int

	// MaxPlayers defaults to 20 when zero.
	MaxPlayers int
	// Intermission is the delay between a resolved round and the next one.
	Intermission time.Duration

	Questions QuestionRepository
	Clock     clockwork.Clock
}

func (c Config) Validate() error {
	if c.Rounds < MinRounds || c.Rounds > MaxRounds {
		return fmt.Errorf("%w: rounds must be in [%d, %d], got %d", ErrValidation, MinRounds, MaxRounds, c.Rounds)
	}

	if c.TimeForQuestionSeconds < MinTimeForQuestionSeconds || c.TimeForQuestionSeconds > MaxTimeForQuestionSeconds {
		return fmt.Errorf("%w: time for question must be in [%d, %d] seconds, got %d",
			ErrValidation, MinTimeForQuestionSeconds, MaxTimeForQuestionSeconds, c.TimeForQuestionSeconds)
	}

	if c.MaxPlayers < 0 || c.Intermission < 0 {
		return fmt.Errorf("%w: negative limits", ErrValidation)
	}

	if c.Questions == nil {
		return fmt.Errorf("%w: question repository is required", ErrValidation)
	}

	return nil
}

func (c Config) withDefaults() Config {
	if c.MaxPlayers == 0 {
		c.MaxPlayers = defaultMaxPlayers
	}
	if c.Intermission == 0 {
		c.Intermission = defaultIntermission
	}
	if c.Clock == nil {
		c.Clock = clockwork.NewRealClock()
	}
	return c
}
