package game

import (
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

const MaxNameLength = 32

var validate = validator.New()

// Player is the full player record including the secret token. It is only
// ever returned to the player that joined; broadcasts use the views.
type Player struct {
	ID    string `json:"id" validate:"required,uuid"`
	Name  string `json:"name" validate:"required,max=32"`
	Token string `json:"token" validate:"required"`
	Score int    `json:"score" validate:"gte=0"`
}

// NewPlayer creates a player with a fresh id and token.
func NewPlayer(name string) Player {
	return Player{
		ID:    uuid.New().String(),
		Name:  name,
		Token: uuid.New().String(),
	}
}

func (p Player) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return nil
}
