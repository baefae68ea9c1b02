package database

import "time"

type Config struct {
	FilePath string        `envconfig:"QUIZ_DB_FILE_PATH" default:"questions.db"`
	Timeout  time.Duration `envconfig:"QUIZ_DB_OPEN_TIMEOUT" default:"1s"`
}
