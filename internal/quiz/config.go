package quiz

import (
	"time"

	"github.com/bloops-games/quiz/internal/database"
)

type Config struct {
	// Verbose logging of every session transition
	Debug bool `envconfig:"QUIZ_DEBUG" default:"false"`

	// Port on which the REST API, push streams and health check are launched
	Port string `envconfig:"PORT" default:"8080"`

	// pprof port, disabled when empty
	ProfPort string `envconfig:"QUIZ_PROF_PORT"`

	// Number of questions kept in the lookup cache
	CacheSize int `envconfig:"QUIZ_CACHE_SIZE" default:"256"`

	// Pause between a resolved round and the next question
	Intermission time.Duration `envconfig:"QUIZ_INTERMISSION" default:"5s"`
	MaxPlayers   int           `envconfig:"QUIZ_MAX_PLAYERS" default:"20"`

	// Reconnect delay advertised to SSE clients
	SSERetry time.Duration `envconfig:"QUIZ_SSE_RETRY" default:"10s"`

	// Interval of SSE keep-alive comments and websocket pings, disabled when zero
	KeepAlive time.Duration `envconfig:"QUIZ_STREAM_KEEPALIVE" default:"15s"`

	// YAML file with seed questions, the embedded examples are used when empty
	SeedFile string `envconfig:"QUIZ_SEED_FILE"`

	AllowedOrigins []string `envconfig:"QUIZ_ALLOWED_ORIGINS" default:"*"`

	Db database.Config
}
