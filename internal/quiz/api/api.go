// Package api exposes the session registry and the question store over
// HTTP. It holds no game logic: every handler relays to a game.Session or
// the store and renders the result.
package api

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	questionDb "github.com/bloops-games/quiz/internal/database/question/database"
	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/bloops-games/quiz/internal/logging"
	"github.com/bloops-games/quiz/internal/quiz"
	"github.com/bloops-games/quiz/internal/quiz/game"
	"github.com/bloops-games/quiz/internal/server"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/jonboulle/clockwork"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

const authMessage = "Authorization header missing. When joining a game, use the token and set it as Bearer Token. E.g. 'Authorization: Bearer *************'"

type QuestionStore interface {
	FetchAll() ([]model.Question, error)
	Fetch(id string) (model.Question, error)
	Store(q model.Question) error
	Delete(id string) (bool, error)
	SeedIfEmpty(items []model.Question, force bool) (bool, error)
}

// SeedFn returns the questions a forced reset writes to the store.
type SeedFn func() ([]model.Question, error)

func New(ctx context.Context, config *quiz.Config, manager *quiz.Manager, questions QuestionStore, seed SeedFn) *Handler {
	return &Handler{
		config:    config,
		manager:   manager,
		questions: questions,
		seed:      seed,
		clock:     manager.Clock(),
		logger:    logging.FromContext(ctx).Named("quiz.api"),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(config.AllowedOrigins),
		},
	}
}

type Handler struct {
	config    *quiz.Config
	manager   *quiz.Manager
	questions QuestionStore
	seed      SeedFn
	clock     clockwork.Clock
	logger    *zap.SugaredLogger
	upgrader  websocket.Upgrader
}

// Routes builds the gin engine wrapped in the CORS middleware.
func (h *Handler) Routes(ctx context.Context) http.Handler {
	engine := gin.New()
	engine.Use(h.requestLogger(), gin.Recovery())

	engine.GET("/health", gin.WrapH(server.HandleHealth(ctx)))

	questions := engine.Group("/questions")
	{
		questions.GET("", h.listQuestions)
		questions.POST("", h.createQuestion)
		questions.POST("/reset", h.resetQuestions)
		questions.GET("/:id", h.getQuestion)
		questions.DELETE("/:id", h.deleteQuestion)
	}

	games := engine.Group("/games")
	{
		games.GET("", h.listGames)
		games.POST("", h.createGame)
		games.GET("/:id", h.getGame)
		games.DELETE("/:id", h.deleteGame)
		games.POST("/:id/join", h.joinGame)
		games.POST("/:id/leave", h.leaveGame)
		games.POST("/:id/start", h.startGame)
		games.POST("/:id/submitAnswer", h.submitAnswer)
		games.DELETE("/:id/players/:playerId", h.kickPlayer)
		games.GET("/:id/sse", h.streamSSE)
		games.GET("/:id/ws", h.streamWS)
	}

	c := cors.New(cors.Options{
		AllowedOrigins: h.config.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodHead,
			http.MethodGet,
			http.MethodPost,
			http.MethodDelete,
		},
		AllowedHeaders: []string{"*"},
	})

	return c.Handler(engine)
}

func (h *Handler) requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Request = c.Request.WithContext(logging.WithLogger(c.Request.Context(), h.logger))
		c.Next()
		h.logger.Debugf("%s %s %d, took %s", c.Request.Method, c.Request.URL.Path, c.Writer.Status(), time.Since(start))
	}
}

type errorResponse struct {
	Message string `json:"message"`
	Error   string `json:"error,omitempty"`
}

func statusOf(err error) int {
	switch {
	case errors.Is(err, game.ErrValidation),
		errors.Is(err, model.ErrValidation),
		errors.Is(err, game.ErrCapacity),
		errors.Is(err, game.ErrState):
		return http.StatusBadRequest
	case errors.Is(err, game.ErrAuth):
		return http.StatusUnauthorized
	case errors.Is(err, game.ErrNotFound), errors.Is(err, questionDb.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (h *Handler) abort(c *gin.Context, message string, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		h.logger.Errorf("%s %s: %v", c.Request.Method, c.Request.URL.Path, err)
		c.AbortWithStatusJSON(status, errorResponse{Message: message})
		return
	}

	c.AbortWithStatusJSON(status, errorResponse{Message: message, Error: err.Error()})
}

func bearerToken(c *gin.Context) (string, bool) {
	parts := strings.Split(c.GetHeader("Authorization"), " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, errorResponse{Message: "Unauthorized", Error: authMessage})
		return "", false
	}

	return parts[1], true
}

func originChecker(allowed []string) func(r *http.Request) bool {
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		for _, o := range allowed {
			if o == "*" || strings.EqualFold(o, origin) {
				return true
			}
		}
		return false
	}
}
