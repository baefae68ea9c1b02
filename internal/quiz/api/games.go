package api

import (
	"fmt"
	"net/http"

	"github.com/bloops-games/quiz/internal/quiz/game"
	"github.com/gin-gonic/gin"
)

type createGameRequest struct {
	TimeToAnswerSeconds int `json:"timeToAnswerSeconds" binding:"required,min=1,max=120"`
	Questions           int `json:"questions" binding:"required,min=1,max=20"`
}

type joinRequest struct {
	Name string `json:"name" binding:"required,max=32"`
}

type submitAnswerRequest struct {
	SelectedOptionID string `json:"selectedOptionId" binding:"required,uuid"`
}

func (h *Handler) session(c *gin.Context) (*game.Session, bool) {
	session, err := h.manager.Session(c.Param("id"))
	if err != nil {
		h.abort(c, "Game not found", err)
		return nil, false
	}

	return session, true
}

func bindJSON(c *gin.Context, v interface{}) error {
	if err := c.ShouldBindJSON(v); err != nil {
		return fmt.Errorf("%w: %v", game.ErrValidation, err)
	}
	return nil
}

func (h *Handler) listGames(c *gin.Context) {
	sessions := h.manager.Sessions()
	views := make([]game.View, len(sessions))
	for i, s := range sessions {
		views[i] = s.PublicState()
	}

	c.JSON(http.StatusOK, views)
}

func (h *Handler) createGame(c *gin.Context) {
	var req createGameRequest
	if err := bindJSON(c, &req); err != nil {
		h.abort(c, "Failed to parse request payload", err)
		return
	}

	session, err := h.manager.Create(c.Request.Context(), req.Questions, req.TimeToAnswerSeconds)
	if err != nil {
		h.abort(c, "Failed to create game", err)
		return
	}

	c.JSON(http.StatusCreated, session.PublicState())
}

func (h *Handler) getGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, session.PublicState())
}

func (h *Handler) deleteGame(c *gin.Context) {
	h.manager.Delete(c.Param("id"))
	c.JSON(http.StatusOK, gin.H{})
}

func (h *Handler) joinGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	var req joinRequest
	if err := bindJSON(c, &req); err != nil {
		h.abort(c, "Failed to parse request payload", err)
		return
	}

	player := game.NewPlayer(req.Name)
	if err := session.AddPlayer(player); err != nil {
		h.abort(c, "Failed to add player", err)
		return
	}

	c.JSON(http.StatusCreated, player)
}

func (h *Handler) leaveGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	token, ok := bearerToken(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"left": session.LeavePlayer(token)})
}

func (h *Handler) kickPlayer(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, gin.H{"removed": session.RemovePlayer(c.Param("playerId"))})
}

func (h *Handler) startGame(c *gin.Context) {
	session, ok := h.session(c)
	if !ok {
		return
	}

	if err := session.StartGame(); err != nil {
		h.abort(c, "Failed to start game", err)
		return
	}

	c.JSON(http.StatusOK, session.PublicState())
}

func (h *Handler) submitAnswer(c *gin.Context) {
	token, ok := bearerToken(c)
	if !ok {
		return
	}

	session, ok := h.session(c)
	if !ok {
		return
	}

	var req submitAnswerRequest
	if err := bindJSON(c, &req); err != nil {
		h.abort(c, "Failed to parse request payload", err)
		return
	}

	if err := session.PostAnswer(token, req.SelectedOptionID); err != nil {
		h.abort(c, "Failed to post answer", err)
		return
	}

	c.JSON(http.StatusOK, session.PublicState())
}
