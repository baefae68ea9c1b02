package api

import (
	"errors"
	"fmt"
	"net/http"

	questionDb "github.com/bloops-games/quiz/internal/database/question/database"
	"github.com/bloops-games/quiz/internal/database/question/model"
	"github.com/gin-gonic/gin"
)

func (h *Handler) listQuestions(c *gin.Context) {
	items, err := h.questions.FetchAll()
	if err != nil {
		h.abort(c, "Failed to fetch questions", err)
		return
	}

	c.JSON(http.StatusOK, items)
}

func (h *Handler) getQuestion(c *gin.Context) {
	q, err := h.questions.Fetch(c.Param("id"))
	if err != nil {
		if errors.Is(err, questionDb.ErrNotFound) {
			c.AbortWithStatusJSON(http.StatusNotFound, errorResponse{Message: "Not found"})
			return
		}
		h.abort(c, "Failed to fetch question", err)
		return
	}

	c.JSON(http.StatusOK, q)
}

func (h *Handler) createQuestion(c *gin.Context) {
	var in model.QuestionInput
	if err := c.ShouldBindJSON(&in); err != nil {
		h.abort(c, "Failed to parse request payload", fmt.Errorf("%w: %v", model.ErrValidation, err))
		return
	}

	q, err := model.NewQuestion(in)
	if err != nil {
		h.abort(c, "Failed to parse request payload", err)
		return
	}

	if err := h.questions.Store(q); err != nil {
		h.abort(c, "Failed to store question", err)
		return
	}

	c.JSON(http.StatusCreated, q)
}

func (h *Handler) deleteQuestion(c *gin.Context) {
	deleted, err := h.questions.Delete(c.Param("id"))
	if err != nil {
		h.abort(c, "Failed to delete question", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"deleted": deleted})
}

// resetQuestions replaces the whole store with the seed questions and
// returns the new contents.
func (h *Handler) resetQuestions(c *gin.Context) {
	items, err := h.seed()
	if err != nil {
		h.abort(c, "Failed to load seed questions", err)
		return
	}

	if _, err := h.questions.SeedIfEmpty(items, true); err != nil {
		h.abort(c, "Failed to reset questions", err)
		return
	}

	h.listQuestions(c)
}
