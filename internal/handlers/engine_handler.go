package handlers

import (
	"context"
	"errors"
	"net/http"

	"learning-engine/internal/models"
	"learning-engine/internal/session"
	"learning-engine/internal/store"

	"github.com/gin-gonic/gin"
)

// EngineHandler exposes the session engine to the presentation layer.
type EngineHandler struct {
	Engine   *session.Orchestrator
	Progress *store.ProgressStore
}

func NewEngineHandler(engine *session.Orchestrator, progress *store.ProgressStore) *EngineHandler {
	return &EngineHandler{Engine: engine, Progress: progress}
}

// GetSession returns the current session snapshot.
func (h *EngineHandler) GetSession(c *gin.Context) {
	c.JSON(http.StatusOK, h.Engine.State())
}

// ActivateSession selects the collection to quiz on and fetches its first batch.
func (h *EngineHandler) ActivateSession(c *gin.Context) {
	var req struct {
		CollectionID int64 `json:"collection_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	if err := h.Engine.ActivateCollection(context.Background(), req.CollectionID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Engine.State())
}

// SubmitAnswer records an answer for a card.
func (h *EngineHandler) SubmitAnswer(c *gin.Context) {
	var req struct {
		QuizType string `json:"quiz_type" binding:"required"`
		CardID   int64  `json:"card_id" binding:"required"`
		IsNew    bool   `json:"is_new"`
		Rating   string `json:"rating"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid answer format", "details": err.Error()})
		return
	}
	if err := h.Engine.SubmitAnswer(context.Background(), req.QuizType, req.CardID, req.IsNew, req.Rating); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Engine.State())
}

// Skip advances past the current quiz item without answering.
func (h *EngineHandler) Skip(c *gin.Context) {
	if err := h.Engine.Advance(context.Background()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Engine.State())
}

// MarkMastered marks the current quiz item as fully learned.
func (h *EngineHandler) MarkMastered(c *gin.Context) {
	var req struct {
		IsNew bool `json:"is_new"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	if err := h.Engine.MarkMastered(context.Background(), req.IsNew); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, h.Engine.State())
}

// ToggleReviewMode flips the review flag and refetches the batch.
func (h *EngineHandler) ToggleReviewMode(c *gin.Context) {
	mode, err := h.Engine.ToggleReviewMode(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"review_mode": mode})
}

// StopCollection stops learning the active collection.
func (h *EngineHandler) StopCollection(c *gin.Context) {
	if err := h.Engine.StopCollection(context.Background()); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Collection stopped"})
}

// RegisterCollection registers a new collection with a daily goal and makes
// it the active one.
func (h *EngineHandler) RegisterCollection(c *gin.Context) {
	var req struct {
		CollectionID int64 `json:"collection_id" binding:"required"`
		Goal         int   `json:"goal" binding:"required,min=1"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format", "details": err.Error()})
		return
	}
	if err := h.Engine.RegisterCollection(context.Background(), req.CollectionID, req.Goal); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, h.Engine.State())
}

// ListCollections serves the catalog through the collection-list cache.
func (h *EngineHandler) ListCollections(c *gin.Context) {
	list, err := h.Engine.Collections(context.Background())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// LearningList returns every collection still in progress.
func (h *EngineHandler) LearningList(c *gin.Context) {
	c.JSON(http.StatusOK, h.Progress.InProgress())
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, models.ErrNoActiveCollection),
		errors.Is(err, models.ErrNoQuiz):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrInvalidQuestionType),
		errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrInvalidTimestamp):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, models.ErrAlreadyRegistered):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case models.IsRemote(err):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}
