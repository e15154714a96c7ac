package handlers

import (
	"errors"
	"net/http"

	"oneq/models"
	"oneq/services/chat"
	"oneq/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ChatHandler exposes the conversational quoting endpoints.
type ChatHandler struct {
	Orchestrator chat.SessionOrchestrator
	Logger       *zap.Logger
}

func NewChatHandler(orchestrator chat.SessionOrchestrator, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{Orchestrator: orchestrator, Logger: logger}
}

type startSessionRequest struct {
	Category *models.Category `json:"category,omitempty"`
}

// StartSessionHandler opens a new quoting session, optionally pre-seeded
// with a category.
func (h *ChatHandler) StartSessionHandler(c *gin.Context) {
	var payload startSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&payload); err != nil {
			utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
			return
		}
	}
	if payload.Category != nil && !payload.Category.IsValid() {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", "unknown category: "+string(*payload.Category))
		return
	}

	sess, err := h.Orchestrator.StartSession(c.Request.Context(), payload.Category)
	if err != nil {
		h.Logger.Error("failed to start session", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to start session", err.Error())
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"sessionId": sess.ID,
		"status":    sess.Status,
		"missing":   sess.Accumulated.MissingFields(),
	})
}

// MessageHandler processes one user utterance for an existing session.
func (h *ChatHandler) MessageHandler(c *gin.Context) {
	var payload models.ChatRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	resp, err := h.Orchestrator.HandleTurn(c.Request.Context(), payload.SessionID, payload.Message)
	if err != nil {
		var notFound *chat.SessionNotFoundError
		if errors.As(err, &notFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
			return
		}
		var closed *chat.SessionClosedError
		if errors.As(err, &closed) {
			utils.JSONError(c, http.StatusConflict, "session closed", err.Error())
			return
		}
		h.Logger.Error("turn failed", zap.String("sessionId", payload.SessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to process message", err.Error())
		return
	}

	if resp.Degraded {
		// The turn was recorded but understanding is unavailable right now.
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// AbandonSessionHandler explicitly closes a session.
func (h *ChatHandler) AbandonSessionHandler(c *gin.Context) {
	sessionID := c.Param("sessionID")
	if err := h.Orchestrator.Abandon(c.Request.Context(), sessionID); err != nil {
		var notFound *chat.SessionNotFoundError
		if errors.As(err, &notFound) {
			utils.JSONError(c, http.StatusNotFound, "session not found", err.Error())
			return
		}
		h.Logger.Error("failed to abandon session", zap.String("sessionId", sessionID), zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to abandon session", err.Error())
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "status": models.SessionAbandoned})
}
