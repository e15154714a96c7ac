package handlers

import (
	"errors"
	"net/http"

	"oneq/models"
	"oneq/services/scoring"
	"oneq/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ScoreHandler exposes the direct scoring endpoint.
type ScoreHandler struct {
	Matcher scoring.MatcherService
	Logger  *zap.Logger
}

func NewScoreHandler(matcher scoring.MatcherService, logger *zap.Logger) *ScoreHandler {
	return &ScoreHandler{Matcher: matcher, Logger: logger}
}

// CalculateHandler ranks an explicit candidate set for a fully specified
// request.
func (h *ScoreHandler) CalculateHandler(c *gin.Context) {
	var payload models.ScoreRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}

	ranked, err := h.Matcher.RecommendForVendors(payload.Request, payload.VendorIDs, payload.Limit)
	if err != nil {
		var invalid *scoring.InvalidRequestError
		if errors.As(err, &invalid) {
			utils.JSONFieldError(c, http.StatusBadRequest, "invalid request", invalid.Fields)
			return
		}
		var empty *scoring.EmptyCandidateSetError
		if errors.As(err, &empty) {
			utils.JSONError(c, http.StatusNotFound, "no scorable vendors", empty.Message)
			return
		}
		h.Logger.Error("scoring failed", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "failed to score vendors", err.Error())
		return
	}

	c.JSON(http.StatusOK, gin.H{"results": ranked})
}
