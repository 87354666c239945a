package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/apierr"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/services"
	"github.com/equify/equify-backend/internal/types"
)

type FavorHandler struct {
	log          *logger.Logger
	favorService services.FavorService
}

func NewFavorHandler(log *logger.Logger, favorService services.FavorService) *FavorHandler {
	return &FavorHandler{
		log:          log.With("handler", "FavorHandler"),
		favorService: favorService,
	}
}

type logFavorRequest struct {
	RelationshipID  string   `json:"relationship_id"`
	Direction       string   `json:"direction"`
	Category        string   `json:"category"`
	Description     string   `json:"description"`
	EstimatedValue  *float64 `json:"estimated_value"`
	EmotionalWeight int      `json:"emotional_weight"`
	OccurredAt      string   `json:"occurred_at"`
	Reciprocated    bool     `json:"reciprocated"`
	Context         string   `json:"context"`
}

// POST /api/favors
func (h *FavorHandler) Log(c *gin.Context) {
	var req logFavorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	relationshipID, err := uuid.Parse(req.RelationshipID)
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("relationshipId"))
		return
	}
	favor := &types.Favor{
		RelationshipID:  relationshipID,
		Direction:       req.Direction,
		Category:        req.Category,
		Description:     req.Description,
		EstimatedValue:  req.EstimatedValue,
		EmotionalWeight: req.EmotionalWeight,
		Reciprocated:    req.Reciprocated,
		Context:         req.Context,
	}
	if req.OccurredAt != "" {
		occurredAt, err := time.Parse(time.RFC3339, req.OccurredAt)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		favor.OccurredAt = occurredAt
	}
	logged, err := h.favorService.Log(c.Request.Context(), currentUserID(c), favor)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, logged)
}

// GET /api/favors?relationship_id=<uuid>
func (h *FavorHandler) List(c *gin.Context) {
	userID := currentUserID(c)
	if raw := c.Query("relationship_id"); raw != "" {
		relationshipID, err := uuid.Parse(raw)
		if err != nil {
			RespondAPIError(c, apierr.MissingParameter("relationshipId"))
			return
		}
		favors, err := h.favorService.ListByRelationship(c.Request.Context(), userID, relationshipID)
		if err != nil {
			RespondAPIError(c, err)
			return
		}
		RespondOK(c, favors)
		return
	}
	favors, err := h.favorService.ListByUser(c.Request.Context(), userID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, favors)
}

type reciprocatedRequest struct {
	Reciprocated bool `json:"reciprocated"`
}

// PATCH /api/favors/:id/reciprocated
func (h *FavorHandler) SetReciprocated(c *gin.Context) {
	favorID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("favorId"))
		return
	}
	var req reciprocatedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	if err := h.favorService.SetReciprocated(c.Request.Context(), currentUserID(c), favorID, req.Reciprocated); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
