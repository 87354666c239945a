package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/apierr"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/repos"
	"github.com/equify/equify-backend/internal/services"
	"github.com/equify/equify-backend/internal/types"
)

type RecommendationHandler struct {
	log                   *logger.Logger
	recommendationService services.RecommendationService
}

func NewRecommendationHandler(log *logger.Logger, recommendationService services.RecommendationService) *RecommendationHandler {
	return &RecommendationHandler{
		log:                   log.With("handler", "RecommendationHandler"),
		recommendationService: recommendationService,
	}
}

type generateRequest struct {
	RelationshipID string `json:"relationship_id"`
	Context        string `json:"context"`
	Language       string `json:"language"`
}

// POST /api/recommendations/generate
func (h *RecommendationHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	input := services.GenerateInput{
		Context:  req.Context,
		Language: req.Language,
	}
	if req.RelationshipID != "" {
		relationshipID, err := uuid.Parse(req.RelationshipID)
		if err != nil {
			RespondAPIError(c, apierr.MissingParameter("relationshipId"))
			return
		}
		input.RelationshipID = relationshipID
	}
	result, err := h.recommendationService.Generate(c.Request.Context(), currentUserID(c), input)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{
		"success":         true,
		"recommendations": result.Recommendations,
		"insights":        result.Insights,
		"persisted":       result.Persisted,
		"message":         result.Message,
	})
}

// GET /api/recommendations?relationship_id=<uuid>&completed=<bool>
func (h *RecommendationHandler) List(c *gin.Context) {
	var filter repos.RecommendationFilter
	if raw := c.Query("relationship_id"); raw != "" {
		relationshipID, err := uuid.Parse(raw)
		if err != nil {
			RespondAPIError(c, apierr.MissingParameter("relationshipId"))
			return
		}
		filter.RelationshipID = &relationshipID
	}
	switch c.Query("completed") {
	case "true":
		completed := true
		filter.Completed = &completed
	case "false":
		completed := false
		filter.Completed = &completed
	}
	recommendations, err := h.recommendationService.List(c.Request.Context(), currentUserID(c), filter)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, recommendations)
}

type createRecommendationRequest struct {
	RelationshipID string `json:"relationship_id"`
	Title          string `json:"title"`
	Description    string `json:"description"`
	Priority       int    `json:"priority"`
	DueDate        string `json:"due_date"`
}

// POST /api/recommendations
func (h *RecommendationHandler) Create(c *gin.Context) {
	var req createRecommendationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	rec := &types.Recommendation{
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
	}
	if req.RelationshipID != "" {
		relationshipID, err := uuid.Parse(req.RelationshipID)
		if err != nil {
			RespondAPIError(c, apierr.MissingParameter("relationshipId"))
			return
		}
		rec.RelationshipID = &relationshipID
	}
	if req.DueDate != "" {
		dueDate, err := time.Parse(time.RFC3339, req.DueDate)
		if err != nil {
			RespondError(c, http.StatusBadRequest, "bad_request", err)
			return
		}
		rec.DueDate = &dueDate
	}
	created, err := h.recommendationService.CreateManual(c.Request.Context(), currentUserID(c), rec)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// PATCH /api/recommendations/:id/complete
func (h *RecommendationHandler) Complete(c *gin.Context) {
	recommendationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("recommendationId"))
		return
	}
	if err := h.recommendationService.Complete(c.Request.Context(), currentUserID(c), recommendationID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

type snoozeRequest struct {
	DueDate string `json:"due_date"`
}

// PATCH /api/recommendations/:id/snooze
func (h *RecommendationHandler) Snooze(c *gin.Context) {
	recommendationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("recommendationId"))
		return
	}
	var req snoozeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	dueDate, err := time.Parse(time.RFC3339, req.DueDate)
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("dueDate"))
		return
	}
	if err := h.recommendationService.Snooze(c.Request.Context(), currentUserID(c), recommendationID, dueDate); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}

// DELETE /api/recommendations/:id
func (h *RecommendationHandler) Dismiss(c *gin.Context) {
	recommendationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("recommendationId"))
		return
	}
	if err := h.recommendationService.Dismiss(c.Request.Context(), currentUserID(c), recommendationID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
