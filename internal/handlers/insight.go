package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/apierr"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/services"
)

type InsightHandler struct {
	log            *logger.Logger
	insightService services.InsightService
}

func NewInsightHandler(log *logger.Logger, insightService services.InsightService) *InsightHandler {
	return &InsightHandler{
		log:            log.With("handler", "InsightHandler"),
		insightService: insightService,
	}
}

// GET /api/insights?relationship_id=<uuid>
func (h *InsightHandler) List(c *gin.Context) {
	var relationshipID *uuid.UUID
	if raw := c.Query("relationship_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			RespondAPIError(c, apierr.MissingParameter("relationshipId"))
			return
		}
		relationshipID = &parsed
	}
	insights, err := h.insightService.List(c.Request.Context(), currentUserID(c), relationshipID)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, insights)
}

// PATCH /api/insights/:id/acted-upon
func (h *InsightHandler) MarkActedUpon(c *gin.Context) {
	insightID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondAPIError(c, apierr.MissingParameter("insightId"))
		return
	}
	if err := h.insightService.MarkActedUpon(c.Request.Context(), currentUserID(c), insightID); err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, gin.H{"success": true})
}
