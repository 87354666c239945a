package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/services"
)

type DashboardHandler struct {
	log              *logger.Logger
	dashboardService services.DashboardService
}

func NewDashboardHandler(log *logger.Logger, dashboardService services.DashboardService) *DashboardHandler {
	return &DashboardHandler{
		log:              log.With("handler", "DashboardHandler"),
		dashboardService: dashboardService,
	}
}

// GET /api/dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	stats, err := h.dashboardService.Stats(c.Request.Context(), currentUserID(c))
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, stats)
}
