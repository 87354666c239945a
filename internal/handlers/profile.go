package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/services"
	"github.com/equify/equify-backend/internal/types"
)

type ProfileHandler struct {
	log            *logger.Logger
	profileService services.ProfileService
}

func NewProfileHandler(log *logger.Logger, profileService services.ProfileService) *ProfileHandler {
	return &ProfileHandler{
		log:            log.With("handler", "ProfileHandler"),
		profileService: profileService,
	}
}

// GET /api/profile
func (h *ProfileHandler) Get(c *gin.Context) {
	profile, err := h.profileService.Get(c.Request.Context(), currentUserID(c))
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, profile)
}

type updateProfileRequest struct {
	DisplayName         string `json:"display_name"`
	PersonalityType     string `json:"personality_type"`
	ReciprocityStyle    string `json:"reciprocity_style"`
	OnboardingCompleted bool   `json:"onboarding_completed"`
	SubscriptionTier    string `json:"subscription_tier"`
}

// PUT /api/profile
func (h *ProfileHandler) Update(c *gin.Context) {
	var req updateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "bad_request", err)
		return
	}
	profile := &types.Profile{
		DisplayName:         req.DisplayName,
		PersonalityType:     req.PersonalityType,
		ReciprocityStyle:    req.ReciprocityStyle,
		OnboardingCompleted: req.OnboardingCompleted,
		SubscriptionTier:    req.SubscriptionTier,
	}
	updated, err := h.profileService.Update(c.Request.Context(), currentUserID(c), profile)
	if err != nil {
		RespondAPIError(c, err)
		return
	}
	RespondOK(c, updated)
}
