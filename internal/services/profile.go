package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/apierr"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/repos"
	"github.com/equify/equify-backend/internal/types"
	"github.com/equify/equify-backend/internal/utils"
)

var validPersonalityTypes = map[string]struct{}{
	types.PersonalityGenerous:    {},
	types.PersonalityBalanced:    {},
	types.PersonalityScorekeeper: {},
}

var validReciprocityStyles = map[string]struct{}{
	types.ReciprocityGiver:    {},
	types.ReciprocityBalanced: {},
	types.ReciprocityReceiver: {},
}

type ProfileService interface {
	// Get returns the stored profile, or the balanced defaults when the user
	// never completed onboarding.
	Get(ctx context.Context, userID uuid.UUID) (*types.Profile, error)
	Update(ctx context.Context, userID uuid.UUID, profile *types.Profile) (*types.Profile, error)
}

type profileService struct {
	db          *gorm.DB
	log         *logger.Logger
	profileRepo repos.ProfileRepo
}

func NewProfileService(db *gorm.DB, log *logger.Logger, profileRepo repos.ProfileRepo) ProfileService {
	return &profileService{
		db:          db,
		log:         log.With("service", "ProfileService"),
		profileRepo: profileRepo,
	}
}

func (ps *profileService) Get(ctx context.Context, userID uuid.UUID) (*types.Profile, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	profile, err := ps.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if profile == nil {
		return types.DefaultProfile(userID), nil
	}
	return profile, nil
}

func (ps *profileService) Update(ctx context.Context, userID uuid.UUID, profile *types.Profile) (*types.Profile, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	if profile == nil {
		return nil, apierr.MissingParameter("profile")
	}

	profile.UserID = userID
	profile.DisplayName = utils.ParseInputString(profile.DisplayName)
	if _, ok := validPersonalityTypes[profile.PersonalityType]; !ok {
		profile.PersonalityType = types.PersonalityBalanced
	}
	if _, ok := validReciprocityStyles[profile.ReciprocityStyle]; !ok {
		profile.ReciprocityStyle = types.ReciprocityBalanced
	}
	if profile.SubscriptionTier == "" {
		profile.SubscriptionTier = "free"
	}

	updated, err := ps.profileRepo.Upsert(ctx, nil, profile)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	return updated, nil
}
