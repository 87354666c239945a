package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/apierr"
	redisclient "github.com/equify/equify-backend/internal/clients/redis"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/repos"
	"github.com/equify/equify-backend/internal/sse"
	"github.com/equify/equify-backend/internal/types"
	"github.com/equify/equify-backend/internal/utils"
)

type FavorService interface {
	// Log records one favor event. The referenced relationship must exist
	// and belong to the caller.
	Log(ctx context.Context, userID uuid.UUID, favor *types.Favor) (*types.Favor, error)
	ListByRelationship(ctx context.Context, userID, relationshipID uuid.UUID) ([]*types.Favor, error)
	ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Favor, error)
	SetReciprocated(ctx context.Context, userID, favorID uuid.UUID, reciprocated bool) error
}

type favorService struct {
	db               *gorm.DB
	log              *logger.Logger
	favorRepo        repos.FavorRepo
	relationshipRepo repos.RelationshipRepo
	hub              *sse.SSEHub
	statsCache       redisclient.StatsCache
}

func NewFavorService(db *gorm.DB, log *logger.Logger, favorRepo repos.FavorRepo, relationshipRepo repos.RelationshipRepo, hub *sse.SSEHub, statsCache redisclient.StatsCache) FavorService {
	return &favorService{
		db:               db,
		log:              log.With("service", "FavorService"),
		favorRepo:        favorRepo,
		relationshipRepo: relationshipRepo,
		hub:              hub,
		statsCache:       statsCache,
	}
}

func (fs *favorService) Log(ctx context.Context, userID uuid.UUID, favor *types.Favor) (*types.Favor, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	if favor == nil || favor.RelationshipID == uuid.Nil {
		return nil, apierr.MissingParameter("relationshipId")
	}
	if !types.ValidFavorDirection(favor.Direction) {
		return nil, apierr.MissingParameter("direction")
	}
	if utils.ParseInputString(favor.Description) == "" {
		return nil, apierr.MissingParameter("description")
	}

	rel, err := fs.relationshipRepo.GetForUser(ctx, nil, userID, favor.RelationshipID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if rel == nil {
		return nil, apierr.NotFound("relationship")
	}

	favor.UserID = userID
	favor.Description = utils.ParseInputString(favor.Description)
	if favor.Category == "" {
		favor.Category = "general"
	}
	favor.EmotionalWeight = types.ClampEmotionalWeight(favor.EmotionalWeight)
	if favor.OccurredAt.IsZero() {
		favor.OccurredAt = time.Now().UTC()
	}

	created, err := fs.favorRepo.Create(ctx, nil, []*types.Favor{favor})
	if err != nil {
		return nil, apierr.Internal(err)
	}

	if fs.statsCache != nil {
		fs.statsCache.Invalidate(ctx, userID)
	}
	if fs.hub != nil {
		fs.hub.NotifyUser(userID, sse.SSEEventFavorLogged, map[string]any{
			"relationship_id": favor.RelationshipID,
			"direction":       favor.Direction,
		})
	}
	return created[0], nil
}

func (fs *favorService) ListByRelationship(ctx context.Context, userID, relationshipID uuid.UUID) ([]*types.Favor, error) {
	rel, err := fs.relationshipRepo.GetForUser(ctx, nil, userID, relationshipID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if rel == nil {
		return nil, apierr.NotFound("relationship")
	}
	return fs.favorRepo.ListRecentByRelationship(ctx, nil, userID, relationshipID, 0)
}

func (fs *favorService) ListByUser(ctx context.Context, userID uuid.UUID) ([]*types.Favor, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	return fs.favorRepo.ListByUser(ctx, nil, userID)
}

func (fs *favorService) SetReciprocated(ctx context.Context, userID, favorID uuid.UUID, reciprocated bool) error {
	favor, err := fs.favorRepo.GetForUser(ctx, nil, userID, favorID)
	if err != nil {
		return apierr.Internal(err)
	}
	if favor == nil {
		return apierr.NotFound("favor")
	}
	if err := fs.favorRepo.SetReciprocated(ctx, nil, userID, favorID, reciprocated); err != nil {
		return apierr.Internal(err)
	}
	if fs.statsCache != nil {
		fs.statsCache.Invalidate(ctx, userID)
	}
	return nil
}
