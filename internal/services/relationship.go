package services

import (
	"context"

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

type RelationshipService interface {
	Create(ctx context.Context, userID uuid.UUID, rel *types.Relationship) (*types.Relationship, error)
	Get(ctx context.Context, userID, relationshipID uuid.UUID) (*types.Relationship, error)
	List(ctx context.Context, userID uuid.UUID) ([]*types.Relationship, error)
	Update(ctx context.Context, userID uuid.UUID, rel *types.Relationship) (*types.Relationship, error)
	Delete(ctx context.Context, userID, relationshipID uuid.UUID) error
	// Balance tallies the favor history on read; nothing is stored.
	Balance(ctx context.Context, userID, relationshipID uuid.UUID) (*types.RelationshipBalance, error)
}

type relationshipService struct {
	db               *gorm.DB
	log              *logger.Logger
	relationshipRepo repos.RelationshipRepo
	favorRepo        repos.FavorRepo
	hub              *sse.SSEHub
	statsCache       redisclient.StatsCache
}

func NewRelationshipService(db *gorm.DB, log *logger.Logger, relationshipRepo repos.RelationshipRepo, favorRepo repos.FavorRepo, hub *sse.SSEHub, statsCache redisclient.StatsCache) RelationshipService {
	return &relationshipService{
		db:               db,
		log:              log.With("service", "RelationshipService"),
		relationshipRepo: relationshipRepo,
		favorRepo:        favorRepo,
		hub:              hub,
		statsCache:       statsCache,
	}
}

func (rs *relationshipService) Create(ctx context.Context, userID uuid.UUID, rel *types.Relationship) (*types.Relationship, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	if rel == nil || utils.ParseInputString(rel.Name) == "" {
		return nil, apierr.MissingParameter("name")
	}
	rel.UserID = userID
	rel.Name = utils.ParseInputString(rel.Name)
	if rel.Category == "" {
		rel.Category = "friend"
	}
	rel.Importance = types.ClampImportance(rel.Importance)

	created, err := rs.relationshipRepo.Create(ctx, nil, []*types.Relationship{rel})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	rs.afterWrite(ctx, userID)
	return created[0], nil
}

func (rs *relationshipService) Get(ctx context.Context, userID, relationshipID uuid.UUID) (*types.Relationship, error) {
	rel, err := rs.relationshipRepo.GetForUser(ctx, nil, userID, relationshipID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if rel == nil {
		return nil, apierr.NotFound("relationship")
	}
	return rel, nil
}

func (rs *relationshipService) List(ctx context.Context, userID uuid.UUID) ([]*types.Relationship, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	return rs.relationshipRepo.ListByUser(ctx, nil, userID)
}

func (rs *relationshipService) Update(ctx context.Context, userID uuid.UUID, rel *types.Relationship) (*types.Relationship, error) {
	if rel == nil || rel.ID == uuid.Nil {
		return nil, apierr.MissingParameter("relationshipId")
	}
	existing, err := rs.relationshipRepo.GetForUser(ctx, nil, userID, rel.ID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if existing == nil {
		return nil, apierr.NotFound("relationship")
	}

	rel.UserID = userID
	if utils.ParseInputString(rel.Name) == "" {
		rel.Name = existing.Name
	} else {
		rel.Name = utils.ParseInputString(rel.Name)
	}
	if rel.Category == "" {
		rel.Category = existing.Category
	}
	rel.Importance = types.ClampImportance(rel.Importance)

	if err := rs.relationshipRepo.Update(ctx, nil, rel); err != nil {
		return nil, apierr.Internal(err)
	}
	rs.afterWrite(ctx, userID)
	return rs.relationshipRepo.GetForUser(ctx, nil, userID, rel.ID)
}

func (rs *relationshipService) Delete(ctx context.Context, userID, relationshipID uuid.UUID) error {
	existing, err := rs.relationshipRepo.GetForUser(ctx, nil, userID, relationshipID)
	if err != nil {
		return apierr.Internal(err)
	}
	if existing == nil {
		return apierr.NotFound("relationship")
	}
	if err := rs.relationshipRepo.SoftDelete(ctx, nil, userID, relationshipID); err != nil {
		return apierr.Internal(err)
	}
	rs.afterWrite(ctx, userID)
	return nil
}

func (rs *relationshipService) Balance(ctx context.Context, userID, relationshipID uuid.UUID) (*types.RelationshipBalance, error) {
	rel, err := rs.relationshipRepo.GetForUser(ctx, nil, userID, relationshipID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if rel == nil {
		return nil, apierr.NotFound("relationship")
	}

	favors, err := rs.favorRepo.ListRecentByRelationship(ctx, nil, userID, relationshipID, 0)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	balance := &types.RelationshipBalance{RelationshipID: relationshipID}
	for _, f := range favors {
		switch f.Direction {
		case types.FavorDirectionGiven:
			balance.Given++
		case types.FavorDirectionReceived:
			balance.Received++
		}
	}
	balance.Net = balance.Given - balance.Received
	return balance, nil
}

func (rs *relationshipService) afterWrite(ctx context.Context, userID uuid.UUID) {
	if rs.statsCache != nil {
		rs.statsCache.Invalidate(ctx, userID)
	}
	if rs.hub != nil {
		rs.hub.NotifyUser(userID, sse.SSEEventRelationshipChanged, nil)
	}
}
