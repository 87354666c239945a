package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/apierr"
	redisclient "github.com/equify/equify-backend/internal/clients/redis"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/repos"
	"github.com/equify/equify-backend/internal/types"
)

type DashboardService interface {
	// Stats serves from the cache when warm and recomputes from Postgres
	// otherwise. A dead cache just means every call recomputes.
	Stats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, error)
}

type dashboardService struct {
	db               *gorm.DB
	log              *logger.Logger
	relationshipRepo repos.RelationshipRepo
	favorRepo        repos.FavorRepo
	recRepo          repos.RecommendationRepo
	statsCache       redisclient.StatsCache
}

func NewDashboardService(db *gorm.DB, log *logger.Logger, relationshipRepo repos.RelationshipRepo, favorRepo repos.FavorRepo, recRepo repos.RecommendationRepo, statsCache redisclient.StatsCache) DashboardService {
	return &dashboardService{
		db:               db,
		log:              log.With("service", "DashboardService"),
		relationshipRepo: relationshipRepo,
		favorRepo:        favorRepo,
		recRepo:          recRepo,
		statsCache:       statsCache,
	}
}

func (ds *dashboardService) Stats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}

	if ds.statsCache != nil {
		if cached, ok := ds.statsCache.GetDashboardStats(ctx, userID); ok {
			return cached, nil
		}
	}

	relationshipCount, err := ds.relationshipRepo.CountByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	given, err := ds.favorRepo.CountByDirection(ctx, nil, userID, types.FavorDirectionGiven)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	received, err := ds.favorRepo.CountByDirection(ctx, nil, userID, types.FavorDirectionReceived)
	if err != nil {
		return nil, apierr.Internal(err)
	}
	openRecs, err := ds.recRepo.CountOpenByUser(ctx, nil, userID)
	if err != nil {
		return nil, apierr.Internal(err)
	}

	stats := &types.DashboardStats{
		RelationshipCount:   relationshipCount,
		FavorsGiven:         given,
		FavorsReceived:      received,
		NetBalance:          given - received,
		OpenRecommendations: openRecs,
	}

	if ds.statsCache != nil {
		ds.statsCache.SetDashboardStats(ctx, userID, stats)
	}
	return stats, nil
}
