package services

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/apierr"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/repos"
	"github.com/equify/equify-backend/internal/types"
)

type InsightService interface {
	List(ctx context.Context, userID uuid.UUID, relationshipID *uuid.UUID) ([]*types.AIInsight, error)
	MarkActedUpon(ctx context.Context, userID, insightID uuid.UUID) error
}

type insightService struct {
	db          *gorm.DB
	log         *logger.Logger
	insightRepo repos.AIInsightRepo
}

func NewInsightService(db *gorm.DB, log *logger.Logger, insightRepo repos.AIInsightRepo) InsightService {
	return &insightService{
		db:          db,
		log:         log.With("service", "InsightService"),
		insightRepo: insightRepo,
	}
}

func (is *insightService) List(ctx context.Context, userID uuid.UUID, relationshipID *uuid.UUID) ([]*types.AIInsight, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	return is.insightRepo.ListByUser(ctx, nil, userID, relationshipID)
}

func (is *insightService) MarkActedUpon(ctx context.Context, userID, insightID uuid.UUID) error {
	insight, err := is.insightRepo.GetForUser(ctx, nil, userID, insightID)
	if err != nil {
		return apierr.Internal(err)
	}
	if insight == nil {
		return apierr.NotFound("insight")
	}
	return is.insightRepo.SetActedUpon(ctx, nil, userID, insightID)
}
