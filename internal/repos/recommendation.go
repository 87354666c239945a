package repos

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/types"
)

type RecommendationFilter struct {
	RelationshipID *uuid.UUID
	Completed      *bool
}

type RecommendationRepo interface {
	Create(ctx context.Context, tx *gorm.DB, recommendations []*types.Recommendation) ([]*types.Recommendation, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID) (*types.Recommendation, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter RecommendationFilter) ([]*types.Recommendation, error)
	CountOpenByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	SetCompleted(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID, completed bool) error
	SetDueDate(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID, dueDate time.Time) error
	Delete(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID) error
}

type recommendationRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRecommendationRepo(db *gorm.DB, baseLog *logger.Logger) RecommendationRepo {
	return &recommendationRepo{db: db, log: baseLog.With("repo", "RecommendationRepo")}
}

func (rr *recommendationRepo) Create(ctx context.Context, tx *gorm.DB, recommendations []*types.Recommendation) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(recommendations) == 0 {
		return []*types.Recommendation{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&recommendations).Error; err != nil {
		return nil, err
	}
	return recommendations, nil
}

func (rr *recommendationRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID) (*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Recommendation
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", recommendationID, userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (rr *recommendationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter RecommendationFilter) ([]*types.Recommendation, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	q := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if filter.RelationshipID != nil {
		q = q.Where("relationship_id = ?", *filter.RelationshipID)
	}
	if filter.Completed != nil {
		q = q.Where("completed = ?", *filter.Completed)
	}
	var results []*types.Recommendation
	if err := q.Order("priority ASC, created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *recommendationRepo) CountOpenByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Recommendation{}).
		Where("user_id = ? AND completed = ?", userID, false).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *recommendationRepo) SetCompleted(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID, completed bool) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Recommendation{}).
		Where("id = ? AND user_id = ?", recommendationID, userID).
		Update("completed", completed).Error
}

func (rr *recommendationRepo) SetDueDate(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID, dueDate time.Time) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Recommendation{}).
		Where("id = ? AND user_id = ?", recommendationID, userID).
		Update("due_date", dueDate).Error
}

func (rr *recommendationRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", recommendationID, userID).
		Delete(&types.Recommendation{}).Error
}
