package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/types"
)

type AIInsightRepo interface {
	Create(ctx context.Context, tx *gorm.DB, insights []*types.AIInsight) ([]*types.AIInsight, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID, insightID uuid.UUID) (*types.AIInsight, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, relationshipID *uuid.UUID) ([]*types.AIInsight, error)
	SetActedUpon(ctx context.Context, tx *gorm.DB, userID, insightID uuid.UUID) error
}

type aiInsightRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewAIInsightRepo(db *gorm.DB, baseLog *logger.Logger) AIInsightRepo {
	return &aiInsightRepo{db: db, log: baseLog.With("repo", "AIInsightRepo")}
}

func (ir *aiInsightRepo) Create(ctx context.Context, tx *gorm.DB, insights []*types.AIInsight) ([]*types.AIInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	if len(insights) == 0 {
		return []*types.AIInsight{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&insights).Error; err != nil {
		return nil, err
	}
	return insights, nil
}

func (ir *aiInsightRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, insightID uuid.UUID) (*types.AIInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	var result types.AIInsight
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", insightID, userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (ir *aiInsightRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, relationshipID *uuid.UUID) ([]*types.AIInsight, error) {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	q := transaction.WithContext(ctx).Where("user_id = ?", userID)
	if relationshipID != nil {
		q = q.Where("relationship_id = ?", *relationshipID)
	}
	var results []*types.AIInsight
	if err := q.Order("created_at DESC").Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (ir *aiInsightRepo) SetActedUpon(ctx context.Context, tx *gorm.DB, userID, insightID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = ir.db
	}
	return transaction.WithContext(ctx).
		Model(&types.AIInsight{}).
		Where("id = ? AND user_id = ?", insightID, userID).
		Update("acted_upon", true).Error
}
