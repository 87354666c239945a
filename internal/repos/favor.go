package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/types"
)

type FavorRepo interface {
	Create(ctx context.Context, tx *gorm.DB, favors []*types.Favor) ([]*types.Favor, error)
	GetForUser(ctx context.Context, tx *gorm.DB, userID, favorID uuid.UUID) (*types.Favor, error)
	// ListRecentByRelationship returns favors newest-first, capped at limit
	// (0 means no cap).
	ListRecentByRelationship(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID, limit int) ([]*types.Favor, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favor, error)
	CountByDirection(ctx context.Context, tx *gorm.DB, userID uuid.UUID, direction string) (int64, error)
	SetReciprocated(ctx context.Context, tx *gorm.DB, userID, favorID uuid.UUID, reciprocated bool) error
}

type favorRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewFavorRepo(db *gorm.DB, baseLog *logger.Logger) FavorRepo {
	return &favorRepo{db: db, log: baseLog.With("repo", "FavorRepo")}
}

func (fr *favorRepo) Create(ctx context.Context, tx *gorm.DB, favors []*types.Favor) ([]*types.Favor, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	if len(favors) == 0 {
		return []*types.Favor{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&favors).Error; err != nil {
		return nil, err
	}
	return favors, nil
}

func (fr *favorRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, favorID uuid.UUID) (*types.Favor, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var result types.Favor
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", favorID, userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (fr *favorRepo) ListRecentByRelationship(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID, limit int) ([]*types.Favor, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	q := transaction.WithContext(ctx).
		Where("user_id = ? AND relationship_id = ?", userID, relationshipID).
		Order("occurred_at DESC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	var results []*types.Favor
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *favorRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favor, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var results []*types.Favor
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("occurred_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (fr *favorRepo) CountByDirection(ctx context.Context, tx *gorm.DB, userID uuid.UUID, direction string) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Favor{}).
		Where("user_id = ? AND direction = ?", userID, direction).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (fr *favorRepo) SetReciprocated(ctx context.Context, tx *gorm.DB, userID, favorID uuid.UUID, reciprocated bool) error {
	transaction := tx
	if transaction == nil {
		transaction = fr.db
	}
	return transaction.WithContext(ctx).
		Model(&types.Favor{}).
		Where("id = ? AND user_id = ?", favorID, userID).
		Update("reciprocated", reciprocated).Error
}
