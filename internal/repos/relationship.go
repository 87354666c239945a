package repos

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/types"
)

type RelationshipRepo interface {
	Create(ctx context.Context, tx *gorm.DB, relationships []*types.Relationship) ([]*types.Relationship, error)
	// GetForUser returns nil (no error) when the row does not exist or is
	// owned by a different user. Every read in the app is user-scoped.
	GetForUser(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID) (*types.Relationship, error)
	ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Relationship, error)
	CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error)
	Update(ctx context.Context, tx *gorm.DB, relationship *types.Relationship) error
	SoftDelete(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID) error
}

type relationshipRepo struct {
	db  *gorm.DB
	log *logger.Logger
}

func NewRelationshipRepo(db *gorm.DB, baseLog *logger.Logger) RelationshipRepo {
	return &relationshipRepo{db: db, log: baseLog.With("repo", "RelationshipRepo")}
}

func (rr *relationshipRepo) Create(ctx context.Context, tx *gorm.DB, relationships []*types.Relationship) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if len(relationships) == 0 {
		return []*types.Relationship{}, nil
	}
	if err := transaction.WithContext(ctx).Create(&relationships).Error; err != nil {
		return nil, err
	}
	return relationships, nil
}

func (rr *relationshipRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID) (*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var result types.Relationship
	if err := transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", relationshipID, userID).
		First(&result).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &result, nil
}

func (rr *relationshipRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Relationship, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var results []*types.Relationship
	if err := transaction.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (rr *relationshipRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	var count int64
	if err := transaction.WithContext(ctx).
		Model(&types.Relationship{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (rr *relationshipRepo) Update(ctx context.Context, tx *gorm.DB, relationship *types.Relationship) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	if relationship == nil {
		return nil
	}
	return transaction.WithContext(ctx).
		Model(&types.Relationship{}).
		Where("id = ? AND user_id = ?", relationship.ID, relationship.UserID).
		Updates(map[string]interface{}{
			"name":         relationship.Name,
			"category":     relationship.Category,
			"importance":   relationship.Importance,
			"contact_info": relationship.ContactInfo,
			"preferences":  relationship.Preferences,
		}).Error
}

func (rr *relationshipRepo) SoftDelete(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID) error {
	transaction := tx
	if transaction == nil {
		transaction = rr.db
	}
	return transaction.WithContext(ctx).
		Where("id = ? AND user_id = ?", relationshipID, userID).
		Delete(&types.Relationship{}).Error
}
