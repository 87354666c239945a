package types

import (
	"time"

	"github.com/google/uuid"
)

const (
	FavorDirectionGiven    = "given"
	FavorDirectionReceived = "received"
)

// Favor rows are immutable history once logged; only the reciprocated flag
// flips afterwards.
type Favor struct {
	ID              uuid.UUID     `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID          uuid.UUID     `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User            *User         `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	RelationshipID  uuid.UUID     `gorm:"type:uuid;not null;index;column:relationship_id" json:"relationship_id"`
	Relationship    *Relationship `gorm:"constraint:OnDelete:CASCADE;foreignKey:RelationshipID;references:ID" json:"relationship,omitempty"`
	Direction       string        `gorm:"not null;column:direction" json:"direction"`
	Category        string        `gorm:"not null;column:category" json:"category"`
	Description     string        `gorm:"not null;column:description" json:"description"`
	EstimatedValue  *float64      `gorm:"column:estimated_value" json:"estimated_value,omitempty"`
	EmotionalWeight int           `gorm:"not null;default:3;column:emotional_weight" json:"emotional_weight"`
	OccurredAt      time.Time     `gorm:"not null;column:occurred_at" json:"occurred_at"`
	Reciprocated    bool          `gorm:"not null;default:false;column:reciprocated" json:"reciprocated"`
	Context         string        `gorm:"column:context" json:"context,omitempty"`
	CreatedAt       time.Time     `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"not null;default:now()" json:"updated_at"`
}

func (Favor) TableName() string { return "favors" }

func ValidFavorDirection(d string) bool {
	return d == FavorDirectionGiven || d == FavorDirectionReceived
}

func ClampEmotionalWeight(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}
