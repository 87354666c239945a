package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// AIInsight is a write-once record of what the model said about a
// relationship; only the acted_upon flag changes after insert.
type AIInsight struct {
	ID             uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID         uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User           *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	RelationshipID *uuid.UUID     `gorm:"type:uuid;index;column:relationship_id" json:"relationship_id,omitempty"`
	Relationship   *Relationship  `gorm:"constraint:OnDelete:SET NULL;foreignKey:RelationshipID;references:ID" json:"relationship,omitempty"`
	InsightType    string         `gorm:"not null;column:insight_type" json:"insight_type"`
	Content        datatypes.JSON `gorm:"type:jsonb;column:content" json:"content"`
	Confidence     float64        `gorm:"not null;default:0;column:confidence" json:"confidence"`
	ActedUpon      bool           `gorm:"not null;default:false;column:acted_upon" json:"acted_upon"`
	CreatedAt      time.Time      `gorm:"not null;default:now()" json:"created_at"`
}

func (AIInsight) TableName() string { return "ai_insights" }
