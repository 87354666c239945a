package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

const (
	RecommendationTypeAIGenerated = "ai_generated"
	RecommendationTypeManual      = "manual"
)

// Categories the model is allowed to pick from. Anything else in a reply is
// treated as schema-violating output.
var RecommendationCategories = []string{
	"communication",
	"favor",
	"milestone",
	"appreciation",
	"connection",
}

func ValidRecommendationCategory(c string) bool {
	for _, v := range RecommendationCategories {
		if v == c {
			return true
		}
	}
	return false
}

type Recommendation struct {
	ID               uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID           uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User             *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	RelationshipID   *uuid.UUID     `gorm:"type:uuid;index;column:relationship_id" json:"relationship_id,omitempty"`
	Relationship     *Relationship  `gorm:"constraint:OnDelete:SET NULL;foreignKey:RelationshipID;references:ID" json:"relationship,omitempty"`
	Type             string         `gorm:"not null;default:manual;column:type" json:"type"`
	Title            string         `gorm:"not null;column:title" json:"title"`
	Description      string         `gorm:"not null;column:description" json:"description"`
	SuggestedActions datatypes.JSON `gorm:"type:jsonb;column:suggested_actions" json:"suggested_actions,omitempty"`
	Priority         int            `gorm:"not null;default:1;column:priority" json:"priority"`
	DueDate          *time.Time     `gorm:"column:due_date" json:"due_date,omitempty"`
	Completed        bool           `gorm:"not null;default:false;column:completed" json:"completed"`
	CreatedAt        time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt        time.Time      `gorm:"not null;default:now()" json:"updated_at"`
}

func (Recommendation) TableName() string { return "recommendations" }

// PriorityLabel is the single mapping from the persisted integer to the
// ordinal label shown to users. Every caller goes through this.
func PriorityLabel(priority int) string {
	switch {
	case priority <= 1:
		return "low"
	case priority == 2:
		return "medium"
	case priority <= 4:
		return "high"
	default:
		return "urgent"
	}
}
