package types

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type Relationship struct {
	ID          uuid.UUID      `gorm:"type:uuid;default:uuid_generate_v4();primaryKey" json:"id"`
	UserID      uuid.UUID      `gorm:"type:uuid;not null;index;column:user_id" json:"user_id"`
	User        *User          `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	Name        string         `gorm:"not null;column:name" json:"name"`
	Category    string         `gorm:"not null;column:category" json:"category"`
	Importance  int            `gorm:"not null;default:3;column:importance" json:"importance"`
	ContactInfo datatypes.JSON `gorm:"type:jsonb;column:contact_info" json:"contact_info,omitempty"`
	Preferences datatypes.JSON `gorm:"type:jsonb;column:preferences" json:"preferences,omitempty"`
	CreatedAt   time.Time      `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt   time.Time      `gorm:"not null;default:now()" json:"updated_at"`
	DeletedAt   gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`
}

func (Relationship) TableName() string { return "relationships" }

// ClampImportance keeps the 1-5 rating in range no matter what the client
// sends.
func ClampImportance(v int) int {
	if v < 1 {
		return 1
	}
	if v > 5 {
		return 5
	}
	return v
}

// RelationshipBalance is derived on read from the favor history. It is never
// stored.
type RelationshipBalance struct {
	RelationshipID uuid.UUID `json:"relationship_id"`
	Given          int       `json:"given"`
	Received       int       `json:"received"`
	Net            int       `json:"net"`
}
