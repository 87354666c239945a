package types

import (
	"time"

	"github.com/google/uuid"
)

// Personality and reciprocity labels are coarse self-assessments collected
// during onboarding. "balanced" is the neutral default used whenever the row
// is absent.
const (
	PersonalityGenerous    = "generous"
	PersonalityBalanced    = "balanced"
	PersonalityScorekeeper = "scorekeeper"

	ReciprocityGiver    = "giver"
	ReciprocityBalanced = "balanced"
	ReciprocityReceiver = "receiver"
)

type Profile struct {
	UserID              uuid.UUID `gorm:"type:uuid;primaryKey;column:user_id" json:"user_id"`
	User                *User     `gorm:"constraint:OnDelete:CASCADE;foreignKey:UserID;references:ID" json:"user,omitempty"`
	DisplayName         string    `gorm:"column:display_name" json:"display_name"`
	PersonalityType     string    `gorm:"not null;default:balanced;column:personality_type" json:"personality_type"`
	ReciprocityStyle    string    `gorm:"not null;default:balanced;column:reciprocity_style" json:"reciprocity_style"`
	OnboardingCompleted bool      `gorm:"not null;default:false;column:onboarding_completed" json:"onboarding_completed"`
	SubscriptionTier    string    `gorm:"not null;default:free;column:subscription_tier" json:"subscription_tier"`
	CreatedAt           time.Time `gorm:"not null;default:now()" json:"created_at"`
	UpdatedAt           time.Time `gorm:"not null;default:now()" json:"updated_at"`
}

func (Profile) TableName() string { return "profiles" }

// DefaultProfile is the stand-in used by the recommendation pipeline when the
// user never finished onboarding.
func DefaultProfile(userID uuid.UUID) *Profile {
	return &Profile{
		UserID:           userID,
		PersonalityType:  PersonalityBalanced,
		ReciprocityStyle: ReciprocityBalanced,
		SubscriptionTier: "free",
	}
}
