package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/types"
)

func TestGetProfile_DefaultsWhenAbsent(t *testing.T) {
	userID := uuid.New()
	svc := NewProfileService(nil, newTestLogger(t), newFakeProfileRepo())

	profile, err := svc.Get(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if profile.PersonalityType != types.PersonalityBalanced {
		t.Fatalf("expected balanced personality, got %q", profile.PersonalityType)
	}
	if profile.ReciprocityStyle != types.ReciprocityBalanced {
		t.Fatalf("expected balanced reciprocity, got %q", profile.ReciprocityStyle)
	}
}

func TestUpdateProfile_InvalidEnumsFallBackToBalanced(t *testing.T) {
	userID := uuid.New()
	repo := newFakeProfileRepo()
	svc := NewProfileService(nil, newTestLogger(t), repo)

	updated, err := svc.Update(context.Background(), userID, &types.Profile{
		DisplayName:      "  Pat ",
		PersonalityType:  "chaotic",
		ReciprocityStyle: "hoarder",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PersonalityType != types.PersonalityBalanced || updated.ReciprocityStyle != types.ReciprocityBalanced {
		t.Fatalf("expected balanced fallbacks, got %q / %q", updated.PersonalityType, updated.ReciprocityStyle)
	}
	if updated.DisplayName != "Pat" {
		t.Fatalf("expected trimmed display name, got %q", updated.DisplayName)
	}
	if updated.SubscriptionTier != "free" {
		t.Fatalf("expected default tier free, got %q", updated.SubscriptionTier)
	}
	if repo.profiles[userID] == nil {
		t.Fatalf("expected profile persisted")
	}
}

func TestUpdateProfile_KeepsValidEnums(t *testing.T) {
	svc := NewProfileService(nil, newTestLogger(t), newFakeProfileRepo())

	updated, err := svc.Update(context.Background(), uuid.New(), &types.Profile{
		PersonalityType:  types.PersonalityGenerous,
		ReciprocityStyle: types.ReciprocityGiver,
		SubscriptionTier: "premium",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.PersonalityType != types.PersonalityGenerous || updated.ReciprocityStyle != types.ReciprocityGiver {
		t.Fatalf("valid enums must be kept, got %q / %q", updated.PersonalityType, updated.ReciprocityStyle)
	}
	if updated.SubscriptionTier != "premium" {
		t.Fatalf("expected tier premium, got %q", updated.SubscriptionTier)
	}
}
