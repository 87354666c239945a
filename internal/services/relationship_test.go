package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/apierr"
	"github.com/equify/equify-backend/internal/types"
)

func TestBalance_DerivedFromFavorHistory(t *testing.T) {
	userID := uuid.New()
	relRepo := newFakeRelationshipRepo()
	rel := &types.Relationship{ID: uuid.New(), UserID: userID, Name: "Alex"}
	relRepo.relationships[rel.ID] = rel

	favRepo := &fakeFavorRepo{favors: []*types.Favor{
		{UserID: userID, RelationshipID: rel.ID, Direction: types.FavorDirectionGiven},
		{UserID: userID, RelationshipID: rel.ID, Direction: types.FavorDirectionGiven},
		{UserID: userID, RelationshipID: rel.ID, Direction: types.FavorDirectionGiven},
		{UserID: userID, RelationshipID: rel.ID, Direction: types.FavorDirectionReceived},
	}}

	svc := NewRelationshipService(nil, newTestLogger(t), relRepo, favRepo, nil, nil)
	balance, err := svc.Balance(context.Background(), userID, rel.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if balance.Given != 3 || balance.Received != 1 || balance.Net != 2 {
		t.Fatalf("unexpected balance %+v", balance)
	}
}

func TestBalance_UnknownRelationshipIsNotFound(t *testing.T) {
	svc := NewRelationshipService(nil, newTestLogger(t), newFakeRelationshipRepo(), &fakeFavorRepo{}, nil, nil)
	_, err := svc.Balance(context.Background(), uuid.New(), uuid.New())
	status, code := apierr.StatusAndCode(err)
	if status != 404 || code != "not_found" {
		t.Fatalf("expected 404 not_found, got %d %s", status, code)
	}
}

func TestCreateRelationship_ClampsAndDefaults(t *testing.T) {
	userID := uuid.New()
	relRepo := newFakeRelationshipRepo()
	cache := newFakeStatsCache()
	svc := NewRelationshipService(nil, newTestLogger(t), relRepo, &fakeFavorRepo{}, nil, cache)

	created, err := svc.Create(context.Background(), userID, &types.Relationship{Name: "  Jo  ", Importance: 9})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created.Name != "Jo" {
		t.Fatalf("expected trimmed name, got %q", created.Name)
	}
	if created.Category != "friend" {
		t.Fatalf("expected default category friend, got %q", created.Category)
	}
	if created.Importance != 5 {
		t.Fatalf("expected importance clamped to 5, got %d", created.Importance)
	}
	if cache.invalidated != 1 {
		t.Fatalf("expected cache invalidation on create")
	}
}

func TestCreateRelationship_RequiresName(t *testing.T) {
	svc := NewRelationshipService(nil, newTestLogger(t), newFakeRelationshipRepo(), &fakeFavorRepo{}, nil, nil)
	_, err := svc.Create(context.Background(), uuid.New(), &types.Relationship{Name: "   "})
	status, code := apierr.StatusAndCode(err)
	if status != 400 || code != "missing_parameter" {
		t.Fatalf("expected 400 missing_parameter, got %d %s", status, code)
	}
}

func TestUpdateRelationship_OwnershipChecked(t *testing.T) {
	userID := uuid.New()
	relRepo := newFakeRelationshipRepo()
	rel := &types.Relationship{ID: uuid.New(), UserID: userID, Name: "Alex", Category: "family"}
	relRepo.relationships[rel.ID] = rel

	svc := NewRelationshipService(nil, newTestLogger(t), relRepo, &fakeFavorRepo{}, nil, nil)
	_, err := svc.Update(context.Background(), uuid.New(), &types.Relationship{ID: rel.ID, Name: "Hijacked"})
	status, code := apierr.StatusAndCode(err)
	if status != 404 || code != "not_found" {
		t.Fatalf("expected 404 not_found for foreign update, got %d %s", status, code)
	}
}
