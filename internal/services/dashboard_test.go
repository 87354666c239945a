package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/types"
)

func TestStats_ComputesFromReposOnCacheMiss(t *testing.T) {
	userID := uuid.New()
	relRepo := newFakeRelationshipRepo()
	relRepo.relationships[uuid.New()] = &types.Relationship{ID: uuid.New(), UserID: userID}
	favRepo := &fakeFavorRepo{favors: []*types.Favor{
		{UserID: userID, Direction: types.FavorDirectionGiven},
		{UserID: userID, Direction: types.FavorDirectionGiven},
		{UserID: userID, Direction: types.FavorDirectionReceived},
	}}
	recRepo := newFakeRecommendationRepo()
	recRepo.countOpen = 4
	cache := newFakeStatsCache()

	svc := NewDashboardService(nil, newTestLogger(t), relRepo, favRepo, recRepo, cache)
	stats, err := svc.Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.FavorsGiven != 2 || stats.FavorsReceived != 1 {
		t.Fatalf("unexpected favor counts: %+v", stats)
	}
	if stats.NetBalance != 1 {
		t.Fatalf("expected net balance 1, got %d", stats.NetBalance)
	}
	if stats.OpenRecommendations != 4 {
		t.Fatalf("expected 4 open recommendations, got %d", stats.OpenRecommendations)
	}
	if cache.setCalls != 1 {
		t.Fatalf("expected one cache write, got %d", cache.setCalls)
	}
}

func TestStats_ServesFromCacheWhenWarm(t *testing.T) {
	userID := uuid.New()
	cache := newFakeStatsCache()
	cache.stats[userID] = &types.DashboardStats{RelationshipCount: 9}
	recRepo := newFakeRecommendationRepo()

	svc := NewDashboardService(nil, newTestLogger(t), newFakeRelationshipRepo(), &fakeFavorRepo{}, recRepo, cache)
	stats, err := svc.Stats(context.Background(), userID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stats.RelationshipCount != 9 {
		t.Fatalf("expected cached value, got %+v", stats)
	}
	if recRepo.countCalled != 0 {
		t.Fatalf("cache hit must not touch the repos")
	}
}

func TestStats_WorksWithoutCache(t *testing.T) {
	svc := NewDashboardService(nil, newTestLogger(t), newFakeRelationshipRepo(), &fakeFavorRepo{}, newFakeRecommendationRepo(), nil)
	if _, err := svc.Stats(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected error without cache: %v", err)
	}
}

func TestStats_MissingUserIsMissingParameter(t *testing.T) {
	svc := NewDashboardService(nil, newTestLogger(t), newFakeRelationshipRepo(), &fakeFavorRepo{}, newFakeRecommendationRepo(), nil)
	if _, err := svc.Stats(context.Background(), uuid.Nil); err == nil {
		t.Fatalf("expected error for nil user")
	}
}
