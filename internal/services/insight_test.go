package services

import (
	"context"
	"testing"

	"github.com/google/uuid"

	"github.com/equify/equify-backend/internal/apierr"
	"github.com/equify/equify-backend/internal/types"
)

func TestListInsights_FiltersByRelationship(t *testing.T) {
	userID := uuid.New()
	relA := uuid.New()
	relB := uuid.New()
	repo := newFakeInsightRepo()
	repo.Create(context.Background(), nil, []*types.AIInsight{
		{UserID: userID, RelationshipID: &relA, InsightType: "relationship_analysis"},
		{UserID: userID, RelationshipID: &relB, InsightType: "relationship_analysis"},
		{UserID: uuid.New(), RelationshipID: &relA, InsightType: "relationship_analysis"},
	})

	svc := NewInsightService(nil, newTestLogger(t), repo)
	insights, err := svc.List(context.Background(), userID, &relA)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(insights) != 1 {
		t.Fatalf("expected 1 insight for relationship A, got %d", len(insights))
	}

	all, err := svc.List(context.Background(), userID, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(all) != 2 {
		t.Fatalf("expected 2 insights for user, got %d", len(all))
	}
}

func TestMarkActedUpon_OwnershipChecked(t *testing.T) {
	userID := uuid.New()
	repo := newFakeInsightRepo()
	insight := &types.AIInsight{UserID: userID, InsightType: "relationship_analysis"}
	repo.Create(context.Background(), nil, []*types.AIInsight{insight})

	svc := NewInsightService(nil, newTestLogger(t), repo)
	if err := svc.MarkActedUpon(context.Background(), userID, insight.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !repo.actedUpon[insight.ID] {
		t.Fatalf("expected acted_upon set")
	}

	err := svc.MarkActedUpon(context.Background(), uuid.New(), insight.ID)
	status, code := apierr.StatusAndCode(err)
	if status != 404 || code != "not_found" {
		t.Fatalf("expected 404 not_found for foreign insight, got %d %s", status, code)
	}
}
