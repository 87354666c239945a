package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/apierr"
	redisclient "github.com/equify/equify-backend/internal/clients/redis"
	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/repos"
	"github.com/equify/equify-backend/internal/sse"
	"github.com/equify/equify-backend/internal/types"
)

const (
	recentFavorLimit = 10
	dueDateDays      = 7

	insightTypeRelationshipAnalysis = "relationship_analysis"

	modelConfidence    = 0.85
	fallbackConfidence = 0.5
)

type GenerateInput struct {
	RelationshipID uuid.UUID
	Context        string
	Language       string
}

type RelationshipInsights struct {
	BalanceAssessment        string   `json:"balance_assessment"`
	StrengthAreas            []string `json:"strength_areas"`
	ImprovementAreas         []string `json:"improvement_areas"`
	SuggestedNextInteraction string   `json:"suggested_next_interaction"`
}

type GenerateResult struct {
	Recommendations []*types.Recommendation
	Insights        RelationshipInsights
	// Persisted reports whether the rows made it to the database. Generation
	// success and write success are deliberately separate signals.
	Persisted bool
	Message   string
}

type modelRecommendation struct {
	Title          string   `json:"title"`
	Description    string   `json:"description"`
	Category       string   `json:"category"`
	EffortLevel    string   `json:"effort_level"`
	EstimatedCost  string   `json:"estimated_cost"`
	Reasoning      string   `json:"reasoning"`
	Steps          []string `json:"steps"`
	ExpectedImpact string   `json:"expected_impact"`
	Priority       int      `json:"priority"`
}

type modelReply struct {
	Recommendations      []modelRecommendation `json:"recommendations"`
	RelationshipInsights RelationshipInsights  `json:"relationship_insights"`
}

type RecommendationService interface {
	// Generate runs the full pipeline: validate, assemble context, call the
	// model, parse or fall back, best-effort persist.
	Generate(ctx context.Context, userID uuid.UUID, input GenerateInput) (*GenerateResult, error)

	List(ctx context.Context, userID uuid.UUID, filter repos.RecommendationFilter) ([]*types.Recommendation, error)
	CreateManual(ctx context.Context, userID uuid.UUID, rec *types.Recommendation) (*types.Recommendation, error)
	Complete(ctx context.Context, userID, recommendationID uuid.UUID) error
	Snooze(ctx context.Context, userID, recommendationID uuid.UUID, dueDate time.Time) error
	Dismiss(ctx context.Context, userID, recommendationID uuid.UUID) error
}

type recommendationService struct {
	db               *gorm.DB
	log              *logger.Logger
	relationshipRepo repos.RelationshipRepo
	favorRepo        repos.FavorRepo
	profileRepo      repos.ProfileRepo
	recRepo          repos.RecommendationRepo
	insightRepo      repos.AIInsightRepo
	aiClient         OpenAIClient
	hub              *sse.SSEHub
	statsCache       redisclient.StatsCache
	now              func() time.Time
}

func NewRecommendationService(
	db *gorm.DB,
	log *logger.Logger,
	relationshipRepo repos.RelationshipRepo,
	favorRepo repos.FavorRepo,
	profileRepo repos.ProfileRepo,
	recRepo repos.RecommendationRepo,
	insightRepo repos.AIInsightRepo,
	aiClient OpenAIClient,
	hub *sse.SSEHub,
	statsCache redisclient.StatsCache,
) RecommendationService {
	return &recommendationService{
		db:               db,
		log:              log.With("service", "RecommendationService"),
		relationshipRepo: relationshipRepo,
		favorRepo:        favorRepo,
		profileRepo:      profileRepo,
		recRepo:          recRepo,
		insightRepo:      insightRepo,
		aiClient:         aiClient,
		hub:              hub,
		statsCache:       statsCache,
		now:              time.Now,
	}
}

func (rs *recommendationService) Generate(ctx context.Context, userID uuid.UUID, input GenerateInput) (*GenerateResult, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	if input.RelationshipID == uuid.Nil {
		return nil, apierr.MissingParameter("relationshipId")
	}
	if rs.aiClient == nil {
		return nil, apierr.ConfigError(fmt.Errorf("AI client not configured"))
	}

	rel, err := rs.relationshipRepo.GetForUser(ctx, nil, userID, input.RelationshipID)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("failed to load relationship: %w", err))
	}
	if rel == nil {
		return nil, apierr.NotFound("relationship")
	}

	favors, err := rs.favorRepo.ListRecentByRelationship(ctx, nil, userID, rel.ID, recentFavorLimit)
	if err != nil {
		return nil, apierr.Internal(fmt.Errorf("failed to load favor history: %w", err))
	}

	profile, err := rs.profileRepo.GetByUserID(ctx, nil, userID)
	if err != nil {
		rs.log.Warn("Profile lookup failed, using defaults", "user_id", userID, "error", err)
		profile = nil
	}
	if profile == nil {
		profile = types.DefaultProfile(userID)
	}

	prompt := buildRecommendationPrompt(rel, favors, profile, input.Context, input.Language)

	reply, err := rs.aiClient.ChatCompletion(ctx, recommendationSystemPrompt, prompt)
	if err != nil {
		rs.log.Error("Upstream AI call failed", "user_id", userID, "relationship_id", rel.ID, "error", err)
		return nil, apierr.ServiceUnavailable(err)
	}

	parsed, parseErr := parseModelReply(reply)
	result := &GenerateResult{Message: "Recommendations generated"}
	confidence := modelConfidence
	if parseErr != nil {
		rs.log.Warn("Model reply unusable, substituting fallback", "relationship_id", rel.ID, "error", parseErr)
		parsed = fallbackReply(rel)
		result.Message = "Recommendations generated (fallback)"
		confidence = fallbackConfidence
	}
	result.Insights = parsed.RelationshipInsights

	dueDate := defaultDueDate(rs.now())
	rows := make([]*types.Recommendation, 0, len(parsed.Recommendations))
	for i, mr := range parsed.Recommendations {
		priority := mr.Priority
		if priority <= 0 {
			priority = i + 1
		}
		actions, _ := json.Marshal(map[string]any{
			"category":        mr.Category,
			"effort_level":    mr.EffortLevel,
			"estimated_cost":  mr.EstimatedCost,
			"reasoning":       mr.Reasoning,
			"steps":           mr.Steps,
			"expected_impact": mr.ExpectedImpact,
		})
		due := dueDate
		rows = append(rows, &types.Recommendation{
			UserID:           userID,
			RelationshipID:   &rel.ID,
			Type:             types.RecommendationTypeAIGenerated,
			Title:            mr.Title,
			Description:      mr.Description,
			SuggestedActions: datatypes.JSON(actions),
			Priority:         priority,
			DueDate:          &due,
		})
	}
	result.Recommendations = rows

	// Best-effort persistence: the caller gets the generated list whether or
	// not the write lands.
	result.Persisted = rs.persist(ctx, userID, rel.ID, rows, parsed.RelationshipInsights, confidence)

	if rs.statsCache != nil {
		rs.statsCache.Invalidate(ctx, userID)
	}
	if rs.hub != nil {
		rs.hub.NotifyUser(userID, sse.SSEEventRecommendationsReady, map[string]any{
			"relationship_id": rel.ID,
			"count":           len(rows),
		})
	}

	return result, nil
}

func (rs *recommendationService) persist(ctx context.Context, userID, relationshipID uuid.UUID, rows []*types.Recommendation, insights RelationshipInsights, confidence float64) bool {
	persisted := true
	if _, err := rs.recRepo.Create(ctx, nil, rows); err != nil {
		rs.log.Error("Failed to persist recommendations", "user_id", userID, "relationship_id", relationshipID, "error", err)
		persisted = false
	}

	content, err := json.Marshal(insights)
	if err != nil {
		rs.log.Error("Failed to encode insight content", "error", err)
		return false
	}
	insightRow := &types.AIInsight{
		UserID:         userID,
		RelationshipID: &relationshipID,
		InsightType:    insightTypeRelationshipAnalysis,
		Content:        datatypes.JSON(content),
		Confidence:     confidence,
	}
	if _, err := rs.insightRepo.Create(ctx, nil, []*types.AIInsight{insightRow}); err != nil {
		rs.log.Error("Failed to persist insight", "user_id", userID, "relationship_id", relationshipID, "error", err)
		persisted = false
	}
	return persisted
}

// parseModelReply strict-parses the model output after unwrapping markdown
// fences. Any schema violation is an error; the caller substitutes the
// fallback rather than failing the request.
func parseModelReply(raw string) (*modelReply, error) {
	text := stripMarkdownFences(raw)

	var reply modelReply
	if err := json.Unmarshal([]byte(text), &reply); err != nil {
		return nil, fmt.Errorf("reply is not valid JSON: %w", err)
	}
	if len(reply.Recommendations) == 0 {
		return nil, fmt.Errorf("reply contained no recommendations")
	}
	for i, r := range reply.Recommendations {
		if r.Title == "" || r.Description == "" {
			return nil, fmt.Errorf("recommendation %d is missing title or description", i)
		}
		if !types.ValidRecommendationCategory(r.Category) {
			return nil, fmt.Errorf("recommendation %d has unknown category %q", i, r.Category)
		}
	}
	return &reply, nil
}

// fallbackReply is the known-good default used whenever the model returns
// something unparseable.
func fallbackReply(rel *types.Relationship) *modelReply {
	return &modelReply{
		Recommendations: []modelRecommendation{
			{
				Title:          fmt.Sprintf("Reconnect with %s", rel.Name),
				Description:    fmt.Sprintf("It has been a while since you checked in with %s. A short message or call keeps the relationship warm.", rel.Name),
				Category:       "communication",
				EffortLevel:    "low",
				EstimatedCost:  "free",
				Reasoning:      "Regular contact is the simplest way to maintain any relationship.",
				Steps:          []string{"Pick a time this week", "Send a message or make a call", "Ask how they are doing"},
				ExpectedImpact: "Keeps the connection active",
				Priority:       1,
			},
		},
		RelationshipInsights: RelationshipInsights{
			BalanceAssessment:        "Not enough information to assess balance right now.",
			StrengthAreas:            []string{},
			ImprovementAreas:         []string{},
			SuggestedNextInteraction: fmt.Sprintf("Reach out to %s for a casual check-in.", rel.Name),
		},
	}
}

// defaultDueDate is now + 7 days, date-only.
func defaultDueDate(now time.Time) time.Time {
	d := now.UTC().AddDate(0, 0, dueDateDays)
	return time.Date(d.Year(), d.Month(), d.Day(), 0, 0, 0, 0, time.UTC)
}

func (rs *recommendationService) List(ctx context.Context, userID uuid.UUID, filter repos.RecommendationFilter) ([]*types.Recommendation, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	return rs.recRepo.ListByUser(ctx, nil, userID, filter)
}

func (rs *recommendationService) CreateManual(ctx context.Context, userID uuid.UUID, rec *types.Recommendation) (*types.Recommendation, error) {
	if userID == uuid.Nil {
		return nil, apierr.MissingParameter("userId")
	}
	if rec == nil || rec.Title == "" {
		return nil, apierr.MissingParameter("title")
	}
	if rec.RelationshipID != nil {
		rel, err := rs.relationshipRepo.GetForUser(ctx, nil, userID, *rec.RelationshipID)
		if err != nil {
			return nil, apierr.Internal(err)
		}
		if rel == nil {
			return nil, apierr.NotFound("relationship")
		}
	}
	rec.UserID = userID
	rec.Type = types.RecommendationTypeManual
	if rec.Priority <= 0 {
		rec.Priority = 1
	}
	created, err := rs.recRepo.Create(ctx, nil, []*types.Recommendation{rec})
	if err != nil {
		return nil, apierr.Internal(err)
	}
	if rs.statsCache != nil {
		rs.statsCache.Invalidate(ctx, userID)
	}
	return created[0], nil
}

func (rs *recommendationService) Complete(ctx context.Context, userID, recommendationID uuid.UUID) error {
	rec, err := rs.recRepo.GetForUser(ctx, nil, userID, recommendationID)
	if err != nil {
		return apierr.Internal(err)
	}
	if rec == nil {
		return apierr.NotFound("recommendation")
	}
	if err := rs.recRepo.SetCompleted(ctx, nil, userID, recommendationID, true); err != nil {
		return apierr.Internal(err)
	}
	if rs.statsCache != nil {
		rs.statsCache.Invalidate(ctx, userID)
	}
	return nil
}

func (rs *recommendationService) Snooze(ctx context.Context, userID, recommendationID uuid.UUID, dueDate time.Time) error {
	rec, err := rs.recRepo.GetForUser(ctx, nil, userID, recommendationID)
	if err != nil {
		return apierr.Internal(err)
	}
	if rec == nil {
		return apierr.NotFound("recommendation")
	}
	return rs.recRepo.SetDueDate(ctx, nil, userID, recommendationID, dueDate)
}

func (rs *recommendationService) Dismiss(ctx context.Context, userID, recommendationID uuid.UUID) error {
	rec, err := rs.recRepo.GetForUser(ctx, nil, userID, recommendationID)
	if err != nil {
		return apierr.Internal(err)
	}
	if rec == nil {
		return apierr.NotFound("recommendation")
	}
	if err := rs.recRepo.Delete(ctx, nil, userID, recommendationID); err != nil {
		return apierr.Internal(err)
	}
	if rs.statsCache != nil {
		rs.statsCache.Invalidate(ctx, userID)
	}
	return nil
}
