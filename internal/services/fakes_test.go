package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/equify/equify-backend/internal/logger"
	"github.com/equify/equify-backend/internal/repos"
	"github.com/equify/equify-backend/internal/types"
)

func newTestLogger(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("failed to build logger: %v", err)
	}
	return log
}

type fakeRelationshipRepo struct {
	relationships map[uuid.UUID]*types.Relationship
	getCalls      int
	err           error
}

func newFakeRelationshipRepo() *fakeRelationshipRepo {
	return &fakeRelationshipRepo{relationships: make(map[uuid.UUID]*types.Relationship)}
}

func (f *fakeRelationshipRepo) Create(ctx context.Context, tx *gorm.DB, rels []*types.Relationship) ([]*types.Relationship, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, r := range rels {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		f.relationships[r.ID] = r
	}
	return rels, nil
}

func (f *fakeRelationshipRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID) (*types.Relationship, error) {
	f.getCalls++
	if f.err != nil {
		return nil, f.err
	}
	rel, ok := f.relationships[relationshipID]
	if !ok || rel.UserID != userID {
		return nil, nil
	}
	return rel, nil
}

func (f *fakeRelationshipRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Relationship, error) {
	var out []*types.Relationship
	for _, r := range f.relationships {
		if r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeRelationshipRepo) CountByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	var n int64
	for _, r := range f.relationships {
		if r.UserID == userID {
			n++
		}
	}
	return n, nil
}

func (f *fakeRelationshipRepo) Update(ctx context.Context, tx *gorm.DB, rel *types.Relationship) error {
	f.relationships[rel.ID] = rel
	return nil
}

func (f *fakeRelationshipRepo) SoftDelete(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID) error {
	delete(f.relationships, relationshipID)
	return nil
}

type fakeFavorRepo struct {
	favors    []*types.Favor
	listCalls int
	err       error
}

func (f *fakeFavorRepo) Create(ctx context.Context, tx *gorm.DB, favors []*types.Favor) ([]*types.Favor, error) {
	if f.err != nil {
		return nil, f.err
	}
	for _, fv := range favors {
		if fv.ID == uuid.Nil {
			fv.ID = uuid.New()
		}
		f.favors = append(f.favors, fv)
	}
	return favors, nil
}

func (f *fakeFavorRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, favorID uuid.UUID) (*types.Favor, error) {
	for _, fv := range f.favors {
		if fv.ID == favorID && fv.UserID == userID {
			return fv, nil
		}
	}
	return nil, nil
}

func (f *fakeFavorRepo) ListRecentByRelationship(ctx context.Context, tx *gorm.DB, userID, relationshipID uuid.UUID, limit int) ([]*types.Favor, error) {
	f.listCalls++
	if f.err != nil {
		return nil, f.err
	}
	var out []*types.Favor
	for _, fv := range f.favors {
		if fv.UserID == userID && fv.RelationshipID == relationshipID {
			out = append(out, fv)
		}
	}
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeFavorRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) ([]*types.Favor, error) {
	var out []*types.Favor
	for _, fv := range f.favors {
		if fv.UserID == userID {
			out = append(out, fv)
		}
	}
	return out, nil
}

func (f *fakeFavorRepo) CountByDirection(ctx context.Context, tx *gorm.DB, userID uuid.UUID, direction string) (int64, error) {
	var n int64
	for _, fv := range f.favors {
		if fv.UserID == userID && fv.Direction == direction {
			n++
		}
	}
	return n, nil
}

func (f *fakeFavorRepo) SetReciprocated(ctx context.Context, tx *gorm.DB, userID, favorID uuid.UUID, reciprocated bool) error {
	for _, fv := range f.favors {
		if fv.ID == favorID && fv.UserID == userID {
			fv.Reciprocated = reciprocated
			return nil
		}
	}
	return nil
}

type fakeProfileRepo struct {
	profiles map[uuid.UUID]*types.Profile
	err      error
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*types.Profile)}
}

func (f *fakeProfileRepo) GetByUserID(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (*types.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.profiles[userID], nil
}

func (f *fakeProfileRepo) Upsert(ctx context.Context, tx *gorm.DB, profile *types.Profile) (*types.Profile, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.profiles[profile.UserID] = profile
	return profile, nil
}

type fakeRecommendationRepo struct {
	created     []*types.Recommendation
	createErr   error
	completed   map[uuid.UUID]bool
	dueDates    map[uuid.UUID]time.Time
	deleted     map[uuid.UUID]bool
	countOpen   int64
	countCalled int
}

func newFakeRecommendationRepo() *fakeRecommendationRepo {
	return &fakeRecommendationRepo{
		completed: make(map[uuid.UUID]bool),
		dueDates:  make(map[uuid.UUID]time.Time),
		deleted:   make(map[uuid.UUID]bool),
	}
}

func (f *fakeRecommendationRepo) Create(ctx context.Context, tx *gorm.DB, recs []*types.Recommendation) ([]*types.Recommendation, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, r := range recs {
		if r.ID == uuid.Nil {
			r.ID = uuid.New()
		}
		f.created = append(f.created, r)
	}
	return recs, nil
}

func (f *fakeRecommendationRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID) (*types.Recommendation, error) {
	for _, r := range f.created {
		if r.ID == recommendationID && r.UserID == userID && !f.deleted[r.ID] {
			return r, nil
		}
	}
	return nil, nil
}

func (f *fakeRecommendationRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, filter repos.RecommendationFilter) ([]*types.Recommendation, error) {
	var out []*types.Recommendation
	for _, r := range f.created {
		if r.UserID != userID || f.deleted[r.ID] {
			continue
		}
		if filter.RelationshipID != nil && (r.RelationshipID == nil || *r.RelationshipID != *filter.RelationshipID) {
			continue
		}
		if filter.Completed != nil && r.Completed != *filter.Completed {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}

func (f *fakeRecommendationRepo) CountOpenByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID) (int64, error) {
	f.countCalled++
	return f.countOpen, nil
}

func (f *fakeRecommendationRepo) SetCompleted(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID, completed bool) error {
	f.completed[recommendationID] = completed
	return nil
}

func (f *fakeRecommendationRepo) SetDueDate(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID, dueDate time.Time) error {
	f.dueDates[recommendationID] = dueDate
	return nil
}

func (f *fakeRecommendationRepo) Delete(ctx context.Context, tx *gorm.DB, userID, recommendationID uuid.UUID) error {
	f.deleted[recommendationID] = true
	return nil
}

type fakeInsightRepo struct {
	created   []*types.AIInsight
	createErr error
	actedUpon map[uuid.UUID]bool
}

func newFakeInsightRepo() *fakeInsightRepo {
	return &fakeInsightRepo{actedUpon: make(map[uuid.UUID]bool)}
}

func (f *fakeInsightRepo) Create(ctx context.Context, tx *gorm.DB, insights []*types.AIInsight) ([]*types.AIInsight, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	for _, in := range insights {
		if in.ID == uuid.Nil {
			in.ID = uuid.New()
		}
		f.created = append(f.created, in)
	}
	return insights, nil
}

func (f *fakeInsightRepo) GetForUser(ctx context.Context, tx *gorm.DB, userID, insightID uuid.UUID) (*types.AIInsight, error) {
	for _, in := range f.created {
		if in.ID == insightID && in.UserID == userID {
			return in, nil
		}
	}
	return nil, nil
}

func (f *fakeInsightRepo) ListByUser(ctx context.Context, tx *gorm.DB, userID uuid.UUID, relationshipID *uuid.UUID) ([]*types.AIInsight, error) {
	var out []*types.AIInsight
	for _, in := range f.created {
		if in.UserID != userID {
			continue
		}
		if relationshipID != nil && (in.RelationshipID == nil || *in.RelationshipID != *relationshipID) {
			continue
		}
		out = append(out, in)
	}
	return out, nil
}

func (f *fakeInsightRepo) SetActedUpon(ctx context.Context, tx *gorm.DB, userID, insightID uuid.UUID) error {
	f.actedUpon[insightID] = true
	return nil
}

type fakeAIClient struct {
	reply string
	err   error
	calls int
	// lastSystem/lastUser capture the prompt for assertions.
	lastSystem string
	lastUser   string
}

func (f *fakeAIClient) ChatCompletion(ctx context.Context, system string, user string) (string, error) {
	f.calls++
	f.lastSystem = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.reply, nil
}

type fakeStatsCache struct {
	stats       map[uuid.UUID]*types.DashboardStats
	getCalls    int
	setCalls    int
	invalidated int
}

func newFakeStatsCache() *fakeStatsCache {
	return &fakeStatsCache{stats: make(map[uuid.UUID]*types.DashboardStats)}
}

func (f *fakeStatsCache) GetDashboardStats(ctx context.Context, userID uuid.UUID) (*types.DashboardStats, bool) {
	f.getCalls++
	s, ok := f.stats[userID]
	return s, ok
}

func (f *fakeStatsCache) SetDashboardStats(ctx context.Context, userID uuid.UUID, stats *types.DashboardStats) {
	f.setCalls++
	f.stats[userID] = stats
}

func (f *fakeStatsCache) Invalidate(ctx context.Context, userID uuid.UUID) {
	f.invalidated++
	delete(f.stats, userID)
}

func (f *fakeStatsCache) Close() error { return nil }
