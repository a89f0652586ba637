package usecase

import (
	"context"
	"testing"
	"time"

	"workconnect/internal/domain/application"
	"workconnect/internal/domain/badge"
	"workconnect/internal/repository"

	"github.com/google/uuid"
)

type fakeBadgeRepo struct {
	catalog      []badge.Badge
	grants       map[uuid.UUID][]badge.UserBadge
	createErr    error
	listCalls    int
	createdCount int
}

func newFakeBadgeRepo(catalog ...badge.Badge) *fakeBadgeRepo {
	return &fakeBadgeRepo{catalog: catalog, grants: make(map[uuid.UUID][]badge.UserBadge)}
}

func (f *fakeBadgeRepo) ListBadges(context.Context) ([]badge.Badge, error) {
	f.listCalls++
	return f.catalog, nil
}

func (f *fakeBadgeRepo) FindBadgeByName(_ context.Context, name string) (badge.Badge, error) {
	for _, b := range f.catalog {
		if b.Name == name {
			return b, nil
		}
	}
	return badge.Badge{}, repository.ErrBadgeNotFound
}

func (f *fakeBadgeRepo) ExistsUserBadge(_ context.Context, userID, badgeID uuid.UUID) (bool, error) {
	for _, g := range f.grants[userID] {
		if g.BadgeID == badgeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeBadgeRepo) CreateUserBadge(_ context.Context, ub badge.UserBadge) (badge.UserBadge, error) {
	if f.createErr != nil {
		return badge.UserBadge{}, f.createErr
	}
	for _, g := range f.grants[ub.UserID] {
		if g.BadgeID == ub.BadgeID {
			return badge.UserBadge{}, repository.ErrDuplicateUserBadge
		}
	}
	ub.AwardedAt = time.Now().UTC()
	f.grants[ub.UserID] = append(f.grants[ub.UserID], ub)
	f.createdCount++
	return ub, nil
}

func (f *fakeBadgeRepo) ListUserBadges(_ context.Context, userID uuid.UUID) ([]badge.UserBadge, error) {
	return f.grants[userID], nil
}

type fakeReviewRepo struct {
	avg   float64
	count int64
	err   error
}

func (f fakeReviewRepo) AverageRatingForUser(context.Context, uuid.UUID) (float64, int64, error) {
	return f.avg, f.count, f.err
}

type fakeCatalogCache struct {
	store map[string][]badge.Badge
	hits  int
	sets  int
}

func newFakeCatalogCache() *fakeCatalogCache {
	return &fakeCatalogCache{store: make(map[string][]badge.Badge)}
}

func (f *fakeCatalogCache) GetJSON(_ context.Context, key string, out any) (bool, error) {
	cached, ok := f.store[key]
	if !ok {
		return false, nil
	}
	f.hits++
	*(out.(*[]badge.Badge)) = cached
	return true, nil
}

func (f *fakeCatalogCache) SetJSON(_ context.Context, key string, value any, _ time.Duration) error {
	f.sets++
	f.store[key] = value.([]badge.Badge)
	return nil
}

func completionBadge(name string, threshold float64) badge.Badge {
	return badge.Badge{
		ID:            uuid.New(),
		Name:          name,
		DisplayName:   name,
		CriteriaType:  badge.CriteriaJobCompletionCount,
		CriteriaValue: threshold,
	}
}

func ratingBadge(name string, threshold float64) badge.Badge {
	return badge.Badge{
		ID:            uuid.New(),
		Name:          name,
		DisplayName:   name,
		CriteriaType:  badge.CriteriaAverageRating,
		CriteriaValue: threshold,
	}
}

func completedApps(workerID uuid.UUID, n int) []application.Application {
	out := make([]application.Application, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, application.Application{
			ID:       uuid.New(),
			JobID:    uuid.New(),
			WorkerID: workerID,
			Status:   application.StatusCompleted,
		})
	}
	return out
}

func TestBadgeEngine_AwardsFirstCompletion(t *testing.T) {
	workerID := uuid.New()
	badges := newFakeBadgeRepo(completionBadge("FIRST_JOB_COMPLETED", 1), completionBadge("FIVE_JOBS_COMPLETED", 5))
	apps := newFakeApplicationRepo(completedApps(workerID, 1)...)
	engine := NewBadgeEngine(badges, apps, fakeReviewRepo{}, nil, 0, nil)

	if err := engine.CheckAndAwardJobCompletionBadges(context.Background(), workerID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(badges.grants[workerID]) != 1 {
		t.Fatalf("expected 1 grant, got %d", len(badges.grants[workerID]))
	}
}

func TestBadgeEngine_AwardIsIdempotent(t *testing.T) {
	workerID := uuid.New()
	badges := newFakeBadgeRepo(completionBadge("FIRST_JOB_COMPLETED", 1))
	apps := newFakeApplicationRepo(completedApps(workerID, 3)...)
	engine := NewBadgeEngine(badges, apps, fakeReviewRepo{}, nil, 0, nil)

	for i := 0; i < 2; i++ {
		if err := engine.CheckAndAwardJobCompletionBadges(context.Background(), workerID); err != nil {
			t.Fatalf("run %d: unexpected err: %v", i, err)
		}
	}
	if badges.createdCount != 1 {
		t.Fatalf("expected a single grant write, got %d", badges.createdCount)
	}
}

func TestBadgeEngine_UniqueViolationIsNotAnError(t *testing.T) {
	// A concurrent evaluator already wrote the grant between the existence
	// check and the insert; the unique constraint must read as success.
	workerID := uuid.New()
	badges := newFakeBadgeRepo(completionBadge("FIRST_JOB_COMPLETED", 1))
	badges.createErr = repository.ErrDuplicateUserBadge
	apps := newFakeApplicationRepo(completedApps(workerID, 1)...)
	engine := NewBadgeEngine(badges, apps, fakeReviewRepo{}, nil, 0, nil)

	if err := engine.CheckAndAwardJobCompletionBadges(context.Background(), workerID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
}

func TestBadgeEngine_RatingBadgeNeedsReviews(t *testing.T) {
	workerID := uuid.New()
	badges := newFakeBadgeRepo(ratingBadge("TOP_RATED", 4.5))
	engine := NewBadgeEngine(badges, newFakeApplicationRepo(), fakeReviewRepo{avg: 0, count: 0}, nil, 0, nil)

	if err := engine.CheckAndAwardJobCompletionBadges(context.Background(), workerID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(badges.grants[workerID]) != 0 {
		t.Fatalf("a user with no reviews must not earn a rating badge")
	}
}

func TestBadgeEngine_RatingBadgeAwarded(t *testing.T) {
	workerID := uuid.New()
	badges := newFakeBadgeRepo(ratingBadge("TOP_RATED", 4.5))
	engine := NewBadgeEngine(badges, newFakeApplicationRepo(), fakeReviewRepo{avg: 4.7, count: 12}, nil, 0, nil)

	if err := engine.CheckAndAwardJobCompletionBadges(context.Background(), workerID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(badges.grants[workerID]) != 1 {
		t.Fatalf("expected the rating badge to be granted")
	}
}

func TestBadgeEngine_EmptyCatalog(t *testing.T) {
	badges := newFakeBadgeRepo()
	engine := NewBadgeEngine(badges, newFakeApplicationRepo(), fakeReviewRepo{}, nil, 0, nil)

	if err := engine.CheckAndAwardJobCompletionBadges(context.Background(), uuid.New()); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if badges.createdCount != 0 {
		t.Fatalf("empty catalog must award nothing")
	}
}

func TestBadgeEngine_CatalogReadThroughCache(t *testing.T) {
	workerID := uuid.New()
	badges := newFakeBadgeRepo(completionBadge("FIRST_JOB_COMPLETED", 1))
	cache := newFakeCatalogCache()
	apps := newFakeApplicationRepo(completedApps(workerID, 1)...)
	engine := NewBadgeEngine(badges, apps, fakeReviewRepo{}, cache, time.Minute, nil)

	for i := 0; i < 2; i++ {
		if err := engine.CheckAndAwardJobCompletionBadges(context.Background(), workerID); err != nil {
			t.Fatalf("run %d: unexpected err: %v", i, err)
		}
	}
	if badges.listCalls != 1 {
		t.Fatalf("expected 1 store read, got %d", badges.listCalls)
	}
	if cache.hits != 1 || cache.sets != 1 {
		t.Fatalf("expected 1 hit and 1 set, got hits=%d sets=%d", cache.hits, cache.sets)
	}
}

func TestBadgeEngine_ListUserBadgesSkipsRemoved(t *testing.T) {
	workerID := uuid.New()
	kept := completionBadge("FIRST_JOB_COMPLETED", 1)
	badges := newFakeBadgeRepo(kept)
	badges.grants[workerID] = []badge.UserBadge{
		{ID: uuid.New(), UserID: workerID, BadgeID: kept.ID, AwardedAt: time.Now().UTC()},
		{ID: uuid.New(), UserID: workerID, BadgeID: uuid.New(), AwardedAt: time.Now().UTC()},
	}
	engine := NewBadgeEngine(badges, newFakeApplicationRepo(), fakeReviewRepo{}, nil, 0, nil)

	out, err := engine.ListUserBadges(context.Background(), workerID)
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected 1 resolvable badge, got %d", len(out))
	}
	if out[0].Badge.Name != "FIRST_JOB_COMPLETED" {
		t.Fatalf("unexpected badge %q", out[0].Badge.Name)
	}
}
