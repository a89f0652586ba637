package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"workconnect/internal/domain/application"
	"workconnect/internal/domain/badge"
	"workconnect/internal/repository"

	"github.com/google/uuid"
)

const badgeCatalogCacheKey = "badges:catalog"

// CatalogCache is a read-through cache over the badge catalog. Implementations
// may be unavailable; both methods are allowed to silently no-op.
type CatalogCache interface {
	GetJSON(ctx context.Context, key string, out any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
}

type AwardedBadge struct {
	Badge     badge.Badge
	AwardedAt time.Time
}

type BadgeUsecase interface {
	CheckAndAwardJobCompletionBadges(ctx context.Context, userID uuid.UUID) error
	ListUserBadges(ctx context.Context, userID uuid.UUID) ([]AwardedBadge, error)
}

type BadgeEngine struct {
	badges       repository.BadgeRepository
	applications repository.ApplicationRepository
	reviews      repository.ReviewRepository
	cache        CatalogCache
	cacheTTL     time.Duration
	logger       *log.Logger
}

func NewBadgeEngine(
	badges repository.BadgeRepository,
	applications repository.ApplicationRepository,
	reviews repository.ReviewRepository,
	cache CatalogCache,
	cacheTTL time.Duration,
	logger *log.Logger,
) *BadgeEngine {
	if logger == nil {
		logger = log.Default()
	}
	if cacheTTL <= 0 {
		cacheTTL = 10 * time.Minute
	}
	return &BadgeEngine{
		badges:       badges,
		applications: applications,
		reviews:      reviews,
		cache:        cache,
		cacheTTL:     cacheTTL,
		logger:       logger,
	}
}

// CheckAndAwardJobCompletionBadges walks the badge catalog and grants every
// badge the user is newly eligible for. The grant is idempotent: an existence
// check runs first and a unique-violation from the store is treated as an
// already-granted badge, not an error. An empty catalog awards nothing.
func (e *BadgeEngine) CheckAndAwardJobCompletionBadges(ctx context.Context, userID uuid.UUID) error {
	catalog, err := e.catalog(ctx)
	if err != nil {
		return ErrInternal
	}

	var completedCount int64 = -1 // lazily loaded, shared across count-based rules
	for _, b := range catalog {
		granted, err := e.badges.ExistsUserBadge(ctx, userID, b.ID)
		if err != nil {
			return ErrInternal
		}
		if granted {
			continue
		}

		eligible := false
		switch b.CriteriaType {
		case badge.CriteriaJobCompletionCount:
			if completedCount < 0 {
				completedCount, err = e.applications.CountByWorkerAndStatus(ctx, userID, application.StatusCompleted)
				if err != nil {
					return ErrInternal
				}
			}
			eligible = float64(completedCount) >= b.CriteriaValue
		case badge.CriteriaAverageRating:
			avg, count, err := e.reviews.AverageRatingForUser(ctx, userID)
			if err != nil {
				return ErrInternal
			}
			eligible = count > 0 && avg >= b.CriteriaValue
		}

		if !eligible {
			continue
		}

		_, err = e.badges.CreateUserBadge(ctx, badge.UserBadge{
			ID:      uuid.New(),
			UserID:  userID,
			BadgeID: b.ID,
		})
		if err != nil {
			if errors.Is(err, repository.ErrDuplicateUserBadge) {
				continue
			}
			return ErrInternal
		}
		e.logger.Printf("[Badges] awarded badge=%s user=%s", b.Name, userID)
	}

	return nil
}

func (e *BadgeEngine) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]AwardedBadge, error) {
	grants, err := e.badges.ListUserBadges(ctx, userID)
	if err != nil {
		return nil, ErrInternal
	}
	if len(grants) == 0 {
		return []AwardedBadge{}, nil
	}

	catalog, err := e.catalog(ctx)
	if err != nil {
		return nil, ErrInternal
	}
	byID := make(map[uuid.UUID]badge.Badge, len(catalog))
	for _, b := range catalog {
		byID[b.ID] = b
	}

	out := make([]AwardedBadge, 0, len(grants))
	for _, g := range grants {
		b, ok := byID[g.BadgeID]
		if !ok {
			// badge row removed from the catalog after grant; skip rather than fail
			continue
		}
		out = append(out, AwardedBadge{Badge: b, AwardedAt: g.AwardedAt})
	}
	return out, nil
}

// catalog reads the badge catalog through the cache. The catalog is seeded
// operational data, so a bounded TTL is enough; no explicit invalidation.
func (e *BadgeEngine) catalog(ctx context.Context) ([]badge.Badge, error) {
	if e.cache != nil {
		var cached []badge.Badge
		if ok, err := e.cache.GetJSON(ctx, badgeCatalogCacheKey, &cached); err == nil && ok {
			return cached, nil
		}
	}

	catalog, err := e.badges.ListBadges(ctx)
	if err != nil {
		return nil, err
	}

	if e.cache != nil {
		if err := e.cache.SetJSON(ctx, badgeCatalogCacheKey, catalog, e.cacheTTL); err != nil {
			e.logger.Printf("[Badges] catalog cache write failed: %v", err)
		}
	}
	return catalog, nil
}

var _ BadgeAwarder = (*BadgeEngine)(nil)
