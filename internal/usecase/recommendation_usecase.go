package usecase

import (
	"context"
	"errors"
	"log"
	"sort"
	"strings"

	"workconnect/internal/domain/job"
	"workconnect/internal/infrastructure/ranker"
	"workconnect/internal/repository"

	"github.com/google/uuid"
)

// Advisory reason strings surfaced with every recommendation response. A
// fallback is not an error condition, just a degraded ranking source.
const (
	ReasonAIPowered = "ai-powered"
	ReasonFallback  = "basic-fallback"
)

// fallbackWindow caps the deterministic fallback at the most recent postings.
const fallbackWindow = 10

var (
	ErrWorkerNotFound = errors.New("worker not found")
)

type RecommendationResult struct {
	Jobs   []job.Posting
	Reason string
}

type RecommendationUsecase interface {
	GetJobRecommendations(ctx context.Context, userID uuid.UUID, limit int) (RecommendationResult, error)
}

type RecommendationEngine struct {
	jobs     repository.JobRepository
	profiles repository.ProfileRepository
	ranker   ranker.Client
	enabled  bool
	logger   *log.Logger
}

func NewRecommendationEngine(
	jobs repository.JobRepository,
	profiles repository.ProfileRepository,
	rankerClient ranker.Client,
	enabled bool,
	logger *log.Logger,
) *RecommendationEngine {
	if logger == nil {
		logger = log.Default()
	}
	return &RecommendationEngine{
		jobs:     jobs,
		profiles: profiles,
		ranker:   rankerClient,
		enabled:  enabled,
		logger:   logger,
	}
}

// GetJobRecommendations returns open postings ranked for the worker. The
// external ranker's ordering is the ranking contract; when it cannot be used
// (disabled, no skill signal, empty or failed response) the deterministic
// fallback takes over. The endpoint never hard-fails on ranker trouble.
func (e *RecommendationEngine) GetJobRecommendations(ctx context.Context, userID uuid.UUID, limit int) (RecommendationResult, error) {
	p, err := e.profiles.FindByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrProfileNotFound) {
			return RecommendationResult{}, ErrWorkerNotFound
		}
		return RecommendationResult{}, ErrInternal
	}

	// Recommendations are a worker-only concern; an employer asking is not an
	// error, just an empty answer.
	if !p.IsWorker() {
		return RecommendationResult{Jobs: []job.Posting{}, Reason: ReasonFallback}, nil
	}

	openJobs, err := e.jobs.ListByStatus(ctx, job.StatusOpen)
	if err != nil {
		return RecommendationResult{}, ErrInternal
	}
	if len(openJobs) == 0 {
		return RecommendationResult{Jobs: []job.Posting{}, Reason: ReasonAIPowered}, nil
	}

	skills := strings.TrimSpace(strings.Join(p.Worker.Skills, " "))

	if !e.enabled || e.ranker == nil {
		return e.fallback(openJobs, limit), nil
	}
	if skills == "" {
		// ranking without a skill signal is not meaningful
		return e.fallback(openJobs, limit), nil
	}

	ranked, ok := e.rankedJobs(ctx, skills, openJobs)
	if !ok {
		return e.fallback(openJobs, limit), nil
	}

	return RecommendationResult{Jobs: truncate(ranked, limit), Reason: ReasonAIPowered}, nil
}

// rankedJobs calls the external ranker and re-projects its id ordering through
// the store. Returns ok=false whenever the fallback should take over.
func (e *RecommendationEngine) rankedJobs(ctx context.Context, skills string, openJobs []job.Posting) ([]job.Posting, bool) {
	payload := make([]ranker.JobPayload, 0, len(openJobs))
	for _, j := range openJobs {
		// the external contract has no concept of an absent field: a missing
		// skill list is serialized as the empty string
		payload = append(payload, ranker.JobPayload{
			ID:             j.ID.String(),
			RequiredSkills: j.RequiredSkills,
		})
	}

	resp, err := e.ranker.RankJobs(ctx, ranker.Request{
		WorkerProfile: ranker.WorkerProfilePayload{Skills: skills},
		JobPostings:   payload,
	})
	if err != nil {
		e.logger.Printf("[Recommendations] ranker call failed, using fallback: %v", err)
		return nil, false
	}
	if len(resp.RankedJobIDs) == 0 {
		e.logger.Printf("[Recommendations] ranker returned no ids, using fallback")
		return nil, false
	}

	ids := make([]uuid.UUID, 0, len(resp.RankedJobIDs))
	for _, raw := range resp.RankedJobIDs {
		id, err := uuid.Parse(raw)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	if len(ids) == 0 {
		return nil, false
	}

	postings, err := e.jobs.FindByIDs(ctx, ids)
	if err != nil {
		e.logger.Printf("[Recommendations] ranked lookup failed, using fallback: %v", err)
		return nil, false
	}

	// Re-project the ranked id list through the store lookup in the exact
	// order received. The store never re-sorts; ids it no longer knows
	// (e.g. a job closed between ranking and lookup) are dropped silently.
	byID := make(map[uuid.UUID]job.Posting, len(postings))
	for _, p := range postings {
		byID[p.ID] = p
	}

	out := make([]job.Posting, 0, len(ids))
	for _, id := range ids {
		if p, found := byID[id]; found {
			out = append(out, p)
		}
	}
	return out, true
}

// fallback is the deterministic local ranking: open postings by posted-time
// descending, truncated to a small fixed window. Side-effect-free.
func (e *RecommendationEngine) fallback(openJobs []job.Posting, limit int) RecommendationResult {
	sorted := make([]job.Posting, len(openJobs))
	copy(sorted, openJobs)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].PostedAt.After(sorted[j].PostedAt)
	})

	window := fallbackWindow
	if limit > 0 && limit < window {
		window = limit
	}
	if len(sorted) > window {
		sorted = sorted[:window]
	}
	return RecommendationResult{Jobs: sorted, Reason: ReasonFallback}
}

func truncate(jobs []job.Posting, limit int) []job.Posting {
	if limit > 0 && len(jobs) > limit {
		return jobs[:limit]
	}
	return jobs
}
