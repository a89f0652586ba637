package badge

import (
	"time"

	"github.com/google/uuid"
)

type CriteriaType string

const (
	CriteriaJobCompletionCount CriteriaType = "JOB_COMPLETION_COUNT"
	CriteriaAverageRating      CriteriaType = "AVERAGE_RATING"
)

// Badge rows are read-only reference data seeded by migration.
type Badge struct {
	ID            uuid.UUID
	Name          string
	DisplayName   string
	Description   string
	IconURL       string
	CriteriaType  CriteriaType
	CriteriaValue float64
}

type UserBadge struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	BadgeID   uuid.UUID
	AwardedAt time.Time
}
