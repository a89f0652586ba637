package repository

import (
	"context"

	"workconnect/internal/database"

	"github.com/google/uuid"
)

// ReviewRepository is a read-only view over the review subsystem; only the
// aggregate needed for AVERAGE_RATING badge criteria lives here.
type ReviewRepository interface {
	AverageRatingForUser(ctx context.Context, userID uuid.UUID) (avg float64, count int64, err error)
}

type PostgresReviewRepository struct {
	db database.DB
}

func NewPostgresReviewRepository(db database.DB) *PostgresReviewRepository {
	return &PostgresReviewRepository{db: db}
}

func (r *PostgresReviewRepository) AverageRatingForUser(ctx context.Context, userID uuid.UUID) (float64, int64, error) {
	var avg float64
	var count int64
	row := r.db.QueryRow(ctx,
		`SELECT COALESCE(AVG(rating), 0), COUNT(*) FROM reviews WHERE reviewee_id = $1`,
		userID)
	if err := row.Scan(&avg, &count); err != nil {
		return 0, 0, err
	}
	return avg, count, nil
}
