package repository

import (
	"context"
	"errors"

	"workconnect/internal/database"
	"workconnect/internal/domain/badge"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrBadgeNotFound = errors.New("badge not found")

	// ErrDuplicateUserBadge maps the (user_id, badge_id) unique constraint.
	ErrDuplicateUserBadge = errors.New("badge already awarded")
)

type BadgeRepository interface {
	ListBadges(ctx context.Context) ([]badge.Badge, error)
	FindBadgeByName(ctx context.Context, name string) (badge.Badge, error)
	ExistsUserBadge(ctx context.Context, userID, badgeID uuid.UUID) (bool, error)
	CreateUserBadge(ctx context.Context, ub badge.UserBadge) (badge.UserBadge, error)
	ListUserBadges(ctx context.Context, userID uuid.UUID) ([]badge.UserBadge, error)
}

type PostgresBadgeRepository struct {
	db database.DB
}

func NewPostgresBadgeRepository(db database.DB) *PostgresBadgeRepository {
	return &PostgresBadgeRepository{db: db}
}

const badgeColumns = `id, name, display_name, COALESCE(description, ''), COALESCE(icon_url, ''), criteria_type, criteria_value`

func (r *PostgresBadgeRepository) ListBadges(ctx context.Context) ([]badge.Badge, error) {
	rows, err := r.db.Query(ctx, `SELECT `+badgeColumns+` FROM badges ORDER BY criteria_value DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]badge.Badge, 0)
	for rows.Next() {
		var b badge.Badge
		if err := rows.Scan(&b.ID, &b.Name, &b.DisplayName, &b.Description, &b.IconURL, &b.CriteriaType, &b.CriteriaValue); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *PostgresBadgeRepository) FindBadgeByName(ctx context.Context, name string) (badge.Badge, error) {
	row := r.db.QueryRow(ctx, `SELECT `+badgeColumns+` FROM badges WHERE name = $1`, name)

	var b badge.Badge
	if err := row.Scan(&b.ID, &b.Name, &b.DisplayName, &b.Description, &b.IconURL, &b.CriteriaType, &b.CriteriaValue); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return badge.Badge{}, ErrBadgeNotFound
		}
		return badge.Badge{}, err
	}
	return b, nil
}

func (r *PostgresBadgeRepository) ExistsUserBadge(ctx context.Context, userID, badgeID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM user_badges WHERE user_id = $1 AND badge_id = $2)`,
		userID, badgeID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresBadgeRepository) CreateUserBadge(ctx context.Context, ub badge.UserBadge) (badge.UserBadge, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO user_badges (id, user_id, badge_id)
		 VALUES ($1, $2, $3)
		 RETURNING id, user_id, badge_id, awarded_at`,
		ub.ID, ub.UserID, ub.BadgeID,
	)

	var out badge.UserBadge
	if err := row.Scan(&out.ID, &out.UserID, &out.BadgeID, &out.AwardedAt); err != nil {
		if isUniqueViolation(err) {
			return badge.UserBadge{}, ErrDuplicateUserBadge
		}
		return badge.UserBadge{}, err
	}
	return out, nil
}

func (r *PostgresBadgeRepository) ListUserBadges(ctx context.Context, userID uuid.UUID) ([]badge.UserBadge, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, user_id, badge_id, awarded_at FROM user_badges WHERE user_id = $1 ORDER BY awarded_at ASC`,
		userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]badge.UserBadge, 0)
	for rows.Next() {
		var ub badge.UserBadge
		if err := rows.Scan(&ub.ID, &ub.UserID, &ub.BadgeID, &ub.AwardedAt); err != nil {
			return nil, err
		}
		out = append(out, ub)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
