package repository

import (
	"context"
	"errors"

	"workconnect/internal/database"
	"workconnect/internal/domain/profile"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrProfileNotFound = errors.New("profile not found")
)

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error)
}

type PostgresProfileRepository struct {
	db database.DB
}

func NewPostgresProfileRepository(db database.DB) *PostgresProfileRepository {
	return &PostgresProfileRepository{db: db}
}

func (r *PostgresProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (profile.Profile, error) {
	row := r.db.QueryRow(ctx,
		`SELECT user_id, kind, COALESCE(first_name, ''), COALESCE(last_name, ''),
		        COALESCE(company_name, ''), COALESCE(skills, '{}'), COALESCE(location, '')
		 FROM profiles WHERE user_id = $1`,
		userID)

	var (
		p           profile.Profile
		firstName   string
		lastName    string
		companyName string
		skills      []string
		location    string
	)
	if err := row.Scan(&p.UserID, &p.Kind, &firstName, &lastName, &companyName, &skills, &location); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return profile.Profile{}, ErrProfileNotFound
		}
		return profile.Profile{}, err
	}

	switch p.Kind {
	case profile.KindWorker:
		p.Worker = &profile.WorkerData{
			FirstName: firstName,
			LastName:  lastName,
			Skills:    skills,
			Location:  location,
		}
	case profile.KindEmployer:
		p.Employer = &profile.EmployerData{
			CompanyName: companyName,
			Location:    location,
		}
	}

	return p, nil
}
