package repository

import (
	"context"
	"errors"

	"workconnect/internal/database"
	"workconnect/internal/domain/application"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrApplicationNotFound = errors.New("application not found")

	// ErrDuplicateApplication maps the (worker_id, job_id) unique constraint;
	// it is the authoritative duplicate signal under concurrent applies.
	ErrDuplicateApplication = errors.New("duplicate application")
)

type ApplicationRepository interface {
	FindByID(ctx context.Context, applicationID uuid.UUID) (application.Application, error)
	FindByWorkerAndJob(ctx context.Context, workerID, jobID uuid.UUID) (application.Application, error)
	ExistsByWorkerAndJob(ctx context.Context, workerID, jobID uuid.UUID) (bool, error)
	CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error)
	CountByWorkerAndStatus(ctx context.Context, workerID uuid.UUID, status application.Status) (int64, error)
	ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error)
	ListByWorker(ctx context.Context, workerID uuid.UUID) ([]application.Application, error)
	Create(ctx context.Context, a application.Application) (application.Application, error)
	UpdateStatus(ctx context.Context, applicationID uuid.UUID, status application.Status) (application.Application, error)
}

type PostgresApplicationRepository struct {
	db database.DB
}

func NewPostgresApplicationRepository(db database.DB) *PostgresApplicationRepository {
	return &PostgresApplicationRepository{db: db}
}

const applicationColumns = `id, job_id, worker_id, status, COALESCE(cover_letter, ''), applied_at, status_updated_at`

func scanApplication(row database.Row) (application.Application, error) {
	var a application.Application
	err := row.Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Status, &a.CoverLetter, &a.AppliedAt, &a.StatusUpdatedAt)
	return a, err
}

func (r *PostgresApplicationRepository) FindByID(ctx context.Context, applicationID uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM job_applications WHERE id = $1`, applicationID)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) FindByWorkerAndJob(ctx context.Context, workerID, jobID uuid.UUID) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE worker_id = $1 AND job_id = $2`,
		workerID, jobID)
	a, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return a, nil
}

func (r *PostgresApplicationRepository) ExistsByWorkerAndJob(ctx context.Context, workerID, jobID uuid.UUID) (bool, error) {
	var exists bool
	row := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM job_applications WHERE worker_id = $1 AND job_id = $2)`,
		workerID, jobID)
	if err := row.Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *PostgresApplicationRepository) CountByJob(ctx context.Context, jobID uuid.UUID) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM job_applications WHERE job_id = $1`, jobID)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresApplicationRepository) CountByWorkerAndStatus(ctx context.Context, workerID uuid.UUID, status application.Status) (int64, error) {
	var n int64
	row := r.db.QueryRow(ctx,
		`SELECT COUNT(*) FROM job_applications WHERE worker_id = $1 AND status = $2`,
		workerID, status)
	if err := row.Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (r *PostgresApplicationRepository) ListByJob(ctx context.Context, jobID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE job_id = $1 ORDER BY applied_at ASC`, jobID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) ListByWorker(ctx context.Context, workerID uuid.UUID) ([]application.Application, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+applicationColumns+` FROM job_applications WHERE worker_id = $1 ORDER BY applied_at DESC`, workerID)
	if err != nil {
		return nil, err
	}
	return collectApplications(rows)
}

func (r *PostgresApplicationRepository) Create(ctx context.Context, a application.Application) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_applications (id, job_id, worker_id, status, cover_letter)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING `+applicationColumns,
		a.ID, a.JobID, a.WorkerID, a.Status, a.CoverLetter,
	)
	out, err := scanApplication(row)
	if err != nil {
		if isUniqueViolation(err) {
			return application.Application{}, ErrDuplicateApplication
		}
		// job deleted between the caller's open-check and this insert
		if isForeignKeyViolation(err) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, err
	}
	return out, nil
}

func (r *PostgresApplicationRepository) UpdateStatus(ctx context.Context, applicationID uuid.UUID, status application.Status) (application.Application, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_applications SET status = $2, status_updated_at = now() WHERE id = $1
		 RETURNING `+applicationColumns,
		applicationID, status,
	)
	out, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, err
	}
	return out, nil
}

func collectApplications(rows database.Rows) ([]application.Application, error) {
	defer rows.Close()

	out := make([]application.Application, 0)
	for rows.Next() {
		var a application.Application
		if err := rows.Scan(&a.ID, &a.JobID, &a.WorkerID, &a.Status, &a.CoverLetter, &a.AppliedAt, &a.StatusUpdatedAt); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	return false
}

func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23503"
	}
	return false
}
