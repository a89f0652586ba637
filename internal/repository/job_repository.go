package repository

import (
	"context"
	"errors"

	"workconnect/internal/database"
	"workconnect/internal/domain/job"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var (
	ErrJobNotFound = errors.New("job not found")
)

type JobRepository interface {
	FindByID(ctx context.Context, jobID uuid.UUID) (job.Posting, error)
	FindByIDs(ctx context.Context, jobIDs []uuid.UUID) ([]job.Posting, error)
	ListByStatus(ctx context.Context, status job.Status) ([]job.Posting, error)
	ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Posting, error)
	SearchOpen(ctx context.Context, keyword string) ([]job.Posting, error)
	Create(ctx context.Context, p job.Posting) (job.Posting, error)
	Update(ctx context.Context, p job.Posting) (job.Posting, error)
	UpdateStatus(ctx context.Context, jobID uuid.UUID, status job.Status) (job.Posting, error)
	Delete(ctx context.Context, jobID uuid.UUID) error
}

type PostgresJobRepository struct {
	db database.DB
}

func NewPostgresJobRepository(db database.DB) *PostgresJobRepository {
	return &PostgresJobRepository{db: db}
}

const jobColumns = `id, employer_id, title, COALESCE(description, ''), COALESCE(required_skills, ''),
	COALESCE(location, ''), salary, job_type, status, start_date, end_date, posted_at`

func scanJob(row database.Row) (job.Posting, error) {
	var p job.Posting
	err := row.Scan(
		&p.ID, &p.EmployerID, &p.Title, &p.Description, &p.RequiredSkills,
		&p.Location, &p.Salary, &p.JobType, &p.Status, &p.StartDate, &p.EndDate, &p.PostedAt,
	)
	return p, err
}

func (r *PostgresJobRepository) FindByID(ctx context.Context, jobID uuid.UUID) (job.Posting, error) {
	row := r.db.QueryRow(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = $1`, jobID)
	p, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return p, nil
}

func (r *PostgresJobRepository) FindByIDs(ctx context.Context, jobIDs []uuid.UUID) ([]job.Posting, error) {
	if len(jobIDs) == 0 {
		return nil, nil
	}
	rows, err := r.db.Query(ctx, `SELECT `+jobColumns+` FROM job_postings WHERE id = ANY($1)`, jobIDs)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListByStatus(ctx context.Context, status job.Status) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM job_postings WHERE status = $1 ORDER BY posted_at DESC`, status)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) ListByEmployer(ctx context.Context, employerID uuid.UUID) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+` FROM job_postings WHERE employer_id = $1 ORDER BY posted_at DESC`, employerID)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) SearchOpen(ctx context.Context, keyword string) ([]job.Posting, error) {
	rows, err := r.db.Query(ctx,
		`SELECT `+jobColumns+`
		 FROM job_postings
		 WHERE status = $1 AND (title ILIKE '%' || $2 || '%' OR description ILIKE '%' || $2 || '%')
		 ORDER BY posted_at DESC`,
		job.StatusOpen, keyword)
	if err != nil {
		return nil, err
	}
	return collectJobs(rows)
}

func (r *PostgresJobRepository) Create(ctx context.Context, p job.Posting) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`INSERT INTO job_postings
			(id, employer_id, title, description, required_skills, location, salary, job_type, status, start_date, end_date)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING `+jobColumns,
		p.ID, p.EmployerID, p.Title, p.Description, p.RequiredSkills,
		p.Location, p.Salary, p.JobType, p.Status, p.StartDate, p.EndDate,
	)
	return scanJob(row)
}

func (r *PostgresJobRepository) Update(ctx context.Context, p job.Posting) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_postings
		 SET title = $2, description = $3, required_skills = $4, location = $5,
		     salary = $6, job_type = $7, start_date = $8, end_date = $9
		 WHERE id = $1
		 RETURNING `+jobColumns,
		p.ID, p.Title, p.Description, p.RequiredSkills, p.Location,
		p.Salary, p.JobType, p.StartDate, p.EndDate,
	)
	out, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return out, nil
}

func (r *PostgresJobRepository) UpdateStatus(ctx context.Context, jobID uuid.UUID, status job.Status) (job.Posting, error) {
	row := r.db.QueryRow(ctx,
		`UPDATE job_postings SET status = $2 WHERE id = $1 RETURNING `+jobColumns,
		jobID, status,
	)
	out, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, err
	}
	return out, nil
}

func (r *PostgresJobRepository) Delete(ctx context.Context, jobID uuid.UUID) error {
	affected, err := r.db.Exec(ctx, `DELETE FROM job_postings WHERE id = $1`, jobID)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrJobNotFound
	}
	return nil
}

func collectJobs(rows database.Rows) ([]job.Posting, error) {
	defer rows.Close()

	out := make([]job.Posting, 0)
	for rows.Next() {
		var p job.Posting
		if err := rows.Scan(
			&p.ID, &p.EmployerID, &p.Title, &p.Description, &p.RequiredSkills,
			&p.Location, &p.Salary, &p.JobType, &p.Status, &p.StartDate, &p.EndDate, &p.PostedAt,
		); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
