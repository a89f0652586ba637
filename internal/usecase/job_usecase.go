package usecase

import (
	"context"
	"errors"
	"log"
	"time"

	"workconnect/internal/domain/application"
	"workconnect/internal/domain/job"
	"workconnect/internal/repository"

	"github.com/google/uuid"
)

var (
	ErrJobNotFound         = errors.New("job not found")
	ErrApplicationNotFound = errors.New("application not found")
)

type JobInput struct {
	Title          string
	Description    string
	RequiredSkills string
	Location       string
	Salary         int64
	JobType        job.Type
	StartDate      *time.Time
	EndDate        *time.Time
}

type ApplicationStatusInfo struct {
	HasApplied    bool
	ApplicationID uuid.UUID
	Status        application.Status
}

// BadgeAwarder is the slice of the badge engine the lifecycle needs: the
// synchronous hook fired when an application reaches COMPLETED.
type BadgeAwarder interface {
	CheckAndAwardJobCompletionBadges(ctx context.Context, userID uuid.UUID) error
}

type JobLifecycleUsecase interface {
	CreateJob(ctx context.Context, employerID uuid.UUID, in JobInput) (job.Posting, error)
	UpdateJob(ctx context.Context, employerID, jobID uuid.UUID, in JobInput) (job.Posting, error)
	DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) error
	UpdateJobStatus(ctx context.Context, employerID, jobID uuid.UUID, status string) (job.Posting, error)

	GetJob(ctx context.Context, jobID uuid.UUID) (job.Posting, error)
	ListOpenJobs(ctx context.Context) ([]job.Posting, error)
	SearchOpenJobs(ctx context.Context, keyword string) ([]job.Posting, error)
	ListEmployerJobs(ctx context.Context, employerID uuid.UUID) ([]job.Posting, error)

	ApplyForJob(ctx context.Context, workerID, jobID uuid.UUID, coverLetter string) (application.Application, error)
	CheckApplicationStatus(ctx context.Context, workerID, jobID uuid.UUID) (ApplicationStatusInfo, error)
	ListApplicationsForJob(ctx context.Context, employerID, jobID uuid.UUID) ([]application.Application, error)
	ListWorkerApplications(ctx context.Context, workerID uuid.UUID) ([]application.Application, error)
	UpdateApplicationStatus(ctx context.Context, employerID, applicationID uuid.UUID, status string) (application.Application, error)
}

type JobLifecycle struct {
	jobs         repository.JobRepository
	applications repository.ApplicationRepository
	badges       BadgeAwarder
	logger       *log.Logger
}

func NewJobLifecycleUsecase(jobs repository.JobRepository, applications repository.ApplicationRepository, badges BadgeAwarder, logger *log.Logger) *JobLifecycle {
	if logger == nil {
		logger = log.Default()
	}
	return &JobLifecycle{jobs: jobs, applications: applications, badges: badges, logger: logger}
}

func (u *JobLifecycle) CreateJob(ctx context.Context, employerID uuid.UUID, in JobInput) (job.Posting, error) {
	if err := ValidateJobDates(in.JobType, in.StartDate, in.EndDate); err != nil {
		return job.Posting{}, err
	}

	created, err := u.jobs.Create(ctx, job.Posting{
		ID:             uuid.New(),
		EmployerID:     employerID,
		Title:          in.Title,
		Description:    in.Description,
		RequiredSkills: in.RequiredSkills,
		Location:       in.Location,
		Salary:         in.Salary,
		JobType:        in.JobType,
		Status:         job.StatusOpen,
		StartDate:      in.StartDate,
		EndDate:        in.EndDate,
	})
	if err != nil {
		return job.Posting{}, ErrInternal
	}
	return created, nil
}

func (u *JobLifecycle) UpdateJob(ctx context.Context, employerID, jobID uuid.UUID, in JobInput) (job.Posting, error) {
	existing, err := u.findJob(ctx, jobID)
	if err != nil {
		return job.Posting{}, err
	}
	if err := EnsureJobOwner(existing, employerID); err != nil {
		return job.Posting{}, err
	}
	if err := ValidateJobDates(in.JobType, in.StartDate, in.EndDate); err != nil {
		return job.Posting{}, err
	}

	existing.Title = in.Title
	existing.Description = in.Description
	existing.RequiredSkills = in.RequiredSkills
	existing.Location = in.Location
	existing.Salary = in.Salary
	existing.JobType = in.JobType
	existing.StartDate = in.StartDate
	existing.EndDate = in.EndDate

	updated, err := u.jobs.Update(ctx, existing)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return updated, nil
}

func (u *JobLifecycle) DeleteJob(ctx context.Context, employerID, jobID uuid.UUID) error {
	existing, err := u.findJob(ctx, jobID)
	if err != nil {
		return err
	}
	if err := EnsureJobOwner(existing, employerID); err != nil {
		return err
	}

	// Deletion must not orphan application history.
	count, err := u.applications.CountByJob(ctx, jobID)
	if err != nil {
		return ErrInternal
	}
	if count > 0 {
		return ErrJobHasApplications
	}

	if err := u.jobs.Delete(ctx, jobID); err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return ErrJobNotFound
		}
		return ErrInternal
	}
	return nil
}

func (u *JobLifecycle) UpdateJobStatus(ctx context.Context, employerID, jobID uuid.UUID, status string) (job.Posting, error) {
	newStatus, err := job.ParseStatus(status)
	if err != nil {
		return job.Posting{}, ErrInvalidStatus
	}

	existing, err := u.findJob(ctx, jobID)
	if err != nil {
		return job.Posting{}, err
	}
	if err := EnsureJobOwner(existing, employerID); err != nil {
		return job.Posting{}, err
	}

	updated, err := u.jobs.UpdateStatus(ctx, jobID, newStatus)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return updated, nil
}

func (u *JobLifecycle) GetJob(ctx context.Context, jobID uuid.UUID) (job.Posting, error) {
	return u.findJob(ctx, jobID)
}

func (u *JobLifecycle) ListOpenJobs(ctx context.Context) ([]job.Posting, error) {
	out, err := u.jobs.ListByStatus(ctx, job.StatusOpen)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *JobLifecycle) SearchOpenJobs(ctx context.Context, keyword string) ([]job.Posting, error) {
	out, err := u.jobs.SearchOpen(ctx, keyword)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *JobLifecycle) ListEmployerJobs(ctx context.Context, employerID uuid.UUID) ([]job.Posting, error) {
	out, err := u.jobs.ListByEmployer(ctx, employerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// ApplyForJob runs the duplicate-application guard (pre-check) and relies on
// the store's unique constraint as the backstop for concurrent applies.
func (u *JobLifecycle) ApplyForJob(ctx context.Context, workerID, jobID uuid.UUID, coverLetter string) (application.Application, error) {
	posting, err := u.findJob(ctx, jobID)
	if err != nil {
		return application.Application{}, err
	}
	if err := EnsureJobOpen(posting); err != nil {
		return application.Application{}, err
	}

	exists, err := u.applications.ExistsByWorkerAndJob(ctx, workerID, jobID)
	if err != nil {
		return application.Application{}, ErrInternal
	}
	if exists {
		return application.Application{}, ErrDuplicateApplication
	}

	created, err := u.applications.Create(ctx, application.Application{
		ID:          uuid.New(),
		JobID:       jobID,
		WorkerID:    workerID,
		Status:      application.StatusPending,
		CoverLetter: coverLetter,
	})
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateApplication) {
			return application.Application{}, ErrDuplicateApplication
		}
		if errors.Is(err, repository.ErrJobNotFound) {
			return application.Application{}, ErrJobNotFound
		}
		return application.Application{}, ErrInternal
	}
	return created, nil
}

func (u *JobLifecycle) CheckApplicationStatus(ctx context.Context, workerID, jobID uuid.UUID) (ApplicationStatusInfo, error) {
	a, err := u.applications.FindByWorkerAndJob(ctx, workerID, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return ApplicationStatusInfo{HasApplied: false}, nil
		}
		return ApplicationStatusInfo{}, ErrInternal
	}
	return ApplicationStatusInfo{
		HasApplied:    true,
		ApplicationID: a.ID,
		Status:        a.Status,
	}, nil
}

func (u *JobLifecycle) ListApplicationsForJob(ctx context.Context, employerID, jobID uuid.UUID) ([]application.Application, error) {
	posting, err := u.findJob(ctx, jobID)
	if err != nil {
		return nil, err
	}
	if err := EnsureJobOwner(posting, employerID); err != nil {
		return nil, err
	}

	out, err := u.applications.ListByJob(ctx, jobID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

func (u *JobLifecycle) ListWorkerApplications(ctx context.Context, workerID uuid.UUID) ([]application.Application, error) {
	out, err := u.applications.ListByWorker(ctx, workerID)
	if err != nil {
		return nil, ErrInternal
	}
	return out, nil
}

// UpdateApplicationStatus moves an application through the status machine.
// When the new status is COMPLETED, badge evaluation fires synchronously
// after the write; a badge failure is logged but does not undo the transition.
func (u *JobLifecycle) UpdateApplicationStatus(ctx context.Context, employerID, applicationID uuid.UUID, status string) (application.Application, error) {
	newStatus, err := application.ParseStatus(status)
	if err != nil {
		return application.Application{}, ErrInvalidStatus
	}

	a, err := u.applications.FindByID(ctx, applicationID)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	posting, err := u.findJob(ctx, a.JobID)
	if err != nil {
		return application.Application{}, err
	}
	if err := EnsureJobOwner(posting, employerID); err != nil {
		return application.Application{}, err
	}
	if err := EnsureTransition(a.Status, newStatus); err != nil {
		return application.Application{}, err
	}

	updated, err := u.applications.UpdateStatus(ctx, applicationID, newStatus)
	if err != nil {
		if errors.Is(err, repository.ErrApplicationNotFound) {
			return application.Application{}, ErrApplicationNotFound
		}
		return application.Application{}, ErrInternal
	}

	if application.IsCompleted(updated.Status) && u.badges != nil {
		if err := u.badges.CheckAndAwardJobCompletionBadges(ctx, updated.WorkerID); err != nil {
			u.logger.Printf("[Lifecycle] badge evaluation failed worker=%s application=%s err=%v",
				updated.WorkerID, updated.ID, err)
		}
	}

	return updated, nil
}

func (u *JobLifecycle) findJob(ctx context.Context, jobID uuid.UUID) (job.Posting, error) {
	p, err := u.jobs.FindByID(ctx, jobID)
	if err != nil {
		if errors.Is(err, repository.ErrJobNotFound) {
			return job.Posting{}, ErrJobNotFound
		}
		return job.Posting{}, ErrInternal
	}
	return p, nil
}
