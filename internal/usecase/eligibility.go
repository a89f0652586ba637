package usecase

import (
	"errors"
	"fmt"
	"time"

	"workconnect/internal/domain/application"
	"workconnect/internal/domain/job"

	"github.com/google/uuid"
)

var (
	ErrInternal             = errors.New("internal error")
	ErrForbidden            = errors.New("forbidden")
	ErrInvalidJobDates      = errors.New("invalid job dates")
	ErrInvalidStatus        = errors.New("invalid status")
	ErrInvalidTransition    = errors.New("status transition not allowed")
	ErrJobNotOpen           = errors.New("job no longer open")
	ErrJobHasApplications   = errors.New("cannot delete a job with existing applications")
	ErrDuplicateApplication = errors.New("duplicate application")
)

// ValidateJobDates enforces the per-type date invariants:
// ONE_DAY needs a start date and must not carry an end date,
// CONTRACT needs both dates with end strictly after start.
func ValidateJobDates(jobType job.Type, startDate, endDate *time.Time) error {
	switch jobType {
	case job.TypeOneDay:
		if startDate == nil {
			return fmt.Errorf("%w: a start date is required for a one-day job", ErrInvalidJobDates)
		}
		if endDate != nil {
			return fmt.Errorf("%w: a one-day job must not have an end date", ErrInvalidJobDates)
		}
	case job.TypeContract:
		if startDate == nil || endDate == nil {
			return fmt.Errorf("%w: both a start date and an end date are required for a contract job", ErrInvalidJobDates)
		}
		if !endDate.After(*startDate) {
			return fmt.Errorf("%w: end date must be after start date for a contract job", ErrInvalidJobDates)
		}
	default:
		return fmt.Errorf("%w: unknown job type %q", ErrInvalidJobDates, jobType)
	}
	return nil
}

// EnsureJobOwner rejects any mutating access by a caller who did not post the job.
func EnsureJobOwner(p job.Posting, employerID uuid.UUID) error {
	if p.EmployerID != employerID {
		return ErrForbidden
	}
	return nil
}

// EnsureJobOpen guards application submission.
func EnsureJobOpen(p job.Posting) error {
	if p.Status != job.StatusOpen {
		return ErrJobNotOpen
	}
	return nil
}

// EnsureTransition guards application status changes against the state machine.
func EnsureTransition(from, to application.Status) error {
	if from == to {
		return nil
	}
	if !application.IsTransitionAllowed(from, to) {
		return ErrInvalidTransition
	}
	return nil
}
