package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"workconnect/internal/domain/application"
	"workconnect/internal/domain/job"
	"workconnect/internal/repository"

	"github.com/google/uuid"
)

type fakeJobRepo struct {
	postings map[uuid.UUID]job.Posting
	err      error
}

func newFakeJobRepo(postings ...job.Posting) *fakeJobRepo {
	m := make(map[uuid.UUID]job.Posting, len(postings))
	for _, p := range postings {
		m[p.ID] = p
	}
	return &fakeJobRepo{postings: m}
}

func (f *fakeJobRepo) FindByID(_ context.Context, jobID uuid.UUID) (job.Posting, error) {
	if f.err != nil {
		return job.Posting{}, f.err
	}
	p, ok := f.postings[jobID]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	return p, nil
}

func (f *fakeJobRepo) FindByIDs(_ context.Context, jobIDs []uuid.UUID) ([]job.Posting, error) {
	if f.err != nil {
		return nil, f.err
	}
	out := make([]job.Posting, 0, len(jobIDs))
	for _, id := range jobIDs {
		if p, ok := f.postings[id]; ok {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListByStatus(_ context.Context, status job.Status) ([]job.Posting, error) {
	if f.err != nil {
		return nil, f.err
	}
	var out []job.Posting
	for _, p := range f.postings {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) ListByEmployer(_ context.Context, employerID uuid.UUID) ([]job.Posting, error) {
	var out []job.Posting
	for _, p := range f.postings {
		if p.EmployerID == employerID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeJobRepo) SearchOpen(context.Context, string) ([]job.Posting, error) { return nil, f.err }

func (f *fakeJobRepo) Create(_ context.Context, p job.Posting) (job.Posting, error) {
	if f.err != nil {
		return job.Posting{}, f.err
	}
	p.PostedAt = time.Now().UTC()
	f.postings[p.ID] = p
	return p, nil
}

func (f *fakeJobRepo) Update(_ context.Context, p job.Posting) (job.Posting, error) {
	if _, ok := f.postings[p.ID]; !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	f.postings[p.ID] = p
	return p, nil
}

func (f *fakeJobRepo) UpdateStatus(_ context.Context, jobID uuid.UUID, status job.Status) (job.Posting, error) {
	p, ok := f.postings[jobID]
	if !ok {
		return job.Posting{}, repository.ErrJobNotFound
	}
	p.Status = status
	f.postings[jobID] = p
	return p, nil
}

func (f *fakeJobRepo) Delete(_ context.Context, jobID uuid.UUID) error {
	if _, ok := f.postings[jobID]; !ok {
		return repository.ErrJobNotFound
	}
	delete(f.postings, jobID)
	return nil
}

type fakeApplicationRepo struct {
	apps      map[uuid.UUID]application.Application
	createErr error
	err       error
}

func newFakeApplicationRepo(apps ...application.Application) *fakeApplicationRepo {
	m := make(map[uuid.UUID]application.Application, len(apps))
	for _, a := range apps {
		m[a.ID] = a
	}
	return &fakeApplicationRepo{apps: m}
}

func (f *fakeApplicationRepo) FindByID(_ context.Context, id uuid.UUID) (application.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	return a, nil
}

func (f *fakeApplicationRepo) FindByWorkerAndJob(_ context.Context, workerID, jobID uuid.UUID) (application.Application, error) {
	for _, a := range f.apps {
		if a.WorkerID == workerID && a.JobID == jobID {
			return a, nil
		}
	}
	return application.Application{}, repository.ErrApplicationNotFound
}

func (f *fakeApplicationRepo) ExistsByWorkerAndJob(_ context.Context, workerID, jobID uuid.UUID) (bool, error) {
	if f.err != nil {
		return false, f.err
	}
	for _, a := range f.apps {
		if a.WorkerID == workerID && a.JobID == jobID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeApplicationRepo) CountByJob(_ context.Context, jobID uuid.UUID) (int64, error) {
	var n int64
	for _, a := range f.apps {
		if a.JobID == jobID {
			n++
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) CountByWorkerAndStatus(_ context.Context, workerID uuid.UUID, status application.Status) (int64, error) {
	var n int64
	for _, a := range f.apps {
		if a.WorkerID == workerID && a.Status == status {
			n++
		}
	}
	return n, nil
}

func (f *fakeApplicationRepo) ListByJob(_ context.Context, jobID uuid.UUID) ([]application.Application, error) {
	var out []application.Application
	for _, a := range f.apps {
		if a.JobID == jobID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) ListByWorker(_ context.Context, workerID uuid.UUID) ([]application.Application, error) {
	var out []application.Application
	for _, a := range f.apps {
		if a.WorkerID == workerID {
			out = append(out, a)
		}
	}
	return out, nil
}

func (f *fakeApplicationRepo) Create(_ context.Context, a application.Application) (application.Application, error) {
	if f.createErr != nil {
		return application.Application{}, f.createErr
	}
	a.AppliedAt = time.Now().UTC()
	a.StatusUpdatedAt = a.AppliedAt
	f.apps[a.ID] = a
	return a, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ context.Context, id uuid.UUID, status application.Status) (application.Application, error) {
	a, ok := f.apps[id]
	if !ok {
		return application.Application{}, repository.ErrApplicationNotFound
	}
	a.Status = status
	a.StatusUpdatedAt = time.Now().UTC()
	f.apps[id] = a
	return a, nil
}

type fakeAwarder struct {
	calls []uuid.UUID
	err   error
}

func (f *fakeAwarder) CheckAndAwardJobCompletionBadges(_ context.Context, userID uuid.UUID) error {
	f.calls = append(f.calls, userID)
	return f.err
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func openPosting(employerID uuid.UUID) job.Posting {
	return job.Posting{
		ID:         uuid.New(),
		EmployerID: employerID,
		Title:      "Warehouse Helper",
		JobType:    job.TypeOneDay,
		Status:     job.StatusOpen,
		StartDate:  datePtr(2026, time.October, 1),
		PostedAt:   time.Now().UTC(),
	}
}

func TestCreateJob_ContractDateOrder(t *testing.T) {
	uc := NewJobLifecycleUsecase(newFakeJobRepo(), newFakeApplicationRepo(), nil, nil)

	_, err := uc.CreateJob(context.Background(), uuid.New(), JobInput{
		Title:     "Site Renovation",
		JobType:   job.TypeContract,
		StartDate: datePtr(2026, time.October, 10),
		EndDate:   datePtr(2026, time.October, 10),
	})
	if !errors.Is(err, ErrInvalidJobDates) {
		t.Fatalf("expected ErrInvalidJobDates, got %v", err)
	}
}

func TestCreateJob_OneDayRejectsEndDate(t *testing.T) {
	uc := NewJobLifecycleUsecase(newFakeJobRepo(), newFakeApplicationRepo(), nil, nil)

	_, err := uc.CreateJob(context.Background(), uuid.New(), JobInput{
		Title:     "Moving Day",
		JobType:   job.TypeOneDay,
		StartDate: datePtr(2026, time.October, 1),
		EndDate:   datePtr(2026, time.October, 2),
	})
	if !errors.Is(err, ErrInvalidJobDates) {
		t.Fatalf("expected ErrInvalidJobDates, got %v", err)
	}
}

func TestCreateJob_Success(t *testing.T) {
	jobs := newFakeJobRepo()
	uc := NewJobLifecycleUsecase(jobs, newFakeApplicationRepo(), nil, nil)

	created, err := uc.CreateJob(context.Background(), uuid.New(), JobInput{
		Title:     "Courier Run",
		JobType:   job.TypeOneDay,
		StartDate: datePtr(2026, time.October, 1),
	})
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if created.Status != job.StatusOpen {
		t.Fatalf("new postings must start OPEN, got %s", created.Status)
	}
	if len(jobs.postings) != 1 {
		t.Fatalf("expected 1 stored posting, got %d", len(jobs.postings))
	}
}

func TestUpdateJob_NotOwner(t *testing.T) {
	p := openPosting(uuid.New())
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), newFakeApplicationRepo(), nil, nil)

	_, err := uc.UpdateJob(context.Background(), uuid.New(), p.ID, JobInput{
		Title:     "Hijacked",
		JobType:   job.TypeOneDay,
		StartDate: datePtr(2026, time.October, 1),
	})
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestDeleteJob_WithApplications(t *testing.T) {
	employerID := uuid.New()
	p := openPosting(employerID)
	apps := newFakeApplicationRepo(application.Application{
		ID:       uuid.New(),
		JobID:    p.ID,
		WorkerID: uuid.New(),
		Status:   application.StatusPending,
	})
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), apps, nil, nil)

	err := uc.DeleteJob(context.Background(), employerID, p.ID)
	if !errors.Is(err, ErrJobHasApplications) {
		t.Fatalf("expected ErrJobHasApplications, got %v", err)
	}
}

func TestDeleteJob_Success(t *testing.T) {
	employerID := uuid.New()
	p := openPosting(employerID)
	jobs := newFakeJobRepo(p)
	uc := NewJobLifecycleUsecase(jobs, newFakeApplicationRepo(), nil, nil)

	if err := uc.DeleteJob(context.Background(), employerID, p.ID); err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(jobs.postings) != 0 {
		t.Fatalf("posting was not deleted")
	}
}

func TestApplyForJob_Duplicate(t *testing.T) {
	workerID := uuid.New()
	p := openPosting(uuid.New())
	apps := newFakeApplicationRepo(application.Application{
		ID:       uuid.New(),
		JobID:    p.ID,
		WorkerID: workerID,
		Status:   application.StatusPending,
	})
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), apps, nil, nil)

	_, err := uc.ApplyForJob(context.Background(), workerID, p.ID, "")
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
}

func TestApplyForJob_DuplicateFromUniqueConstraint(t *testing.T) {
	// The pre-check misses a concurrent apply; the store's unique constraint
	// is the backstop and its error must surface as a duplicate, not a 500.
	p := openPosting(uuid.New())
	apps := newFakeApplicationRepo()
	apps.createErr = repository.ErrDuplicateApplication
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), apps, nil, nil)

	_, err := uc.ApplyForJob(context.Background(), uuid.New(), p.ID, "")
	if !errors.Is(err, ErrDuplicateApplication) {
		t.Fatalf("expected ErrDuplicateApplication, got %v", err)
	}
}

func TestApplyForJob_ClosedJob(t *testing.T) {
	p := openPosting(uuid.New())
	p.Status = job.StatusClosed
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), newFakeApplicationRepo(), nil, nil)

	_, err := uc.ApplyForJob(context.Background(), uuid.New(), p.ID, "")
	if !errors.Is(err, ErrJobNotOpen) {
		t.Fatalf("expected ErrJobNotOpen, got %v", err)
	}
}

func TestApplyForJob_JobNotFound(t *testing.T) {
	uc := NewJobLifecycleUsecase(newFakeJobRepo(), newFakeApplicationRepo(), nil, nil)

	_, err := uc.ApplyForJob(context.Background(), uuid.New(), uuid.New(), "")
	if !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}
}

func TestCheckApplicationStatus_NotApplied(t *testing.T) {
	uc := NewJobLifecycleUsecase(newFakeJobRepo(), newFakeApplicationRepo(), nil, nil)

	info, err := uc.CheckApplicationStatus(context.Background(), uuid.New(), uuid.New())
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if info.HasApplied {
		t.Fatalf("expected hasApplied=false")
	}
}

func TestUpdateApplicationStatus_InvalidTransition(t *testing.T) {
	employerID := uuid.New()
	p := openPosting(employerID)
	a := application.Application{
		ID:       uuid.New(),
		JobID:    p.ID,
		WorkerID: uuid.New(),
		Status:   application.StatusPending,
	}
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), newFakeApplicationRepo(a), nil, nil)

	_, err := uc.UpdateApplicationStatus(context.Background(), employerID, a.ID, "COMPLETED")
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateApplicationStatus_NotOwner(t *testing.T) {
	p := openPosting(uuid.New())
	a := application.Application{
		ID:       uuid.New(),
		JobID:    p.ID,
		WorkerID: uuid.New(),
		Status:   application.StatusPending,
	}
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), newFakeApplicationRepo(a), nil, nil)

	_, err := uc.UpdateApplicationStatus(context.Background(), uuid.New(), a.ID, "ACCEPTED")
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestUpdateApplicationStatus_SameStatusNoOp(t *testing.T) {
	employerID := uuid.New()
	p := openPosting(employerID)
	a := application.Application{
		ID:       uuid.New(),
		JobID:    p.ID,
		WorkerID: uuid.New(),
		Status:   application.StatusPending,
	}
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), newFakeApplicationRepo(a), nil, nil)

	updated, err := uc.UpdateApplicationStatus(context.Background(), employerID, a.ID, "PENDING")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusPending {
		t.Fatalf("expected PENDING, got %s", updated.Status)
	}
}

func TestUpdateApplicationStatus_CompletedFiresBadges(t *testing.T) {
	employerID := uuid.New()
	workerID := uuid.New()
	p := openPosting(employerID)
	a := application.Application{
		ID:       uuid.New(),
		JobID:    p.ID,
		WorkerID: workerID,
		Status:   application.StatusAccepted,
	}
	awarder := &fakeAwarder{}
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), newFakeApplicationRepo(a), awarder, nil)

	updated, err := uc.UpdateApplicationStatus(context.Background(), employerID, a.ID, "COMPLETED")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if updated.Status != application.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", updated.Status)
	}
	if len(awarder.calls) != 1 || awarder.calls[0] != workerID {
		t.Fatalf("badge evaluation was not fired for the worker")
	}
}

func TestUpdateApplicationStatus_BadgeFailureKeepsTransition(t *testing.T) {
	employerID := uuid.New()
	p := openPosting(employerID)
	a := application.Application{
		ID:       uuid.New(),
		JobID:    p.ID,
		WorkerID: uuid.New(),
		Status:   application.StatusAccepted,
	}
	apps := newFakeApplicationRepo(a)
	awarder := &fakeAwarder{err: errors.New("badge store down")}
	uc := NewJobLifecycleUsecase(newFakeJobRepo(p), apps, awarder, nil)

	updated, err := uc.UpdateApplicationStatus(context.Background(), employerID, a.ID, "COMPLETED")
	if err != nil {
		t.Fatalf("transition must survive a badge failure, got %v", err)
	}
	if updated.Status != application.StatusCompleted {
		t.Fatalf("expected COMPLETED, got %s", updated.Status)
	}
	if apps.apps[a.ID].Status != application.StatusCompleted {
		t.Fatalf("stored status was rolled back")
	}
}

func TestUpdateApplicationStatus_RejectsUnknownStatus(t *testing.T) {
	uc := NewJobLifecycleUsecase(newFakeJobRepo(), newFakeApplicationRepo(), nil, nil)

	_, err := uc.UpdateApplicationStatus(context.Background(), uuid.New(), uuid.New(), "ARCHIVED")
	if !errors.Is(err, ErrInvalidStatus) {
		t.Fatalf("expected ErrInvalidStatus, got %v", err)
	}
}
