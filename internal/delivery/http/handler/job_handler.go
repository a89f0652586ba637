package handler

import (
	"errors"
	"strings"

	"workconnect/internal/delivery/http/dto"
	"workconnect/internal/delivery/http/middleware"
	"workconnect/internal/domain/job"
	"workconnect/internal/pkg/response"
	"workconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type JobHandler struct {
	uc usecase.JobLifecycleUsecase
}

func NewJobHandler(uc usecase.JobLifecycleUsecase) *JobHandler {
	return &JobHandler{uc: uc}
}

// RegisterRoutes mounts the /jobs surface. The group is behind auth; write
// operations additionally require the employer role, applying the worker role.
func (h *JobHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/", h.ListOpenJobs)
	r.Get("/search", h.SearchJobs)
	r.Get("/:id", h.GetJob)

	r.Post("/", h.CreateJob, middleware.RequireRole(middleware.RoleEmployer))
	r.Put("/:id", h.UpdateJob, middleware.RequireRole(middleware.RoleEmployer))
	r.Delete("/:id", h.DeleteJob, middleware.RequireRole(middleware.RoleEmployer))
	r.Patch("/:id/status", h.UpdateJobStatus, middleware.RequireRole(middleware.RoleEmployer))

	r.Post("/:id/apply", h.ApplyForJob, middleware.RequireRole(middleware.RoleWorker))
	r.Get("/:id/application-status", h.CheckApplicationStatus, middleware.RequireRole(middleware.RoleWorker))
}

func (h *JobHandler) ListOpenJobs(c fiber.Ctx) error {
	jobs, err := h.uc.ListOpenJobs(c.Context())
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *JobHandler) SearchJobs(c fiber.Ctx) error {
	keyword := strings.TrimSpace(c.Query("keyword"))
	jobs, err := h.uc.SearchOpenJobs(c.Context(), keyword)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *JobHandler) GetJob(c fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	p, err := h.uc.GetJob(c.Context(), jobID)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(p))
}

func (h *JobHandler) CreateJob(c fiber.Ctx) error {
	employerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	in, appErr := jobInputFromRequest(req)
	if appErr != nil {
		return appErr
	}

	created, err := h.uc.CreateJob(c.Context(), employerID, in)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewJobResponse(created))
}

func (h *JobHandler) UpdateJob(c fiber.Ctx) error {
	employerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req dto.JobRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	in, appErr := jobInputFromRequest(req)
	if appErr != nil {
		return appErr
	}

	updated, err := h.uc.UpdateJob(c.Context(), employerID, jobID, in)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(updated))
}

func (h *JobHandler) DeleteJob(c fiber.Ctx) error {
	employerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	if err := h.uc.DeleteJob(c.Context(), employerID, jobID); err != nil {
		return mapLifecycleError(err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *JobHandler) UpdateJobStatus(c fiber.Ctx) error {
	employerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req dto.UpdateJobStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	updated, err := h.uc.UpdateJobStatus(c.Context(), employerID, jobID, req.Status)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponse(updated))
}

func (h *JobHandler) ApplyForJob(c fiber.Ctx) error {
	workerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	var req dto.ApplyRequest
	if len(c.Body()) > 0 {
		if err := c.Bind().Body(&req); err != nil {
			return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
		}
	}

	created, err := h.uc.ApplyForJob(c.Context(), workerID, jobID, req.CoverLetter)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusCreated, response.MessageCreated, dto.NewApplicationResponse(created))
}

func (h *JobHandler) CheckApplicationStatus(c fiber.Ctx) error {
	workerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	info, err := h.uc.CheckApplicationStatus(c.Context(), workerID, jobID)
	if err != nil {
		return mapLifecycleError(err)
	}

	out := dto.ApplicationStatusResponse{HasApplied: info.HasApplied}
	if info.HasApplied {
		id := info.ApplicationID
		out.ApplicationID = &id
		out.Status = string(info.Status)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, out)
}

func jobInputFromRequest(req dto.JobRequest) (usecase.JobInput, *middleware.AppError) {
	startDate, ok := dto.ParseDate(req.StartDate)
	if !ok {
		return usecase.JobInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid start date", nil, nil)
	}
	endDate, ok := dto.ParseDate(req.EndDate)
	if !ok {
		return usecase.JobInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid end date", nil, nil)
	}
	jobType, err := job.ParseType(strings.ToUpper(strings.TrimSpace(req.JobType)))
	if err != nil {
		return usecase.JobInput{}, middleware.NewAppError(fiber.StatusBadRequest, "Invalid job type", nil, err)
	}

	return usecase.JobInput{
		Title:          strings.TrimSpace(req.Title),
		Description:    req.Description,
		RequiredSkills: req.RequiredSkills,
		Location:       req.Location,
		Salary:         req.Salary,
		JobType:        jobType,
		StartDate:      startDate,
		EndDate:        endDate,
	}, nil
}

func callerID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := c.Locals(middleware.CtxUserIDKey).(uuid.UUID)
	return id, ok
}

func mapLifecycleError(err error) error {
	if err == nil {
		return nil
	}

	switch {
	case errors.Is(err, usecase.ErrJobNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Job not found", nil, err)
	case errors.Is(err, usecase.ErrApplicationNotFound):
		return middleware.NewAppError(fiber.StatusNotFound, "Application not found", nil, err)
	case errors.Is(err, usecase.ErrForbidden):
		return middleware.NewAppError(fiber.StatusForbidden, "Forbidden", nil, err)
	case errors.Is(err, usecase.ErrJobNotOpen):
		return middleware.NewAppError(fiber.StatusConflict, "This job is no longer open for applications", nil, err)
	case errors.Is(err, usecase.ErrDuplicateApplication):
		return middleware.NewAppError(fiber.StatusConflict, "You have already applied for this job", nil, err)
	case errors.Is(err, usecase.ErrJobHasApplications):
		return middleware.NewAppError(fiber.StatusConflict, "Cannot delete a job with existing applications", nil, err)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return middleware.NewAppError(fiber.StatusConflict, "Status transition not allowed", nil, err)
	case errors.Is(err, usecase.ErrInvalidJobDates):
		return middleware.NewAppError(fiber.StatusBadRequest, err.Error(), nil, err)
	case errors.Is(err, usecase.ErrInvalidStatus):
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid status value", nil, err)
	default:
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
}
