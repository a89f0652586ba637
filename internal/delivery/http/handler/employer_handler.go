package handler

import (
	"workconnect/internal/delivery/http/dto"
	"workconnect/internal/delivery/http/middleware"
	"workconnect/internal/pkg/response"
	"workconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

type EmployerHandler struct {
	uc usecase.JobLifecycleUsecase
}

func NewEmployerHandler(uc usecase.JobLifecycleUsecase) *EmployerHandler {
	return &EmployerHandler{uc: uc}
}

func (h *EmployerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs", h.ListOwnJobs)
	r.Get("/jobs/:id/applications", h.ListJobApplications)
	r.Put("/applications/:id/status", h.UpdateApplicationStatus)
}

func (h *EmployerHandler) ListOwnJobs(c fiber.Ctx) error {
	employerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	jobs, err := h.uc.ListEmployerJobs(c.Context(), employerID)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewJobResponses(jobs))
}

func (h *EmployerHandler) ListJobApplications(c fiber.Ctx) error {
	employerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid job id", nil, err)
	}

	apps, err := h.uc.ListApplicationsForJob(c.Context(), employerID, jobID)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(apps))
}

func (h *EmployerHandler) UpdateApplicationStatus(c fiber.Ctx) error {
	employerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}
	applicationID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid application id", nil, err)
	}

	var req dto.UpdateApplicationStatusRequest
	if err := c.Bind().Body(&req); err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid request body", nil, err)
	}

	updated, err := h.uc.UpdateApplicationStatus(c.Context(), employerID, applicationID, req.Status)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponse(updated))
}
