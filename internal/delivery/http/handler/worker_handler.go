package handler

import (
	"workconnect/internal/delivery/http/dto"
	"workconnect/internal/delivery/http/middleware"
	"workconnect/internal/pkg/response"
	"workconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type WorkerHandler struct {
	lifecycle usecase.JobLifecycleUsecase
	badges    usecase.BadgeUsecase
}

func NewWorkerHandler(lifecycle usecase.JobLifecycleUsecase, badges usecase.BadgeUsecase) *WorkerHandler {
	return &WorkerHandler{lifecycle: lifecycle, badges: badges}
}

func (h *WorkerHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/applications", h.ListOwnApplications)
	r.Get("/badges", h.ListOwnBadges)
}

func (h *WorkerHandler) ListOwnApplications(c fiber.Ctx) error {
	workerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	apps, err := h.lifecycle.ListWorkerApplications(c.Context(), workerID)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewApplicationResponses(apps))
}

func (h *WorkerHandler) ListOwnBadges(c fiber.Ctx) error {
	workerID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	items, err := h.badges.ListUserBadges(c.Context(), workerID)
	if err != nil {
		return mapLifecycleError(err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.NewBadgeResponses(items))
}
