package handler

import (
	"workconnect/internal/delivery/http/middleware"
	"workconnect/internal/pkg/response"
	"workconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"
)

// BadgeHandler exposes the internal re-evaluation hook used by the review
// subsystem after a review lands.
type BadgeHandler struct {
	uc usecase.BadgeUsecase
}

func NewBadgeHandler(uc usecase.BadgeUsecase) *BadgeHandler {
	return &BadgeHandler{uc: uc}
}

func (h *BadgeHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Post("/badges/reevaluate/:userId", h.Reevaluate)
}

func (h *BadgeHandler) Reevaluate(c fiber.Ctx) error {
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return middleware.NewAppError(fiber.StatusBadRequest, "Invalid user id", nil, err)
	}

	if err := h.uc.CheckAndAwardJobCompletionBadges(c.Context(), userID); err != nil {
		return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
	}
	return response.Success(c, fiber.StatusOK, response.MessageOK, nil)
}
