package handler

import (
	"errors"
	"strconv"

	"workconnect/internal/delivery/http/dto"
	"workconnect/internal/delivery/http/middleware"
	"workconnect/internal/pkg/response"
	"workconnect/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

type RecommendationHandler struct {
	uc usecase.RecommendationUsecase
}

func NewRecommendationHandler(uc usecase.RecommendationUsecase) *RecommendationHandler {
	return &RecommendationHandler{uc: uc}
}

func (h *RecommendationHandler) RegisterRoutes(r fiber.Router) {
	if r == nil {
		return
	}
	r.Get("/jobs", h.GetRecommendations)
}

// GetRecommendations never hard-fails on ranker trouble; the usecase degrades
// to the fallback ranking and the reason string tells the caller which source
// produced the list.
func (h *RecommendationHandler) GetRecommendations(c fiber.Ctx) error {
	userID, ok := callerID(c)
	if !ok {
		return middleware.NewAppError(fiber.StatusUnauthorized, "Unauthorized", nil, nil)
	}

	limit := parseQueryInt(c, "limit", 0)
	if limit < 0 {
		limit = 0
	}

	result, err := h.uc.GetJobRecommendations(c.Context(), userID, limit)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrWorkerNotFound):
			return middleware.NewAppError(fiber.StatusNotFound, "User not found", nil, err)
		default:
			return middleware.NewAppError(fiber.StatusInternalServerError, response.MessageInternalServerError, nil, err)
		}
	}

	recs := dto.NewJobResponses(result.Jobs)
	return response.Success(c, fiber.StatusOK, response.MessageOK, dto.RecommendationsResponse{
		Recommendations:      recs,
		TotalCount:           len(recs),
		RecommendationReason: result.Reason,
	})
}

func parseQueryInt(c fiber.Ctx, key string, defaultVal int) int {
	s := c.Query(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return defaultVal
	}
	return v
}
