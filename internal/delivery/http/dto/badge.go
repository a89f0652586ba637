package dto

import (
	"time"

	"workconnect/internal/usecase"

	"github.com/google/uuid"
)

type BadgeResponse struct {
	ID            uuid.UUID `json:"id"`
	Name          string    `json:"name"`
	DisplayName   string    `json:"displayName"`
	Description   string    `json:"description,omitempty"`
	IconURL       string    `json:"iconUrl,omitempty"`
	CriteriaType  string    `json:"criteriaType"`
	CriteriaValue float64   `json:"criteriaValue"`
	AwardedAt     time.Time `json:"awardedAt"`
}

func NewBadgeResponses(items []usecase.AwardedBadge) []BadgeResponse {
	out := make([]BadgeResponse, 0, len(items))
	for _, it := range items {
		out = append(out, BadgeResponse{
			ID:            it.Badge.ID,
			Name:          it.Badge.Name,
			DisplayName:   it.Badge.DisplayName,
			Description:   it.Badge.Description,
			IconURL:       it.Badge.IconURL,
			CriteriaType:  string(it.Badge.CriteriaType),
			CriteriaValue: it.Badge.CriteriaValue,
			AwardedAt:     it.AwardedAt,
		})
	}
	return out
}
