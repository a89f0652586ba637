package dto

import (
	"time"

	"workconnect/internal/domain/application"

	"github.com/google/uuid"
)

type ApplyRequest struct {
	CoverLetter string `json:"coverLetter"`
}

type UpdateApplicationStatusRequest struct {
	Status string `json:"status"`
}

type ApplicationResponse struct {
	ID              uuid.UUID `json:"id"`
	JobID           uuid.UUID `json:"jobId"`
	WorkerID        uuid.UUID `json:"workerId"`
	Status          string    `json:"status"`
	CoverLetter     string    `json:"coverLetter,omitempty"`
	AppliedAt       time.Time `json:"appliedAt"`
	StatusUpdatedAt time.Time `json:"statusUpdatedAt"`
}

type ApplicationStatusResponse struct {
	HasApplied    bool       `json:"hasApplied"`
	ApplicationID *uuid.UUID `json:"applicationId,omitempty"`
	Status        string     `json:"status,omitempty"`
}

func NewApplicationResponse(a application.Application) ApplicationResponse {
	return ApplicationResponse{
		ID:              a.ID,
		JobID:           a.JobID,
		WorkerID:        a.WorkerID,
		Status:          string(a.Status),
		CoverLetter:     a.CoverLetter,
		AppliedAt:       a.AppliedAt,
		StatusUpdatedAt: a.StatusUpdatedAt,
	}
}

func NewApplicationResponses(apps []application.Application) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(apps))
	for _, a := range apps {
		out = append(out, NewApplicationResponse(a))
	}
	return out
}
