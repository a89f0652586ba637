package dto

import (
	"time"

	"workconnect/internal/domain/job"

	"github.com/google/uuid"
)

const dateLayout = "2006-01-02"

type JobRequest struct {
	Title          string `json:"title"`
	Description    string `json:"description"`
	RequiredSkills string `json:"requiredSkills"`
	Location       string `json:"location"`
	Salary         int64  `json:"salary"`
	JobType        string `json:"jobType"`
	StartDate      string `json:"startDate,omitempty"`
	EndDate        string `json:"endDate,omitempty"`
}

type UpdateJobStatusRequest struct {
	Status string `json:"status"`
}

type JobResponse struct {
	ID             uuid.UUID `json:"id"`
	EmployerID     uuid.UUID `json:"employerId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	RequiredSkills string    `json:"requiredSkills"`
	Location       string    `json:"location"`
	Salary         int64     `json:"salary"`
	JobType        string    `json:"jobType"`
	Status         string    `json:"status"`
	JobDate        string    `json:"jobDate,omitempty"`
	StartDate      string    `json:"startDate,omitempty"`
	EndDate        string    `json:"endDate,omitempty"`
	PostedAt       time.Time `json:"postedAt"`
}

// ParseDate turns a yyyy-mm-dd request field into a *time.Time; empty means absent.
func ParseDate(s string) (*time.Time, bool) {
	if s == "" {
		return nil, true
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, false
	}
	return &t, true
}

// NewJobResponse projects the date fields by job type: ONE_DAY exposes a single
// jobDate, CONTRACT exposes the startDate/endDate range.
func NewJobResponse(p job.Posting) JobResponse {
	out := JobResponse{
		ID:             p.ID,
		EmployerID:     p.EmployerID,
		Title:          p.Title,
		Description:    p.Description,
		RequiredSkills: p.RequiredSkills,
		Location:       p.Location,
		Salary:         p.Salary,
		JobType:        string(p.JobType),
		Status:         string(p.Status),
		PostedAt:       p.PostedAt,
	}

	switch p.JobType {
	case job.TypeOneDay:
		if p.StartDate != nil {
			out.JobDate = p.StartDate.Format(dateLayout)
		}
	case job.TypeContract:
		if p.StartDate != nil {
			out.StartDate = p.StartDate.Format(dateLayout)
		}
		if p.EndDate != nil {
			out.EndDate = p.EndDate.Format(dateLayout)
		}
	}

	return out
}

func NewJobResponses(postings []job.Posting) []JobResponse {
	out := make([]JobResponse, 0, len(postings))
	for _, p := range postings {
		out = append(out, NewJobResponse(p))
	}
	return out
}
