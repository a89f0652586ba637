package job

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeOneDay   Type = "ONE_DAY"
	TypeContract Type = "CONTRACT"
)

type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusClosed  Status = "CLOSED"
	StatusFilled  Status = "FILLED"
	StatusExpired Status = "EXPIRED"
)

type Posting struct {
	ID             uuid.UUID
	EmployerID     uuid.UUID
	Title          string
	Description    string
	RequiredSkills string
	Location       string
	Salary         int64
	JobType        Type
	Status         Status
	StartDate      *time.Time
	EndDate        *time.Time
	PostedAt       time.Time
}

func ParseType(s string) (Type, error) {
	t := Type(s)
	switch t {
	case TypeOneDay, TypeContract:
		return t, nil
	}
	return "", fmt.Errorf("unknown job type %q", s)
}

// ParseStatus accepts any of the four posting statuses. No transition graph is
// enforced between them; the employer may move a posting freely.
func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusOpen, StatusClosed, StatusFilled, StatusExpired:
		return st, nil
	}
	return "", fmt.Errorf("unknown job status %q", s)
}
