// Package application defines job applications and their status machine.
//
// Valid status graph:
//
//	PENDING ──► ACCEPTED ──► COMPLETED
//	    │            │
//	    └────────────┴──► REJECTED
//
// COMPLETED and REJECTED are terminal states.
package application

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusAccepted  Status = "ACCEPTED"
	StatusRejected  Status = "REJECTED"
	StatusCompleted Status = "COMPLETED"
)

// validTransitions lists every allowed (from → to) pair.
var validTransitions = map[Status][]Status{
	StatusPending:  {StatusAccepted, StatusRejected},
	StatusAccepted: {StatusCompleted, StatusRejected},
	// COMPLETED and REJECTED are terminal, no outgoing transitions
}

type Application struct {
	ID              uuid.UUID
	JobID           uuid.UUID
	WorkerID        uuid.UUID
	Status          Status
	CoverLetter     string
	AppliedAt       time.Time
	StatusUpdatedAt time.Time
}

func ParseStatus(s string) (Status, error) {
	st := Status(s)
	switch st {
	case StatusPending, StatusAccepted, StatusRejected, StatusCompleted:
		return st, nil
	}
	return "", fmt.Errorf("unknown application status %q", s)
}

// IsTransitionAllowed returns true when moving from → to is permitted by the
// state machine.
func IsTransitionAllowed(from, to Status) bool {
	allowed, ok := validTransitions[from]
	if !ok {
		return false
	}
	for _, s := range allowed {
		if s == to {
			return true
		}
	}
	return false
}

// IsCompleted returns true when status is COMPLETED (triggers badge evaluation).
func IsCompleted(s Status) bool { return s == StatusCompleted }
