// Package profile models the two user profile kinds as a tagged union instead
// of an open subtype hierarchy, so consumers can switch on Kind exhaustively.
package profile

import (
	"github.com/google/uuid"
)

type Kind string

const (
	KindWorker   Kind = "WORKER"
	KindEmployer Kind = "EMPLOYER"
)

type WorkerData struct {
	FirstName string
	LastName  string
	Skills    []string
	Location  string
}

type EmployerData struct {
	CompanyName string
	Location    string
}

// Profile is a tagged union: exactly one of Worker/Employer is set, matching Kind.
type Profile struct {
	UserID   uuid.UUID
	Kind     Kind
	Worker   *WorkerData
	Employer *EmployerData
}

func (p Profile) IsWorker() bool { return p.Kind == KindWorker && p.Worker != nil }

func (p Profile) IsEmployer() bool { return p.Kind == KindEmployer && p.Employer != nil }
