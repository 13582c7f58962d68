package entity

import (
	"errors"
	"time"
)

// ErrInvalidStatus is returned whenever a status/role string falls outside its closed set.
var ErrInvalidStatus = errors.New("invalid status")

// Status is the record lifecycle shared by every entity.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusActive  Status = "ACTIVE"
)

func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusActive:
		return true
	}
	return false
}

// ParseStatus converts a stored value back into a Status.
func ParseStatus(v string) (Status, error) {
	s := Status(v)
	if !s.Valid() {
		return "", ErrInvalidStatus
	}
	return s, nil
}

// Base carries the id/status/timestamp fields common to all entities.
// Entities embed it by value.
type Base struct {
	ID        string
	Status    Status
	CreatedAt time.Time
	UpdatedAt time.Time
}

func newBase(status Status, now time.Time) Base {
	return Base{Status: status, CreatedAt: now, UpdatedAt: now}
}
