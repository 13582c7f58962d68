package entity

import (
	"time"
)

// Role is the authorization role of a member
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

func (r Role) Valid() bool {
	return r == RoleUser || r == RoleAdmin
}

func ParseRole(v string) (Role, error) {
	r := Role(v)
	if !r.Valid() {
		return "", ErrInvalidStatus
	}
	return r, nil
}

// Member is the aggregate root for the membership domain.
// Password always holds the bcrypt hash, never the raw value.
// Base.Status is the account lifecycle: PENDING until the email is confirmed.
type Member struct {
	Base
	Email     string
	Name      string
	Password  string
	Telephone string
	Role      Role
}

// NewMember builds a PENDING member. encodedPassword must already be hashed.
func NewMember(name, email, encodedPassword, telephone string, role Role, now time.Time) (*Member, error) {
	if !role.Valid() {
		return nil, ErrInvalidStatus
	}
	return &Member{
		Base:      newBase(StatusPending, now),
		Email:     email,
		Name:      name,
		Password:  encodedPassword,
		Telephone: telephone,
		Role:      role,
	}, nil
}

func (m *Member) IsActive() bool { return m.Status == StatusActive }

func (m *Member) IsAdmin() bool { return m.Role == RoleAdmin }

// Activate moves a member to ACTIVE.
func (m *Member) Activate(now time.Time) {
	m.Status = StatusActive
	m.UpdatedAt = now
}
