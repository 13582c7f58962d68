package entity

import "time"

// ConfirmationTokenTTL is how long an emailed confirmation link stays usable.
const ConfirmationTokenTTL = 15 * time.Minute

// ConfirmationToken is a single-use proof that a member controls their email.
// CreatedAt is the issue time. ConfirmedAt stays nil until the one successful confirm.
type ConfirmationToken struct {
	Base
	Token       string
	ExpiresAt   time.Time
	ConfirmedAt *time.Time
	MemberID    string
}

func NewConfirmationToken(token, memberID string, now time.Time) *ConfirmationToken {
	return &ConfirmationToken{
		Base:      newBase(StatusActive, now),
		Token:     token,
		ExpiresAt: now.Add(ConfirmationTokenTTL),
		MemberID:  memberID,
	}
}

func (t *ConfirmationToken) IsConfirmed() bool { return t.ConfirmedAt != nil }

// IsExpired reports whether now is strictly after ExpiresAt; the boundary instant is still valid.
func (t *ConfirmationToken) IsExpired(now time.Time) bool { return now.After(t.ExpiresAt) }
