package repository

import (
	"context"
	"errors"
)

var (
	// ErrNotFound is returned when a lookup matches no row.
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when a write violates a uniqueness constraint.
	ErrDuplicate = errors.New("duplicate")
	// ErrStorage wraps every other infrastructure failure (connection loss, timeouts, ...).
	ErrStorage = errors.New("storage failure")
)

// Store groups the repositories and runs units of work atomically.
// Repositories returned by a Store obtained inside WithinTx share its transaction.
type Store interface {
	Members() MemberRepository
	ConfirmationTokens() ConfirmationTokenRepository
	Relations() RelationRepository
	BanDates() BanDateRepository

	// WithinTx runs fn in one transaction: commit when fn returns nil, rollback otherwise.
	WithinTx(ctx context.Context, fn func(ctx context.Context, tx Store) error) error
}
