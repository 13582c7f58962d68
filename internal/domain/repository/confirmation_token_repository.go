package repository

import (
	"context"
	"time"

	"github.com/oksasatya/promisor/internal/domain/entity"
)

type ConfirmationTokenRepository interface {
	Create(ctx context.Context, t *entity.ConfirmationToken) error
	GetByToken(ctx context.Context, token string) (*entity.ConfirmationToken, error)
	// MarkConfirmed sets confirmed_at only while it is still NULL and reports whether a row changed.
	MarkConfirmed(ctx context.Context, token string, at time.Time) (bool, error)
}
