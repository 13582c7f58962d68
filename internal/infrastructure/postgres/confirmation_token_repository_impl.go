package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/oksasatya/promisor/internal/domain/entity"
	"github.com/oksasatya/promisor/internal/domain/repository"
)

type ConfirmationTokenRepository struct {
	db DBTX
}

func NewConfirmationTokenRepository(db DBTX) *ConfirmationTokenRepository {
	return &ConfirmationTokenRepository{db: db}
}

func (r *ConfirmationTokenRepository) Create(ctx context.Context, t *entity.ConfirmationToken) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO confirmation_tokens (token, member_id, created_at, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id::text
	`, t.Token, t.MemberID, t.CreatedAt, t.ExpiresAt)

	return mapError(row.Scan(&t.ID))
}

func (r *ConfirmationTokenRepository) GetByToken(ctx context.Context, token string) (*entity.ConfirmationToken, error) {
	t := &entity.ConfirmationToken{}
	var confirmedAt sql.NullTime

	row := r.db.QueryRowContext(ctx, `
		SELECT id::text, token, member_id::text, created_at, expires_at, confirmed_at
		FROM confirmation_tokens
		WHERE token = $1
	`, token)
	if err := row.Scan(&t.ID, &t.Token, &t.MemberID, &t.CreatedAt, &t.ExpiresAt, &confirmedAt); err != nil {
		return nil, mapError(err)
	}

	t.Status = entity.StatusActive
	t.UpdatedAt = t.CreatedAt
	if confirmedAt.Valid {
		at := confirmedAt.Time
		t.ConfirmedAt = &at
		t.UpdatedAt = at
	}
	return t, nil
}

func (r *ConfirmationTokenRepository) MarkConfirmed(ctx context.Context, token string, at time.Time) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		UPDATE confirmation_tokens
		SET confirmed_at = $1
		WHERE token = $2 AND confirmed_at IS NULL
	`, at, token)
	if err != nil {
		return false, mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, mapError(err)
	}
	return n == 1, nil
}

var _ repository.ConfirmationTokenRepository = (*ConfirmationTokenRepository)(nil)
