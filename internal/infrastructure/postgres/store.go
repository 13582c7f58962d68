package postgres

import (
	"context"
	"database/sql"

	"github.com/oksasatya/promisor/internal/domain/repository"
)

// Store vends PostgreSQL-backed repositories bound to either the pool or a transaction.
type Store struct {
	db *sql.DB
	q  DBTX
	tx bool
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db, q: db}
}

func (s *Store) Members() repository.MemberRepository {
	return NewMemberRepository(s.q)
}

func (s *Store) ConfirmationTokens() repository.ConfirmationTokenRepository {
	return NewConfirmationTokenRepository(s.q)
}

func (s *Store) Relations() repository.RelationRepository {
	return NewRelationRepository(s.q)
}

func (s *Store) BanDates() repository.BanDateRepository {
	return NewBanDateRepository(s.q)
}

// WithinTx starts a transaction, or joins the current one when s is already transactional.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.tx {
		return fn(ctx, s)
	}
	return withTx(ctx, s.db, func(tx *sql.Tx) error {
		return fn(ctx, &Store{db: s.db, q: tx, tx: true})
	})
}

var _ repository.Store = (*Store)(nil)
