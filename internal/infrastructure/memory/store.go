// Package memory is an in-process implementation of repository.Store.
// It keeps the same uniqueness guarantees as the PostgreSQL schema and
// gives WithinTx all-or-nothing semantics by working on a copy of the state.
package memory

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/oksasatya/promisor/internal/domain/entity"
	"github.com/oksasatya/promisor/internal/domain/repository"
)

type state struct {
	members   map[string]entity.Member // by id
	tokens    map[string]entity.ConfirmationToken
	relations map[string]entity.Relation
	banDates  map[string]entity.PersonalBanDate
}

func newState() *state {
	return &state{
		members:   map[string]entity.Member{},
		tokens:    map[string]entity.ConfirmationToken{},
		relations: map[string]entity.Relation{},
		banDates:  map[string]entity.PersonalBanDate{},
	}
}

func (s *state) clone() *state {
	c := newState()
	for k, v := range s.members {
		c.members[k] = v
	}
	for k, v := range s.tokens {
		c.tokens[k] = v
	}
	for k, v := range s.relations {
		c.relations[k] = v
	}
	for k, v := range s.banDates {
		c.banDates[k] = v
	}
	return c
}

// Store is safe for concurrent use. Transactions are serialized.
type Store struct {
	mu   *sync.Mutex
	root **state
	tx   *state // non-nil inside WithinTx
}

func NewStore() *Store {
	st := newState()
	return &Store{mu: &sync.Mutex{}, root: &st}
}

// do runs fn against the current state, taking the lock unless already inside a transaction.
func (s *Store) do(fn func(st *state) error) error {
	if s.tx != nil {
		return fn(s.tx)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return fn(*s.root)
}

func (s *Store) Members() repository.MemberRepository { return &memberRepo{s} }

func (s *Store) ConfirmationTokens() repository.ConfirmationTokenRepository {
	return &tokenRepo{s}
}

func (s *Store) Relations() repository.RelationRepository { return &relationRepo{s} }

func (s *Store) BanDates() repository.BanDateRepository { return &banDateRepo{s} }

func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context, tx repository.Store) error) error {
	if s.tx != nil {
		return fn(ctx, s)
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := (*s.root).clone()
	if err := fn(ctx, &Store{mu: s.mu, root: s.root, tx: work}); err != nil {
		return err
	}
	*s.root = work
	return nil
}

func newID() string { return uuid.NewString() }

var _ repository.Store = (*Store)(nil)
