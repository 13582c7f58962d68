package postgres

import (
	"context"
	"time"

	"github.com/oksasatya/promisor/internal/domain/entity"
	"github.com/oksasatya/promisor/internal/domain/repository"
)

const memberColumns = `id::text, email, password_hash, name, telephone, role, status, created_at, updated_at`

type MemberRepository struct {
	db DBTX
}

func NewMemberRepository(db DBTX) *MemberRepository {
	return &MemberRepository{db: db}
}

func (r *MemberRepository) Create(ctx context.Context, m *entity.Member) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO members (email, password_hash, name, telephone, role, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id::text
	`, m.Email, m.Password, m.Name, m.Telephone, string(m.Role), string(m.Status), m.CreatedAt, m.UpdatedAt)

	return mapError(row.Scan(&m.ID))
}

func (r *MemberRepository) GetByID(ctx context.Context, id string) (*entity.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+memberColumns+`
		FROM members
		WHERE id = $1
	`, id)
	return scanMember(row)
}

func (r *MemberRepository) GetByEmail(ctx context.Context, email string) (*entity.Member, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+memberColumns+`
		FROM members
		WHERE email = $1
	`, email)
	return scanMember(row)
}

func (r *MemberRepository) UpdateStatus(ctx context.Context, id string, status entity.Status, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE members
		SET status = $1, updated_at = $2
		WHERE id = $3
	`, string(status), at, id)
	if err != nil {
		return mapError(err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return mapError(err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMember(row rowScanner) (*entity.Member, error) {
	u := &entity.Member{}
	var role, status string
	if err := row.Scan(&u.ID, &u.Email, &u.Password, &u.Name, &u.Telephone, &role, &status,
		&u.CreatedAt, &u.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	var err error
	if u.Role, err = entity.ParseRole(role); err != nil {
		return nil, corruptRow(err)
	}
	if u.Status, err = entity.ParseStatus(status); err != nil {
		return nil, corruptRow(err)
	}
	return u, nil
}

var _ repository.MemberRepository = (*MemberRepository)(nil)
