package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/oksasatya/promisor/internal/domain/entity"
	"github.com/oksasatya/promisor/internal/domain/repository"
)

type BanDateRepository struct {
	db DBTX
}

func NewBanDateRepository(db DBTX) *BanDateRepository {
	return &BanDateRepository{db: db}
}

func (r *BanDateRepository) Create(ctx context.Context, p *entity.PersonalBanDate) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO personal_ban_dates (member_id, date, date_status, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id::text
	`, p.MemberID, p.Date, string(p.DateStatus), string(p.Status), p.CreatedAt, p.UpdatedAt)

	return mapError(row.Scan(&p.ID))
}

func (r *BanDateRepository) GetByID(ctx context.Context, id string) (*entity.PersonalBanDate, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id::text, member_id::text, date, date_status, status, created_at, updated_at
		FROM personal_ban_dates
		WHERE id = $1
	`, id)
	return scanBanDate(row)
}

func (r *BanDateRepository) UpdateStatus(ctx context.Context, p *entity.PersonalBanDate) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE personal_ban_dates
		SET date_status = $1, updated_at = $2
		WHERE id = $3
	`, string(p.DateStatus), p.UpdatedAt, p.ID)
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

func (r *BanDateRepository) ListByMember(ctx context.Context, memberID string, from, to time.Time) ([]*entity.PersonalBanDate, error) {
	query := `
		SELECT id::text, member_id::text, date, date_status, status, created_at, updated_at
		FROM personal_ban_dates
		WHERE member_id = $1`
	args := []any{memberID}
	if !from.IsZero() {
		args = append(args, entity.Day(from))
		query += fmt.Sprintf(` AND date >= $%d`, len(args))
	}
	if !to.IsZero() {
		args = append(args, entity.Day(to))
		query += fmt.Sprintf(` AND date <= $%d`, len(args))
	}
	query += ` ORDER BY date`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.PersonalBanDate
	for rows.Next() {
		p, err := scanBanDate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

func scanBanDate(row rowScanner) (*entity.PersonalBanDate, error) {
	p := &entity.PersonalBanDate{}
	var dateStatus, status string
	if err := row.Scan(&p.ID, &p.MemberID, &p.Date, &dateStatus, &status, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, mapError(err)
	}
	var err error
	if p.DateStatus, err = entity.ParseDateStatus(dateStatus); err != nil {
		return nil, corruptRow(err)
	}
	if p.Status, err = entity.ParseStatus(status); err != nil {
		return nil, corruptRow(err)
	}
	p.Date = entity.Day(p.Date)
	return p, nil
}

var _ repository.BanDateRepository = (*BanDateRepository)(nil)
