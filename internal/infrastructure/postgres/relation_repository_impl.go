package postgres

import (
	"context"

	"github.com/oksasatya/promisor/internal/domain/entity"
	"github.com/oksasatya/promisor/internal/domain/repository"
)

type RelationRepository struct {
	db DBTX
}

func NewRelationRepository(db DBTX) *RelationRepository {
	return &RelationRepository{db: db}
}

func (r *RelationRepository) Create(ctx context.Context, rel *entity.Relation) error {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO relations (owner_id, friend_id, created_at)
		VALUES ($1, $2, $3)
		RETURNING id::text
	`, rel.OwnerID, rel.FriendID, rel.CreatedAt)

	return mapError(row.Scan(&rel.ID))
}

func (r *RelationRepository) Exists(ctx context.Context, ownerID, friendID string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `
		SELECT EXISTS (
			SELECT 1 FROM relations WHERE owner_id = $1 AND friend_id = $2
		)
	`, ownerID, friendID).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func (r *RelationRepository) ListFriends(ctx context.Context, ownerID string) ([]*entity.Member, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT m.id::text, m.email, m.password_hash, m.name, m.telephone, m.role, m.status, m.created_at, m.updated_at
		FROM relations r
		JOIN members m ON m.id = r.friend_id
		WHERE r.owner_id = $1
		ORDER BY r.created_at, m.email
	`, ownerID)
	if err != nil {
		return nil, mapError(err)
	}
	defer func() { _ = rows.Close() }()

	var out []*entity.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

var _ repository.RelationRepository = (*RelationRepository)(nil)
