package repository

import (
	"context"

	"github.com/oksasatya/promisor/internal/domain/entity"
)

type RelationRepository interface {
	// Create inserts the edge; ErrDuplicate when (owner, friend) already exists.
	Create(ctx context.Context, r *entity.Relation) error
	Exists(ctx context.Context, ownerID, friendID string) (bool, error)
	// ListFriends returns the members ownerID follows, oldest edge first.
	ListFriends(ctx context.Context, ownerID string) ([]*entity.Member, error)
}
