package repository

import (
	"context"
	"time"

	"github.com/oksasatya/promisor/internal/domain/entity"
)

// MemberRepository defines the interface for member-related database operations.
type MemberRepository interface {
	// Create inserts m and fills its ID; ErrDuplicate when the email is taken.
	Create(ctx context.Context, m *entity.Member) error
	GetByID(ctx context.Context, id string) (*entity.Member, error)
	GetByEmail(ctx context.Context, email string) (*entity.Member, error)
	// UpdateStatus sets the status and stamps updated_at with at.
	UpdateStatus(ctx context.Context, id string, status entity.Status, at time.Time) error
}
