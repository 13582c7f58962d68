package repository

import (
	"context"
	"time"

	"github.com/oksasatya/promisor/internal/domain/entity"
)

type BanDateRepository interface {
	// Create inserts p; ErrDuplicate when the member already has an entry for that date.
	Create(ctx context.Context, p *entity.PersonalBanDate) error
	GetByID(ctx context.Context, id string) (*entity.PersonalBanDate, error)
	UpdateStatus(ctx context.Context, p *entity.PersonalBanDate) error
	// ListByMember returns entries with from <= date <= to, ordered by date. Zero bounds are open.
	ListByMember(ctx context.Context, memberID string, from, to time.Time) ([]*entity.PersonalBanDate, error)
}
