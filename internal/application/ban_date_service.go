package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/promisor/internal/domain/entity"
	repo "github.com/oksasatya/promisor/internal/domain/repository"
	"github.com/oksasatya/promisor/pkg/helpers"
)

// BanDateService manages members' per-day availability entries.
type BanDateService struct {
	Store  repo.Store
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewBanDateService(store repo.Store, logger *logrus.Logger) *BanDateService {
	return &BanDateService{Store: store, Logger: logger, Now: helpers.NowUTC}
}

// Create adds an IMPOSSIBLE entry for date. One entry per member and day.
func (s *BanDateService) Create(ctx context.Context, memberEmail string, date time.Time) (*entity.PersonalBanDate, error) {
	m, err := lookupMember(ctx, s.Store, memberEmail)
	if err != nil {
		return nil, err
	}
	p := entity.NewPersonalBanDate(m.ID, date, s.Now())
	if err := s.Store.BanDates().Create(ctx, p); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrDuplicateBanDate
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.ID).Error("create ban date failed")
		}
		return nil, err
	}
	stats.Add(statBanDates, 1)
	return p, nil
}

// EditStatus replaces the status of entry id. Only the owner or an ADMIN may edit it.
func (s *BanDateService) EditStatus(ctx context.Context, actorEmail, id string, status entity.DateStatus) (*entity.PersonalBanDate, error) {
	var out *entity.PersonalBanDate
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx repo.Store) error {
		actor, err := lookupMember(ctx, tx, actorEmail)
		if err != nil {
			return err
		}
		p, err := tx.BanDates().GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrBanDateNotFound
			}
			return err
		}
		if p.MemberID != actor.ID && !actor.IsAdmin() {
			return ErrAccessDenied
		}
		if err := p.EditStatus(status, s.Now()); err != nil {
			return err
		}
		if err := tx.BanDates().UpdateStatus(ctx, p); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrBanDateNotFound
			}
			return err
		}
		out = p
		return nil
	})
	if err != nil {
		if s.Logger != nil && !isDomainError(err) {
			s.Logger.WithError(err).WithField("ban_date_id", id).Error("edit ban date failed")
		}
		return nil, err
	}
	return out, nil
}

// List returns the member's entries within [from, to]; zero bounds are open.
func (s *BanDateService) List(ctx context.Context, memberEmail string, from, to time.Time) ([]*entity.PersonalBanDate, error) {
	m, err := lookupMember(ctx, s.Store, memberEmail)
	if err != nil {
		return nil, err
	}
	return s.Store.BanDates().ListByMember(ctx, m.ID, from, to)
}
