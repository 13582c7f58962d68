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

// RelationService maintains the directed follow graph between members.
type RelationService struct {
	Store  repo.Store
	Logger *logrus.Logger
	Now    func() time.Time
}

func NewRelationService(store repo.Store, logger *logrus.Logger) *RelationService {
	return &RelationService{Store: store, Logger: logger, Now: helpers.NowUTC}
}

// Follow records that requester follows receiver. Only the requester's edge is written.
func (s *RelationService) Follow(ctx context.Context, requesterEmail, receiverEmail string) error {
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx repo.Store) error {
		requester, err := lookupMember(ctx, tx, requesterEmail)
		if err != nil {
			return err
		}
		receiver, err := lookupMember(ctx, tx, receiverEmail)
		if err != nil {
			return err
		}
		if requester.ID == receiver.ID {
			return ErrSelfFollow
		}

		exists, err := tx.Relations().Exists(ctx, requester.ID, receiver.ID)
		if err != nil {
			return err
		}
		if exists {
			return ErrDuplicateRelation
		}

		rel := entity.NewRelation(requester.ID, receiver.ID, s.Now())
		if err := tx.Relations().Create(ctx, rel); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrDuplicateRelation
			}
			return err
		}
		return nil
	})
	if err != nil {
		if s.Logger != nil && !isDomainError(err) {
			s.Logger.WithError(err).Error("follow failed")
		}
		return err
	}
	stats.Add(statFollows, 1)
	if s.Logger != nil {
		s.Logger.WithFields(logrus.Fields{"requester": requesterEmail, "receiver": receiverEmail}).Info("relation created")
	}
	return nil
}

// Following lists the members email follows, oldest relation first.
func (s *RelationService) Following(ctx context.Context, email string) ([]*entity.Member, error) {
	m, err := lookupMember(ctx, s.Store, email)
	if err != nil {
		return nil, err
	}
	return s.Store.Relations().ListFriends(ctx, m.ID)
}
