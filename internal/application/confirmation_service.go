package application

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/promisor/internal/domain/entity"
	repo "github.com/oksasatya/promisor/internal/domain/repository"
	"github.com/oksasatya/promisor/pkg/helpers"
)

// ConfirmationService issues and redeems email confirmation tokens.
type ConfirmationService struct {
	Store  repo.Store
	Logger *logrus.Logger
	Index  *MemberIndex

	// Now and NewToken are replaceable for tests.
	Now      func() time.Time
	NewToken func() (string, error)
}

func NewConfirmationService(store repo.Store, logger *logrus.Logger, index *MemberIndex) *ConfirmationService {
	return &ConfirmationService{
		Store:    store,
		Logger:   logger,
		Index:    index,
		Now:      helpers.NowUTC,
		NewToken: genToken,
	}
}

// genToken returns 32 random bytes encoded as unpadded base64url.
func genToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}

// Issue creates a token for m through store, which is normally the caller's transaction.
func (s *ConfirmationService) Issue(ctx context.Context, store repo.Store, m *entity.Member) (*entity.ConfirmationToken, error) {
	tok, err := s.NewToken()
	if err != nil {
		return nil, err
	}
	t := entity.NewConfirmationToken(tok, m.ID, s.Now())
	if err := store.ConfirmationTokens().Create(ctx, t); err != nil {
		return nil, err
	}
	return t, nil
}

// Confirm redeems token and activates its member. It succeeds at most once per token.
func (s *ConfirmationService) Confirm(ctx context.Context, token string) (*entity.ConfirmationToken, error) {
	var (
		confirmed *entity.ConfirmationToken
		member    *entity.Member
	)
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx repo.Store) error {
		t, err := tx.ConfirmationTokens().GetByToken(ctx, token)
		if err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrTokenNotFound
			}
			return err
		}
		if t.IsConfirmed() {
			return ErrAlreadyConfirmed
		}
		now := s.Now()
		if t.IsExpired(now) {
			return ErrTokenExpired
		}

		ok, err := tx.ConfirmationTokens().MarkConfirmed(ctx, token, now)
		if err != nil {
			return err
		}
		if !ok {
			// lost the race against a concurrent confirm
			return ErrAlreadyConfirmed
		}
		t.ConfirmedAt = &now
		t.UpdatedAt = now
		confirmed = t

		if err := tx.Members().UpdateStatus(ctx, t.MemberID, entity.StatusActive, now); err != nil {
			if errors.Is(err, repo.ErrNotFound) {
				return ErrMemberNotFound
			}
			return err
		}
		member, err = tx.Members().GetByID(ctx, t.MemberID)
		return err
	})
	if err != nil {
		if s.Logger != nil && !isDomainError(err) {
			s.Logger.WithError(err).Error("confirm token failed")
		}
		return nil, err
	}

	if s.Logger != nil {
		s.Logger.WithField("member_id", member.ID).Info("member email confirmed")
	}
	stats.Add(statConfirmed, 1)
	_ = s.Index.IndexMember(ctx, member)
	return confirmed, nil
}

func isDomainError(err error) bool {
	for _, target := range []error{
		ErrInvalidEmail, ErrDuplicateEmail, ErrTokenNotFound, ErrTokenExpired, ErrAlreadyConfirmed,
		ErrMemberNotFound, ErrDuplicateRelation, ErrAccessDenied, ErrInvalidStatus,
		ErrInvalidCredentials, ErrEmailNotVerified, ErrBanDateNotFound, ErrDuplicateBanDate,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
