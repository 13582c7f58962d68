package application

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/promisor/config"
	"github.com/oksasatya/promisor/internal/domain/entity"
	repo "github.com/oksasatya/promisor/internal/domain/repository"
	"github.com/oksasatya/promisor/pkg/helpers"
	tpl "github.com/oksasatya/promisor/pkg/mailer/templates"
)

const sessionTTL = 24 * time.Hour

// MemberService owns registration, lookups and the login session lifecycle.
type MemberService struct {
	Store         repo.Store
	Confirmations *ConfirmationService
	Encoder       PasswordEncoder
	Emails        EmailValidator
	Notifier      Notifier
	JWT           *helpers.JWTManager
	Redis         *redis.Client
	Index         *MemberIndex
	Cfg           *config.Config
	Logger        *logrus.Logger
}

type TokenPair struct {
	AccessToken        string
	AccessTokenExpiry  time.Time
	RefreshToken       string
	RefreshTokenExpiry time.Time
}

type RegisterInput struct {
	Name      string
	Email     string
	Password  string
	Telephone string
}

type LoginResponse struct {
	MemberID string `json:"member_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Role     string `json:"role"`
}

func sessionKey(memberID string) string {
	return "member:session:" + memberID
}

func nowRFC3339() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

func NewMemberService(
	store repo.Store,
	confirmations *ConfirmationService,
	encoder PasswordEncoder,
	emails EmailValidator,
	notifier Notifier,
	jwt *helpers.JWTManager,
	rdb *redis.Client,
	index *MemberIndex,
	cfg *config.Config,
	logger *logrus.Logger,
) *MemberService {
	return &MemberService{
		Store:         store,
		Confirmations: confirmations,
		Encoder:       encoder,
		Emails:        emails,
		Notifier:      notifier,
		JWT:           jwt,
		Redis:         rdb,
		Index:         index,
		Cfg:           cfg,
		Logger:        logger,
	}
}

// Register creates a PENDING member with a fresh confirmation token and
// returns the token string. Delivery of the confirmation message happens
// after commit and never fails the registration.
func (s *MemberService) Register(ctx context.Context, in RegisterInput) (string, error) {
	if !s.Emails.IsValid(in.Email) {
		return "", ErrInvalidEmail
	}

	var (
		member *entity.Member
		token  *entity.ConfirmationToken
	)
	err := s.Store.WithinTx(ctx, func(ctx context.Context, tx repo.Store) error {
		if _, err := tx.Members().GetByEmail(ctx, in.Email); err == nil {
			return ErrDuplicateEmail
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}

		encoded, err := s.Encoder.Encode(in.Password)
		if err != nil {
			return err
		}
		m, err := entity.NewMember(in.Name, in.Email, encoded, in.Telephone, entity.RoleUser, s.Confirmations.Now())
		if err != nil {
			return err
		}
		if err := tx.Members().Create(ctx, m); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrDuplicateEmail
			}
			return err
		}

		t, err := s.Confirmations.Issue(ctx, tx, m)
		if err != nil {
			return err
		}
		member, token = m, t
		return nil
	})
	if err != nil {
		if s.Logger != nil && !isDomainError(err) {
			s.Logger.WithError(err).WithField("email", in.Email).Error("register member failed")
		}
		return "", err
	}

	if s.Logger != nil {
		s.Logger.WithField("member_id", member.ID).Info("member registered")
	}
	stats.Add(statRegistered, 1)
	s.sendConfirmation(ctx, member, token)
	_ = s.Index.IndexMember(ctx, member)
	return token.Token, nil
}

func (s *MemberService) sendConfirmation(ctx context.Context, m *entity.Member, t *entity.ConfirmationToken) {
	if s.Notifier == nil {
		return
	}
	link := s.Cfg.ConfirmURL(t.Token)
	data := tpl.NewConfirmEmailData(s.Cfg, m.Name, m.Email, link,
		tpl.WithTime(t.CreatedAt),
		tpl.WithExpiry(t.ExpiresAt, entity.ConfirmationTokenTTL),
	)
	msg, err := tpl.RenderMessage(tpl.ConfirmEmail, data)
	if err != nil {
		stats.Add(statNotifyFailed, 1)
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.ID).Warn("render confirmation email failed")
		}
		return
	}
	if err := s.Notifier.Send(ctx, m.Email, msg); err != nil {
		stats.Add(statNotifyFailed, 1)
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.ID).Warn("send confirmation email failed")
		}
	}
}

// GetMember looks a member up by email.
func (s *MemberService) GetMember(ctx context.Context, email string) (*entity.Member, error) {
	return lookupMember(ctx, s.Store, email)
}

func (s *MemberService) GetMemberByID(ctx context.Context, id string) (*entity.Member, error) {
	m, err := s.Store.Members().GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

func lookupMember(ctx context.Context, store repo.Store, email string) (*entity.Member, error) {
	m, err := store.Members().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrMemberNotFound
		}
		return nil, err
	}
	return m, nil
}

// Authenticate validates email/password. Members that have not confirmed their email cannot log in.
func (s *MemberService) Authenticate(ctx context.Context, email, password string) (*entity.Member, error) {
	m, err := s.Store.Members().GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !s.Encoder.Matches(password, m.Password) {
		return nil, ErrInvalidCredentials
	}
	if !m.IsActive() {
		return nil, ErrEmailNotVerified
	}
	return m, nil
}

// IssueTokens generates access/refresh tokens and records a session in Redis.
func (s *MemberService) IssueTokens(ctx context.Context, m *entity.Member) (TokenPair, error) {
	sid := uuid.NewString()
	pair, err := s.generatePair(m, sid)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("member_id", m.ID).Error("generate tokens failed")
		}
		return TokenPair{}, err
	}

	if s.Redis != nil {
		fields := map[string]any{
			"member_id":  m.ID,
			"email":      m.Email,
			"name":       m.Name,
			"role":       string(m.Role),
			"sid":        sid,
			"created_at": nowRFC3339(),
		}
		key := sessionKey(m.ID)
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, fields)
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

func (s *MemberService) generatePair(m *entity.Member, sid string) (TokenPair, error) {
	access, aexp, err := s.JWT.GenerateAccessToken(m.ID, m.Email, sid)
	if err != nil {
		return TokenPair{}, err
	}
	refresh, rexp, err := s.JWT.GenerateRefreshToken(m.ID, m.Email, sid)
	if err != nil {
		return TokenPair{}, err
	}
	return TokenPair{AccessToken: access, AccessTokenExpiry: aexp, RefreshToken: refresh, RefreshTokenExpiry: rexp}, nil
}

func (s *MemberService) Login(ctx context.Context, email, password string) (*LoginResponse, TokenPair, error) {
	m, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return nil, TokenPair{}, err
	}
	pair, err := s.IssueTokens(ctx, m)
	if err != nil {
		return nil, TokenPair{}, err
	}
	return &LoginResponse{MemberID: m.ID, Email: m.Email, Name: m.Name, Role: string(m.Role)}, pair, nil
}

// Refresh validates a refresh token against the live session and rotates both tokens.
func (s *MemberService) Refresh(ctx context.Context, refreshToken string) (TokenPair, error) {
	claims, err := s.JWT.ParseRefreshToken(refreshToken)
	if err != nil {
		return TokenPair{}, ErrInvalidCredentials
	}
	m, err := s.Store.Members().GetByID(ctx, claims.MemberID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return TokenPair{}, ErrInvalidCredentials
		}
		return TokenPair{}, err
	}
	key := sessionKey(m.ID)
	if s.Redis != nil {
		data, rErr := s.Redis.HGetAll(ctx, key).Result()
		if rErr != nil || len(data) == 0 || data["sid"] != claims.SessionID {
			return TokenPair{}, ErrInvalidCredentials
		}
	}

	sid := uuid.NewString()
	pair, err := s.generatePair(m, sid)
	if err != nil {
		return TokenPair{}, err
	}
	if s.Redis != nil {
		pipe := s.Redis.Pipeline()
		pipe.HSet(ctx, key, map[string]any{
			"sid":        sid,
			"updated_at": nowRFC3339(),
		})
		pipe.Expire(ctx, key, sessionTTL)
		if _, rErr := pipe.Exec(ctx); rErr != nil && s.Logger != nil {
			s.Logger.WithError(rErr).WithField("key", key).Warn("redis pipeline failed")
		}
	}
	return pair, nil
}

// Logout drops the member's session. Revocation needs Redis: with Redis
// outstanding refresh tokens stop working, without it Logout is a no-op and
// refresh tokens stay valid until they expire.
func (s *MemberService) Logout(ctx context.Context, memberID string) error {
	if s.Redis == nil || memberID == "" {
		return nil
	}
	return s.Redis.Del(ctx, sessionKey(memberID)).Err()
}

// SearchMembers finds members by email or name. Returns an empty slice when search is not configured.
func (s *MemberService) SearchMembers(ctx context.Context, q string, size int) ([]MemberDocument, error) {
	return s.Index.Search(ctx, q, size)
}
