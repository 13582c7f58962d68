package application

import (
	"errors"
	"fmt"

	"github.com/oksasatya/promisor/internal/domain/entity"
)

var (
	ErrInvalidEmail       = errors.New("invalid email")
	ErrDuplicateEmail     = errors.New("email already registered")
	ErrTokenNotFound      = errors.New("confirmation token not found")
	ErrTokenExpired       = errors.New("confirmation token expired")
	ErrAlreadyConfirmed   = errors.New("email already confirmed")
	ErrMemberNotFound     = errors.New("member not found")
	ErrDuplicateRelation  = errors.New("relation already exists")
	ErrAccessDenied       = errors.New("access denied")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotVerified   = errors.New("email not verified")
	ErrBanDateNotFound    = errors.New("ban date not found")
	ErrDuplicateBanDate   = errors.New("ban date already exists")

	// ErrInvalidStatus is shared with the entity package so either can be matched.
	ErrInvalidStatus = entity.ErrInvalidStatus

	// ErrSelfFollow is a DuplicateRelation: a member is implicitly related to itself.
	ErrSelfFollow = fmt.Errorf("%w: cannot follow yourself", ErrDuplicateRelation)
)
