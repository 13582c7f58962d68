package application

import (
	"context"

	"github.com/oksasatya/promisor/pkg/mailer"
)

// PasswordEncoder hashes raw credentials. Encoded values are never reversed.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, encoded string) bool
}

// EmailValidator performs a purely syntactic check on an address.
type EmailValidator interface {
	IsValid(email string) bool
}

// Notifier delivers an already rendered message to one recipient.
type Notifier interface {
	Send(ctx context.Context, to string, msg mailer.Message) error
}
