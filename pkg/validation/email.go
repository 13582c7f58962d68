package validation

import (
	"github.com/go-playground/validator/v10"
)

// EmailValidator checks address syntax with validator's "email" rule. No DNS or mailbox checks.
type EmailValidator struct {
	v *validator.Validate
}

func NewEmailValidator() *EmailValidator {
	return &EmailValidator{v: validator.New()}
}

func (e *EmailValidator) IsValid(email string) bool {
	if email == "" {
		return false
	}
	return e.v.Var(email, "required,email") == nil
}
