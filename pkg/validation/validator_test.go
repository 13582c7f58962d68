package validation

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
)

type sample struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,pwd"`
	Status   string `json:"status" validate:"omitempty,datestatus"`
	Day      string `form:"day" validate:"omitempty,datetime=2006-01-02"`
}

func newValidate() *validator.Validate {
	v := validator.New()
	register(v)
	return v
}

func TestToDetails_FieldErrors(t *testing.T) {
	err := newValidate().Struct(sample{Email: "nope", Password: "short", Status: "MAYBE", Day: "01/06/2024"})

	assert.Equal(t, map[string]string{
		"email":    "must be a valid email",
		"password": "min length 8",
		"status":   "must be one of: IMPOSSIBLE, UNCERTAIN, POSSIBLE",
		"day":      "must match datetime format: 2006-01-02",
	}, ToDetails(err))
}

func TestToDetails_Valid(t *testing.T) {
	err := newValidate().Struct(sample{Email: "a@x.com", Password: "password1", Status: "POSSIBLE", Day: "2024-06-01"})
	assert.NoError(t, err)
	assert.Nil(t, ToDetails(err))
}

func TestToDetails_PayloadErrors(t *testing.T) {
	var v sample
	err := json.Unmarshal([]byte(`{"email":`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	err = json.Unmarshal([]byte(`{"email": 5}`), &v)
	assert.Equal(t, map[string]string{"payload": "invalid json"}, ToDetails(err))

	assert.Equal(t, map[string]string{"payload": "invalid payload"}, ToDetails(errors.New("EOF")))
}

func TestEmailValidator(t *testing.T) {
	v := NewEmailValidator()
	for _, ok := range []string{"a@x.com", "first.last+tag@example.co.uk"} {
		assert.True(t, v.IsValid(ok), ok)
	}
	for _, bad := range []string{"", "plain", "a@", "@x.com"} {
		assert.False(t, v.IsValid(bad), bad)
	}
}
