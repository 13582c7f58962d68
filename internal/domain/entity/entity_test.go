package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func TestNewMember(t *testing.T) {
	m, err := NewMember("Alice", "a@x.com", "hash", "+1", RoleUser, now)
	require.NoError(t, err)
	assert.Equal(t, StatusPending, m.Status)
	assert.False(t, m.IsActive())
	assert.False(t, m.IsAdmin())
	assert.Equal(t, now, m.CreatedAt)

	later := now.Add(time.Minute)
	m.Activate(later)
	assert.True(t, m.IsActive())
	assert.Equal(t, later, m.UpdatedAt)

	_, err = NewMember("x", "x@x.com", "h", "", Role("ROOT"), now)
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestParseStatusAndRole(t *testing.T) {
	s, err := ParseStatus("ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, StatusActive, s)

	_, err = ParseStatus("active")
	assert.ErrorIs(t, err, ErrInvalidStatus)

	r, err := ParseRole("ADMIN")
	require.NoError(t, err)
	assert.Equal(t, RoleAdmin, r)

	_, err = ParseRole("")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestConfirmationToken_Expiry(t *testing.T) {
	tok := NewConfirmationToken("t", "m", now)
	assert.Equal(t, now.Add(15*time.Minute), tok.ExpiresAt)
	assert.False(t, tok.IsConfirmed())

	assert.False(t, tok.IsExpired(now.Add(600*time.Second)))
	assert.False(t, tok.IsExpired(now.Add(900*time.Second)))
	assert.True(t, tok.IsExpired(now.Add(900*time.Second+time.Nanosecond)))
	assert.True(t, tok.IsExpired(now.Add(1000*time.Second)))
}

func TestPersonalBanDate(t *testing.T) {
	loc := time.FixedZone("X", 3*3600)
	p := NewPersonalBanDate("m", time.Date(2024, 6, 1, 23, 30, 0, 0, loc), now)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), p.Date)
	assert.Equal(t, DateImpossible, p.DateStatus)

	for _, s := range []DateStatus{DatePossible, DateUncertain, DateImpossible} {
		require.NoError(t, p.EditStatus(s, now))
		assert.Equal(t, s, p.DateStatus)
	}

	err := p.EditStatus(DateStatus("MAYBE"), now.Add(time.Hour))
	assert.ErrorIs(t, err, ErrInvalidStatus)
	assert.Equal(t, DateImpossible, p.DateStatus)
	assert.Equal(t, now, p.UpdatedAt)

	_, err = ParseDateStatus("possible")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}
