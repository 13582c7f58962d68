package helpers

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestJWTManager_RoundTrip(t *testing.T) {
	m := NewJWTManager("access", "refresh", time.Hour, 2*time.Hour)

	access, aexp, err := m.GenerateAccessToken("m-1", "a@x.com", "sid-1")
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), aexp, 5*time.Second)

	claims, err := m.ParseAccessToken(access)
	require.NoError(t, err)
	assert.Equal(t, "m-1", claims.MemberID)
	assert.Equal(t, "a@x.com", claims.Email)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "m-1", claims.Subject)

	refresh, _, err := m.GenerateRefreshToken("m-1", "a@x.com", "sid-1")
	require.NoError(t, err)
	_, err = m.ParseAccessToken(refresh)
	assert.Error(t, err)
	_, err = m.ParseRefreshToken(refresh)
	assert.NoError(t, err)
}

func TestJWTManager_Expired(t *testing.T) {
	m := NewJWTManager("access", "refresh", -time.Minute, time.Hour)
	tok, _, err := m.GenerateAccessToken("m-1", "a@x.com", "sid")
	require.NoError(t, err)

	_, err = m.ParseAccessToken(tok)
	assert.Error(t, err)
}

func TestBcryptEncoder(t *testing.T) {
	enc := BcryptEncoder{Cost: bcrypt.MinCost}
	hash, err := enc.Encode("password1")
	require.NoError(t, err)
	assert.NotEqual(t, "password1", hash)
	assert.True(t, enc.Matches("password1", hash))
	assert.False(t, enc.Matches("password2", hash))
	assert.False(t, enc.Matches("password1", "not-a-hash"))
}

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2024-06-01")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), d)

	_, err = ParseDate("01/06/2024")
	assert.Error(t, err)

	assert.Equal(t, time.UTC, NowUTC().Location())
}

func TestCookieManager(t *testing.T) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	NewCookie("example.com", true).SetPair(c, "a", time.Now().Add(time.Hour), "r", time.Now().Add(-time.Hour))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 2)
	assert.Equal(t, AccessCookie, cookies[0].Name)
	assert.Equal(t, "a", cookies[0].Value)
	assert.True(t, cookies[0].HttpOnly)
	assert.True(t, cookies[0].Secure)
	assert.Greater(t, cookies[0].MaxAge, 3500)
	assert.Equal(t, RefreshCookie, cookies[1].Name)
}

func TestNewLogger(t *testing.T) {
	var buf bytes.Buffer
	l := newLogger(&buf, "promisor", "production")
	l.Debug("hidden")
	l.Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), `"msg":"shown"`)
	assert.Contains(t, buf.String(), `"app":"promisor"`)
}
