package router

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/oksasatya/promisor/config"
	app "github.com/oksasatya/promisor/internal/application"
	"github.com/oksasatya/promisor/internal/infrastructure/memory"
	"github.com/oksasatya/promisor/internal/interface/middleware"
	"github.com/oksasatya/promisor/pkg/helpers"
	"github.com/oksasatya/promisor/pkg/mailer"
	"github.com/oksasatya/promisor/pkg/validation"
)

type envelope struct {
	Status  int             `json:"status"`
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Meta    map[string]any  `json:"meta"`
	Error   any             `json:"error"`
}

type apiClient struct {
	t      *testing.T
	engine *gin.Engine
}

func (c *apiClient) do(method, path string, body any, bearer string) (*httptest.ResponseRecorder, envelope) {
	c.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(c.t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	c.engine.ServeHTTP(w, req)

	var env envelope
	require.NoError(c.t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return w, env
}

func newTestAPI(t *testing.T) *apiClient {
	t.Helper()
	gin.SetMode(gin.TestMode)
	validation.Init()

	logger := helpers.NewNopLogger()
	store := memory.NewStore()
	cfg := &config.Config{
		AppName:             "promisor",
		BaseURL:             "http://localhost:8080/api",
		DebugMetricsEnabled: true,
	}
	jwt := helpers.NewJWTManager("access", "refresh", time.Hour, 2*time.Hour)

	confirmations := app.NewConfirmationService(store, logger, nil)
	members := app.NewMemberService(store, confirmations, helpers.BcryptEncoder{Cost: bcrypt.MinCost},
		validation.NewEmailValidator(), mailer.NewLogNotifier(logger), jwt, nil, nil, cfg, logger)

	r := gin.New()
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	reg := NewRegistry(r)
	InitModules(reg, Deps{
		Cfg:           cfg,
		Logger:        logger,
		JWT:           jwt,
		Members:       members,
		Confirmations: confirmations,
		Relations:     app.NewRelationService(store, logger),
		BanDates:      app.NewBanDateService(store, logger),
	})
	reg.RegisterAll()
	return &apiClient{t: t, engine: r}
}

// signUp registers and confirms email, then logs in and returns the access token.
func (c *apiClient) signUp(name, email string) string {
	c.t.Helper()
	w, env := c.do(http.MethodPost, "/api/members", gin.H{"name": name, "email": email, "password": "password1"}, "")
	require.Equal(c.t, http.StatusCreated, w.Code, env.Message)
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(c.t, json.Unmarshal(env.Data, &reg))

	w, env = c.do(http.MethodGet, "/api/members/confirm?token="+reg.Token, nil, "")
	require.Equal(c.t, http.StatusOK, w.Code, env.Message)
	return c.login(email)
}

func (c *apiClient) login(email string) string {
	c.t.Helper()
	w, env := c.do(http.MethodPost, "/api/login", gin.H{"email": email, "password": "password1"}, "")
	require.Equal(c.t, http.StatusOK, w.Code, env.Message)
	for _, ck := range w.Result().Cookies() {
		if ck.Name == helpers.AccessCookie {
			return ck.Value
		}
	}
	c.t.Fatal("no access cookie")
	return ""
}

func TestRegisterConfirmLogin(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodPost, "/api/members", gin.H{"name": "Alice", "email": "alice@x.com", "password": "password1"}, "")
	require.Equal(t, http.StatusCreated, w.Code)
	assert.True(t, env.Success)
	assert.NotEmpty(t, w.Header().Get(middleware.HeaderRequestID))
	var reg struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &reg))
	require.NotEmpty(t, reg.Token)

	w, _ = api.do(http.MethodPost, "/api/members", gin.H{"name": "Alice", "email": "alice@x.com", "password": "password1"}, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = api.do(http.MethodPost, "/api/login", gin.H{"email": "alice@x.com", "password": "password1"}, "")
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, env = api.do(http.MethodGet, "/api/members/confirm?token="+reg.Token, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	var confirmed struct {
		MemberID    string    `json:"member_id"`
		ConfirmedAt time.Time `json:"confirmed_at"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &confirmed))
	assert.NotEmpty(t, confirmed.MemberID)
	assert.False(t, confirmed.ConfirmedAt.IsZero())

	w, _ = api.do(http.MethodGet, "/api/members/confirm?token="+reg.Token, nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = api.do(http.MethodPost, "/api/login", gin.H{"email": "alice@x.com", "password": "wrong-password"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	access := api.login("alice@x.com")
	w, env = api.do(http.MethodGet, "/api/members/me", nil, access)
	require.Equal(t, http.StatusOK, w.Code)
	var me struct {
		ID     string `json:"id"`
		Email  string `json:"email"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &me))
	assert.Equal(t, confirmed.MemberID, me.ID)
	assert.Equal(t, "ACTIVE", me.Status)
}

func TestRegister_BadInput(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodPost, "/api/members", gin.H{"name": "X", "email": "not-an-email", "password": "password1"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "invalid email", env.Message)

	w, env = api.do(http.MethodPost, "/api/members", gin.H{"name": "X", "email": "x@x.com", "password": "short"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"password": "min length 8"}, env.Error)

	w, env = api.do(http.MethodPost, "/api/members", gin.H{"name": "X", "email": "x@x.com", "password": "password1", "telephone": "12345abc"}, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, map[string]any{"telephone": "must be a valid phone number"}, env.Error)

	w, env = api.do(http.MethodPost, "/api/members", gin.H{"name": "X", "email": "x@x.com", "password": "password1", "telephone": "+6281234567890"}, "")
	assert.Equal(t, http.StatusCreated, w.Code, env.Message)
}

func TestConfirm_Errors(t *testing.T) {
	api := newTestAPI(t)

	w, _ := api.do(http.MethodGet, "/api/members/confirm", nil, "")
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := api.do(http.MethodGet, "/api/members/confirm?token=nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.False(t, env.Success)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	api := newTestAPI(t)

	for _, path := range []string{"/api/members/me", "/api/members/me/following", "/api/ban-dates"} {
		w, _ := api.do(http.MethodGet, path, nil, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code, path)
	}
	w, _ := api.do(http.MethodGet, "/api/members/me", nil, "garbage")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestFollow(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("Alice", "alice@x.com")
	bob := api.signUp("Bob", "bob@x.com")

	w, _ := api.do(http.MethodPost, "/api/members/follow", gin.H{"receiver_email": "ghost@x.com"}, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, _ = api.do(http.MethodPost, "/api/members/follow", gin.H{"receiver_email": "bob@x.com"}, alice)
	assert.Equal(t, http.StatusCreated, w.Code)

	w, _ = api.do(http.MethodPost, "/api/members/follow", gin.H{"receiver_email": "bob@x.com"}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = api.do(http.MethodPost, "/api/members/follow", gin.H{"receiver_email": "alice@x.com"}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, env := api.do(http.MethodGet, "/api/members/me/following", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	var following []struct {
		Email string `json:"email"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &following))
	require.Len(t, following, 1)
	assert.Equal(t, "bob@x.com", following[0].Email)

	w, env = api.do(http.MethodGet, "/api/members/me/following", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, env.Meta["count"])
}

func TestBanDates(t *testing.T) {
	api := newTestAPI(t)
	alice := api.signUp("Alice", "alice@x.com")
	bob := api.signUp("Bob", "bob@x.com")

	w, _ := api.do(http.MethodPost, "/api/ban-dates", gin.H{"date": "06/01/2024"}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, env := api.do(http.MethodPost, "/api/ban-dates", gin.H{"date": "2024-06-01"}, alice)
	require.Equal(t, http.StatusCreated, w.Code)
	var created struct {
		ID     string `json:"id"`
		Date   string `json:"date"`
		Status string `json:"status"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.Equal(t, "2024-06-01", created.Date)
	assert.Equal(t, "IMPOSSIBLE", created.Status)

	w, _ = api.do(http.MethodPost, "/api/ban-dates", gin.H{"date": "2024-06-01"}, alice)
	assert.Equal(t, http.StatusConflict, w.Code)

	w, _ = api.do(http.MethodPatch, "/api/ban-dates/"+created.ID, gin.H{"status": "MAYBE"}, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w, _ = api.do(http.MethodPatch, "/api/ban-dates/"+created.ID, gin.H{"status": "POSSIBLE"}, bob)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w, _ = api.do(http.MethodPatch, "/api/ban-dates/missing", gin.H{"status": "POSSIBLE"}, alice)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w, env = api.do(http.MethodPatch, "/api/ban-dates/"+created.ID, gin.H{"status": "POSSIBLE"}, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, string(env.Data), `"status":"POSSIBLE"`)

	w, env = api.do(http.MethodGet, "/api/ban-dates?from=2024-05-01&to=2024-06-30", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 1, env.Meta["count"])

	w, env = api.do(http.MethodGet, "/api/ban-dates?from=2024-06-02", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.EqualValues(t, 0, env.Meta["count"])

	w, _ = api.do(http.MethodGet, "/api/ban-dates?from=yesterday", nil, alice)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestHealthAndUnknownRoute(t *testing.T) {
	api := newTestAPI(t)

	w, env := api.do(http.MethodGet, "/api/health", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, env.Success)

	w, env = api.do(http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "route not found", env.Message)
}

func TestDebugVars(t *testing.T) {
	api := newTestAPI(t)
	api.signUp("Alice", "alice@x.com")

	req := httptest.NewRequest(http.MethodGet, "/api/debug/vars", nil)
	w := httptest.NewRecorder()
	api.engine.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var vars map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &vars))
	assert.Contains(t, string(vars["members"]), `"registered"`)
}
