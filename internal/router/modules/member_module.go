package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/promisor/internal/interface/http"
	"github.com/oksasatya/promisor/internal/interface/middleware"
	"github.com/oksasatya/promisor/pkg/helpers"
)

// MemberModule wires registration, confirmation and session routes.
// Public: POST /members, GET /members/confirm, POST /login, POST /refresh
// Protected: POST /logout, GET /members/me, GET /members/search
type MemberModule struct {
	Handler *handlers.MemberHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewMemberModule(h *handlers.MemberHandler, rdb *redis.Client, jwt *helpers.JWTManager) *MemberModule {
	return &MemberModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *MemberModule) Register(rg *gin.RouterGroup) {
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIP(), nil)
	confirmLimiter := middleware.RateLimit(m.Redis, 30, time.Minute, middleware.KeyByIPAndPath(), nil)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIP(), nil)
	refreshLimiter := middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByIP(), nil)

	rg.POST("/members", registerLimiter, m.Handler.Register)
	rg.GET("/members/confirm", confirmLimiter, m.Handler.Confirm)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/refresh", refreshLimiter, m.Handler.Refresh)

	auth := rg.Group("/")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByMemberID(), nil))
	{
		auth.POST("/logout", m.Handler.Logout)
		auth.GET("/members/me", m.Handler.Me)
		auth.GET("/members/search", m.Handler.Search)
	}
}
