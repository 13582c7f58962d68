package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/promisor/internal/interface/http"
	"github.com/oksasatya/promisor/internal/interface/middleware"
	"github.com/oksasatya/promisor/pkg/helpers"
)

type BanDateModule struct {
	Handler *handlers.BanDateHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewBanDateModule(h *handlers.BanDateHandler, rdb *redis.Client, jwt *helpers.JWTManager) *BanDateModule {
	return &BanDateModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *BanDateModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/ban-dates")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByMemberID(), nil))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.PATCH("/:id", m.Handler.EditStatus)
	}
}
