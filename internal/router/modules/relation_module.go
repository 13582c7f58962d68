package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	handlers "github.com/oksasatya/promisor/internal/interface/http"
	"github.com/oksasatya/promisor/internal/interface/middleware"
	"github.com/oksasatya/promisor/pkg/helpers"
)

type RelationModule struct {
	Handler *handlers.RelationHandler
	Redis   *redis.Client
	JWT     *helpers.JWTManager
}

func NewRelationModule(h *handlers.RelationHandler, rdb *redis.Client, jwt *helpers.JWTManager) *RelationModule {
	return &RelationModule{Handler: h, Redis: rdb, JWT: jwt}
}

func (m *RelationModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/members")
	auth.Use(middleware.Auth(m.Redis, m.JWT))
	auth.Use(middleware.RateLimit(m.Redis, 60, time.Minute, middleware.KeyByMemberID(), nil))
	{
		auth.POST("/follow", m.Handler.Follow)
		auth.GET("/me/following", m.Handler.Following)
	}
}
