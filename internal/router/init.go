package router

import (
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/promisor/config"
	app "github.com/oksasatya/promisor/internal/application"
	handlers "github.com/oksasatya/promisor/internal/interface/http"
	"github.com/oksasatya/promisor/internal/router/modules"
	"github.com/oksasatya/promisor/pkg/helpers"
)

// Deps are the process-wide singletons the HTTP modules need. Redis may be nil.
type Deps struct {
	Cfg           *config.Config
	Logger        *logrus.Logger
	Redis         *redis.Client
	JWT           *helpers.JWTManager
	Members       *app.MemberService
	Confirmations *app.ConfirmationService
	Relations     *app.RelationService
	BanDates      *app.BanDateService
}

// InitModules builds the handlers and registers every module with the registry.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, d Deps) {
	memberHandler := handlers.NewMemberHandler(d.Members, d.Confirmations, d.Logger, d.Cfg.CookieDomain, d.Cfg.CookieSecure)
	relationHandler := handlers.NewRelationHandler(d.Relations, d.Logger)
	banDateHandler := handlers.NewBanDateHandler(d.BanDates, d.Logger)

	r.Add(modules.NewMemberModule(memberHandler, d.Redis, d.JWT))
	r.Add(modules.NewRelationModule(relationHandler, d.Redis, d.JWT))
	r.Add(modules.NewBanDateModule(banDateHandler, d.Redis, d.JWT))
	if d.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule(d.Redis))
	}
}
