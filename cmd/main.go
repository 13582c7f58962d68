package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/promisor/config"
	app "github.com/oksasatya/promisor/internal/application"
	repo "github.com/oksasatya/promisor/internal/domain/repository"
	"github.com/oksasatya/promisor/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/promisor/internal/infrastructure/postgres"
	"github.com/oksasatya/promisor/internal/interface/middleware"
	"github.com/oksasatya/promisor/internal/router"
	"github.com/oksasatya/promisor/pkg/helpers"
	"github.com/oksasatya/promisor/pkg/mailer"
	"github.com/oksasatya/promisor/pkg/validation"
)

func main() {
	_ = godotenv.Load() // load .env if present

	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName, cfg.Env)
	gin.SetMode(cfg.GinMode)
	validation.Init()

	ctx := context.Background()

	store, closeStore := openStore(ctx, cfg, logger)
	defer closeStore()

	// Redis
	var rdb *redis.Client
	if cfg.RedisEnabled {
		rdb = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		defer func() { _ = rdb.Close() }()
		if err := helpers.PingRedis(ctx, rdb); err != nil {
			logger.WithError(err).Warn("redis not reachable; sessions and rate limits will fail open")
		}
	}

	// Notifier: queue for the email worker, or log only
	var notifier app.Notifier = mailer.NewLogNotifier(logger)
	if cfg.MailSendEnabled {
		pub, err := helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			logger.WithError(err).Warn("rabbitmq unavailable; confirmation emails will only be logged")
		} else {
			defer pub.Close()
			notifier = mailer.NewQueueNotifier(pub)
		}
	}

	// Elasticsearch
	var es *elasticsearch.Client
	if cfg.SearchEnabled {
		client, err := helpers.NewESClient(cfg.ESAddrs(), cfg.ElasticsearchUser, cfg.ElasticsearchPass)
		if err != nil {
			logger.WithError(err).Warn("elasticsearch client init failed; search disabled")
		} else {
			es = client
			if err := helpers.EnsureMembersIndex(ctx, es, cfg.ESMembersIndex); err != nil {
				logger.WithError(err).Warn("ensure members index failed")
			}
		}
	}
	index := app.NewMemberIndex(es, cfg.ESMembersIndex, logger)

	jwtManager := helpers.NewJWTManager(cfg.JWTAccessSecret, cfg.JWTRefreshSecret, cfg.AccessTTL, cfg.RefreshTTL)

	confirmations := app.NewConfirmationService(store, logger, index)
	members := app.NewMemberService(store, confirmations, helpers.BcryptEncoder{}, validation.NewEmailValidator(),
		notifier, jwtManager, rdb, index, cfg, logger)

	// Gin engine and global middleware
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	corsCfg := cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(corsCfg.AllowOrigins) == 0 {
		corsCfg.AllowOrigins = []string{"http://localhost:3000"}
	}
	r.Use(cors.New(corsCfg))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(gin.Logger())
	}

	reg := router.NewRegistry(r)
	router.InitModules(reg, router.Deps{
		Cfg:           cfg,
		Logger:        logger,
		Redis:         rdb,
		JWT:           jwtManager,
		Members:       members,
		Confirmations: confirmations,
		Relations:     app.NewRelationService(store, logger),
		BanDates:      app.NewBanDateService(store, logger),
	})
	reg.RegisterAll()

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: r, ReadHeaderTimeout: 10 * time.Second}
	go func() {
		logger.Infof("server starting on :%s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("shutting down server")

	ctxShutdown, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctxShutdown); err != nil {
		logger.Errorf("server forced to shutdown: %v", err)
		return
	}
	logger.Info("server exited properly")
}

// openStore returns the configured repository.Store and its cleanup func.
func openStore(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (repo.Store, func()) {
	if cfg.UsesMemoryStore() {
		logger.Warn("using in-memory store; data is lost on restart")
		return memory.NewStore(), func() {}
	}

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	db := pginfra.OpenDB(pool)
	if err := pginfra.RunMigrations(db, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}
	return pginfra.NewStore(db), func() {
		_ = db.Close()
		pool.Close()
	}
}
