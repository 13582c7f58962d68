package main

import (
	"context"
	"errors"
	"flag"

	"github.com/joho/godotenv"

	"github.com/oksasatya/promisor/config"
	"github.com/oksasatya/promisor/internal/domain/entity"
	repo "github.com/oksasatya/promisor/internal/domain/repository"
	pginfra "github.com/oksasatya/promisor/internal/infrastructure/postgres"
	"github.com/oksasatya/promisor/pkg/helpers"
)

// seed creates an ACTIVE admin member so ban dates can be moderated from day one.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)

	email := flag.String("email", "admin@promisor.local", "admin email")
	password := flag.String("password", "password123", "admin password")
	name := flag.String("name", "Admin", "admin display name")
	flag.Parse()

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		logger.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()
	db := pginfra.OpenDB(pool)
	defer func() { _ = db.Close() }()

	if err := pginfra.RunMigrations(db, logger); err != nil {
		logger.Fatalf("migration failed: %v", err)
	}

	hash, err := helpers.BcryptEncoder{}.Encode(*password)
	if err != nil {
		logger.Fatalf("failed to hash password: %v", err)
	}

	store := pginfra.NewStore(db)
	err = store.WithinTx(ctx, func(ctx context.Context, tx repo.Store) error {
		if existing, err := tx.Members().GetByEmail(ctx, *email); err == nil {
			logger.WithField("member_id", existing.ID).Info("admin already seeded")
			return nil
		} else if !errors.Is(err, repo.ErrNotFound) {
			return err
		}
		m, err := entity.NewMember(*name, *email, hash, "", entity.RoleAdmin, helpers.NowUTC())
		if err != nil {
			return err
		}
		m.Activate(m.CreatedAt)
		if err := tx.Members().Create(ctx, m); err != nil {
			return err
		}
		logger.WithField("member_id", m.ID).WithField("email", m.Email).Info("seeded admin member")
		return nil
	})
	if err != nil {
		logger.Fatalf("failed to seed admin: %v", err)
	}
}
