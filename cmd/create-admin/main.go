// Command create-admin provisions an administrator account. It is the only
// path that assigns the admin role: self-registration always yields a
// regular user.
package main

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"

	"github.com/devops-dashboard/dashboard-api/internal/core/domain"
	"github.com/devops-dashboard/dashboard-api/internal/core/service"
	"github.com/devops-dashboard/dashboard-api/internal/infrastructure/config"
	mongodb "github.com/devops-dashboard/dashboard-api/internal/infrastructure/db/mongo"
	"github.com/devops-dashboard/dashboard-api/pkg/logger"
)

type adminConfig struct {
	Name     string `env:"ADMIN_NAME,     default=Administrator"`
	Email    string `env:"ADMIN_EMAIL,    required"`
	Password string `env:"ADMIN_PASSWORD, required"`
}

func main() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	cfg, err := config.Load(ctx)
	if err != nil {
		panic(err)
	}

	var admin adminConfig
	if err := envconfig.Process(ctx, &admin); err != nil {
		panic(fmt.Sprintf("create-admin: %v", err))
	}

	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: !cfg.Production()})

	client, db, err := mongodb.Connect(ctx, mongodb.Config{
		URI:      cfg.Mongo.URI,
		Database: cfg.Mongo.Database,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("mongo connection failed")
	}
	defer func() {
		_ = client.Disconnect(context.Background())
	}()

	repo := mongodb.NewAuthRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		log.Fatal().Err(err).Msg("index bootstrap failed")
	}

	// Idempotent: a second run against the same email is a no-op.
	if existing, err := repo.FindByEmail(ctx, service.NormalizeEmail(admin.Email)); err == nil {
		log.Info().Str("email", existing.Email).Msg("admin user already exists")
		return
	} else if err != domain.ErrUserNotFound {
		log.Fatal().Err(err).Msg("admin lookup failed")
	}

	user, err := service.NewUser(admin.Name, admin.Email, admin.Password, domain.RoleAdmin)
	if err != nil {
		log.Fatal().Err(err).Msg("admin hash failed")
	}

	created, err := repo.Create(ctx, user)
	if err != nil {
		log.Fatal().Err(err).Msg("admin creation failed")
	}
	log.Info().Str("email", created.Email).Str("id", created.ID).Msg("admin user created")
}
