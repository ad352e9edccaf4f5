package main

import (
	"context"
	"errors"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursehub-user-service/config"
	"github.com/oksasatya/coursehub-user-service/internal/application"
	"github.com/oksasatya/coursehub-user-service/internal/domain/entity"
	pginfra "github.com/oksasatya/coursehub-user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/coursehub-user-service/pkg/helpers"
)

type seedUser struct {
	name, email, password string
	role                  entity.Role
}

var seeds = []seedUser{
	{"Demo Student", "student@coursehub.local", "password123", entity.RoleStudent},
	{"Demo Instructor", "instructor@coursehub.local", "password123", entity.RoleInstructor},
}

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-seed", cfg.Env)
	ctx := context.Background()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), 2, 1, cfg.DBMaxConnLife)
	if err != nil {
		logger.WithError(err).Fatal("failed to connect to postgres")
	}
	defer pool.Close()

	if err := pginfra.Migrate(cfg.PostgresDSN(), cfg.MigrationsDir, logger); err != nil {
		logger.WithError(err).Fatal("migration failed")
	}

	hasher := helpers.NewPasswordHasher(cfg.Argon2Time, cfg.Argon2MemoryKB, cfg.Argon2Threads)
	store := application.NewCredentialStore(pginfra.NewUserRepository(pool), hasher)

	for _, s := range seeds {
		u, err := store.CreateUser(ctx, s.name, s.email, s.password, s.role)
		if errors.Is(err, application.ErrDuplicateEmail) {
			logger.WithField("email", s.email).Info("seed user already present")
			continue
		}
		if err != nil {
			logger.WithError(err).WithField("email", s.email).Fatal("failed to seed user")
		}
		helpers.LogInfo(logger, "seeded user", logrus.Fields{"id": u.ID, "email": u.Email, "role": u.Role, "password": s.password})
	}
}
