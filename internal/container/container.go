package container

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/coursehub-user-service/config"
	"github.com/oksasatya/coursehub-user-service/internal/application"
	"github.com/oksasatya/coursehub-user-service/internal/domain/repository"
	"github.com/oksasatya/coursehub-user-service/internal/infrastructure/memory"
	pginfra "github.com/oksasatya/coursehub-user-service/internal/infrastructure/postgres"
	"github.com/oksasatya/coursehub-user-service/pkg/helpers"
	"github.com/oksasatya/coursehub-user-service/pkg/mailer"
)

// Container holds the resource handles built once at startup and passed
// explicitly to the router and commands. Nil fields mean the resource is not
// configured (Pool under the memory driver, Redis with rate limiting off,
// Publisher unless MAIL_TRANSPORT=amqp).
type Container struct {
	Config *config.Config
	Logger *logrus.Logger

	Pool      *pgxpool.Pool
	Redis     *redis.Client
	Publisher *helpers.RabbitPublisher

	JWT      *helpers.JWTManager
	Hasher   *helpers.PasswordHasher
	Repo     repository.UserRepository
	Store    *application.CredentialStore
	Notifier mailer.Notifier
	Service  *application.Service
}

// New connects every configured backend. On error, whatever was opened is closed.
func New(ctx context.Context, cfg *config.Config, logger *logrus.Logger) (c *Container, err error) {
	c = &Container{Config: cfg, Logger: logger}
	defer func() {
		if err != nil {
			c.Close()
			c = nil
		}
	}()

	switch cfg.StorageDriver {
	case config.StorageDriverMemory:
		logger.Warn("using in-memory user store; data is lost on restart")
		c.Repo = memory.NewUserRepository()
	default:
		c.Pool, err = pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
		if err != nil {
			return c, fmt.Errorf("connect postgres: %w", err)
		}
		c.Repo = pginfra.NewUserRepository(c.Pool)
	}

	if cfg.RateLimitEnabled {
		c.Redis = helpers.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if perr := helpers.PingRedis(ctx, c.Redis); perr != nil {
			// the limiter fails open, so an unreachable redis only disables it
			logger.WithError(perr).Warn("redis not reachable, rate limits will fail open")
		}
	}

	if cfg.MailSendEnabled && cfg.MailTransport == config.MailTransportAMQP {
		c.Publisher, err = helpers.NewRabbitPublisher(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
		if err != nil {
			return c, fmt.Errorf("connect rabbitmq: %w", err)
		}
	}
	c.Notifier = NewNotifier(cfg, c.Publisher)

	c.JWT = helpers.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)
	c.Hasher = helpers.NewPasswordHasher(cfg.Argon2Time, cfg.Argon2MemoryKB, cfg.Argon2Threads)
	c.Store = application.NewCredentialStore(c.Repo, c.Hasher)
	c.Service = application.NewService(c.Store, c.JWT, c.Notifier, logger, application.ResetOptions{
		TTL:              cfg.ResetTokenTTL,
		BaseURL:          cfg.ResetPasswordURL,
		HideUnknownEmail: cfg.ResetHideUnknownEmail,
	})
	c.Service.AppName = cfg.AppName
	return c, nil
}

// NewNotifier selects the mail transport. pub is only used for amqp.
func NewNotifier(cfg *config.Config, pub mailer.Publisher) mailer.Notifier {
	if !cfg.MailSendEnabled {
		return mailer.Disabled{}
	}
	switch cfg.MailTransport {
	case config.MailTransportAMQP:
		return mailer.NewQueueNotifier(pub)
	case config.MailTransportMailgun:
		return mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender)
	default:
		return mailer.NewHTTPRelay(cfg.MailServiceURL, cfg.MailTimeout)
	}
}

// Close releases every handle that was opened. Safe on a partial container.
func (c *Container) Close() {
	if c == nil {
		return
	}
	if c.Publisher != nil {
		c.Publisher.Close()
	}
	if c.Redis != nil {
		_ = c.Redis.Close()
	}
	if c.Pool != nil {
		c.Pool.Close()
	}
}
