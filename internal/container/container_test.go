package container

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/coursehub-user-service/config"
	"github.com/oksasatya/coursehub-user-service/internal/infrastructure/memory"
	"github.com/oksasatya/coursehub-user-service/pkg/helpers"
	"github.com/oksasatya/coursehub-user-service/pkg/mailer"
)

func memoryConfig() *config.Config {
	cfg := config.Load()
	cfg.StorageDriver = config.StorageDriverMemory
	cfg.RateLimitEnabled = false
	cfg.MailTransport = config.MailTransportHTTP
	cfg.MailSendEnabled = true
	cfg.Argon2Time, cfg.Argon2MemoryKB, cfg.Argon2Threads = 1, 1024, 1
	return cfg
}

func TestNew_MemoryDriver(t *testing.T) {
	c, err := New(context.Background(), memoryConfig(), helpers.NewDiscardLogger())
	require.NoError(t, err)
	defer c.Close()

	assert.Nil(t, c.Pool)
	assert.Nil(t, c.Redis)
	assert.Nil(t, c.Publisher)
	assert.IsType(t, &memory.UserRepository{}, c.Repo)
	assert.IsType(t, &mailer.HTTPRelay{}, c.Notifier)
	assert.Equal(t, "user-service", c.Service.AppName)
}

func TestNewNotifier(t *testing.T) {
	cfg := memoryConfig()

	cfg.MailTransport = config.MailTransportMailgun
	assert.IsType(t, &mailer.Mailgun{}, NewNotifier(cfg, nil))

	cfg.MailTransport = config.MailTransportAMQP
	assert.IsType(t, &mailer.QueueNotifier{}, NewNotifier(cfg, nil))

	cfg.MailSendEnabled = false
	assert.IsType(t, mailer.Disabled{}, NewNotifier(cfg, nil))
}

func TestClose_Nil(t *testing.T) {
	var c *Container
	assert.NotPanics(t, c.Close)
}
