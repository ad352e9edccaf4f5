package router

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/coursehub-user-service/config"
	"github.com/oksasatya/coursehub-user-service/internal/container"
	"github.com/oksasatya/coursehub-user-service/pkg/helpers"
)

func init() { gin.SetMode(gin.TestMode) }

func newApp(t *testing.T, mutate func(*config.Config)) *gin.Engine {
	t.Helper()
	cfg := config.Load()
	cfg.StorageDriver = config.StorageDriverMemory
	cfg.RateLimitEnabled = false
	cfg.MailSendEnabled = false
	cfg.Argon2Time, cfg.Argon2MemoryKB, cfg.Argon2Threads = 1, 1024, 1
	if mutate != nil {
		mutate(cfg)
	}
	c, err := container.New(context.Background(), cfg, helpers.NewDiscardLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	engine := NewEngine(c)
	reg := NewRegistry(engine, APIPrefix)
	InitModules(reg, c)
	reg.RegisterAll()
	return engine
}

func post(engine *gin.Engine, path string, body any) *httptest.ResponseRecorder {
	b, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(b))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	return w
}

func TestRoutes(t *testing.T) {
	engine := newApp(t, nil)

	w := post(engine, "/api/users/register", map[string]string{"name": "Ada", "email": "ada@x.com", "password": "secret1"})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = post(engine, "/api/users/login", map[string]string{"email": "ada@x.com", "password": "secret1"})
	require.Equal(t, http.StatusOK, w.Code)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))

	req := httptest.NewRequest(http.MethodGet, "/api/users/profile", nil)
	req.Header.Set("Authorization", "Bearer "+login.Token)
	w = httptest.NewRecorder()
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = post(engine, "/api/users/forgot-password", map[string]string{"email": "ada@x.com"})
	assert.Equal(t, http.StatusOK, w.Code, "disabled mail still answers 200")

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "users_registered")
}

func TestDebugVarsDisabled(t *testing.T) {
	engine := newApp(t, func(c *config.Config) { c.DebugMetricsEnabled = false })
	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/debug/vars", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoginRateLimited(t *testing.T) {
	mr := miniredis.RunT(t)
	engine := newApp(t, func(c *config.Config) {
		c.RateLimitEnabled = true
		c.RedisAddr = mr.Addr()
	})

	var last *httptest.ResponseRecorder
	for i := 0; i < 11; i++ {
		last = post(engine, "/api/users/login", map[string]string{"email": "nobody@x.com", "password": "secret1"})
	}
	assert.Equal(t, http.StatusTooManyRequests, last.Code)

	mr.FastForward(time.Minute + time.Second)
	w := post(engine, "/api/users/login", map[string]string{"email": "nobody@x.com", "password": "secret1"})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
