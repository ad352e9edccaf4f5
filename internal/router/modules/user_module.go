package modules

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/oksasatya/coursehub-user-service/internal/domain/entity"
	handlers "github.com/oksasatya/coursehub-user-service/internal/interface/http"
	"github.com/oksasatya/coursehub-user-service/internal/interface/middleware"
)

// UserModule wires the user handlers, the bearer gate and the rate limiters.
// Public: POST /register, POST /login, POST /forgot-password
// Protected: GET /profile, PUT /profile, PUT /change-password
// Routes are registered under the given RouterGroup (usually /api/users).
type UserModule struct {
	Handler *handlers.UserHandler
	Auth    middleware.Authorizer
	Redis   *redis.Client
	Allow   middleware.AllowFunc
}

func NewUserModule(h *handlers.UserHandler, auth middleware.Authorizer, rdb *redis.Client, allow middleware.AllowFunc) *UserModule {
	return &UserModule{Handler: h, Auth: auth, Redis: rdb, Allow: allow}
}

func (m *UserModule) Register(rg *gin.RouterGroup) {
	// Public with rate limiting; a nil redis client disables the limiters
	registerLimiter := middleware.RateLimit(m.Redis, 5, time.Minute, middleware.KeyByIPAndPath(), m.Allow)
	loginLimiter := middleware.RateLimit(m.Redis, 10, time.Minute, middleware.KeyByIPAndPath(), m.Allow)
	resetLimiter := middleware.RateLimit(m.Redis, 5, 15*time.Minute, middleware.KeyByIPAndPath(), m.Allow)

	rg.POST("/register", registerLimiter, m.Handler.Register)
	rg.POST("/login", loginLimiter, m.Handler.Login)
	rg.POST("/forgot-password", resetLimiter, m.Handler.ForgotPassword)

	// Protected
	auth := rg.Group("")
	auth.Use(middleware.Authenticate(m.Auth))
	auth.Use(middleware.RateLimit(m.Redis, 120, time.Minute, middleware.KeyByUser(), m.Allow))
	{
		auth.GET("/profile", middleware.RequireCapability(entity.CapProfileRead), m.Handler.Profile)
		auth.PUT("/profile", middleware.RequireCapability(entity.CapProfileUpdate), m.Handler.UpdateProfile)
		auth.PUT("/change-password", middleware.RequireCapability(entity.CapPasswordChange), m.Handler.ChangePassword)
	}
}
