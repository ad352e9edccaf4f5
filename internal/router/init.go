package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/coursehub-user-service/internal/container"
	handlers "github.com/oksasatya/coursehub-user-service/internal/interface/http"
	"github.com/oksasatya/coursehub-user-service/internal/interface/middleware"
	"github.com/oksasatya/coursehub-user-service/internal/router/modules"
	"github.com/oksasatya/coursehub-user-service/pkg/validation"
)

// APIPrefix is where the user routes live; the web client's base URL.
const APIPrefix = "/api/users"

// NewEngine builds the gin engine with the global middleware chain and
// installs the request validators.
func NewEngine(c *container.Container) *gin.Engine {
	cfg := c.Config
	validation.Init(cfg.PasswordMinLength)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestIDMiddleware())
	r.Use(middleware.RealIP())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.CORSOrigins(),
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders:    []string{"Content-Length", middleware.HeaderRequestID},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	if cfg.HTTPLogEnabled || cfg.Env == "development" {
		r.Use(middleware.AccessLog(c.Logger))
	}
	return r
}

// InitModules wires every module from the container and registers it.
// Call once during startup, before RegisterAll.
func InitModules(r *Registry, c *container.Container) {
	cfg := c.Config

	var allow middleware.AllowFunc
	if cfg.RateLimitBypassPrivate {
		allow = middleware.AllowPrivateIP()
	}

	userHandler := handlers.NewUserHandler(c.Service, c.Logger)
	r.Add(modules.NewUserModule(userHandler, c.Service, c.Redis, allow))

	r.AddRoot(modules.NewHealthModule(handlers.NewHealthHandler(cfg.AppName)))
	if cfg.DebugMetricsEnabled {
		r.AddRoot(modules.NewDebugModule(c.Redis))
	}
}
