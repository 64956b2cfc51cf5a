package api

import (
	"context"
	"crypto/subtle"
	"net/http"
	"strings"
	"time"

	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/api/middleware"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/config"
	"github.com/Jennaleighwilder/launchpad-conference-platform-sub001/internal/lifecycle"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

type Router struct {
	engine *gin.Engine
	server *http.Server
	cfg    *config.Config

	lifecycleEngine *lifecycle.Engine
	logger          *zap.Logger
}

func NewRouter(
	cfg *config.Config,
	lifecycleEngine *lifecycle.Engine,
	logger *zap.Logger,
) *Router {
	// Disable GIN default logger
	gin.SetMode(gin.ReleaseMode)
	r := gin.New()

	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Metrics())
	r.Use(middleware.Logger(logger))

	api := &Router{
		engine:          r,
		cfg:             cfg,
		lifecycleEngine: lifecycleEngine,
		logger:          logger,
	}

	api.RegisterRoutes()
	return api
}

func (r *Router) RegisterRoutes() {
	r.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Prometheus metrics endpoint
	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))

	// Lifecycle trigger, protected by the scheduler's shared secret.
	internal := r.engine.Group("/internal")
	internal.Use(r.lifecycleAuth())
	{
		internal.POST("/lifecycle/run", r.RunLifecycle)
	}
}

func (r *Router) Run() error {
	r.server = &http.Server{
		Addr:         ":" + r.cfg.Port,
		Handler:      r.engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 90 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return r.server.ListenAndServe()
}

// lifecycleAuth rejects unauthenticated triggers before the engine runs. The
// token compare is constant time; an unset token disables the endpoint
// entirely rather than leaving it open.
func (r *Router) lifecycleAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := strings.TrimSpace(r.cfg.LifecycleAPIToken)
		if expected == "" {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "lifecycle_token_not_configured"})
			return
		}

		provided := ""
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if strings.HasPrefix(strings.ToLower(authHeader), "bearer ") {
			provided = strings.TrimSpace(authHeader[7:])
		}

		if provided == "" || subtle.ConstantTimeCompare([]byte(provided), []byte(expected)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

// Shutdown gracefully shuts down the HTTP server
func (r *Router) Shutdown(ctx context.Context) error {
	if r.server == nil {
		return nil
	}
	return r.server.Shutdown(ctx)
}
