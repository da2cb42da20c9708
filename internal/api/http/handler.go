package apiHttp

import (
	"context"
	"net/http"
	"sort"
	"time"

	ginzap "github.com/gin-contrib/zap"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/vibe-gaming/geodirectory/docs"
	"github.com/vibe-gaming/geodirectory/pkg/auth"
	"github.com/vibe-gaming/geodirectory/pkg/limiter"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
	"github.com/vibe-gaming/geodirectory/pkg/validator"

	internalV1 "github.com/vibe-gaming/geodirectory/internal/api/http/internal/v1"
	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/metrics"
	"github.com/vibe-gaming/geodirectory/internal/service"

	"github.com/gin-gonic/gin"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck reports whether a dependency is reachable.
type HealthCheck func(ctx context.Context) error

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config
	healthChecks map[string]HealthCheck
}

func NewHandlers(
	services *service.Services,
	tokenManager auth.TokenManager,
	cfg *config.Config,
	healthChecks map[string]HealthCheck,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       cfg,
		healthChecks: healthChecks,
	}
}

func (h *Handler) Init(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()

	validator.RegisterGinValidator()

	router.Use(
		ginzap.Ginzap(logger.Logger(), time.RFC3339, true),
		limiter.Limit(cfg.Limiter.RPS, cfg.Limiter.Burst, cfg.Limiter.TTL),
		corsMiddleware(cfg.HttpServer.CORSOrigins),
	)
	router.Use(ginzap.RecoveryWithZap(logger.Logger(), true))

	if cfg.HttpServer.SwaggerEnabled {
		router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.NewHandler(), ginSwagger.InstanceName("internal")))
	}
	if cfg.HttpServer.MetricsEnabled {
		router.GET("/metrics", gin.WrapH(metrics.Handler()))
	}
	router.GET("/healthz", h.healthz)

	h.initAPI(router)

	return router
}

func (h *Handler) initAPI(router *gin.Engine) {
	internalHandlersV1 := internalV1.NewHandler(h.services, h.tokenManager, h.config)
	api := router.Group("/api")
	internalHandlersV1.Init(api)
}

func (h *Handler) healthz(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(h.healthChecks))
	for name := range h.healthChecks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := http.StatusOK
	checks := make(gin.H, len(names))
	for _, name := range names {
		if err := h.healthChecks[name](ctx); err != nil {
			logger.Warn("health check failed", zap.String("check", name), zap.Error(err))
			checks[name] = err.Error()
			status = http.StatusServiceUnavailable
			continue
		}
		checks[name] = "ok"
	}

	c.JSON(status, checks)
}
