package v1

import (
	"sync/atomic"

	"github.com/vibe-gaming/geodirectory/internal/config"
	"github.com/vibe-gaming/geodirectory/internal/service"
	"github.com/vibe-gaming/geodirectory/pkg/auth"

	"github.com/gin-gonic/gin"
)

// @title GeoDirectory API
// @version 1.0
// @description Points of interest grouped by a neighborhood region hierarchy.

// @BasePath /api/v1

// @securityDefinitions.apikey AdminAuth
// @in header
// @name Authorization

type Handler struct {
	services     *service.Services
	tokenManager auth.TokenManager
	config       *config.Config

	backfillRunning atomic.Bool
}

func NewHandler(
	services *service.Services,
	tokenManager auth.TokenManager,
	config *config.Config,
) *Handler {
	return &Handler{
		services:     services,
		tokenManager: tokenManager,
		config:       config,
	}
}

func (h *Handler) Init(api *gin.RouterGroup) {
	v1 := api.Group("v1")

	h.initRegionsRoutes(v1)
	h.initCitiesRoutes(v1)
	h.initGeoRoutes(v1)
	h.initBusinessesRoutes(v1)
	h.initAdminRoutes(v1)
}
