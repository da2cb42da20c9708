package v1

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/service"
	"github.com/vibe-gaming/geodirectory/pkg/logger"
)

func (h *Handler) initAdminRoutes(api *gin.RouterGroup) {
	admin := api.Group("/admin", h.adminIdentityMiddleware)
	{
		admin.GET("/stats", h.getAdminStats)
		admin.POST("/backfill/:task", h.startBackfill)
	}
}

type adminStatsResponse struct {
	TotalRegions        int64            `json:"total_regions"`
	TotalCities         int64            `json:"total_cities"`
	TotalBusinesses     int64            `json:"total_businesses"`
	PublishedBusinesses int64            `json:"published_businesses"`
	PendingBusinesses   int64            `json:"pending_businesses"`
	RegionLevels        map[string]int64 `json:"region_levels"`
}

// @Summary Get Directory Stats
// @Security AdminAuth
// @Tags Admin
// @Description Region and business totals. A failing counter is logged and reported as zero.
// @ModuleID getAdminStats
// @Produce  json
// @Success 200 {object} adminStatsResponse
// @Failure 401 {object} ErrorStruct
// @Router /admin/stats [get]
func (h *Handler) getAdminStats(c *gin.Context) {
	ctx := c.Request.Context()

	response := adminStatsResponse{RegionLevels: make(map[string]int64)}

	regions, err := h.services.Regions.GetAll(ctx)
	if err != nil {
		logger.Error("failed to get regions", zap.Error(err))
	}
	response.TotalRegions = int64(len(regions))
	for _, r := range regions {
		response.RegionLevels[strconv.Itoa(r.Level)]++
	}

	cities, err := h.services.Regions.GetCities(ctx)
	if err != nil {
		logger.Error("failed to get cities", zap.Error(err))
	}
	response.TotalCities = int64(len(cities))

	response.TotalBusinesses = h.countBusinesses(ctx, "total", &service.BusinessFilters{
		IncludeUnpublished: true,
		Portal:             true,
	})
	response.PublishedBusinesses = h.countBusinesses(ctx, "published", &service.BusinessFilters{
		Portal: true,
	})
	response.PendingBusinesses = h.countBusinesses(ctx, "pending", &service.BusinessFilters{
		RegionIDs:          []uuid.UUID{domain.PendingRegionID},
		IncludeUnpublished: true,
		Portal:             true,
	})

	c.JSON(http.StatusOK, response)
}

func (h *Handler) countBusinesses(ctx context.Context, name string, filters *service.BusinessFilters) int64 {
	n, err := h.services.Businesses.Count(ctx, filters)
	if err != nil {
		logger.Error("failed to count businesses", zap.String("counter", name), zap.Error(err))
		return 0
	}
	return n
}

type backfillTaskURI struct {
	Task string `uri:"task" binding:"required,oneof=bounds assignments counts"`
}

type backfillStartedResponse struct {
	Task   string `json:"task"`
	Status string `json:"status"`
}

// @Summary Start Backfill Task
// @Security AdminAuth
// @Tags Admin
// @Description Runs one backfill task (bounds, assignments or counts) in the background.
// @Description Only one task runs at a time. Progress and results are logged.
// @ModuleID startBackfill
// @Produce  json
// @Param task path string true "Task name"
// @Success 202 {object} backfillStartedResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Router /admin/backfill/{task} [post]
func (h *Handler) startBackfill(c *gin.Context) {
	var uri backfillTaskURI
	if err := c.ShouldBindUri(&uri); err != nil {
		validationErrorResponse(c, err)
		return
	}

	if !h.backfillRunning.CompareAndSwap(false, true) {
		errorResponse(c, http.StatusConflict, BackfillRunningCode)
		return
	}

	ctx := context.WithoutCancel(c.Request.Context())
	go func() {
		defer h.backfillRunning.Store(false)

		report, err := service.RunBackfillTask(ctx, h.services.Backfill, uri.Task)
		if err != nil {
			logger.Error("backfill task failed", zap.String("task", uri.Task), zap.Error(err))
			return
		}
		logger.Info("backfill task done",
			zap.String("task", uri.Task),
			zap.Int("scanned", report.Scanned),
			zap.Int("changed", report.Changed),
			zap.Int("failed", report.Failed),
		)
	}()

	c.JSON(http.StatusAccepted, backfillStartedResponse{Task: uri.Task, Status: "started"})
}
