package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibe-gaming/geodirectory/internal/geo"
)

func (h *Handler) initGeoRoutes(api *gin.RouterGroup) {
	api.GET("/geo/resolve", h.resolveLocation)
}

type resolveQuery struct {
	Lat  *float64 `form:"lat" binding:"required,latitude"`
	Long *float64 `form:"long" binding:"required,longitude"`
}

// @Summary Resolve Location
// @Tags Geo
// @Description The regions a business at lat/long would be assigned to, finest first.
// @Description A point outside every region resolves to the pending region.
// @ModuleID resolveLocation
// @Accept  json
// @Produce  json
// @Param lat query number true "Latitude"
// @Param long query number true "Longitude"
// @Success 200 {object} domain.RegionAssignment
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /geo/resolve [get]
func (h *Handler) resolveLocation(c *gin.Context) {
	var q resolveQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationErrorResponse(c, err)
		return
	}

	p := geo.NewPoint(*q.Long, *q.Lat)
	assignment, err := h.services.GeoAssignment.Resolve(c.Request.Context(), &p)
	if err != nil {
		serviceErrorResponse(c, err, "resolve location failed")
		return
	}

	c.JSON(http.StatusOK, assignment)
}
