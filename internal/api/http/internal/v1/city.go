package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
)

func (h *Handler) initCitiesRoutes(api *gin.RouterGroup) {
	cities := api.Group("/cities")
	{
		cities.GET("", h.getCities)
		cities.GET("/lookup", h.lookupCity)
		cities.PUT("/:id/location", h.adminIdentityMiddleware, h.updateCityLocation)
	}
}

type cityListQuery struct {
	Lat         *float64 `form:"lat" binding:"omitempty,latitude"`
	Long        *float64 `form:"long" binding:"omitempty,longitude"`
	MaxDistance float64  `form:"max_distance" binding:"omitempty,gt=0"`
}

// @Summary Get Cities
// @Tags Cities
// @Description Cities within max_distance meters of lat/long, nearest first. Without a point every city is returned by name.
// @ModuleID getCities
// @Accept  json
// @Produce  json
// @Param lat query number false "Latitude"
// @Param long query number false "Longitude"
// @Param max_distance query number false "Meters, default 50000, at most 100000"
// @Success 200 {array} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /cities [get]
func (h *Handler) getCities(c *gin.Context) {
	var q cityListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationErrorResponse(c, err)
		return
	}

	var (
		cities []domain.Region
		err    error
	)
	switch {
	case q.Lat != nil && q.Long != nil:
		cities, err = h.services.Regions.FindNearestCities(c.Request.Context(), geo.NewPoint(*q.Long, *q.Lat), q.MaxDistance)
	case q.Lat != nil || q.Long != nil:
		errorResponse(c, http.StatusBadRequest, InvalidInputCode)
		return
	default:
		cities, err = h.services.Regions.GetCities(c.Request.Context())
	}
	if err != nil {
		serviceErrorResponse(c, err, "get cities failed")
		return
	}

	c.JSON(http.StatusOK, newRegionListResponse(cities, false))
}

type cityLookupQuery struct {
	City  string `form:"city" binding:"required"`
	State string `form:"state" binding:"required"`
}

// @Summary Lookup City
// @Tags Cities
// @Description Get the city region by city and state
// @ModuleID lookupCity
// @Accept  json
// @Produce  json
// @Param city query string true "City"
// @Param state query string true "State"
// @Success 200 {object} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /cities/lookup [get]
func (h *Handler) lookupCity(c *gin.Context) {
	var q cityLookupQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationErrorResponse(c, err)
		return
	}

	city, err := h.services.Regions.GetCity(c.Request.Context(), q.City, q.State)
	if err != nil {
		serviceErrorResponse(c, err, "lookup city failed")
		return
	}

	c.JSON(http.StatusOK, newRegionResponse(city, false))
}

type cityLocationRequest struct {
	Lat  *float64 `json:"lat" binding:"omitempty,latitude"`
	Long *float64 `json:"long" binding:"omitempty,longitude"`
}

// @Summary Update City Location
// @Security AdminAuth
// @Tags Cities
// @Description Sets the city to a point. Omitting both lat and long clears it.
// @ModuleID updateCityLocation
// @Accept  json
// @Produce  json
// @Param id path string true "City region id"
// @Param input body cityLocationRequest true "Location"
// @Success 200 {object} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /cities/{id}/location [put]
func (h *Handler) updateCityLocation(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req cityLocationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}
	if (req.Lat == nil) != (req.Long == nil) {
		errorResponse(c, http.StatusBadRequest, InvalidInputCode)
		return
	}

	var p *geo.Point
	if req.Lat != nil {
		point := geo.NewPoint(*req.Long, *req.Lat)
		p = &point
	}

	city, err := h.services.Regions.UpdateCityLocation(c.Request.Context(), id, p)
	if err != nil {
		serviceErrorResponse(c, err, "update city location failed")
		return
	}

	c.JSON(http.StatusOK, newRegionResponse(city, false))
}
