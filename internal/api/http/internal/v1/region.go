package v1

import (
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
	"github.com/vibe-gaming/geodirectory/internal/service"
)

func (h *Handler) initRegionsRoutes(api *gin.RouterGroup) {
	regions := api.Group("/regions")
	{
		regions.GET("", h.getRegions)
		regions.GET("/:id", h.getRegionByID)
		regions.GET("/:id/children", h.getRegionChildren)

		regions.POST("", h.adminIdentityMiddleware, h.createRegion)
		regions.DELETE("/:id", h.adminIdentityMiddleware, h.deleteRegion)
		regions.PUT("/:id/geometry", h.adminIdentityMiddleware, h.updateRegionGeometry)
		regions.POST("/:id/poi-count", h.adminIdentityMiddleware, h.recomputeRegionPOICount)
	}
}

type regionResponse struct {
	ID          uuid.UUID         `json:"id"`
	Name        string            `json:"name"`
	DisplayName string            `json:"display_name"`
	City        string            `json:"city"`
	State       string            `json:"state"`
	Level       int               `json:"level"`
	ParentID    *uuid.UUID        `json:"parent_id,omitempty"`
	POICount    int               `json:"poi_count"`
	Long        *float64          `json:"long,omitempty"`
	Lat         *float64          `json:"lat,omitempty"`
	CenterLong  *float64          `json:"center_long,omitempty"`
	CenterLat   *float64          `json:"center_lat,omitempty"`
	Geometry    *geo.Geometry     `json:"geometry,omitempty"`
	Children    []*regionResponse `json:"children,omitempty"`
} // @name Region

func newRegionResponse(r *domain.Region, withGeometry bool) *regionResponse {
	out := &regionResponse{
		ID:          r.ID,
		Name:        r.Name,
		DisplayName: r.Label(),
		City:        r.City,
		State:       r.State,
		Level:       r.Level,
		POICount:    r.POICount,
		CenterLong:  r.CenterLon,
		CenterLat:   r.CenterLat,
	}
	if r.ParentID.Valid {
		parentID := r.ParentID.UUID
		out.ParentID = &parentID
	}
	if p, ok := r.Geometry.Point(); ok {
		out.Long, out.Lat = &p.Lon, &p.Lat
	}
	if withGeometry {
		out.Geometry = r.Geometry
	}
	return out
}

func newRegionListResponse(regions []domain.Region, withGeometry bool) []*regionResponse {
	out := make([]*regionResponse, len(regions))
	for i := range regions {
		out[i] = newRegionResponse(&regions[i], withGeometry)
	}
	return out
}

func newRegionTreeResponse(nodes []*domain.RegionNode, withGeometry bool) []*regionResponse {
	out := make([]*regionResponse, len(nodes))
	for i, n := range nodes {
		out[i] = newRegionResponse(&n.Region, withGeometry)
		if len(n.Children) > 0 {
			out[i].Children = newRegionTreeResponse(n.Children, withGeometry)
		}
	}
	return out
}

type regionListQuery struct {
	Lat            *float64 `form:"lat" binding:"omitempty,latitude"`
	Long           *float64 `form:"long" binding:"omitempty,longitude"`
	City           string   `form:"city" binding:"required_with=State"`
	State          string   `form:"state" binding:"required_with=City"`
	Recursive      bool     `form:"recursive"`
	Tree           bool     `form:"tree"`
	FlattenAtDepth int      `form:"flatten_at_depth" binding:"omitempty,min=1"`
	Geo            bool     `form:"geo"`
	Portal         bool     `form:"portal"`
}

func (q *regionListQuery) point() (*geo.Point, bool) {
	if q.Lat == nil || q.Long == nil {
		return nil, q.Lat != nil || q.Long != nil
	}
	p := geo.NewPoint(*q.Long, *q.Lat)
	return &p, true
}

// @Summary List Regions
// @Tags Regions
// @Description Regions containing a point (lat/long, finest first), the regions under a city
// @Description (city/state), or every region when neither is given. Unless portal is set regions
// @Description without published businesses are left out.
// @Description
// @Description tree nests the result. flatten_at_depth limits the nesting: every region deeper than
// @Description that level is listed as a sibling on the last level instead of being dropped.
// @ModuleID getRegions
// @Accept  json
// @Produce  json
// @Param lat query number false "Latitude"
// @Param long query number false "Longitude"
// @Param city query string false "City name, requires state"
// @Param state query string false "State, requires city"
// @Param recursive query boolean false "Include every level below the city (not with lat/long)"
// @Param tree query boolean false "Nest the result"
// @Param flatten_at_depth query int false "Tree depth (default 100)"
// @Param geo query boolean false "Include geometry"
// @Param portal query boolean false "Keep regions without businesses"
// @Success 200 {array} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /regions [get]
func (h *Handler) getRegions(c *gin.Context) {
	var q regionListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationErrorResponse(c, err)
		return
	}

	p, hasPoint := q.point()
	if hasPoint && p == nil {
		errorResponse(c, http.StatusBadRequest, InvalidInputCode)
		return
	}
	if hasPoint && q.City != "" {
		errorResponse(c, http.StatusBadRequest, PointAndCityStateCode)
		return
	}

	ctx := c.Request.Context()

	if hasPoint {
		if q.Recursive {
			errorResponse(c, http.StatusBadRequest, RecursiveWithPointCode)
			return
		}
		regions, err := h.services.Regions.FindContaining(ctx, *p)
		if err != nil {
			serviceErrorResponse(c, err, "find containing regions failed")
			return
		}
		c.JSON(http.StatusOK, newRegionListResponse(withPOIs(regions, q.Portal), q.Geo))
		return
	}

	var (
		regions []domain.Region
		err     error
	)
	if q.City != "" {
		regions, err = h.services.Regions.FindByCityState(ctx, q.City, q.State, q.Recursive)
	} else {
		regions, err = h.services.Regions.GetAll(ctx)
	}
	if err != nil {
		serviceErrorResponse(c, err, "get regions failed")
		return
	}

	h.regionsResponse(c, withPOIs(regions, q.Portal), nil, q.Tree, q.FlattenAtDepth, q.Geo)
}

// @Summary Get Region
// @Tags Regions
// @Description Get a region by id
// @ModuleID getRegionByID
// @Accept  json
// @Produce  json
// @Param id path string true "Region id"
// @Param geo query boolean false "Include geometry"
// @Success 200 {object} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /regions/{id} [get]
func (h *Handler) getRegionByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	region, err := h.services.Regions.GetByID(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err, "get region failed")
		return
	}

	c.JSON(http.StatusOK, newRegionResponse(region, c.Query("geo") == "true"))
}

type regionChildrenQuery struct {
	Recursive      bool `form:"recursive"`
	Tree           bool `form:"tree"`
	FlattenAtDepth int  `form:"flatten_at_depth" binding:"omitempty,min=1"`
	Geo            bool `form:"geo"`
	Portal         bool `form:"portal"`
}

// @Summary Get Region Children
// @Tags Regions
// @Description Direct children of a region, or every descendant with recursive
// @ModuleID getRegionChildren
// @Accept  json
// @Produce  json
// @Param id path string true "Region id"
// @Param recursive query boolean false "Include every level below"
// @Param tree query boolean false "Nest the result"
// @Param flatten_at_depth query int false "Tree depth (default 100)"
// @Param geo query boolean false "Include geometry"
// @Param portal query boolean false "Keep regions without businesses"
// @Success 200 {array} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /regions/{id}/children [get]
func (h *Handler) getRegionChildren(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var q regionChildrenQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationErrorResponse(c, err)
		return
	}

	ctx := c.Request.Context()
	if _, err := h.services.Regions.GetByID(ctx, id); err != nil {
		serviceErrorResponse(c, err, "get region failed")
		return
	}

	var (
		regions []domain.Region
		err     error
	)
	if q.Recursive {
		regions, err = h.services.Regions.FindDescendants(ctx, []uuid.UUID{id})
	} else {
		regions, err = h.services.Regions.FindChildren(ctx, id)
	}
	if err != nil {
		serviceErrorResponse(c, err, "get region children failed")
		return
	}

	h.regionsResponse(c, withPOIs(regions, q.Portal), &id, q.Tree, q.FlattenAtDepth, q.Geo)
}

func (h *Handler) regionsResponse(c *gin.Context, regions []domain.Region, parentID *uuid.UUID, tree bool, depth int, withGeometry bool) {
	if tree {
		if depth <= 0 {
			depth = h.config.Geo.TreeMaxDepth
		}
		c.JSON(http.StatusOK, newRegionTreeResponse(service.BuildRegionTree(regions, parentID, depth), withGeometry))
		return
	}

	sortRegionsByName(regions)
	c.JSON(http.StatusOK, newRegionListResponse(regions, withGeometry))
}

type createRegionRequest struct {
	Name        string        `json:"name" binding:"required"`
	DisplayName string        `json:"display_name"`
	City        string        `json:"city" binding:"required"`
	State       string        `json:"state" binding:"required"`
	Level       int           `json:"level" binding:"min=0"`
	ParentID    *uuid.UUID    `json:"parent_id"`
	Geometry    *geo.Geometry `json:"geometry"`
}

// @Summary Create Region
// @Security AdminAuth
// @Tags Regions
// @Description A city (level 0) has no parent and is named after its city. Every other level needs a parent.
// @ModuleID createRegion
// @Accept  json
// @Produce  json
// @Param input body createRegionRequest true "Region"
// @Success 201 {object} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /regions [post]
func (h *Handler) createRegion(c *gin.Context) {
	var req createRegionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	region, err := h.services.Regions.Create(c.Request.Context(), service.CreateRegionInput{
		Name:        req.Name,
		DisplayName: req.DisplayName,
		City:        req.City,
		State:       req.State,
		Level:       req.Level,
		ParentID:    req.ParentID,
		Geometry:    req.Geometry,
	})
	if err != nil {
		serviceErrorResponse(c, err, "create region failed")
		return
	}

	c.JSON(http.StatusCreated, newRegionResponse(region, true))
}

// @Summary Delete Region
// @Security AdminAuth
// @Tags Regions
// @Description Deletes a region. A region with children is only deleted with recursive=true, together with every descendant.
// @ModuleID deleteRegion
// @Param id path string true "Region id"
// @Param recursive query boolean false "Delete descendants too"
// @Success 204
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 409 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /regions/{id} [delete]
func (h *Handler) deleteRegion(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Regions.Delete(c.Request.Context(), id, c.Query("recursive") == "true"); err != nil {
		serviceErrorResponse(c, err, "delete region failed")
		return
	}

	c.Status(http.StatusNoContent)
}

type updateGeometryRequest struct {
	Geometry *geo.Geometry `json:"geometry"`
}

// @Summary Update Region Geometry
// @Security AdminAuth
// @Tags Regions
// @Description Replaces the region geometry and its derived bounds. A null geometry clears both.
// @ModuleID updateRegionGeometry
// @Accept  json
// @Produce  json
// @Param id path string true "Region id"
// @Param input body updateGeometryRequest true "GeoJSON geometry"
// @Success 200 {object} regionResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /regions/{id}/geometry [put]
func (h *Handler) updateRegionGeometry(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req updateGeometryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	region, err := h.services.Regions.UpdateGeometry(c.Request.Context(), id, req.Geometry)
	if err != nil {
		serviceErrorResponse(c, err, "update region geometry failed")
		return
	}

	c.JSON(http.StatusOK, newRegionResponse(region, true))
}

type poiCountResponse struct {
	RegionID uuid.UUID `json:"region_id"`
	POICount int       `json:"poi_count"`
}

// @Summary Recompute Region POI Count
// @Security AdminAuth
// @Tags Regions
// @Description Counts the published businesses assigned to the region and stores the result
// @ModuleID recomputeRegionPOICount
// @Produce  json
// @Param id path string true "Region id"
// @Success 200 {object} poiCountResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /regions/{id}/poi-count [post]
func (h *Handler) recomputeRegionPOICount(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	count, err := h.services.POICounts.RecomputeCount(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err, "recompute poi count failed")
		return
	}

	c.JSON(http.StatusOK, poiCountResponse{RegionID: id, POICount: count})
}

func parseIDParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, &ErrorStruct{
			ErrorCode:    InvalidInputCode,
			ErrorMessage: "id must be a uuid",
		})
		return uuid.Nil, false
	}
	return id, true
}

// withPOIs drops regions without published businesses unless portal is set.
func withPOIs(regions []domain.Region, portal bool) []domain.Region {
	if portal {
		return regions
	}
	out := make([]domain.Region, 0, len(regions))
	for _, r := range regions {
		if r.POICount >= 1 {
			out = append(out, r)
		}
	}
	return out
}

func sortRegionsByName(regions []domain.Region) {
	sort.SliceStable(regions, func(i, j int) bool {
		if regions[i].Name != regions[j].Name {
			return regions[i].Name < regions[j].Name
		}
		return regions[i].ID.String() < regions[j].ID.String()
	})
}
