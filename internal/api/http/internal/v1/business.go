package v1

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
	"github.com/vibe-gaming/geodirectory/internal/repository"
	"github.com/vibe-gaming/geodirectory/internal/service"
)

func (h *Handler) initBusinessesRoutes(api *gin.RouterGroup) {
	businesses := api.Group("/businesses")
	{
		businesses.GET("", h.getBusinessesList)
		businesses.GET("/count", h.getBusinessesCount)
		businesses.GET("/:id", h.getBusinessByID)

		businesses.POST("", h.adminIdentityMiddleware, h.createBusiness)
		businesses.PUT("/:id", h.adminIdentityMiddleware, h.updateBusiness)
		businesses.DELETE("/:id", h.adminIdentityMiddleware, h.deleteBusiness)
		businesses.PUT("/:id/regions", h.adminIdentityMiddleware, h.setBusinessRegions)
	}
}

type businessResponse struct {
	ID                        uuid.UUID     `json:"id"`
	Name                      string        `json:"name"`
	Description               string        `json:"description"`
	Addr1                     string        `json:"addr1"`
	City                      string        `json:"city"`
	State                     string        `json:"state"`
	Zip                       string        `json:"zip"`
	Phone                     string        `json:"phone"`
	Website                   string        `json:"website"`
	CategoryIDs               []string      `json:"category_ids"`
	CategoryTypeIDs           []string      `json:"category_type_ids"`
	CategorySubTypeIDs        []string      `json:"category_sub_type_ids"`
	CategoryDisplayValue      string        `json:"category_display_value"`
	Neighborhoods             []string      `json:"neighborhoods"`
	NeighborhoodsDisplayValue string        `json:"neighborhoods_display_value"`
	RegionIDs                 []uuid.UUID   `json:"region_ids"`
	Long                      *float64      `json:"long,omitempty"`
	Lat                       *float64      `json:"lat,omitempty"`
	Loc                       *geo.Geometry `json:"loc,omitempty"`
	Published                 bool          `json:"published"`
	Featured                  bool          `json:"featured"`
	CreatedAt                 time.Time     `json:"created_at"`
	UpdatedAt                 time.Time     `json:"updated_at"`
} // @name Business

type businessesListResponse struct {
	Businesses []businessResponse `json:"businesses"`
	Total      int64              `json:"total"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
}

func newBusinessResponse(b *domain.Business, classifications domain.Classifications) businessResponse {
	out := businessResponse{
		ID:                        b.ID,
		Name:                      b.Name,
		Description:               b.Description,
		Addr1:                     b.Addr1,
		City:                      b.City,
		State:                     b.State,
		Zip:                       b.Zip,
		Phone:                     b.Phone,
		Website:                   b.Website,
		CategoryIDs:               pruneCategories(b.CategoryIDs, classifications),
		CategoryTypeIDs:           pruneCategories(b.CategoryTypeIDs, classifications),
		CategorySubTypeIDs:        pruneCategories(b.CategorySubTypeIDs, classifications),
		CategoryDisplayValue:      classifications.DisplayValue(b),
		Neighborhoods:             nonNilStrings(b.Neighborhoods),
		NeighborhoodsDisplayValue: b.NeighborhoodsDisplayValue(),
		RegionIDs:                 b.RegionIDs,
		Published:                 b.Published,
		Featured:                  b.Featured,
		CreatedAt:                 b.CreatedAt,
		UpdatedAt:                 b.UpdatedAt,
	}
	if out.RegionIDs == nil {
		out.RegionIDs = []uuid.UUID{}
	}
	if p := b.Location(); p != nil {
		out.Long, out.Lat = b.Longitude, b.Latitude
		out.Loc = geo.NewPointGeometry(*p)
	}
	return out
}

// pruneCategories drops ids missing from the taxonomy. An empty taxonomy keeps everything.
func pruneCategories(ids []string, classifications domain.Classifications) []string {
	if len(classifications) == 0 {
		return nonNilStrings(ids)
	}
	return classifications.Valid(ids)
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

type businessListQuery struct {
	Page         int      `form:"page" binding:"omitempty,min=1"`
	Limit        int      `form:"limit" binding:"omitempty,min=1,max=250"`
	Categories   string   `form:"categories"`
	Search       string   `form:"search"`
	Name         string   `form:"name"`
	Neighborhood string   `form:"neighborhood"`
	City         string   `form:"city"`
	State        string   `form:"state"`
	RegionIDs    string   `form:"region_ids"`
	Featured     *bool    `form:"featured"`
	Published    *bool    `form:"published"`
	Lat          *float64 `form:"lat" binding:"omitempty,latitude"`
	Long         *float64 `form:"long" binding:"omitempty,longitude"`
	MaxDistance  float64  `form:"max_distance" binding:"omitempty,gt=0"`
	Portal       bool     `form:"portal"`
	SortBy       string   `form:"sort_by" binding:"omitempty,oneof=name created_at updated_at distance"`
	Order        string   `form:"order" binding:"omitempty,oneof=asc desc"`
}

// filters turns the query into repository filters. ok is false when a list value does not parse.
func (q *businessListQuery) filters() (*service.BusinessFilters, bool) {
	f := &service.BusinessFilters{
		Search:       strings.TrimSpace(q.Search),
		Name:         strings.TrimSpace(q.Name),
		Neighborhood: strings.TrimSpace(q.Neighborhood),
		City:         strings.TrimSpace(q.City),
		State:        strings.TrimSpace(q.State),
		Featured:     q.Featured,
		Published:    q.Published,
		Portal:       q.Portal,
		SortBy:       q.SortBy,
		Order:        q.Order,
	}

	for _, id := range splitList(q.Categories) {
		switch strings.Count(id, domain.CategoryIDSeparator) {
		case 0:
			f.CategoryIDs = append(f.CategoryIDs, id)
		case 1:
			f.CategoryTypeIDs = append(f.CategoryTypeIDs, id)
		case 2:
			f.CategorySubTypeIDs = append(f.CategorySubTypeIDs, id)
		default:
			return nil, false
		}
	}

	for _, raw := range splitList(q.RegionIDs) {
		id, err := uuid.Parse(raw)
		if err != nil {
			return nil, false
		}
		f.RegionIDs = append(f.RegionIDs, id)
	}

	switch {
	case q.Lat != nil && q.Long != nil:
		f.Near = &repository.NearFilter{
			Point:             geo.NewPoint(*q.Long, *q.Lat),
			MaxDistanceMeters: q.MaxDistance,
		}
	case q.Lat != nil || q.Long != nil:
		return nil, false
	}

	return f, true
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// @Summary Get Businesses List
// @Tags Businesses
// @Description Published businesses with pagination and filters.
// @Description
// @Description search uses MySQL full text search in boolean mode. Every word is matched as a prefix
// @Description unless the query already carries boolean operators (+ - * ~ " ( ) < >).
// @Description With lat/long results are ordered by distance and a page holds at most 250 businesses.
// @Description Without portal, businesses missing a name, location, city, state or categories are left out.
// @ModuleID getBusinessesList
// @Accept  json
// @Produce  json
// @Param page query int false "Page (default 1)"
// @Param limit query int false "Page size (default 20)"
// @Param categories query string false "Comma separated category ids: cat, cat:type or cat:type:sub"
// @Param search query string false "Full text search"
// @Param name query string false "Name substring"
// @Param neighborhood query string false "Neighborhood name"
// @Param city query string false "City"
// @Param state query string false "State"
// @Param region_ids query string false "Comma separated region ids, any of"
// @Param featured query boolean false "Featured only"
// @Param published query boolean false "Published flag (default true)"
// @Param lat query number false "Latitude"
// @Param long query number false "Longitude"
// @Param max_distance query number false "Meters from lat/long"
// @Param portal query boolean false "Include incomplete businesses"
// @Param sort_by query string false "name, created_at, updated_at or distance"
// @Param order query string false "asc or desc"
// @Success 200 {object} businessesListResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /businesses [get]
func (h *Handler) getBusinessesList(c *gin.Context) {
	var q businessListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationErrorResponse(c, err)
		return
	}

	filters, ok := q.filters()
	if !ok {
		errorResponse(c, http.StatusBadRequest, InvalidInputCode)
		return
	}

	page, limit := q.Page, q.Limit
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = service.DefaultPageSize
	}
	if filters.Near != nil && h.config.Geo.MaxGeoPageSize > 0 && limit > h.config.Geo.MaxGeoPageSize {
		limit = h.config.Geo.MaxGeoPageSize
	}

	ctx := c.Request.Context()
	businesses, total, err := h.services.Businesses.GetAll(ctx, page, limit, filters)
	if err != nil {
		serviceErrorResponse(c, err, "get businesses failed")
		return
	}

	classifications, err := h.services.Classifications.GetMap(ctx)
	if err != nil {
		serviceErrorResponse(c, err, "get classifications failed")
		return
	}

	response := businessesListResponse{
		Businesses: make([]businessResponse, len(businesses)),
		Total:      total,
		Page:       page,
		Limit:      limit,
	}
	for i, b := range businesses {
		response.Businesses[i] = newBusinessResponse(b, classifications)
	}

	c.JSON(http.StatusOK, response)
}

type countResponse struct {
	Count int64 `json:"count"`
}

// @Summary Count Businesses
// @Tags Businesses
// @Description Number of businesses matching the same filters as the list
// @ModuleID getBusinessesCount
// @Accept  json
// @Produce  json
// @Param categories query string false "Comma separated category ids"
// @Param search query string false "Full text search"
// @Param neighborhood query string false "Neighborhood name"
// @Param city query string false "City"
// @Param state query string false "State"
// @Param region_ids query string false "Comma separated region ids, any of"
// @Param portal query boolean false "Include incomplete businesses"
// @Success 200 {object} countResponse
// @Failure 400 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /businesses/count [get]
func (h *Handler) getBusinessesCount(c *gin.Context) {
	var q businessListQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		validationErrorResponse(c, err)
		return
	}

	filters, ok := q.filters()
	if !ok {
		errorResponse(c, http.StatusBadRequest, InvalidInputCode)
		return
	}

	count, err := h.services.Businesses.Count(c.Request.Context(), filters)
	if err != nil {
		serviceErrorResponse(c, err, "count businesses failed")
		return
	}

	c.JSON(http.StatusOK, countResponse{Count: count})
}

// @Summary Get Business
// @Tags Businesses
// @Description Get a business by id
// @ModuleID getBusinessByID
// @Accept  json
// @Produce  json
// @Param id path string true "Business id"
// @Success 200 {object} businessResponse
// @Failure 400 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /businesses/{id} [get]
func (h *Handler) getBusinessByID(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	business, err := h.services.Businesses.GetByID(c.Request.Context(), id)
	if err != nil {
		serviceErrorResponse(c, err, "get business failed")
		return
	}

	h.businessResponse(c, http.StatusOK, business)
}

type businessRequest struct {
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Addr1       string   `json:"addr1"`
	City        string   `json:"city"`
	State       string   `json:"state"`
	Zip         string   `json:"zip"`
	Phone       string   `json:"phone"`
	Website     string   `json:"website"`
	Categories  []string `json:"categories" binding:"omitempty,dive,categoryid"`
	Lat         *float64 `json:"lat" binding:"omitempty,latitude"`
	Long        *float64 `json:"long" binding:"omitempty,longitude"`
	Published   bool     `json:"published"`
	Featured    bool     `json:"featured"`
}

func (r *businessRequest) input() (service.BusinessInput, bool) {
	in := service.BusinessInput{
		Name:        r.Name,
		Description: r.Description,
		Addr1:       r.Addr1,
		City:        r.City,
		State:       r.State,
		Zip:         r.Zip,
		Phone:       r.Phone,
		Website:     r.Website,
		Categories:  r.Categories,
		Published:   r.Published,
		Featured:    r.Featured,
	}
	if (r.Lat == nil) != (r.Long == nil) {
		return in, false
	}
	if r.Lat != nil {
		p := geo.NewPoint(*r.Long, *r.Lat)
		in.Location = &p
	}
	return in, true
}

// @Summary Create Business
// @Security AdminAuth
// @Tags Businesses
// @Description Creates a business. Its regions are resolved from lat/long; a business outside every region is pending.
// @ModuleID createBusiness
// @Accept  json
// @Produce  json
// @Param input body businessRequest true "Business"
// @Success 201 {object} businessResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /businesses [post]
func (h *Handler) createBusiness(c *gin.Context) {
	var req businessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	input, ok := req.input()
	if !ok {
		errorResponse(c, http.StatusBadRequest, InvalidInputCode)
		return
	}

	business, err := h.services.Businesses.Create(c.Request.Context(), input)
	if err != nil {
		serviceErrorResponse(c, err, "create business failed")
		return
	}

	h.businessResponse(c, http.StatusCreated, business)
}

// @Summary Update Business
// @Security AdminAuth
// @Tags Businesses
// @Description Replaces the business fields. Regions are resolved again when the location changes.
// @ModuleID updateBusiness
// @Accept  json
// @Produce  json
// @Param id path string true "Business id"
// @Param input body businessRequest true "Business"
// @Success 200 {object} businessResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /businesses/{id} [put]
func (h *Handler) updateBusiness(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req businessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	input, ok := req.input()
	if !ok {
		errorResponse(c, http.StatusBadRequest, InvalidInputCode)
		return
	}

	business, err := h.services.Businesses.Update(c.Request.Context(), id, input)
	if err != nil {
		serviceErrorResponse(c, err, "update business failed")
		return
	}

	h.businessResponse(c, http.StatusOK, business)
}

// @Summary Delete Business
// @Security AdminAuth
// @Tags Businesses
// @Description Delete a business
// @ModuleID deleteBusiness
// @Param id path string true "Business id"
// @Success 204
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /businesses/{id} [delete]
func (h *Handler) deleteBusiness(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	if err := h.services.Businesses.Delete(c.Request.Context(), id); err != nil {
		serviceErrorResponse(c, err, "delete business failed")
		return
	}

	c.Status(http.StatusNoContent)
}

type businessRegionsRequest struct {
	RegionIDs []uuid.UUID `json:"region_ids"`
}

// @Summary Set Business Regions
// @Security AdminAuth
// @Tags Businesses
// @Description Overrides the resolved regions. Every id must exist. An empty list makes the business pending.
// @ModuleID setBusinessRegions
// @Accept  json
// @Produce  json
// @Param id path string true "Business id"
// @Param input body businessRegionsRequest true "Region ids"
// @Success 200 {object} businessResponse
// @Failure 400 {object} ErrorStruct
// @Failure 401 {object} ErrorStruct
// @Failure 404 {object} ErrorStruct
// @Failure 500 {object} ErrorStruct
// @Router /businesses/{id}/regions [put]
func (h *Handler) setBusinessRegions(c *gin.Context) {
	id, ok := parseIDParam(c)
	if !ok {
		return
	}

	var req businessRegionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		validationErrorResponse(c, err)
		return
	}

	business, err := h.services.Businesses.SetRegions(c.Request.Context(), id, req.RegionIDs)
	if err != nil {
		serviceErrorResponse(c, err, "set business regions failed")
		return
	}

	h.businessResponse(c, http.StatusOK, business)
}

func (h *Handler) businessResponse(c *gin.Context, status int, business *domain.Business) {
	classifications, err := h.services.Classifications.GetMap(c.Request.Context())
	if err != nil {
		serviceErrorResponse(c, err, "get classifications failed")
		return
	}

	c.JSON(status, newBusinessResponse(business, classifications))
}
