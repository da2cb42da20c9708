package repository

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/vibe-gaming/geodirectory/internal/geo"
)

const (
	SortByName      = "name"
	SortByCreatedAt = "created_at"
	SortByUpdatedAt = "updated_at"
	SortByDistance  = "distance"
)

type NearFilter struct {
	Point             geo.Point
	MaxDistanceMeters float64
}

type BusinessFilters struct {
	CategoryIDs        []string // "cat"
	CategoryTypeIDs    []string // "cat:type"
	CategorySubTypeIDs []string // "cat:type:sub"
	Search             string   // full text, boolean mode expression
	Name               string   // substring of name
	Neighborhood       string
	City               string
	State              string
	RegionIDs          []uuid.UUID // any of
	Featured           *bool
	Published          *bool // nil means published only
	IncludeUnpublished bool
	Near               *NearFilter
	Portal             bool // portal listings may show incomplete records
	SortBy             string
	Order              string
}

const distanceExpr = `ST_Distance_Sphere(POINT(b.longitude, b.latitude), POINT(?, ?))`

func (f *BusinessFilters) where() (string, []interface{}) {
	if f == nil {
		f = &BusinessFilters{}
	}

	var conds []string
	var args []interface{}

	switch {
	case f.IncludeUnpublished:
	case f.Published != nil:
		conds = append(conds, `b.published = ?`)
		args = append(args, *f.Published)
	default:
		conds = append(conds, `b.published = 1`)
	}

	if f.Featured != nil {
		conds = append(conds, `b.featured = ?`)
		args = append(args, *f.Featured)
	}

	for _, group := range []struct {
		column string
		ids    []string
	}{
		{"b.category_ids", f.CategoryIDs},
		{"b.category_type_ids", f.CategoryTypeIDs},
		{"b.category_sub_type_ids", f.CategorySubTypeIDs},
		{"b.neighborhoods", nonEmpty(f.Neighborhood)},
	} {
		if cond, condArgs := jsonContainsAny(group.column, group.ids); cond != "" {
			conds = append(conds, cond)
			args = append(args, condArgs...)
		}
	}

	if len(f.RegionIDs) > 0 {
		ids := make([]string, len(f.RegionIDs))
		for i, id := range f.RegionIDs {
			ids[i] = id.String()
		}
		cond, condArgs := jsonContainsAny("b.region_ids", ids)
		conds = append(conds, cond)
		args = append(args, condArgs...)
	}

	if f.City != "" {
		conds = append(conds, `b.city = ?`)
		args = append(args, f.City)
	}
	if f.State != "" {
		conds = append(conds, `b.state = ?`)
		args = append(args, f.State)
	}
	if f.Name != "" {
		conds = append(conds, `b.name LIKE ?`)
		args = append(args, "%"+escapeLike(f.Name)+"%")
	}
	if f.Search != "" {
		conds = append(conds, `MATCH(b.name, b.description) AGAINST(? IN BOOLEAN MODE)`)
		args = append(args, f.Search)
	}

	if f.Near != nil {
		bound := geo.BoundAround(f.Near.Point, f.Near.MaxDistanceMeters)
		conds = append(conds,
			`b.latitude BETWEEN ? AND ?`,
			`b.longitude BETWEEN ? AND ?`,
			distanceExpr+` <= ?`,
		)
		args = append(args,
			bound.MinLat, bound.MaxLat,
			bound.MinLon, bound.MaxLon,
			f.Near.Point.Lon, f.Near.Point.Lat, f.Near.MaxDistanceMeters,
		)
	}

	if !f.Portal {
		conds = append(conds,
			`b.name <> ''`,
			`b.longitude IS NOT NULL`,
			`b.latitude IS NOT NULL`,
			`b.city <> ''`,
			`b.state <> ''`,
			`JSON_LENGTH(b.category_ids) > 0`,
		)
	}

	if len(conds) == 0 {
		return "", nil
	}
	return `
		WHERE ` + strings.Join(conds, `
			AND `), args
}

func (f *BusinessFilters) orderBy() (string, []interface{}) {
	if f == nil {
		f = &BusinessFilters{}
	}

	dir := "ASC"
	if strings.EqualFold(f.Order, "desc") {
		dir = "DESC"
	}

	switch {
	case f.SortBy == SortByCreatedAt:
		return fmt.Sprintf(`
		ORDER BY b.created_at %s, b.id ASC`, dir), nil
	case f.SortBy == SortByUpdatedAt:
		return fmt.Sprintf(`
		ORDER BY b.updated_at %s, b.id ASC`, dir), nil
	case f.Near != nil && (f.SortBy == SortByDistance || f.SortBy == ""):
		return fmt.Sprintf(`
		ORDER BY %s %s, b.id ASC`, distanceExpr, dir), []interface{}{f.Near.Point.Lon, f.Near.Point.Lat}
	default:
		return fmt.Sprintf(`
		ORDER BY b.name %s, b.id ASC`, dir), nil
	}
}

func jsonContainsAny(column string, values []string) (string, []interface{}) {
	if len(values) == 0 {
		return "", nil
	}
	parts := make([]string, len(values))
	args := make([]interface{}, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf(`JSON_CONTAINS(%s, JSON_QUOTE(?))`, column)
		args[i] = v
	}
	if len(parts) == 1 {
		return parts[0], args
	}
	return `(` + strings.Join(parts, ` OR `) + `)`, args
}

func nonEmpty(s string) []string {
	if s == "" {
		return nil
	}
	return []string{s}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
