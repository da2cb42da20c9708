package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vibe-gaming/geodirectory/internal/db"
	"github.com/vibe-gaming/geodirectory/internal/domain"
	"github.com/vibe-gaming/geodirectory/internal/geo"
)

const regionColumns = `
	bin_to_uuid(id) AS id,
	name,
	display_name,
	city,
	state,
	level,
	bin_to_uuid(parent_id) AS parent_id,
	geometry,
	poi_count,
	min_lat,
	max_lat,
	min_lon,
	max_lon,
	center_lat,
	center_lon,
	created_at,
	updated_at`

type regionRepository struct {
	db *sqlx.DB
}

func newRegionRepository(db *sqlx.DB) *regionRepository {
	return &regionRepository{
		db: db,
	}
}

func (r *regionRepository) Create(ctx context.Context, region *domain.Region) error {
	const query = `
	INSERT INTO region (id, name, display_name, city, state, level, parent_id, geometry, poi_count, min_lat, max_lat, min_lon, max_lon, center_lat, center_lon)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?, uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, query,
		region.ID, region.Name, region.DisplayName, region.City, region.State, region.Level, region.ParentID,
		region.Geometry, region.POICount,
		region.MinLat, region.MaxLat, region.MinLon, region.MaxLon, region.CenterLat, region.CenterLon,
	)
	if err != nil {
		if db.IsDuplicateEntry(err) {
			return domain.ErrDuplicateEntry
		}
		return fmt.Errorf("db insert region: %w", err)
	}
	return nil
}

func (r *regionRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Region, error) {
	const query = `SELECT ` + regionColumns + ` FROM region WHERE id = uuid_to_bin(?);`

	var region domain.Region
	if err := r.db.GetContext(ctx, &region, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from region by id failed: %w", err)
	}
	return &region, nil
}

func (r *regionRepository) GetAll(ctx context.Context) ([]domain.Region, error) {
	const query = `SELECT ` + regionColumns + ` FROM region WHERE level >= 0 ORDER BY level ASC, name ASC;`

	var regions []domain.Region
	if err := r.db.SelectContext(ctx, &regions, query); err != nil {
		return nil, fmt.Errorf("select all regions failed: %w", err)
	}
	return regions, nil
}

func (r *regionRepository) GetByParentIDs(ctx context.Context, parentIDs []uuid.UUID) ([]domain.Region, error) {
	if len(parentIDs) == 0 {
		return []domain.Region{}, nil
	}

	query, args, err := sqlx.In(`SELECT `+regionColumns+` FROM region WHERE parent_id IN (?) AND level >= 0 ORDER BY name ASC, id ASC;`, uuidBytes(parentIDs))
	if err != nil {
		return nil, fmt.Errorf("build select regions by parent ids: %w", err)
	}

	var regions []domain.Region
	if err := r.db.SelectContext(ctx, &regions, r.db.Rebind(query), args...); err != nil {
		return nil, fmt.Errorf("select regions by parent ids failed: %w", err)
	}
	return regions, nil
}

func (r *regionRepository) GetByNameAndParent(ctx context.Context, name string, parentID uuid.NullUUID) (*domain.Region, error) {
	const query = `SELECT ` + regionColumns + ` FROM region WHERE name = ? AND parent_id <=> uuid_to_bin(?) LIMIT 1;`

	var region domain.Region
	if err := r.db.GetContext(ctx, &region, query, name, parentID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select region by name and parent failed: %w", err)
	}
	return &region, nil
}

func (r *regionRepository) GetCities(ctx context.Context) ([]domain.Region, error) {
	const query = `SELECT ` + regionColumns + ` FROM region WHERE level = 0 ORDER BY name ASC, id ASC;`

	var regions []domain.Region
	if err := r.db.SelectContext(ctx, &regions, query); err != nil {
		return nil, fmt.Errorf("select cities failed: %w", err)
	}
	return regions, nil
}

func (r *regionRepository) GetCity(ctx context.Context, city, state string) (*domain.Region, error) {
	const query = `SELECT ` + regionColumns + ` FROM region WHERE level = 0 AND city = ? AND state = ? LIMIT 1;`

	var region domain.Region
	if err := r.db.GetContext(ctx, &region, query, city, state); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select city by city and state failed: %w", err)
	}
	return &region, nil
}

func (r *regionRepository) GetIntersecting(ctx context.Context, b geo.Bound, level *int) ([]domain.Region, error) {
	query := `SELECT ` + regionColumns + `
		FROM region
		WHERE geometry IS NOT NULL
			AND level >= 0
			AND min_lat <= ? AND max_lat >= ?
			AND min_lon <= ? AND max_lon >= ?`
	args := []interface{}{b.MaxLat, b.MinLat, b.MaxLon, b.MinLon}

	if level != nil {
		query += ` AND level = ?`
		args = append(args, *level)
	}

	var regions []domain.Region
	if err := r.db.SelectContext(ctx, &regions, query, args...); err != nil {
		return nil, fmt.Errorf("select regions intersecting bound failed: %w", err)
	}
	return regions, nil
}

func (r *regionRepository) CountChildren(ctx context.Context, id uuid.UUID) (int, error) {
	const query = `SELECT COUNT(*) FROM region WHERE parent_id = uuid_to_bin(?);`

	var count int
	if err := r.db.GetContext(ctx, &count, query, id); err != nil {
		return 0, fmt.Errorf("count region children failed: %w", err)
	}
	return count, nil
}

func (r *regionRepository) UpdateGeometry(ctx context.Context, id uuid.UUID, g *geo.Geometry, bounds domain.RegionBounds) error {
	const query = `
		UPDATE region
		SET
			geometry = ?,
			min_lat = ?,
			max_lat = ?,
			min_lon = ?,
			max_lon = ?,
			center_lat = ?,
			center_lon = ?
		WHERE id = uuid_to_bin(?)
	`
	res, err := r.db.ExecContext(ctx, query, g,
		bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon, bounds.CenterLat, bounds.CenterLon, id)
	if err != nil {
		return fmt.Errorf("db update region geometry: %w", err)
	}
	return expectAffected(res)
}

func (r *regionRepository) UpdateBounds(ctx context.Context, id uuid.UUID, bounds domain.RegionBounds) error {
	const query = `
		UPDATE region
		SET
			min_lat = ?,
			max_lat = ?,
			min_lon = ?,
			max_lon = ?,
			center_lat = ?,
			center_lon = ?
		WHERE id = uuid_to_bin(?)
	`
	res, err := r.db.ExecContext(ctx, query,
		bounds.MinLat, bounds.MaxLat, bounds.MinLon, bounds.MaxLon, bounds.CenterLat, bounds.CenterLon, id)
	if err != nil {
		return fmt.Errorf("db update region bounds: %w", err)
	}
	return expectAffected(res)
}

func (r *regionRepository) UpdatePOICount(ctx context.Context, id uuid.UUID, count int) error {
	const query = `UPDATE region SET poi_count = ? WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, count, id)
	if err != nil {
		return fmt.Errorf("db update region poi count: %w", err)
	}
	return expectAffected(res)
}

func (r *regionRepository) Delete(ctx context.Context, ids ...uuid.UUID) error {
	if len(ids) == 0 {
		return nil
	}

	query, args, err := sqlx.In(`DELETE FROM region WHERE id IN (?)`, uuidBytes(ids))
	if err != nil {
		return fmt.Errorf("build delete regions: %w", err)
	}

	res, err := r.db.ExecContext(ctx, r.db.Rebind(query), args...)
	if err != nil {
		return fmt.Errorf("db delete regions: %w", err)
	}
	return expectAffected(res)
}

// uuidBytes converts ids to the BINARY(16) form stored in id columns.
func uuidBytes(ids []uuid.UUID) [][]byte {
	out := make([][]byte, len(ids))
	for i, id := range ids {
		b := id
		out[i] = b[:]
	}
	return out
}

func expectAffected(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected: %w", err)
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
