package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/vibe-gaming/geodirectory/internal/domain"
)

const businessColumns = `
	bin_to_uuid(b.id) AS id,
	b.name,
	b.description,
	b.addr1,
	b.city,
	b.state,
	b.zip,
	b.phone,
	b.website,
	b.category_ids,
	b.category_type_ids,
	b.category_sub_type_ids,
	b.longitude,
	b.latitude,
	b.neighborhoods,
	b.region_ids,
	b.published,
	b.featured,
	b.created_at,
	b.updated_at`

type businessRepository struct {
	db *sqlx.DB
}

func newBusinessRepository(db *sqlx.DB) *businessRepository {
	return &businessRepository{
		db: db,
	}
}

func (r *businessRepository) Create(ctx context.Context, business *domain.Business) error {
	const query = `
	INSERT INTO business (id, name, description, addr1, city, state, zip, phone, website, category_ids, category_type_ids, category_sub_type_ids, longitude, latitude, neighborhoods, region_ids, published, featured, created_at, updated_at)
	VALUES (uuid_to_bin(?), ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?);
	`
	_, err := r.db.ExecContext(ctx, query,
		business.ID, business.Name, business.Description, business.Addr1, business.City, business.State, business.Zip,
		business.Phone, business.Website, business.CategoryIDs, business.CategoryTypeIDs, business.CategorySubTypeIDs,
		business.Longitude, business.Latitude, business.Neighborhoods, business.RegionIDs,
		business.Published, business.Featured, business.CreatedAt, business.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("db insert business: %w", err)
	}
	return nil
}

func (r *businessRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Business, error) {
	const query = `SELECT ` + businessColumns + ` FROM business b WHERE b.id = uuid_to_bin(?);`

	var business domain.Business
	if err := r.db.GetContext(ctx, &business, query, id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("select from business by id failed: %w", err)
	}
	return &business, nil
}

func (r *businessRepository) GetAll(ctx context.Context, limit, offset int, filters *BusinessFilters) ([]*domain.Business, error) {
	where, args := filters.where()
	order, orderArgs := filters.orderBy()

	query := `SELECT ` + businessColumns + `
		FROM business b` + where + order + `
		LIMIT ? OFFSET ?`
	args = append(args, orderArgs...)
	args = append(args, limit, offset)

	var businesses []*domain.Business
	if err := r.db.SelectContext(ctx, &businesses, query, args...); err != nil {
		return nil, fmt.Errorf("select businesses failed: %w", err)
	}
	return businesses, nil
}

func (r *businessRepository) Count(ctx context.Context, filters *BusinessFilters) (int64, error) {
	where, args := filters.where()

	var count int64
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM business b`+where, args...); err != nil {
		return 0, fmt.Errorf("count businesses failed: %w", err)
	}
	return count, nil
}

func (r *businessRepository) GetLocatedAfter(ctx context.Context, afterID uuid.UUID, limit int) ([]*domain.Business, error) {
	const query = `SELECT ` + businessColumns + `
		FROM business b
		WHERE b.id > uuid_to_bin(?) AND b.longitude IS NOT NULL AND b.latitude IS NOT NULL
		ORDER BY b.id ASC
		LIMIT ?`

	var businesses []*domain.Business
	if err := r.db.SelectContext(ctx, &businesses, query, afterID, limit); err != nil {
		return nil, fmt.Errorf("select located businesses failed: %w", err)
	}
	return businesses, nil
}

func (r *businessRepository) Update(ctx context.Context, business *domain.Business) error {
	const query = `
		UPDATE business
		SET
			name = ?,
			description = ?,
			addr1 = ?,
			city = ?,
			state = ?,
			zip = ?,
			phone = ?,
			website = ?,
			category_ids = ?,
			category_type_ids = ?,
			category_sub_type_ids = ?,
			longitude = ?,
			latitude = ?,
			neighborhoods = ?,
			region_ids = ?,
			published = ?,
			featured = ?,
			updated_at = ?
		WHERE id = uuid_to_bin(?)
	`
	res, err := r.db.ExecContext(ctx, query,
		business.Name, business.Description, business.Addr1, business.City, business.State, business.Zip,
		business.Phone, business.Website, business.CategoryIDs, business.CategoryTypeIDs, business.CategorySubTypeIDs,
		business.Longitude, business.Latitude, business.Neighborhoods, business.RegionIDs,
		business.Published, business.Featured, business.UpdatedAt, business.ID,
	)
	if err != nil {
		return fmt.Errorf("db update business: %w", err)
	}
	return expectAffected(res)
}

func (r *businessRepository) UpdateRegions(ctx context.Context, id uuid.UUID, names domain.StringList, regionIDs domain.UUIDList) error {
	const query = `UPDATE business SET neighborhoods = ?, region_ids = ? WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, names, regionIDs, id)
	if err != nil {
		return fmt.Errorf("db update business regions: %w", err)
	}
	return expectAffected(res)
}

func (r *businessRepository) Delete(ctx context.Context, id uuid.UUID) error {
	const query = `DELETE FROM business WHERE id = uuid_to_bin(?)`

	res, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("db delete business: %w", err)
	}
	return expectAffected(res)
}

func (r *businessRepository) CountPublishedInRegion(ctx context.Context, regionID uuid.UUID) (int, error) {
	const query = `
		SELECT COUNT(*)
		FROM business b
		WHERE b.published = 1 AND JSON_CONTAINS(b.region_ids, JSON_QUOTE(?))
	`
	var count int
	if err := r.db.GetContext(ctx, &count, query, regionID.String()); err != nil {
		return 0, fmt.Errorf("count published businesses in region failed: %w", err)
	}
	return count, nil
}
