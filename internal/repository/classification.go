package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/vibe-gaming/geodirectory/internal/domain"
)

type classificationRepository struct {
	db *sqlx.DB
}

func newClassificationRepository(db *sqlx.DB) *classificationRepository {
	return &classificationRepository{
		db: db,
	}
}

func (r *classificationRepository) GetAll(ctx context.Context) ([]domain.Classification, error) {
	const query = `SELECT id, name, types FROM classification ORDER BY name ASC;`

	var list []domain.Classification
	if err := r.db.SelectContext(ctx, &list, query); err != nil {
		return nil, fmt.Errorf("select classifications failed: %w", err)
	}
	return list, nil
}
