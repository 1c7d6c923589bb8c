package locations

import (
	"context"
	"fmt"

	"placereviews/internal/infra/dbx"
)

type Store interface {
	Ensure(ctx context.Context, placeID string) (bool, error)
	DeleteIfOrphaned(ctx context.Context, placeID string) (bool, error)
	List(ctx context.Context) ([]Location, error)
}

type Repository struct {
	db dbx.Querier
}

// NewRepository accepts the pool or a transaction, so the review store can
// keep location rows in step with reviews inside one unit of work.
func NewRepository(q dbx.Querier) *Repository {
	return &Repository{db: q}
}

// Ensure inserts the location if it is missing and reports whether a row was
// created.
func (r *Repository) Ensure(ctx context.Context, placeID string) (bool, error) {
	query := `
        INSERT INTO locations (place_id)
        VALUES ($1)
        ON CONFLICT (place_id) DO NOTHING
    `
	tag, err := r.db.Exec(ctx, query, placeID)
	if err != nil {
		return false, fmt.Errorf("ensure location: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteIfOrphaned removes the location when no review references it and
// reports whether it did.
func (r *Repository) DeleteIfOrphaned(ctx context.Context, placeID string) (bool, error) {
	query := `
        DELETE FROM locations l
        WHERE l.place_id = $1
          AND NOT EXISTS (SELECT 1 FROM reviews rv WHERE rv.place_id = l.place_id)
    `
	tag, err := r.db.Exec(ctx, query, placeID)
	if err != nil {
		return false, fmt.Errorf("delete orphaned location: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func (r *Repository) List(ctx context.Context) ([]Location, error) {
	rows, err := r.db.Query(ctx, `SELECT place_id FROM locations ORDER BY place_id`)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()

	var out []Location
	for rows.Next() {
		var l Location
		if err := rows.Scan(&l.PlaceID); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		out = append(out, l)
	}
	return out, rows.Err()
}
