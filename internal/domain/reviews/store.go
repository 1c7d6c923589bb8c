package reviews

import (
	"context"
	"errors"
	"fmt"

	"placereviews/internal/apperr"
	"placereviews/internal/domain/locations"
	"placereviews/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	List(ctx context.Context) ([]Review, error)
	ListByPlace(ctx context.Context, placeID string, limit, offset int) ([]Review, error)
	CountByPlace(ctx context.Context, placeID string) (int, error)
	ListByUser(ctx context.Context, userID string) ([]Review, error)
	Get(ctx context.Context, placeID, userID string) (*Review, error)
	Create(ctx context.Context, review *Review) error
	Update(ctx context.Context, review *Review) error
	Delete(ctx context.Context, placeID, userID string) (*Review, error)
	Stats(ctx context.Context, placeID string) (*Stats, error)
}

type Repository struct {
	db dbx.TxQuerier
}

func NewRepository(db dbx.TxQuerier) Store {
	return &Repository{db: db}
}

const reviewColumns = `place_id, user_id, time_added, overall_rating, location_rating,
               amenities_rating, service_rating, COALESCE(comment, '')`

func scanReview(row pgx.Row) (*Review, error) {
	var rv Review
	err := row.Scan(
		&rv.PlaceID,
		&rv.UserID,
		&rv.TimeAdded,
		&rv.OverallRating,
		&rv.LocationRating,
		&rv.AmenitiesRating,
		&rv.ServiceRating,
		&rv.Comment,
	)
	if err != nil {
		return nil, err
	}
	rv.TimeAdded = rv.TimeAdded.UTC()
	return &rv, nil
}

func (r *Repository) collect(ctx context.Context, query string, args ...any) ([]Review, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Review
	for rows.Next() {
		rv, err := scanReview(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *rv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) List(ctx context.Context) ([]Review, error) {
	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        ORDER BY time_added DESC
    `
	out, err := r.collect(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list reviews: %w", err)
	}
	return out, nil
}

// ListByPlace returns one window of commented reviews for a place, newest first.
func (r *Repository) ListByPlace(ctx context.Context, placeID string, limit, offset int) ([]Review, error) {
	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE place_id = $1 AND comment IS NOT NULL AND comment <> ''
        ORDER BY time_added DESC
        LIMIT $2 OFFSET $3
    `
	out, err := r.collect(ctx, query, placeID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list reviews by place: %w", err)
	}
	return out, nil
}

// CountByPlace counts the commented reviews ListByPlace pages over.
func (r *Repository) CountByPlace(ctx context.Context, placeID string) (int, error) {
	var n int
	query := `
        SELECT COUNT(*)
        FROM reviews
        WHERE place_id = $1 AND comment IS NOT NULL AND comment <> ''
    `
	if err := r.db.QueryRow(ctx, query, placeID).Scan(&n); err != nil {
		return 0, fmt.Errorf("count reviews by place: %w", err)
	}
	return n, nil
}

func (r *Repository) ListByUser(ctx context.Context, userID string) ([]Review, error) {
	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE user_id = $1
        ORDER BY time_added DESC
    `
	out, err := r.collect(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list reviews by user: %w", err)
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, placeID, userID string) (*Review, error) {
	query := `
        SELECT ` + reviewColumns + `
        FROM reviews
        WHERE place_id = $1 AND user_id = $2
    `
	rv, err := scanReview(r.db.QueryRow(ctx, query, placeID, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get review: %w", err)
	}
	return rv, nil
}

// Create inserts the review and, in the same transaction, the location row
// for its place when it is the first review there.
func (r *Repository) Create(ctx context.Context, review *Review) error {
	query := `
        INSERT INTO reviews (place_id, user_id, overall_rating, location_rating,
                             amenities_rating, service_rating, comment)
        VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7, ''))
        RETURNING time_added
    `
	return dbx.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		if _, err := locations.NewRepository(tx).Ensure(ctx, review.PlaceID); err != nil {
			return err
		}

		err := tx.QueryRow(ctx, query,
			review.PlaceID,
			review.UserID,
			review.OverallRating,
			review.LocationRating,
			review.AmenitiesRating,
			review.ServiceRating,
			review.Comment,
		).Scan(&review.TimeAdded)
		if err != nil {
			if _, ok := dbx.IsUniqueViolation(err); ok {
				return ErrDuplicate
			}
			if pgErr, ok := dbx.IsForeignKeyViolation(err); ok && pgErr.ConstraintName == "reviews_user_id_fkey" {
				return ErrUnknownUser
			}
			return fmt.Errorf("insert review: %w", err)
		}
		review.TimeAdded = review.TimeAdded.UTC()
		return nil
	})
}

// Update overwrites the ratings and comment and refreshes time_added.
func (r *Repository) Update(ctx context.Context, review *Review) error {
	query := `
        UPDATE reviews
        SET overall_rating = $3,
            location_rating = $4,
            amenities_rating = $5,
            service_rating = $6,
            comment = NULLIF($7, ''),
            time_added = now()
        WHERE place_id = $1 AND user_id = $2
        RETURNING time_added
    `
	err := r.db.QueryRow(ctx, query,
		review.PlaceID,
		review.UserID,
		review.OverallRating,
		review.LocationRating,
		review.AmenitiesRating,
		review.ServiceRating,
		review.Comment,
	).Scan(&review.TimeAdded)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return apperr.ErrNotFound
		}
		return fmt.Errorf("update review: %w", err)
	}
	review.TimeAdded = review.TimeAdded.UTC()
	return nil
}

// Delete removes the review and drops its location when no other review
// references the place. Both happen in one transaction.
func (r *Repository) Delete(ctx context.Context, placeID, userID string) (*Review, error) {
	query := `
        DELETE FROM reviews
        WHERE place_id = $1 AND user_id = $2
        RETURNING ` + reviewColumns

	var deleted *Review
	err := dbx.WithTx(ctx, r.db, func(tx pgx.Tx) error {
		rv, err := scanReview(tx.QueryRow(ctx, query, placeID, userID))
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperr.ErrNotFound
			}
			return fmt.Errorf("delete review: %w", err)
		}

		if _, err := locations.NewRepository(tx).DeleteIfOrphaned(ctx, placeID); err != nil {
			return err
		}

		deleted = rv
		return nil
	})
	if err != nil {
		return nil, err
	}
	return deleted, nil
}

func (r *Repository) Stats(ctx context.Context, placeID string) (*Stats, error) {
	query := `
        SELECT
            COUNT(*),
            COALESCE(AVG(overall_rating), 0),
            COALESCE(AVG(location_rating), 0),
            COALESCE(AVG(amenities_rating), 0),
            COALESCE(AVG(service_rating), 0)
        FROM reviews
        WHERE place_id = $1
    `
	s := Stats{PlaceID: placeID}
	err := r.db.QueryRow(ctx, query, placeID).Scan(
		&s.TotalReviews,
		&s.AverageOverall,
		&s.AverageLocation,
		&s.AverageAmenities,
		&s.AverageService,
	)
	if err != nil {
		return nil, fmt.Errorf("review stats: %w", err)
	}
	return &s, nil
}
