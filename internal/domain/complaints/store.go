package complaints

import (
	"context"
	"errors"
	"fmt"

	"placereviews/internal/apperr"
	"placereviews/internal/infra/dbx"

	"github.com/jackc/pgx/v5"
)

type Store interface {
	List(ctx context.Context) ([]Complaint, error)
	Get(ctx context.Context, key Key) (*Complaint, error)
	Create(ctx context.Context, complaint *Complaint) error
	Update(ctx context.Context, complaint *Complaint) error
	Delete(ctx context.Context, key Key) (*Complaint, error)
}

type Repository struct {
	db dbx.Querier
}

func NewRepository(db dbx.Querier) Store {
	return &Repository{db: db}
}

func scanComplaint(row pgx.Row) (*Complaint, error) {
	var c Complaint
	if err := row.Scan(&c.PlaceID, &c.UserID, &c.TimeSubmitted, &c.Comment); err != nil {
		return nil, err
	}
	c.TimeSubmitted = c.TimeSubmitted.UTC()
	return &c, nil
}

func (r *Repository) List(ctx context.Context) ([]Complaint, error) {
	query := `
        SELECT place_id, user_id, time_submitted, comment
        FROM complaints
        ORDER BY time_submitted DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list complaints: %w", err)
	}
	defer rows.Close()

	var out []Complaint
	for rows.Next() {
		c, err := scanComplaint(rows)
		if err != nil {
			return nil, fmt.Errorf("scan complaint: %w", err)
		}
		out = append(out, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (r *Repository) Get(ctx context.Context, key Key) (*Complaint, error) {
	query := `
        SELECT place_id, user_id, time_submitted, comment
        FROM complaints
        WHERE place_id = $1 AND user_id = $2 AND time_submitted = $3
    `
	c, err := scanComplaint(r.db.QueryRow(ctx, query, key.PlaceID, key.UserID, key.TimeSubmitted))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("get complaint: %w", err)
	}
	return c, nil
}

// Create inserts the complaint and fills in the timestamp the database
// generated for its key.
func (r *Repository) Create(ctx context.Context, complaint *Complaint) error {
	query := `
        INSERT INTO complaints (place_id, user_id, comment)
        VALUES ($1, $2, $3)
        RETURNING time_submitted
    `
	err := r.db.QueryRow(ctx, query, complaint.PlaceID, complaint.UserID, complaint.Comment).
		Scan(&complaint.TimeSubmitted)
	if err != nil {
		if _, ok := dbx.IsForeignKeyViolation(err); ok {
			return ErrUnknownUser
		}
		return fmt.Errorf("insert complaint: %w", err)
	}
	complaint.TimeSubmitted = complaint.TimeSubmitted.UTC()
	return nil
}

func (r *Repository) Update(ctx context.Context, complaint *Complaint) error {
	query := `
        UPDATE complaints
        SET comment = $4
        WHERE place_id = $1 AND user_id = $2 AND time_submitted = $3
    `
	tag, err := r.db.Exec(ctx, query, complaint.PlaceID, complaint.UserID, complaint.TimeSubmitted, complaint.Comment)
	if err != nil {
		return fmt.Errorf("update complaint: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperr.ErrNotFound
	}
	return nil
}

func (r *Repository) Delete(ctx context.Context, key Key) (*Complaint, error) {
	query := `
        DELETE FROM complaints
        WHERE place_id = $1 AND user_id = $2 AND time_submitted = $3
        RETURNING place_id, user_id, time_submitted, comment
    `
	c, err := scanComplaint(r.db.QueryRow(ctx, query, key.PlaceID, key.UserID, key.TimeSubmitted))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.ErrNotFound
		}
		return nil, fmt.Errorf("delete complaint: %w", err)
	}
	return c, nil
}
