package storage

import (
	"context"
	"fmt"

	"placereviews/internal/domain/complaints"
	"placereviews/internal/domain/locations"
	"placereviews/internal/domain/reviews"
	"placereviews/internal/infra/dbx"
)

// Pool is what the container needs from *pgxpool.Pool.
type Pool interface {
	dbx.TxQuerier
	Ping(ctx context.Context) error
}

type Container struct {
	pool       Pool
	Reviews    reviews.Store
	Complaints complaints.Store
	Locations  locations.Store
}

func NewContainer(db Pool) *Container {
	return &Container{
		pool:       db,
		Reviews:    reviews.NewRepository(db),
		Complaints: complaints.NewRepository(db),
		Locations:  locations.NewRepository(db),
	}
}

// Ping reports whether the database is reachable.
func (c *Container) Ping(ctx context.Context) error {
	if c.pool == nil {
		return fmt.Errorf("storage container pool is nil")
	}
	return c.pool.Ping(ctx)
}
