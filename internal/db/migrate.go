package db

import (
	"context"
	_ "embed"
	"fmt"

	"placereviews/internal/infra/dbx"
)

//go:embed schema.sql
var schema string

// Migrate applies the embedded schema. Every statement is idempotent, so it is
// safe to run on each start-up.
func Migrate(ctx context.Context, q dbx.Querier) error {
	if _, err := q.Exec(ctx, schema); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
