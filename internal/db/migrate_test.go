package db

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrate(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherEqual))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(schema).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	require.NoError(t, Migrate(context.Background(), mock))

	mock.ExpectExec(schema).WillReturnError(errors.New("permission denied for schema public"))
	err = Migrate(context.Background(), mock)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "apply schema")

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaDeclaresCompositeKeys(t *testing.T) {
	assert.Contains(t, schema, "PRIMARY KEY (place_id, user_id)")
	assert.Contains(t, schema, "PRIMARY KEY (place_id, user_id, time_submitted)")
	assert.Contains(t, schema, "REFERENCES locations (place_id)")
}
