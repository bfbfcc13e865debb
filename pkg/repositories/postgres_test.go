package repositories

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPostgresRepository(t *testing.T) {
	connStr := os.Getenv("WAYFARER_TEST_DATABASE_URL")
	if connStr == "" {
		t.Skip("WAYFARER_TEST_DATABASE_URL not set")
	}
	ctx := context.Background()

	repository, err := NewPostgresRepository(ctx, connStr)
	require.NoError(t, err)
	defer repository.Close(ctx)

	for _, table := range []string{"game_data", "user_emails", "maps"} {
		_, err := repository.pool.Exec(ctx, "TRUNCATE "+table)
		require.NoError(t, err)
	}

	testRepository(t, repository)
}
