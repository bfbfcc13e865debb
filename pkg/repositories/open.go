package repositories

import (
	"context"
	"fmt"
	"net/url"
	"strings"
)

// Open creates the repository named by connStr.
// sqlite://path opens a SQLite file, postgres:// and postgresql:// connect to Postgres.
func Open(ctx context.Context, connStr string, sqliteMigrations string) (Repository, error) {
	u, err := url.Parse(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse connection string: %v", err)
	}

	switch u.Scheme {
	case "sqlite":
		path := u.Host + u.Path
		if path == "" {
			path = strings.TrimPrefix(connStr, "sqlite://")
		}
		repository, err := NewSQLiteRepository(ctx, path, sqliteMigrations)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite repository: %v", err)
		}
		return repository, nil
	case "postgres", "postgresql":
		repository, err := NewPostgresRepository(ctx, u.String())
		if err != nil {
			return nil, fmt.Errorf("failed to create Postgres repository: %v", err)
		}
		return repository, nil
	default:
		return nil, fmt.Errorf("unknown database type %s", u.Scheme)
	}
}
