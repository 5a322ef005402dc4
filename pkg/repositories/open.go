package repositories

import (
	"context"
	"fmt"
	"strings"
)

// Open returns the repository selected by the scheme of databaseURL:
// sqlite://<path>, bolt://<path>, memory:// or a postgres connection URL.
func Open(ctx context.Context, databaseURL string) (Repository, error) {
	scheme, rest, ok := strings.Cut(databaseURL, "://")
	if !ok {
		return nil, fmt.Errorf("invalid database url %q", databaseURL)
	}

	switch scheme {
	case "sqlite":
		return NewSQLiteRepository(ctx, rest)
	case "bolt":
		return NewBoltRepository(ctx, rest)
	case "memory":
		return NewInMemoryRepository(), nil
	case "postgres", "postgresql":
		return NewPostgresRepository(ctx, databaseURL)
	default:
		return nil, fmt.Errorf("unsupported database scheme %q", scheme)
	}
}
