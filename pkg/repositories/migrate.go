package repositories

import (
	"context"
	"fmt"
	"io/fs"
	"path"

	"github.com/cbodonnell/savestate/migrations"
)

// runMigrations executes every .sql file of a backend's migrations directory
// in file name order.
func runMigrations(ctx context.Context, backend string, exec func(ctx context.Context, query string) error) error {
	dir, err := fs.ReadDir(migrations.FS, backend)
	if err != nil {
		return fmt.Errorf("failed to read migrations directory: %w", err)
	}

	for _, entry := range dir {
		if entry.IsDir() || path.Ext(entry.Name()) != ".sql" {
			continue
		}

		migrationPath := path.Join(backend, entry.Name())
		migration, err := fs.ReadFile(migrations.FS, migrationPath)
		if err != nil {
			return fmt.Errorf("failed to read migration %s: %w", migrationPath, err)
		}

		if err := exec(ctx, string(migration)); err != nil {
			return fmt.Errorf("failed to execute migration %s: %w", migrationPath, err)
		}
	}

	return nil
}
