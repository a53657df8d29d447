package store

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Migrate executes every *_*.up.sql file in dir in lexical order and returns
// how many were applied. The statements are expected to be idempotent.
func (s *Store) Migrate(ctx context.Context, dir string) (int, error) {
	files, err := migrationFiles(dir)
	if err != nil {
		return 0, err
	}
	for _, path := range files {
		payload, err := os.ReadFile(path)
		if err != nil {
			return 0, fmt.Errorf("read migration %s: %w", path, err)
		}
		if _, err := s.pool.Exec(ctx, string(payload)); err != nil {
			return 0, fmt.Errorf("apply migration %s: %w", path, err)
		}
		s.logger.Debug().Str("file", filepath.Base(path)).Msg("migration applied")
	}
	return len(files), nil
}

func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*_*.up.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no migration files found in %s", dir)
	}
	sort.Strings(files)
	return files, nil
}
