package migrations

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

//go:embed sql/*.sql
var migrationFiles embed.FS

type migration struct {
	version int
	file    string
}

// Run applies every embedded migration that is not recorded in schema_migrations.
func Run(ctx context.Context, db *sql.DB) error {
	log := zap.S().Named("migrations")

	if _, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version INTEGER PRIMARY KEY,
			applied_at TIMESTAMP DEFAULT now()
		)`); err != nil {
		return fmt.Errorf("creating migrations table: %w", err)
	}

	current, err := Version(ctx, db)
	if err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}

	pending, err := load()
	if err != nil {
		return fmt.Errorf("loading migration files: %w", err)
	}

	for _, m := range pending {
		if m.version <= current {
			log.Debugw("migration already applied", "version", m.version)
			continue
		}
		if err := apply(ctx, db, m); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.file, err)
		}
		log.Infow("applied migration", "file", m.file, "version", m.version)
	}

	return nil
}

// Version returns the highest applied migration version, 0 for a fresh database.
func Version(ctx context.Context, db *sql.DB) (int, error) {
	var v sql.NullInt64
	if err := db.QueryRowContext(ctx, `SELECT max(version) FROM schema_migrations`).Scan(&v); err != nil {
		return 0, err
	}
	return int(v.Int64), nil
}

func load() ([]migration, error) {
	var out []migration
	err := fs.WalkDir(migrationFiles, "sql", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(p, ".sql") {
			return nil
		}
		prefix, _, _ := strings.Cut(path.Base(p), "_")
		v, err := strconv.Atoi(prefix)
		if err != nil || v == 0 {
			zap.S().Named("migrations").Warnw("skipping invalid migration file", "file", p)
			return nil
		}
		out = append(out, migration{version: v, file: p})
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].version < out[j].version })
	return out, nil
}

func apply(ctx context.Context, db *sql.DB, m migration) error {
	content, err := migrationFiles.ReadFile(m.file)
	if err != nil {
		return fmt.Errorf("reading migration file: %w", err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, string(content)); err != nil {
		return fmt.Errorf("executing migration: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO schema_migrations (version) VALUES (?)`, m.version); err != nil {
		return fmt.Errorf("recording migration: %w", err)
	}

	return tx.Commit()
}
