package cmd

import (
	"context"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/kubev2v/wifi-provisioner/internal/store"
	"github.com/kubev2v/wifi-provisioner/internal/store/migrations"
)

const dbName = "provisioner.duckdb"

func openStore(ctx context.Context, dataFolder string) (*store.Store, error) {
	dbPath := filepath.Join(dataFolder, dbName)
	if dataFolder == "" {
		dbPath = ":memory:"
		zap.S().Warn("data-folder not set, using in-memory database (credentials will not persist)")
	}

	db, err := store.NewDB(dbPath)
	if err != nil {
		zap.S().Errorw("failed to initialize database", "error", err)
		return nil, err
	}

	if err := migrations.Run(ctx, db); err != nil {
		zap.S().Errorw("failed to run migrations", "error", err)
		_ = db.Close()
		return nil, err
	}
	zap.S().Debugw("database initialized", "path", dbPath)

	return store.NewStore(db), nil
}
