package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/flipflow/flipflow/internal/common"
	"github.com/flipflow/flipflow/internal/engine"
	"github.com/flipflow/flipflow/internal/keyword"
	"github.com/flipflow/flipflow/internal/storage"
	"github.com/flipflow/flipflow/internal/taxonomy"
)

// expandPath resolves ~ and $VAR references in a filesystem path so
// config values like "$HOME/.local/share/flipflow" work as written.
func expandPath(path string) string {
	switch {
	case path == "~":
		if home, err := os.UserHomeDir(); err == nil {
			path = home
		}
	case strings.HasPrefix(path, "~/"):
		if home, err := os.UserHomeDir(); err == nil {
			path = filepath.Join(home, strings.TrimPrefix(path, "~/"))
		}
	}
	return os.ExpandEnv(path)
}

// openStorage opens the database and brings the schema up to date.
// Callers own the returned storage and must Close it.
func openStorage(ctx context.Context) (*storage.SQLiteStorage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/flipflow/flipflow.db"
	}
	dbPath = expandPath(dbPath)

	db, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, common.NewUserError(fmt.Sprintf("failed to open database at %s", dbPath), err)
	}

	if err := db.Migrate(ctx); err != nil {
		closeStorage(db)
		return nil, common.NewUserError("failed to run database migrations", err)
	}

	return db, nil
}

func closeStorage(db *storage.SQLiteStorage) {
	if err := db.Close(); err != nil {
		slog.Error("Failed to close database", "error", err)
	}
}

// buildEngine wires the taxonomy snapshot, keyword index and learning
// cache into a classification engine. Databases with no keyword
// associations fall back to the seeded default set.
func buildEngine(ctx context.Context, db *storage.SQLiteStorage) (*engine.Engine, *taxonomy.Store, error) {
	tax := taxonomy.NewStore()
	if err := tax.Load(ctx, db); err != nil {
		return nil, nil, common.NewUserError("no taxonomy loaded, run 'flipflow taxonomy import' first", err)
	}

	assocs, err := db.GetKeywordAssociations(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load keyword associations: %w", err)
	}
	if len(assocs) == 0 {
		slog.Debug("No keyword associations in database, using defaults")
		assocs = keyword.DefaultAssociations()
	}

	idx := keyword.NewIndex(assocs, keyword.DefaultConfig())
	return engine.New(db, tax, idx), tax, nil
}
