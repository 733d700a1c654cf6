package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/finchley/penny/internal/prefs"
	"github.com/finchley/penny/internal/service"
	"github.com/finchley/penny/internal/storage"
)

// initStorage opens the SQLite database named in config and runs any
// pending migrations. Callers own the returned storage and must Close it.
func initStorage(ctx context.Context) (service.Storage, error) {
	dbPath := viper.GetString("database.path")
	if dbPath == "" {
		dbPath = "$HOME/.local/share/penny/penny.db"
	}
	dbPath = prefs.ExpandPath(dbPath)

	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	store, err := storage.NewSQLiteStorage(dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := store.Migrate(ctx); err != nil {
		store.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// openPrefs loads the preference store from its standard location, or
// from prefs.path when set in config.
func openPrefs() (*prefs.Store, error) {
	path := viper.GetString("prefs.path")
	if path == "" {
		path = "$HOME/.config/penny/prefs.yaml"
	}
	return prefs.NewStore(prefs.ExpandPath(path))
}

// parseDay parses a --day flag value (2006-01-02) in the local zone.
func parseDay(value string) (time.Time, error) {
	day, err := time.ParseInLocation("2006-01-02", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid day %q (want YYYY-MM-DD): %w", value, err)
	}
	return day, nil
}

// parseMonth parses a --month flag value (2006-01) in the local zone.
func parseMonth(value string) (time.Time, error) {
	month, err := time.ParseInLocation("2006-01", value, time.Local)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q (want YYYY-MM): %w", value, err)
	}
	return month, nil
}

// monthRange returns the half-open [start, end) range covering the month
// that contains t.
func monthRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 1, 0)
}

// dayRange returns the half-open [start, end) range covering the local
// day that contains t.
func dayRange(t time.Time) (time.Time, time.Time) {
	start := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return start, start.AddDate(0, 0, 1)
}

func normalizeCurrency(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}
