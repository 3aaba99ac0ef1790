package db

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/soartravel/soar/errors"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// OpenSqlite opens (and creates if needed) the SQLite database at path.
// SQLite allows a single writer, so the pool is capped at one connection and writers queue on it.
func OpenSqlite(path string) (*gorm.DB, error) {
	if path == "" {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "sqlite path is required")
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.Wrapf(err, "failed to create sqlite directory %s", dir)
		}
	}

	db, err := gorm.Open(
		sqlite.Open(
			fmt.Sprintf("file:%s?cache=shared&mode=rwc&_journal_mode=WAL&_foreign_keys=on&_busy_timeout=5000", path),
		),
		&gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		},
	)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open sqlite database at %s", path)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to get db")
	}
	sqlDB.SetMaxOpenConns(1)

	return db, nil
}

func CloseDB(db *gorm.DB) error {
	if db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return errors.Wrapf(err, "failed to get db")
	}
	if err := sqlDB.Close(); err != nil {
		return errors.Wrapf(err, "failed to close db")
	}

	return nil
}
