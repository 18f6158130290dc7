package db

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrNotFound is returned when the database file does not exist.
var ErrNotFound = errors.New("database file not found")

// DSN builds a read-only SQLite URI for the database at path. The path is
// made absolute and percent-escaped, so '#', '?' and '%' in directory names
// stay part of the file name.
func DSN(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}
	u := url.URL{Scheme: "file", Path: filepath.ToSlash(path)}
	q := url.Values{}
	q.Set("mode", "ro")
	q.Set("_busy_timeout", "5000")
	u.RawQuery = q.Encode()
	return u.String()
}

// Open opens a read-only GORM connection to the SQLite file at path. The
// file must already exist; SQLite would otherwise create an empty one.
// Callers own the connection and must Close it.
func Open(path string) (*gorm.DB, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("db: open %s: %w", path, ErrNotFound)
		}
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("db: open %s: is a directory", path)
	}

	gormDB, err := gorm.Open(sqlite.Open(DSN(path)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("db: open %s: %w", path, err)
	}
	return gormDB, nil
}

// Close releases the connection pool behind gormDB.
func Close(gormDB *gorm.DB) error {
	if gormDB == nil {
		return nil
	}
	sqlDB, err := gormDB.DB()
	if err != nil {
		return fmt.Errorf("db: close: %w", err)
	}
	return sqlDB.Close()
}
