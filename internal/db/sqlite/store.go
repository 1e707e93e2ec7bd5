// Package sqlite is the relational store: a SQLite file accessed through GORM.
package sqlite

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// ErrEmptyPath indicates that no database file path was configured.
var ErrEmptyPath = errors.New("database path is required")

// Store wraps a GORM connection to the movie catalog database.
type Store struct {
	db *gorm.DB
}

// Open opens (creating if absent) the SQLite file at path and verifies the connection.
// Foreign key enforcement is switched on for every pooled connection.
func Open(ctx context.Context, path string, logger *zap.Logger) (*Store, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	gdb, err := gorm.Open(sqlite.Open(dsn(path)), &gorm.Config{
		Logger: newGormLogger(logger),
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &Store{db: gdb}
	if err := s.Ping(ctx); err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Ping verifies the connection is alive.
func (s *Store) Ping(ctx context.Context) error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying db: %w", err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("ping database: %w", err)
	}
	return nil
}

// Close releases the connection pool.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("get underlying db: %w", err)
	}
	return sqlDB.Close() //nolint:wrapcheck // closing
}

// Session returns a GORM session bound to ctx.
func (s *Store) Session(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx)
}

func dsn(path string) string {
	if strings.Contains(path, "?") {
		return path
	}
	return path + "?_foreign_keys=on"
}
