package sqlite

import (
	"context"
	"fmt"

	"gorm.io/gorm"
)

// Table names of the catalog schema.
const (
	TableMovies   = "movies"
	TableUsers    = "users"
	TableComments = "comments"
)

// Tables lists the catalog tables in creation order.
var Tables = []string{TableMovies, TableUsers, TableComments}

// ddl creates the catalog tables. Every statement is idempotent.
var ddl = []string{
	`CREATE TABLE IF NOT EXISTS movies (
    movie_id INTEGER PRIMARY KEY AUTOINCREMENT,
    title    TEXT,
    overview TEXT
)`,
	`CREATE TABLE IF NOT EXISTS users (
    user_id  INTEGER PRIMARY KEY AUTOINCREMENT,
    username TEXT,
    password TEXT,
    email    TEXT
)`,
	`CREATE TABLE IF NOT EXISTS comments (
    comment_id INTEGER PRIMARY KEY AUTOINCREMENT,
    movie_id   INTEGER,
    user_id    INTEGER,
    comment    TEXT,
    created_at DATETIME,
    FOREIGN KEY(movie_id) REFERENCES movies(movie_id),
    FOREIGN KEY(user_id) REFERENCES users(user_id)
)`,
}

// InitSchema creates the movies, users and comments tables if they do not exist.
// All statements run in one transaction; calling it again is a no-op.
func (s *Store) InitSchema(ctx context.Context) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, stmt := range ddl {
			if err := tx.Exec(stmt).Error; err != nil {
				return fmt.Errorf("create table %s: %w", Tables[i], err)
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("init schema: %w", err)
	}
	return nil
}

// HasTables reports which catalog tables exist.
func (s *Store) HasTables(ctx context.Context) map[string]bool {
	m := s.db.WithContext(ctx).Migrator()
	out := make(map[string]bool, len(Tables))
	for _, t := range Tables {
		out[t] = m.HasTable(t)
	}
	return out
}

// Columns returns the column names of table in declaration order.
func (s *Store) Columns(ctx context.Context, table string) ([]string, error) {
	var cols []string
	err := s.db.WithContext(ctx).
		Raw(`SELECT name FROM pragma_table_info(?) ORDER BY cid`, table).
		Scan(&cols).Error
	if err != nil {
		return nil, fmt.Errorf("table info %s: %w", table, err)
	}
	return cols, nil
}
