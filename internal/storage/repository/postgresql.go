// Package repository implements the PostgreSQL store for users,
// donations, volunteer applications and subscription snapshots.
package repository

import (
	"context"
	"database/sql"
	"fmt"

	// pgx driver registration for database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Storage wraps the database connection and implements the repository
// methods the services depend on.
type Storage struct {
	DB *sql.DB
}

// New opens a PostgreSQL connection and verifies it.
func New(storageConnectionString string) (*Storage, error) {
	const op = "repository.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{DB: db}, nil
}

// Ping reports database readiness; the health endpoint uses it.
func (s *Storage) Ping(ctx context.Context) error {
	const op = "repository.Ping"
	if err := s.DB.PingContext(ctx); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Close releases the underlying pool.
func (s *Storage) Close() error {
	return s.DB.Close()
}
