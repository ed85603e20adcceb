package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ErrNotFound is returned when a lookup by id matches no row.
var ErrNotFound = errors.New("not found")

// Store is the data access client shared by all handlers. Each operation
// runs on its own pooled connection.
type Store struct {
	db *bun.DB
}

// NewStore wraps an open bun database.
func NewStore(db *bun.DB) *Store {
	return &Store{db: db}
}

// DB returns the underlying bun database.
func (s *Store) DB() *bun.DB {
	return s.db
}

// withConn acquires a dedicated connection, runs fn on it and releases the
// connection on every exit path.
func (s *Store) withConn(ctx context.Context, fn func(conn bun.Conn) error) error {
	conn, err := s.db.Conn(ctx)
	if err != nil {
		return fmt.Errorf("acquire connection: %w", err)
	}
	defer conn.Close()

	return fn(conn)
}

// insert writes model and fills in its generated primary key.
func insert[T any](ctx context.Context, conn bun.Conn, model *T) error {
	_, err := conn.NewInsert().Model(model).Exec(ctx)
	return err
}

// getByPK loads model using the primary key already set on it.
func getByPK[T any](ctx context.Context, conn bun.Conn, model *T) error {
	err := conn.NewSelect().Model(model).WherePK().Scan(ctx)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

// Count returns the number of rows in model's table.
func (s *Store) Count(ctx context.Context, model interface{}) (int, error) {
	var n int
	err := s.withConn(ctx, func(conn bun.Conn) error {
		var err error
		n, err = conn.NewSelect().Model(model).Count(ctx)
		return err
	})
	return n, err
}
