package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/racedb/models"
)

// CreateStable inserts a stable and sets its generated id.
func (s *Store) CreateStable(ctx context.Context, stable *models.Stable) error {
	return s.withConn(ctx, func(conn bun.Conn) error {
		if err := insert(ctx, conn, stable); err != nil {
			return fmt.Errorf("insert stable: %w", err)
		}
		return nil
	})
}

// GetStable returns the stable with the given id or ErrNotFound.
func (s *Store) GetStable(ctx context.Context, id int64) (*models.Stable, error) {
	stable := &models.Stable{StableID: id}
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return getByPK(ctx, conn, stable)
	})
	if err != nil {
		return nil, err
	}
	return stable, nil
}
