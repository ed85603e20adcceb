package db

import (
	"context"
	"errors"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/racedb/models"
)

// ErrInvalidSortColumn is returned by SortedResults for columns outside
// ResultSortColumns.
var ErrInvalidSortColumn = errors.New("invalid sort column")

// ResultSortColumns are the columns results may be ordered by.
var ResultSortColumns = map[string]bool{
	"position":  true,
	"pit_stops": true,
	"race_time": true,
}

// CreateResult inserts a result and sets its generated id.
func (s *Store) CreateResult(ctx context.Context, result *models.Result) error {
	return s.withConn(ctx, func(conn bun.Conn) error {
		if err := insert(ctx, conn, result); err != nil {
			return fmt.Errorf("insert result: %w", err)
		}
		return nil
	})
}

// GetResult returns the result with the given id or ErrNotFound.
func (s *Store) GetResult(ctx context.Context, id int64) (*models.Result, error) {
	result := &models.Result{ResultID: id}
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return getByPK(ctx, conn, result)
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// UpdateResultPosition sets the position of one result and returns the
// updated row. Other columns are left untouched.
func (s *Store) UpdateResultPosition(ctx context.Context, id int64, position int) (*models.Result, error) {
	result := &models.Result{ResultID: id}
	err := s.withConn(ctx, func(conn bun.Conn) error {
		if err := getByPK(ctx, conn, result); err != nil {
			return err
		}
		result.Position = position
		_, err := conn.NewUpdate().
			Model(result).
			Column("position").
			WherePK().
			Exec(ctx)
		return err
	})
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("update result position: %w", err)
	}
	return result, nil
}

// FilterResults returns results with position <= maxPosition and
// pit_stops >= minPitStops.
func (s *Store) FilterResults(ctx context.Context, maxPosition, minPitStops int) ([]models.Result, error) {
	results := make([]models.Result, 0)
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewSelect().
			Model(&results).
			Where("position <= ?", maxPosition).
			Where("pit_stops >= ?", minPitStops).
			OrderExpr("result_id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("filter results: %w", err)
	}
	return results, nil
}

// SortedResults returns every result ordered ascending by column. race_time
// is text, so it orders lexicographically.
func (s *Store) SortedResults(ctx context.Context, column string) ([]models.Result, error) {
	if !ResultSortColumns[column] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSortColumn, column)
	}

	results := make([]models.Result, 0)
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewSelect().
			Model(&results).
			OrderExpr("? ASC, result_id ASC", bun.Ident(column)).
			Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("sort results by %s: %w", column, err)
	}
	return results, nil
}
