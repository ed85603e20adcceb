package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"github.com/padraicbc/racedb/models"
)

// CreateStage inserts a stage and sets its generated id.
func (s *Store) CreateStage(ctx context.Context, stage *models.Stage) error {
	return s.withConn(ctx, func(conn bun.Conn) error {
		if err := insert(ctx, conn, stage); err != nil {
			return fmt.Errorf("insert stage: %w", err)
		}
		return nil
	})
}

// GetStage returns the stage with the given id or ErrNotFound.
func (s *Store) GetStage(ctx context.Context, id int64) (*models.Stage, error) {
	stage := &models.Stage{StageID: id}
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return getByPK(ctx, conn, stage)
	})
	if err != nil {
		return nil, err
	}
	return stage, nil
}

// GroupStagesByLocation counts stages per distinct location.
func (s *Store) GroupStagesByLocation(ctx context.Context) ([]models.LocationCount, error) {
	rows := make([]models.LocationCount, 0)
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewSelect().
			TableExpr("stages").
			ColumnExpr("location").
			ColumnExpr("COUNT(stage_id) AS stage_count").
			GroupExpr("location").
			OrderExpr("location ASC").
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("group stages: %w", err)
	}
	return rows, nil
}
