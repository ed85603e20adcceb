package db

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect"

	"github.com/padraicbc/racedb/models"
)

// pilotStableRow is a flat scan target for the pilot/stable join.
type pilotStableRow struct {
	// pilots table (alias p)
	PilotID         int64   `bun:"pilot_id"`
	Name            string  `bun:"name"`
	StableID        int64   `bun:"stable_id"`
	ExperienceYears int     `bun:"experience_years"`
	AdditionalInfo  *string `bun:"additional_info"`
	// stables table (alias st)
	StableName    string `bun:"stable_name"`
	StableCountry string `bun:"stable_country"`
}

// CreatePilot inserts a pilot and sets its generated id. The stable
// reference is stored as given.
func (s *Store) CreatePilot(ctx context.Context, pilot *models.Pilot) error {
	return s.withConn(ctx, func(conn bun.Conn) error {
		if err := insert(ctx, conn, pilot); err != nil {
			return fmt.Errorf("insert pilot: %w", err)
		}
		return nil
	})
}

// GetPilot returns the pilot with the given id or ErrNotFound.
func (s *Store) GetPilot(ctx context.Context, id int64) (*models.Pilot, error) {
	pilot := &models.Pilot{PilotID: id}
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return getByPK(ctx, conn, pilot)
	})
	if err != nil {
		return nil, err
	}
	return pilot, nil
}

// PilotsWithStables inner-joins pilots to their stables. Pilots whose
// stable_id matches no stable are not returned.
func (s *Store) PilotsWithStables(ctx context.Context) ([]models.PilotWithStable, error) {
	var rows []pilotStableRow
	err := s.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewSelect().
			TableExpr("pilots AS p").
			ColumnExpr("p.pilot_id, p.name, p.stable_id, p.experience_years, p.additional_info").
			ColumnExpr("st.name AS stable_name, st.country AS stable_country").
			Join("INNER JOIN stables AS st ON st.stable_id = p.stable_id").
			OrderExpr("p.pilot_id ASC").
			Scan(ctx, &rows)
	})
	if err != nil {
		return nil, fmt.Errorf("join pilots with stables: %w", err)
	}

	out := make([]models.PilotWithStable, len(rows))
	for i, row := range rows {
		out[i] = models.PilotWithStable{
			Pilot: models.Pilot{
				PilotID:         row.PilotID,
				Name:            row.Name,
				StableID:        row.StableID,
				ExperienceYears: row.ExperienceYears,
				AdditionalInfo:  row.AdditionalInfo,
			},
			Stable: models.Stable{
				StableID: row.StableID,
				Name:     row.StableName,
				Country:  row.StableCountry,
			},
		}
	}
	return out, nil
}

// SearchPilots returns pilots whose additional_info contains query.
// Matching is case-sensitive on every backend.
func (s *Store) SearchPilots(ctx context.Context, query string) ([]models.Pilot, error) {
	pilots := make([]models.Pilot, 0)
	where, args := containsCond(s.db.Dialect().Name(), bun.Ident("additional_info"), query)

	err := s.withConn(ctx, func(conn bun.Conn) error {
		return conn.NewSelect().
			Model(&pilots).
			Where(where, args...).
			OrderExpr("pilot_id ASC").
			Scan(ctx)
	})
	if err != nil {
		return nil, fmt.Errorf("search pilots: %w", err)
	}
	return pilots, nil
}

// containsCond builds a case-sensitive substring predicate. LIKE is avoided
// because SQLite and MySQL fold case by default.
func containsCond(name dialect.Name, column bun.Ident, substr string) (string, []interface{}) {
	switch name {
	case dialect.PG:
		return "strpos(?, ?) > 0", []interface{}{column, substr}
	case dialect.MySQL:
		return "LOCATE(BINARY ?, ?) > 0", []interface{}{substr, column}
	default:
		return "instr(?, ?) > 0", []interface{}{column, substr}
	}
}
