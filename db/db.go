package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/mysqldialect"
	"github.com/uptrace/bun/dialect/pgdialect"
	"github.com/uptrace/bun/dialect/sqlitedialect"
	"github.com/uptrace/bun/driver/pgdriver"
	"github.com/uptrace/bun/extra/bundebug"
	_ "modernc.org/sqlite"

	"github.com/padraicbc/racedb/config"
	"github.com/padraicbc/racedb/models"
)

// Options selects and configures a store backend.
type Options struct {
	Driver string
	DSN    string
	Debug  bool
}

// Setup opens the store described by cfg and verifies the connection.
func Setup(ctx context.Context, cfg *config.Config) (*bun.DB, error) {
	return Open(ctx, Options{Driver: cfg.Driver, DSN: cfg.DSN(), Debug: cfg.Debug})
}

// Open opens a bun database for the given driver and pings it.
func Open(ctx context.Context, opts Options) (*bun.DB, error) {
	var db *bun.DB

	switch opts.Driver {
	case config.DriverSQLite, "":
		if strings.TrimSpace(opts.DSN) == "" {
			return nil, fmt.Errorf("sqlite path is required")
		}
		sqldb, err := sql.Open("sqlite", sqliteDSN(opts.DSN))
		if err != nil {
			return nil, fmt.Errorf("open sqlite db: %w", err)
		}
		db = bun.NewDB(sqldb, sqlitedialect.New())
	case config.DriverPostgres:
		sqldb := sql.OpenDB(pgdriver.NewConnector(pgdriver.WithDSN(opts.DSN)))
		db = bun.NewDB(sqldb, pgdialect.New())
	case config.DriverMySQL:
		sqldb, err := sql.Open("mysql", opts.DSN)
		if err != nil {
			return nil, fmt.Errorf("open mysql db: %w", err)
		}
		db = bun.NewDB(sqldb, mysqldialect.New())
	default:
		return nil, fmt.Errorf("unsupported driver %q", opts.Driver)
	}

	if opts.Debug {
		db.AddQueryHook(bundebug.NewQueryHook(bundebug.WithVerbose(true)))
	}

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s db: %w", db.Dialect().Name(), err)
	}

	return db, nil
}

// sqliteDSN adds a busy timeout so concurrent writers wait on the file lock
// instead of failing with SQLITE_BUSY.
func sqliteDSN(path string) string {
	sep := "?"
	if strings.Contains(path, "?") {
		sep = "&"
	}
	dsn := path + sep + "_pragma=busy_timeout(5000)"
	if !strings.Contains(path, ":memory:") {
		dsn += "&_pragma=journal_mode(WAL)"
	}
	return dsn
}

// Tables lists every model in dependency order.
var Tables = []interface{}{
	(*models.Stable)(nil),
	(*models.Pilot)(nil),
	(*models.Stage)(nil),
	(*models.Result)(nil),
}

// CreateTables creates all tables that do not exist yet. Reference columns
// are left unconstrained.
func CreateTables(ctx context.Context, db *bun.DB) error {
	for _, model := range Tables {
		if _, err := db.NewCreateTable().Model(model).IfNotExists().Exec(ctx); err != nil {
			return fmt.Errorf("creating table for %T: %w", model, err)
		}
	}
	return nil
}
