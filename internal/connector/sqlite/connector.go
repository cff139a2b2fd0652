package sqlite

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"

	"github.com/tableguard/tableguard/internal/connector"
	"github.com/tableguard/tableguard/internal/model"
)

// SQLiteConnector implements connector.Connector for SQLite databases.
type SQLiteConnector struct {
	db *sqlx.DB
}

// New creates a new SQLiteConnector with default settings.
func New() connector.Connector {
	return &SQLiteConnector{}
}

// Connect opens a connection to the SQLite database file specified in the
// DSN. The DSN should be a file path or ":memory:"; query parameters like
// ?_journal_mode=WAL are supported. Foreign keys are enabled explicitly since
// SQLite ships with them off.
func (c *SQLiteConnector) Connect(cfg connector.ConnectionConfig) error {
	db, err := sqlx.Connect("sqlite", cfg.DSN)
	if err != nil {
		return fmt.Errorf("sqlite connect: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	} else {
		db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}
	if cfg.ConnMaxIdleTime > 0 {
		db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
	}

	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		db.Close()
		return fmt.Errorf("enable foreign keys: %w", err)
	}

	c.db = db
	return nil
}

// Disconnect closes the database connection.
func (c *SQLiteConnector) Disconnect() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (c *SQLiteConnector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying sqlx.DB connection pool.
func (c *SQLiteConnector) DB() *sqlx.DB {
	return c.db
}

// ExecDDL executes a single DDL statement.
func (c *SQLiteConnector) ExecDDL(ctx context.Context, stmt string) error {
	_, err := c.db.ExecContext(ctx, stmt)
	return err
}

// DriverName returns the driver identifier for SQLite.
func (c *SQLiteConnector) DriverName() string { return "sqlite" }

// Dialect reports SQLite capabilities: partial indexes yes, citext and
// fractional-seconds markers not applicable.
func (c *SQLiteConnector) Dialect() model.Dialect {
	return model.DialectFor("sqlite")
}
