package postgres

import (
	"context"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"

	"github.com/tableguard/tableguard/internal/connector"
	"github.com/tableguard/tableguard/internal/model"
)

// PostgresConnector implements connector.Connector for PostgreSQL databases.
type PostgresConnector struct {
	db         *sqlx.DB
	schemaName string
	citext     bool
}

// New creates a new PostgresConnector with default settings.
func New() connector.Connector {
	return &PostgresConnector{schemaName: "public"}
}

// Connect establishes a connection to the PostgreSQL database, configures the
// pool, and probes once for the citext extension so email columns can use a
// case-insensitive type when available.
func (c *PostgresConnector) Connect(cfg connector.ConnectionConfig) error {
	db, err := sqlx.Connect("pgx", cfg.DSN)
	if err != nil {
		return fmt.Errorf("postgres connect: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
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

	if cfg.SchemaName != "" {
		c.schemaName = cfg.SchemaName
	}

	c.db = db

	// Probe failure just means no citext; plain text is substituted.
	const probe = `SELECT EXISTS (SELECT 1 FROM pg_extension WHERE extname = 'citext')`
	if err := db.Get(&c.citext, probe); err != nil {
		c.citext = false
	}

	return nil
}

// Disconnect closes the database connection pool.
func (c *PostgresConnector) Disconnect() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (c *PostgresConnector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying sqlx.DB connection pool.
func (c *PostgresConnector) DB() *sqlx.DB {
	return c.db
}

// ExecDDL executes a single DDL statement.
func (c *PostgresConnector) ExecDDL(ctx context.Context, stmt string) error {
	_, err := c.db.ExecContext(ctx, stmt)
	return err
}

// DriverName returns the driver identifier for PostgreSQL.
func (c *PostgresConnector) DriverName() string { return "postgres" }

// Dialect reports PostgreSQL capabilities, including the connect-time citext
// probe result.
func (c *PostgresConnector) Dialect() model.Dialect {
	d := model.DialectFor("postgres")
	d.SupportsCitext = c.citext
	return d
}
