package mysql

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/tableguard/tableguard/internal/connector"
	"github.com/tableguard/tableguard/internal/model"
)

// MySQLConnector implements connector.Connector for MySQL databases.
type MySQLConnector struct {
	db                *sqlx.DB
	schemaName        string
	fractionalSeconds bool
}

// New creates a new MySQLConnector with default settings.
func New() connector.Connector {
	return &MySQLConnector{}
}

// Connect establishes a connection to the MySQL database, configures the
// pool, resolves the current schema when none was given, and probes the
// server version for fractional-seconds timestamp support (5.6.4+).
func (c *MySQLConnector) Connect(cfg connector.ConnectionConfig) error {
	db, err := sqlx.Connect("mysql", cfg.DSN)
	if err != nil {
		return fmt.Errorf("mysql connect: %w", err)
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

	// If no schema name provided, query the current database name
	if c.schemaName == "" {
		var dbName string
		if err := db.Get(&dbName, "SELECT DATABASE()"); err == nil && dbName != "" {
			c.schemaName = dbName
		}
	}

	var version string
	if err := db.Get(&version, "SELECT VERSION()"); err == nil {
		c.fractionalSeconds = supportsFractionalSeconds(version)
	}

	c.db = db
	return nil
}

// supportsFractionalSeconds reports whether a MySQL/MariaDB version string is
// at least 5.6.4, the first release with DATETIME(6)/CURRENT_TIMESTAMP(6).
func supportsFractionalSeconds(version string) bool {
	parts := strings.SplitN(version, "-", 2)[0]
	fields := strings.Split(parts, ".")
	nums := make([]int, 3)
	for i := 0; i < len(fields) && i < 3; i++ {
		n, err := strconv.Atoi(fields[i])
		if err != nil {
			return false
		}
		nums[i] = n
	}
	switch {
	case nums[0] != 5:
		return nums[0] > 5
	case nums[1] != 6:
		return nums[1] > 6
	default:
		return nums[2] >= 4
	}
}

// Disconnect closes the database connection pool.
func (c *MySQLConnector) Disconnect() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Ping verifies the database connection is alive.
func (c *MySQLConnector) Ping(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

// DB returns the underlying sqlx.DB connection pool.
func (c *MySQLConnector) DB() *sqlx.DB {
	return c.db
}

// ExecDDL executes a single DDL statement.
func (c *MySQLConnector) ExecDDL(ctx context.Context, stmt string) error {
	_, err := c.db.ExecContext(ctx, stmt)
	return err
}

// DriverName returns the driver identifier for MySQL.
func (c *MySQLConnector) DriverName() string { return "mysql" }

// Dialect reports MySQL capabilities. Partial indexes are never supported;
// fractional-seconds support comes from the connect-time version probe.
func (c *MySQLConnector) Dialect() model.Dialect {
	d := model.DialectFor("mysql")
	d.SupportsFractionalSeconds = c.fractionalSeconds
	return d
}
