// Package connector abstracts the live database connection the guard borrows:
// catalog listing, existence checks, and raw DDL execution, with a backend
// dialect tag for statement generation.
package connector

import (
	"context"
	"net/url"
	"regexp"
	"strings"
	"time"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"

	"github.com/tableguard/tableguard/internal/model"
)

// ConnectionConfig holds database connection parameters.
type ConnectionConfig struct {
	Driver          string
	DSN             string
	SchemaName      string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

// Connector is the interface all database backends implement. The guard never
// closes a connector it was handed; ownership stays with the caller.
type Connector interface {
	// Connection management
	Connect(cfg ConnectionConfig) error
	Disconnect() error
	Ping(ctx context.Context) error
	DB() *sqlx.DB

	// Catalog introspection
	TableNames(ctx context.Context) ([]string, error)
	TableExists(ctx context.Context, name string) (bool, error)

	// DDL execution
	ExecDDL(ctx context.Context, stmt string) error

	// Metadata
	DriverName() string
	// Dialect reports the backend tag plus capability flags probed at
	// connect time (citext, partial indexes, fractional seconds).
	Dialect() model.Dialect
}

// SanitizeDSN ensures that URL-style postgres DSNs have their userinfo
// (especially the password) properly percent-encoded, and normalizes MySQL
// DSNs to the tcp() wrapper go-sql-driver requires. Raw passwords containing
// @, #, or % otherwise mis-split the authority component and surface as
// confusing connection failures.
func SanitizeDSN(driver, dsn string) string {
	switch driver {
	case "postgres":
		return sanitizeURLDSN(dsn)
	case "mysql":
		return sanitizeMySQLDSN(dsn)
	default:
		return dsn
	}
}

// mysqlBareHostPort matches "user:pass@host:port/db" (no tcp() wrapper).
var mysqlBareHostPort = regexp.MustCompile(`^(.+)@([^(@]+:\d+)(/.*)?$`)

func sanitizeMySQLDSN(dsn string) string {
	// If it already parses cleanly and has a known network, trust it.
	if cfg, err := mysqldriver.ParseDSN(dsn); err == nil && (cfg.Net == "tcp" || cfg.Net == "unix") {
		return cfg.FormatDSN()
	}

	// Pattern: user:pass@(host:port)/db, missing the "tcp" keyword.
	if idx := strings.LastIndex(dsn, "@("); idx >= 0 {
		fixed := dsn[:idx] + "@tcp" + dsn[idx+1:]
		if cfg, err := mysqldriver.ParseDSN(fixed); err == nil {
			return cfg.FormatDSN()
		}
	}

	// Pattern: user:pass@host:port/db, no parens at all.
	if m := mysqlBareHostPort.FindStringSubmatch(dsn); m != nil {
		fixed := m[1] + "@tcp(" + m[2] + ")" + m[3]
		if cfg, err := mysqldriver.ParseDSN(fixed); err == nil {
			return cfg.FormatDSN()
		}
	}

	// Nothing worked. Return as-is and let the connect call give a clear error.
	return dsn
}

// sanitizeURLDSN parses a DSN that begins with a scheme (e.g.
// postgres://user:p@ss#word@host/db) and re-encodes the password so the URL
// library can parse it unambiguously.
func sanitizeURLDSN(dsn string) string {
	schemeEnd := strings.Index(dsn, "://")
	if schemeEnd < 0 {
		return dsn
	}

	// Already-valid URLs pass through untouched so percent-encoded passwords
	// are not encoded twice.
	if _, err := url.Parse(dsn); err == nil {
		return dsn
	}

	scheme := dsn[:schemeEnd]
	rest := dsn[schemeEnd+3:]

	query := ""
	if qi := strings.IndexByte(rest, '?'); qi >= 0 {
		query = rest[qi:]
		rest = rest[:qi]
	}

	// Everything before the LAST '@' is userinfo.
	atIdx := strings.LastIndex(rest, "@")
	if atIdx < 0 {
		return dsn
	}

	userinfo := rest[:atIdx]
	hostpath := rest[atIdx+1:]

	user := userinfo
	pass := ""
	if ci := strings.IndexByte(userinfo, ':'); ci >= 0 {
		user = userinfo[:ci]
		pass = userinfo[ci+1:]
	}

	// url.UserPassword applies userinfo encoding, which escapes @ and #;
	// PathEscape would leave them alone.
	return scheme + "://" + url.UserPassword(user, pass).String() + "@" + hostpath + query
}
