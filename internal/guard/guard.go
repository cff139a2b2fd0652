// Package guard is the engine facade: it resolves the enabled features to a
// required-table specification, inspects a borrowed connection for drift,
// applies the configured validation and remediation policies, and exposes the
// read-only reporting surface operators query.
//
// The guard runs at initialization time (library bootstrap or an operator
// command), never on a request hot path. It holds no cache: every reporting
// call re-queries the database so schema changes between reloads are seen.
package guard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/tableguard/tableguard/internal/connector"
	"github.com/tableguard/tableguard/internal/inspector"
	"github.com/tableguard/tableguard/internal/model"
	"github.com/tableguard/tableguard/internal/policy"
	"github.com/tableguard/tableguard/internal/registry"
)

// RemediationMode selects what Check does about missing tables.
type RemediationMode string

const (
	// RemediationNone detects and reports only.
	RemediationNone RemediationMode = "none"
	// RemediationLog prints the generated DDL without applying it.
	RemediationLog RemediationMode = "log"
	// RemediationMigration writes the DDL to a timestamped migration file.
	RemediationMigration RemediationMode = "migration"
	// RemediationCreate executes the create statements immediately.
	RemediationCreate RemediationMode = "create"
	// RemediationSync drops and recreates every required table. Destructive;
	// dev/test only.
	RemediationSync RemediationMode = "sync"
)

// ParseRemediation maps a configuration string to a RemediationMode.
func ParseRemediation(s string) (RemediationMode, error) {
	switch m := RemediationMode(strings.ToLower(strings.TrimSpace(s))); m {
	case RemediationNone, RemediationLog, RemediationMigration, RemediationCreate, RemediationSync:
		return m, nil
	case "":
		return RemediationNone, nil
	default:
		return "", model.NewConfigurationError("Invalid table_guard_remediation: %s", s)
	}
}

// Config is the process-wide guard configuration, set once at setup time and
// read thereafter.
type Config struct {
	// Prefix is the table-name prefix; empty means "account".
	Prefix string
	// Features is the enabled-feature set, in activation order.
	Features []string
	// Mode is the validation mode. The zero value defaults to policy.Warn so
	// embedding the guard without explicit configuration stays non-fatal.
	Mode policy.Mode
	// Remediation selects the drift response; empty means none.
	Remediation RemediationMode
	// MigrationsDir receives generated migration files; defaults to "migrations".
	MigrationsDir string
	// Registry overrides the built-in feature set, e.g. to add third-party
	// feature tables via registry.Register. Nil means registry.Default().
	Registry *registry.Registry
}

// Conn is the slice of connector.Connector the guard actually uses. The
// connection is borrowed: the guard never closes it.
type Conn interface {
	TableNames(ctx context.Context) ([]string, error)
	ExecDDL(ctx context.Context, stmt string) error
	Dialect() model.Dialect
}

var _ Conn = (connector.Connector)(nil)

// Guard inspects and reconciles one database against one feature set.
type Guard struct {
	cfg    Config
	specs  []model.TableSpec
	conn   Conn
	logger *slog.Logger
}

// New resolves the feature set eagerly so configuration mistakes (unknown
// feature, empty feature list) fail at setup time, not at first inspection.
func New(cfg Config, conn Conn, logger *slog.Logger) (*Guard, error) {
	if cfg.Prefix == "" {
		cfg.Prefix = registry.DefaultPrefix
	}
	if cfg.Mode.IsZero() {
		cfg.Mode = policy.Warn
	}
	if cfg.Remediation == "" {
		cfg.Remediation = RemediationNone
	}
	if cfg.MigrationsDir == "" {
		cfg.MigrationsDir = "migrations"
	}
	if cfg.Registry == nil {
		cfg.Registry = registry.Default()
	}
	if logger == nil {
		logger = slog.Default()
	}

	specs, err := cfg.Registry.Resolve(cfg.Prefix, cfg.Features...)
	if err != nil {
		return nil, err
	}

	return &Guard{cfg: cfg, specs: specs, conn: conn, logger: logger}, nil
}

// TableConfiguration returns the resolved spec set with metadata.
func (g *Guard) TableConfiguration() []model.TableSpec {
	out := make([]model.TableSpec, len(g.specs))
	copy(out, g.specs)
	return out
}

// AllRequiredTables returns the resolved table names only, in declaration order.
func (g *Guard) AllRequiredTables() []string {
	names := make([]string, len(g.specs))
	for i, s := range g.specs {
		names[i] = s.Name
	}
	return names
}

// TableStatus returns the full per-table existence report. Recomputed on
// every call; never fails for normal "tables missing" states.
func (g *Guard) TableStatus(ctx context.Context) ([]inspector.DriftEntry, error) {
	return inspector.Inspect(ctx, g.specs, g.conn)
}

// MissingTables returns the drift entries whose tables do not exist.
func (g *Guard) MissingTables(ctx context.Context) ([]inspector.DriftEntry, error) {
	entries, err := inspector.Inspect(ctx, g.specs, g.conn)
	if err != nil {
		return nil, err
	}
	return inspector.Missing(entries), nil
}

// Prefix returns the resolved table-name prefix.
func (g *Guard) Prefix() string { return g.cfg.Prefix }

// Features returns the configured feature tags.
func (g *Guard) Features() []string {
	out := make([]string, len(g.cfg.Features))
	copy(out, g.cfg.Features)
	return out
}

func (g *Guard) String() string {
	return fmt.Sprintf("guard(prefix=%s, features=%s, mode=%s, remediation=%s)",
		g.cfg.Prefix, strings.Join(g.cfg.Features, ","), g.cfg.Mode, g.cfg.Remediation)
}
