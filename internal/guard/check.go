package guard

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/tableguard/tableguard/internal/ddl"
	"github.com/tableguard/tableguard/internal/inspector"
	"github.com/tableguard/tableguard/internal/model"
	"github.com/tableguard/tableguard/internal/policy"
)

// Check is the bootstrap entry point: inspect, remediate when configured to,
// resolve the validation policy, and log or fail accordingly.
//
// create/sync remediation runs before policy resolution and re-inspects, so a
// successful auto-create boots clean even under raise mode. log/migration
// remediation runs after a non-fatal outcome: those modes are advisory and
// the decision should reflect the drift actually found.
//
// The returned error is a *model.ConfigurationError for policy failures and
// a *model.ExecutionError (wrapped) for remediation failures.
func (g *Guard) Check(ctx context.Context) error {
	runID := uuid.New().String()
	log := g.logger.With("run_id", runID)

	entries, err := inspector.Inspect(ctx, g.specs, g.conn)
	if err != nil {
		return fmt.Errorf("inspect required tables: %w", err)
	}
	missing := inspector.Missing(entries)

	if len(missing) > 0 {
		switch g.cfg.Remediation {
		case RemediationCreate:
			if err := g.createMissing(ctx, missing, log); err != nil {
				return err
			}
		case RemediationSync:
			if err := g.syncAll(ctx, log); err != nil {
				return err
			}
		}
		if g.cfg.Remediation == RemediationCreate || g.cfg.Remediation == RemediationSync {
			entries, err = inspector.Inspect(ctx, g.specs, g.conn)
			if err != nil {
				return fmt.Errorf("re-inspect after remediation: %w", err)
			}
			missing = inspector.Missing(entries)
		}
	}

	outcome, err := policy.Resolve(g.cfg.Mode, missing)
	if err != nil {
		return err
	}

	switch outcome.Kind {
	case policy.LogWarning:
		log.Warn(outcome.Message, "missing", len(missing))
	case policy.LogError:
		log.Error(outcome.Message, "missing", len(missing))
	case policy.Fail:
		return &model.ConfigurationError{Message: outcome.Message}
	}

	if len(missing) > 0 {
		switch g.cfg.Remediation {
		case RemediationLog:
			gen := g.generator(missing)
			log.Info("generated DDL for missing tables",
				"tables", strings.Join(gen.Tables(), ","), "sql", gen.CreateSQL())
		case RemediationMigration:
			path, err := g.WriteMigration(missing)
			if err != nil {
				return err
			}
			log.Info("wrote migration for missing tables", "path", path)
		}
	}

	return nil
}

// CreateMissing generates and executes create statements for the currently
// missing tables. Explicit operator action; also used by create remediation.
func (g *Guard) CreateMissing(ctx context.Context) error {
	missing, err := g.MissingTables(ctx)
	if err != nil {
		return err
	}
	return g.createMissing(ctx, missing, g.logger)
}

// DropAll drops every required table in reverse dependency order. Destructive
// cleanup for sync mode and dev/test tooling.
func (g *Guard) DropAll(ctx context.Context) error {
	gen := g.generator(inspector.AsMissing(g.specs))
	g.logger.Warn("dropping required tables", "tables", strings.Join(gen.Tables(), ","))
	return ddl.ExecuteDrops(ctx, gen, g.conn)
}

// GenerateMigration renders the up/down migration text for every required
// table (independent of live state, so it works without inspecting).
func (g *Guard) GenerateMigration() string {
	return g.generator(inspector.AsMissing(g.specs)).Migration()
}

// WriteMigration writes a migration covering the given drift entries to the
// configured migrations directory and returns its path.
func (g *Guard) WriteMigration(missing []inspector.DriftEntry) (string, error) {
	label := strings.Join(g.cfg.Features, "_")
	return g.generator(missing).WriteMigration(g.cfg.MigrationsDir, label)
}

func (g *Guard) createMissing(ctx context.Context, missing []inspector.DriftEntry, log *slog.Logger) error {
	if len(missing) == 0 {
		return nil
	}
	gen := g.generator(missing)
	log.Info("creating missing tables", "tables", strings.Join(gen.Tables(), ","))
	return ddl.ExecuteCreates(ctx, gen, g.conn)
}

func (g *Guard) syncAll(ctx context.Context, log *slog.Logger) error {
	gen := g.generator(inspector.AsMissing(g.specs))
	log.Info("syncing required tables (drop and recreate)",
		"tables", strings.Join(gen.Tables(), ","))
	if err := ddl.ExecuteDrops(ctx, gen, g.conn); err != nil {
		return err
	}
	return ddl.ExecuteCreates(ctx, gen, g.conn)
}

func (g *Guard) generator(entries []inspector.DriftEntry) *ddl.Generator {
	return ddl.NewGenerator(g.conn.Dialect(), g.cfg.Prefix, entries)
}
