package ddl

import (
	"context"

	"github.com/tableguard/tableguard/internal/model"
)

// Executor applies DDL text against a live connection. The connection is
// borrowed from the caller; nothing here closes or pools it.
type Executor interface {
	ExecDDL(ctx context.Context, stmt string) error
}

// ExecuteCreates applies the create statements directly, fail-fast. The run
// is NOT transactional across statements: if table N of M fails, tables
// before N remain created. That partial state is deliberately left visible;
// the operator re-runs the (idempotent at the statement level) creates after
// fixing the cause rather than the engine attempting rollback.
func ExecuteCreates(ctx context.Context, g *Generator, exec Executor) error {
	return executeAll(ctx, g.CreateStatements(), exec)
}

// ExecuteDrops applies the drop statements, reverse dependency order.
// Destructive; intended for sync mode in dev/test environments only.
func ExecuteDrops(ctx context.Context, g *Generator, exec Executor) error {
	return executeAll(ctx, g.DropStatements(), exec)
}

func executeAll(ctx context.Context, stmts []string, exec Executor) error {
	for _, stmt := range stmts {
		if err := exec.ExecDDL(ctx, stmt); err != nil {
			return model.NewExecutionError(stmt, err)
		}
	}
	return nil
}
