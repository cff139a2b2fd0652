package postgres

import (
	"context"
	"fmt"
)

// TableNames returns all base-table names in the configured schema.
func (c *PostgresConnector) TableNames(ctx context.Context) ([]string, error) {
	const query = `SELECT table_name FROM information_schema.tables
		WHERE table_schema = $1 AND table_type = 'BASE TABLE'
		ORDER BY table_name`

	var names []string
	if err := c.db.SelectContext(ctx, &names, query, c.schemaName); err != nil {
		return nil, fmt.Errorf("get table names: %w", err)
	}
	return names, nil
}

// TableExists reports whether a named table exists in the configured schema.
func (c *PostgresConnector) TableExists(ctx context.Context, name string) (bool, error) {
	const query = `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = $1 AND table_name = $2 AND table_type = 'BASE TABLE')`

	var exists bool
	if err := c.db.GetContext(ctx, &exists, query, c.schemaName, name); err != nil {
		return false, fmt.Errorf("check table %q: %w", name, err)
	}
	return exists, nil
}
