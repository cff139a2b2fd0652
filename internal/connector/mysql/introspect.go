package mysql

import (
	"context"
	"fmt"
)

// TableNames returns all base-table names in the configured schema.
func (c *MySQLConnector) TableNames(ctx context.Context) ([]string, error) {
	const query = `SELECT TABLE_NAME FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_TYPE = 'BASE TABLE'
		ORDER BY TABLE_NAME`

	var names []string
	if err := c.db.SelectContext(ctx, &names, query, c.schemaName); err != nil {
		return nil, fmt.Errorf("get table names: %w", err)
	}
	return names, nil
}

// TableExists reports whether a named table exists in the configured schema.
func (c *MySQLConnector) TableExists(ctx context.Context, name string) (bool, error) {
	const query = `SELECT COUNT(*) FROM INFORMATION_SCHEMA.TABLES
		WHERE TABLE_SCHEMA = ? AND TABLE_NAME = ? AND TABLE_TYPE = 'BASE TABLE'`

	var count int
	if err := c.db.GetContext(ctx, &count, query, c.schemaName, name); err != nil {
		return false, fmt.Errorf("check table %q: %w", name, err)
	}
	return count > 0, nil
}
