package sqlite

import (
	"context"
	"fmt"
)

// TableNames returns all table names in the database, excluding SQLite's
// internal tables.
func (c *SQLiteConnector) TableNames(ctx context.Context) ([]string, error) {
	const query = `SELECT name FROM sqlite_master
		WHERE type = 'table' AND name NOT LIKE 'sqlite_%'
		ORDER BY name`

	var names []string
	if err := c.db.SelectContext(ctx, &names, query); err != nil {
		return nil, fmt.Errorf("get table names: %w", err)
	}
	return names, nil
}

// TableExists reports whether a named table exists.
func (c *SQLiteConnector) TableExists(ctx context.Context, name string) (bool, error) {
	const query = `SELECT COUNT(*) FROM sqlite_master
		WHERE type = 'table' AND name = ?`

	var count int
	if err := c.db.GetContext(ctx, &count, query, name); err != nil {
		return false, fmt.Errorf("check table %q: %w", name, err)
	}
	return count > 0, nil
}
