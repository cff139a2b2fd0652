package ddl

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"time"
)

// nowFunc is swapped out by tests for deterministic filenames.
var nowFunc = time.Now

// Migration wraps the create statements in an up block and the drop
// statements in a down block, goose-style. Goose runs each migration inside a
// single transaction, so applied migrations are atomic where the backend
// supports transactional DDL.
func (g *Generator) Migration() string {
	var b strings.Builder
	b.WriteString("-- +goose Up\n")
	b.WriteString(g.CreateSQL())
	b.WriteString("\n-- +goose Down\n")
	b.WriteString(g.DropSQL())
	return b.String()
}

var labelCleaner = regexp.MustCompile(`[^a-z0-9_]+`)

// WriteMigration writes the migration to dir as
// <YYYYMMDDHHMMSS>_create_<label>.sql and returns the full path. The
// directory is created if needed.
func (g *Generator) WriteMigration(dir, label string) (string, error) {
	label = labelCleaner.ReplaceAllString(strings.ToLower(label), "_")
	label = strings.Trim(label, "_")
	if label == "" {
		label = "tables"
	}

	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create migrations dir: %w", err)
	}

	name := fmt.Sprintf("%s_create_%s.sql", nowFunc().UTC().Format("20060102150405"), label)
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(g.Migration()), 0o644); err != nil {
		return "", fmt.Errorf("write migration: %w", err)
	}
	return path, nil
}
