// Package ddl turns missing-table specs into CREATE/DROP statements across
// the postgres, mysql, and sqlite dialects. Statement generation works from a
// plain Dialect value and never needs a live connection; only execution does.
package ddl

import (
	"sort"
	"strings"

	"github.com/tableguard/tableguard/internal/inspector"
	"github.com/tableguard/tableguard/internal/model"
	"github.com/tableguard/tableguard/internal/registry"
)

// Generator produces dependency-ordered DDL for a set of missing tables.
type Generator struct {
	dialect model.Dialect
	prefix  string
	ordered []model.TableSpec // primary tables first
}

// NewGenerator orders the missing entries so primary (account-pattern) tables
// come first; drops reverse this order to respect foreign-key constraints.
// The prefix is the same table-name prefix the specs were resolved with and
// is only used to recognize the account-pattern name; empty means "account".
func NewGenerator(dialect model.Dialect, prefix string, missing []inspector.DriftEntry) *Generator {
	if prefix == "" {
		prefix = registry.DefaultPrefix
	}
	singular := prefix
	plural := registry.Pluralize(prefix)

	ordered := make([]model.TableSpec, 0, len(missing))
	for _, e := range missing {
		ordered = append(ordered, e.Spec)
	}
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].IsPrimary(singular, plural) && !ordered[j].IsPrimary(singular, plural)
	})

	return &Generator{dialect: dialect, prefix: prefix, ordered: ordered}
}

// Tables returns the create-ordered table names.
func (g *Generator) Tables() []string {
	names := make([]string, len(g.ordered))
	for i, spec := range g.ordered {
		names[i] = spec.Name
	}
	return names
}

// CreateStatements returns one CREATE TABLE statement per missing table
// (columns in declared order, primary key, then foreign keys) followed by its
// CREATE INDEX statements, in dependency order.
func (g *Generator) CreateStatements() []string {
	var stmts []string
	for _, spec := range g.ordered {
		stmts = append(stmts, g.createTable(spec))
		for _, idx := range spec.Indexes {
			stmts = append(stmts, g.createIndex(spec, idx))
		}
	}
	return stmts
}

// DropStatements returns idempotent DROP TABLE IF EXISTS statements in
// reverse dependency order (feature tables first, primary last). Indexes go
// down with their tables on all three backends.
func (g *Generator) DropStatements() []string {
	stmts := make([]string, 0, len(g.ordered))
	for i := len(g.ordered) - 1; i >= 0; i-- {
		stmts = append(stmts, "DROP TABLE IF EXISTS "+g.quote(g.ordered[i].Name))
	}
	return stmts
}

// CreateSQL renders the create statements as a single script.
func (g *Generator) CreateSQL() string { return script(g.CreateStatements()) }

// DropSQL renders the drop statements as a single script.
func (g *Generator) DropSQL() string { return script(g.DropStatements()) }

func script(stmts []string) string {
	if len(stmts) == 0 {
		return ""
	}
	return strings.Join(stmts, ";\n\n") + ";\n"
}

func (g *Generator) createTable(spec model.TableSpec) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(g.quote(spec.Name))
	b.WriteString(" (\n")

	inlinePK := false
	for i, col := range spec.Columns {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString("  ")
		b.WriteString(g.quote(col.Name))
		b.WriteString(" ")

		// SQLite auto-increment only works as an inline INTEGER PRIMARY KEY.
		if col.IsAutoIncrement && g.dialect.Driver == "sqlite" {
			b.WriteString("INTEGER PRIMARY KEY AUTOINCREMENT")
			inlinePK = true
			continue
		}

		b.WriteString(g.columnType(col))
		if col.IsAutoIncrement && g.dialect.Driver == "mysql" {
			b.WriteString(" NOT NULL AUTO_INCREMENT")
		} else if !col.Nullable && !col.IsAutoIncrement {
			b.WriteString(" NOT NULL")
		}
		if col.Default != "" {
			b.WriteString(" DEFAULT ")
			b.WriteString(g.defaultExpr(col))
		}
	}

	if len(spec.PrimaryKey) > 0 && !inlinePK {
		b.WriteString(",\n  PRIMARY KEY (")
		b.WriteString(g.quoteList(spec.PrimaryKey))
		b.WriteString(")")
	}

	for _, fk := range spec.ForeignKeys {
		b.WriteString(",\n  FOREIGN KEY (")
		b.WriteString(g.quote(fk.Column))
		b.WriteString(") REFERENCES ")
		b.WriteString(g.quote(fk.ReferencedTable))
		b.WriteString(" (")
		b.WriteString(g.quote(fk.ReferencedColumn))
		b.WriteString(")")
		if fk.OnDelete != "" {
			b.WriteString(" ON DELETE ")
			b.WriteString(fk.OnDelete)
		}
	}

	b.WriteString("\n)")
	return b.String()
}

func (g *Generator) createIndex(spec model.TableSpec, idx model.Index) string {
	var b strings.Builder
	b.WriteString("CREATE ")
	if idx.IsUnique {
		b.WriteString("UNIQUE ")
	}
	b.WriteString("INDEX ")
	b.WriteString(g.quote(idx.Name))
	b.WriteString(" ON ")
	b.WriteString(g.quote(spec.Name))
	b.WriteString(" (")
	b.WriteString(g.quoteList(idx.Columns))
	b.WriteString(")")
	// MySQL has no partial indexes; a full unique index is the substitute.
	if idx.Where != "" && g.dialect.SupportsPartialIndexes {
		b.WriteString(" WHERE ")
		b.WriteString(idx.Where)
	}
	return b.String()
}

func (g *Generator) quote(name string) string {
	if g.dialect.Driver == "mysql" {
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	}
	return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
}

func (g *Generator) quoteList(names []string) string {
	quoted := make([]string, len(names))
	for i, n := range names {
		quoted[i] = g.quote(n)
	}
	return strings.Join(quoted, ", ")
}

// columnType maps a semantic column type onto the dialect's SQL type.
func (g *Generator) columnType(col model.Column) string {
	switch col.Type {
	case model.TypeInteger:
		return "INTEGER"
	case model.TypeBigint:
		// 64-bit keys everywhere except SQLite, whose INTEGER affinity is
		// already 64-bit and required for rowid aliasing.
		if g.dialect.Driver == "sqlite" {
			return "INTEGER"
		}
		if col.IsAutoIncrement && g.dialect.Driver == "postgres" {
			return "BIGSERIAL"
		}
		return "BIGINT"
	case model.TypeString:
		if g.dialect.Driver == "sqlite" {
			return "TEXT"
		}
		return "VARCHAR(255)"
	case model.TypeText:
		return "TEXT"
	case model.TypeEmail:
		if g.dialect.Driver == "postgres" && g.dialect.SupportsCitext {
			return "CITEXT"
		}
		if g.dialect.Driver == "sqlite" {
			return "TEXT"
		}
		return "VARCHAR(255)"
	case model.TypeTimestamp:
		switch g.dialect.Driver {
		case "mysql":
			if g.dialect.SupportsFractionalSeconds {
				return "DATETIME(6)"
			}
			return "DATETIME"
		default:
			return "TIMESTAMP"
		}
	case model.TypeDate:
		return "DATE"
	case model.TypeJSON:
		switch g.dialect.Driver {
		case "postgres":
			return "JSONB"
		case "mysql":
			return "JSON"
		default:
			return "TEXT"
		}
	default:
		return "TEXT"
	}
}

// defaultExpr adjusts default expressions for dialect quirks, notably MySQL's
// fractional-second timestamp precision.
func (g *Generator) defaultExpr(col model.Column) string {
	if col.Default == "CURRENT_TIMESTAMP" && g.dialect.Driver == "mysql" && g.dialect.SupportsFractionalSeconds {
		return "CURRENT_TIMESTAMP(6)"
	}
	return col.Default
}
