package model

import "strings"

// TableKind classifies a required table for dependency ordering.
type TableKind string

const (
	// KindPrimary marks the account-holding table that every feature table
	// references. Created first, dropped last.
	KindPrimary TableKind = "primary"
	// KindFeature marks a table owned by a single feature.
	KindFeature TableKind = "feature"
)

// ColumnType is a semantic column type, mapped to a concrete SQL type per
// dialect by the DDL generator.
type ColumnType string

const (
	TypeInteger   ColumnType = "integer"
	TypeBigint    ColumnType = "bigint"
	TypeString    ColumnType = "string" // short text, varchar(255)
	TypeText      ColumnType = "text"
	TypeEmail     ColumnType = "email" // citext on postgres when available
	TypeTimestamp ColumnType = "timestamp"
	TypeDate      ColumnType = "date"
	TypeJSON      ColumnType = "json"
)

// TableSpec describes one table a feature requires. Specs are declared as
// templates (table and column names may contain %singular%/%plural%
// placeholders) and resolved against a name prefix before use.
type TableSpec struct {
	// Method is the symbolic handle identifying the table's role within its
	// feature, e.g. "accounts_table" or "otp_keys_table". Unique per feature.
	Method string `json:"method" yaml:"method"`
	// Feature is the owning feature tag, e.g. "base" or "webauthn".
	Feature string `json:"feature" yaml:"feature"`
	// Name is the table name, a template until resolved. Unique within a
	// resolved specification set.
	Name string `json:"table" yaml:"table"`
	// Kind drives create/drop ordering; empty means KindFeature unless the
	// resolved name matches the account/accounts naming pattern.
	Kind TableKind `json:"kind,omitempty" yaml:"kind,omitempty"`

	Columns     []Column     `json:"columns" yaml:"columns"`
	PrimaryKey  []string     `json:"primary_key" yaml:"primary_key"`
	ForeignKeys []ForeignKey `json:"foreign_keys,omitempty" yaml:"foreign_keys,omitempty"`
	Indexes     []Index      `json:"indexes,omitempty" yaml:"indexes,omitempty"`
}

// Column describes a single column of a required table.
type Column struct {
	Name            string     `json:"name" yaml:"name"`
	Type            ColumnType `json:"type" yaml:"type"`
	Nullable        bool       `json:"nullable,omitempty" yaml:"nullable,omitempty"`
	Default         string     `json:"default,omitempty" yaml:"default,omitempty"`
	IsAutoIncrement bool       `json:"is_auto_increment,omitempty" yaml:"is_auto_increment,omitempty"`
}

// ForeignKey describes a foreign key constraint. Column is modeled as an
// explicit field (not inferred from position) so features that override the
// account-id column name can do so independently of the rest of the template.
type ForeignKey struct {
	Column           string `json:"column" yaml:"column"`
	ReferencedTable  string `json:"referenced_table" yaml:"referenced_table"`
	ReferencedColumn string `json:"referenced_column" yaml:"referenced_column"`
	OnDelete         string `json:"on_delete,omitempty" yaml:"on_delete,omitempty"`
}

// Index describes an index on one or more columns. Where is an optional
// partial-index predicate, honored only on backends that support it.
type Index struct {
	Name     string   `json:"name" yaml:"name"`
	Columns  []string `json:"columns" yaml:"columns"`
	IsUnique bool     `json:"is_unique,omitempty" yaml:"is_unique,omitempty"`
	Where    string   `json:"where,omitempty" yaml:"where,omitempty"`
}

// IsPrimary reports whether the spec names the primary account table, either
// by explicit kind or because its resolved name matches the configured
// singular/plural account pattern.
func (s TableSpec) IsPrimary(singular, plural string) bool {
	if s.Kind == KindPrimary {
		return true
	}
	return strings.EqualFold(s.Name, singular) || strings.EqualFold(s.Name, plural)
}
