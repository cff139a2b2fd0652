// Package inspector compares a resolved table-spec set against a live
// database catalog. Every call re-queries the catalog; nothing is cached, so
// operators always see current state even across development reloads.
package inspector

import (
	"context"
	"fmt"

	"github.com/tableguard/tableguard/internal/model"
)

// Catalog is the minimal view of a database the inspector needs: the names of
// the tables that currently exist. The connection is borrowed from the caller
// and never closed here.
type Catalog interface {
	TableNames(ctx context.Context) ([]string, error)
}

// DriftEntry is the comparison result for one required table. Entries are
// value objects produced fresh per inspection and carry a back-reference to
// the spec for structure and feature lookup.
type DriftEntry struct {
	Spec   model.TableSpec `json:"spec" yaml:"spec"`
	Exists bool            `json:"exists" yaml:"exists"`
}

// Describe renders the log form used by policy messages:
// "<table> (feature: <feature>, method: <method>)".
func (e DriftEntry) Describe() string {
	return fmt.Sprintf("%s (feature: %s, method: %s)", e.Spec.Name, e.Spec.Feature, e.Spec.Method)
}

// Inspect reports, for each spec, whether its table exists in the catalog.
// If the catalog cannot be read (e.g. missing permissions) every table is
// conservatively reported missing AND the underlying error is returned; the
// caller decides whether to treat that as fatal.
func Inspect(ctx context.Context, specs []model.TableSpec, catalog Catalog) ([]DriftEntry, error) {
	entries := make([]DriftEntry, len(specs))
	for i, spec := range specs {
		entries[i] = DriftEntry{Spec: spec}
	}

	names, err := catalog.TableNames(ctx)
	if err != nil {
		return entries, fmt.Errorf("list tables: %w", err)
	}

	existing := make(map[string]bool, len(names))
	for _, name := range names {
		existing[name] = true
	}
	for i := range entries {
		entries[i].Exists = existing[entries[i].Spec.Name]
	}
	return entries, nil
}

// AsMissing wraps specs as drift entries with Exists forced false, for DDL
// generation paths that work without a live database (e.g. the migration
// generator CLI).
func AsMissing(specs []model.TableSpec) []DriftEntry {
	entries := make([]DriftEntry, len(specs))
	for i, spec := range specs {
		entries[i] = DriftEntry{Spec: spec}
	}
	return entries
}

// Missing filters entries to those whose table does not exist.
func Missing(entries []DriftEntry) []DriftEntry {
	var missing []DriftEntry
	for _, e := range entries {
		if !e.Exists {
			missing = append(missing, e)
		}
	}
	return missing
}
