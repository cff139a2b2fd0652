// Package registry maps authentication features to the database tables they
// require. Table specs are declared as templates with %singular%/%plural%
// placeholders and resolved against a configurable name prefix.
package registry

import (
	"sort"
	"strings"
	"sync"

	"github.com/tableguard/tableguard/internal/model"
)

// DefaultPrefix is the table-name prefix used when the caller supplies none.
const DefaultPrefix = "account"

// Placeholders recognized in table names, column names, foreign keys, and
// index definitions.
const (
	placeholderSingular = "%singular%"
	placeholderPlural   = "%plural%"
)

// Registry maps feature tags to their required table-spec templates.
type Registry struct {
	mu       sync.RWMutex
	features map[string][]model.TableSpec
}

// New creates an empty Registry. Most callers want Default instead.
func New() *Registry {
	return &Registry{features: make(map[string][]model.TableSpec)}
}

// Default returns a Registry preloaded with the built-in feature set.
func Default() *Registry {
	r := New()
	for feature, specs := range builtinTemplates() {
		r.Register(feature, specs...)
	}
	return r
}

// Register adds (or replaces) the table-spec templates for a feature. This is
// the extension point for third-party features that bring their own tables:
// registering under a new feature tag makes it resolvable like any built-in.
func (r *Registry) Register(feature string, specs ...model.TableSpec) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.features[feature] = specs
}

// Features returns the registered feature tags, sorted.
func (r *Registry) Features() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.features))
	for name := range r.features {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Feature returns the unresolved spec templates for one feature.
func (r *Registry) Feature(name string) ([]model.TableSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	specs, ok := r.features[name]
	if !ok {
		return nil, model.NewConfigurationError("No migration template for feature: %s", name)
	}
	return cloneSpecs(specs), nil
}

// Resolve returns the union of all required specs for the enabled features,
// with name templates resolved against prefix. The singular form is the
// prefix itself (default "account"); the plural form appends a trailing "s".
// Duplicate features are collapsed; declaration order is preserved so the
// primary table stays first for the base feature.
func (r *Registry) Resolve(prefix string, features ...string) ([]model.TableSpec, error) {
	if len(features) == 0 {
		return nil, model.NewConfigurationError("No features specified")
	}
	if prefix == "" {
		prefix = DefaultPrefix
	}
	singular := prefix
	plural := Pluralize(singular)

	var resolved []model.TableSpec
	seenFeature := make(map[string]bool)
	seenTable := make(map[string]string) // table name -> feature that claimed it
	for _, feature := range features {
		if seenFeature[feature] {
			continue
		}
		seenFeature[feature] = true

		templates, err := r.Feature(feature)
		if err != nil {
			return nil, err
		}
		for _, spec := range templates {
			expandSpec(&spec, singular, plural)
			if owner, dup := seenTable[spec.Name]; dup {
				return nil, model.NewConfigurationError(
					"Duplicate table %q required by features %s and %s", spec.Name, owner, feature)
			}
			seenTable[spec.Name] = feature
			resolved = append(resolved, spec)
		}
	}
	return resolved, nil
}

// expandSpec resolves placeholders in every name-bearing field of a spec.
func expandSpec(spec *model.TableSpec, singular, plural string) {
	spec.Name = expand(spec.Name, singular, plural)
	for i := range spec.Columns {
		spec.Columns[i].Name = expand(spec.Columns[i].Name, singular, plural)
	}
	for i := range spec.PrimaryKey {
		spec.PrimaryKey[i] = expand(spec.PrimaryKey[i], singular, plural)
	}
	for i := range spec.ForeignKeys {
		fk := &spec.ForeignKeys[i]
		fk.Column = expand(fk.Column, singular, plural)
		fk.ReferencedTable = expand(fk.ReferencedTable, singular, plural)
		fk.ReferencedColumn = expand(fk.ReferencedColumn, singular, plural)
	}
	for i := range spec.Indexes {
		idx := &spec.Indexes[i]
		idx.Name = expand(idx.Name, singular, plural)
		for j := range idx.Columns {
			idx.Columns[j] = expand(idx.Columns[j], singular, plural)
		}
		idx.Where = expand(idx.Where, singular, plural)
	}
}

func expand(s, singular, plural string) string {
	s = strings.ReplaceAll(s, placeholderPlural, plural)
	return strings.ReplaceAll(s, placeholderSingular, singular)
}

// cloneSpecs deep-copies spec templates so resolution never mutates the
// registry's stored definitions.
func cloneSpecs(specs []model.TableSpec) []model.TableSpec {
	out := make([]model.TableSpec, len(specs))
	for i, s := range specs {
		out[i] = s
		out[i].Columns = append([]model.Column(nil), s.Columns...)
		out[i].PrimaryKey = append([]string(nil), s.PrimaryKey...)
		out[i].ForeignKeys = append([]model.ForeignKey(nil), s.ForeignKeys...)
		out[i].Indexes = make([]model.Index, len(s.Indexes))
		for j, idx := range s.Indexes {
			out[i].Indexes[j] = idx
			out[i].Indexes[j].Columns = append([]string(nil), idx.Columns...)
		}
	}
	return out
}
