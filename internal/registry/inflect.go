package registry

import "strings"

// Pluralize applies the trivial English suffix rule: append a trailing "s"
// unless one is already present. This is deliberately a best-effort inflector
// kept for naming compatibility; irregular plurals ("person", "mouse") are
// out of scope and callers needing them should pass an already-plural prefix.
func Pluralize(s string) string {
	if strings.HasSuffix(s, "s") {
		return s
	}
	return s + "s"
}

// Singularize strips a trailing "s" if present. Same limitation as Pluralize.
func Singularize(s string) string {
	return strings.TrimSuffix(s, "s")
}
