// Package policy resolves a configured validation mode against a drift
// report. Modes form a severity ladder: silent < warn < error < raise.
// Note that only raise halts application boot; error is stricter than warn
// in log level only, never in action.
package policy

import (
	"strings"

	"github.com/tableguard/tableguard/internal/inspector"
	"github.com/tableguard/tableguard/internal/model"
)

// OutcomeKind enumerates what the caller should do with a drift report.
type OutcomeKind string

const (
	// Continue means initialization proceeds silently.
	Continue OutcomeKind = "continue"
	// LogWarning means initialization proceeds after a warning log.
	LogWarning OutcomeKind = "log_warning"
	// LogError means initialization proceeds after an error log.
	LogError OutcomeKind = "log_error"
	// Fail means initialization must abort with a configuration error.
	Fail OutcomeKind = "fail"
)

// Outcome is the policy decision plus the message to log or fail with.
type Outcome struct {
	Kind    OutcomeKind
	Message string
}

// Tags a custom CheckFunc may return. Any other non-empty string is used as a
// custom failure message; an empty string is treated like TagError.
const (
	TagContinue = "continue"
	TagError    = "error"
)

// CheckFunc is user-supplied decision logic invoked with the missing-table
// list. Its return value selects the outcome per the tag contract above.
type CheckFunc func(missing []inspector.DriftEntry) string

// Mode is a tagged validation-mode value: one of the built-in severities or a
// custom callback. The zero value is invalid; use Parse or Custom.
type Mode struct {
	name  string
	check CheckFunc
}

// Built-in modes.
var (
	Silent = Mode{name: "silent"}
	Warn   = Mode{name: "warn"}
	Error  = Mode{name: "error"}
	Raise  = Mode{name: "raise"}
)

// Custom wraps user-supplied decision logic in a Mode.
func Custom(fn CheckFunc) Mode {
	return Mode{name: "custom", check: fn}
}

// Parse maps a configuration string to a built-in Mode. Unrecognized values
// are a configuration error, reported at setup time rather than first drift.
func Parse(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "silent":
		return Silent, nil
	case "warn", "warning":
		return Warn, nil
	case "error":
		return Error, nil
	case "raise":
		return Raise, nil
	default:
		return Mode{}, model.NewConfigurationError("Invalid table_guard_mode: %s", s)
	}
}

// IsZero reports whether the mode is the (invalid) zero value. Mode holds a
// func field, so callers cannot compare with == directly.
func (m Mode) IsZero() bool {
	return m.name == "" && m.check == nil
}

// String returns the mode's configuration name, or "<unset>" for the zero value.
func (m Mode) String() string {
	if m.name == "" {
		return "<unset>"
	}
	return m.name
}

func (m Mode) valid() bool {
	switch m.name {
	case "silent", "warn", "error", "raise":
		return true
	case "custom":
		return m.check != nil
	}
	return false
}

// Resolve evaluates a mode against the missing-table list. Mode validity is
// checked unconditionally, before the empty-drift shortcut, so a bad mode
// value fails fast even when no tables are missing.
func Resolve(mode Mode, missing []inspector.DriftEntry) (Outcome, error) {
	if !mode.valid() {
		return Outcome{}, model.NewConfigurationError("Invalid table_guard_mode: %s", mode)
	}

	if len(missing) == 0 {
		return Outcome{Kind: Continue}, nil
	}

	msg := MissingMessage(missing)
	switch mode.name {
	case "silent":
		return Outcome{Kind: Continue}, nil
	case "warn":
		return Outcome{Kind: LogWarning, Message: msg}, nil
	case "error":
		return Outcome{Kind: LogError, Message: msg}, nil
	case "raise":
		return Outcome{Kind: Fail, Message: msg}, nil
	default: // custom
		switch result := mode.check(missing); result {
		case TagContinue:
			return Outcome{Kind: Continue}, nil
		case TagError, "":
			return Outcome{Kind: Fail, Message: msg}, nil
		default:
			return Outcome{Kind: Fail, Message: result}, nil
		}
	}
}

// MissingMessage renders the standard generated message: a summary header
// followed by one line per missing table.
func MissingMessage(missing []inspector.DriftEntry) string {
	var b strings.Builder
	b.WriteString("Missing required database tables:")
	for _, e := range missing {
		b.WriteString("\n  ")
		b.WriteString(e.Describe())
	}
	return b.String()
}
