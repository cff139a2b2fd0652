package policy

import (
	"errors"
	"strings"
	"testing"

	"github.com/tableguard/tableguard/internal/inspector"
	"github.com/tableguard/tableguard/internal/model"
)

func missingFixture() []inspector.DriftEntry {
	return []inspector.DriftEntry{
		{Spec: model.TableSpec{Name: "accounts", Feature: "base", Method: "accounts_table"}},
		{Spec: model.TableSpec{Name: "account_otp_keys", Feature: "otp", Method: "otp_keys_table"}},
	}
}

// Empty drift yields Continue regardless of mode.
func TestResolveEmptyDrift(t *testing.T) {
	modes := []Mode{Silent, Warn, Error, Raise, Custom(func([]inspector.DriftEntry) string {
		t.Fatal("callback must not run with empty drift")
		return TagError
	})}
	for _, mode := range modes {
		outcome, err := Resolve(mode, nil)
		if err != nil {
			t.Fatalf("mode %s: %v", mode, err)
		}
		if outcome.Kind != Continue {
			t.Errorf("mode %s: kind = %s, want continue", mode, outcome.Kind)
		}
	}
}

// Severity ladder: only raise produces a failing outcome.
func TestResolveSeverityLadder(t *testing.T) {
	tests := []struct {
		mode Mode
		want OutcomeKind
	}{
		{Silent, Continue},
		{Warn, LogWarning},
		{Error, LogError},
		{Raise, Fail},
	}
	for _, tt := range tests {
		outcome, err := Resolve(tt.mode, missingFixture())
		if err != nil {
			t.Fatalf("mode %s: %v", tt.mode, err)
		}
		if outcome.Kind != tt.want {
			t.Errorf("mode %s: kind = %s, want %s", tt.mode, outcome.Kind, tt.want)
		}
		if tt.want != Continue && !strings.Contains(outcome.Message, "Missing required database tables") {
			t.Errorf("mode %s: message missing header: %q", tt.mode, outcome.Message)
		}
	}
}

func TestMissingMessageFormat(t *testing.T) {
	msg := MissingMessage(missingFixture())
	wantLines := []string{
		"Missing required database tables:",
		"  accounts (feature: base, method: accounts_table)",
		"  account_otp_keys (feature: otp, method: otp_keys_table)",
	}
	if got := strings.Split(msg, "\n"); len(got) != len(wantLines) {
		t.Fatalf("message = %q", msg)
	} else {
		for i, want := range wantLines {
			if got[i] != want {
				t.Errorf("line %d = %q, want %q", i, got[i], want)
			}
		}
	}
}

func TestResolveCustomContinue(t *testing.T) {
	mode := Custom(func(missing []inspector.DriftEntry) string {
		if len(missing) != 2 {
			t.Errorf("callback saw %d entries, want 2", len(missing))
		}
		return TagContinue
	})
	outcome, err := Resolve(mode, missingFixture())
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != Continue {
		t.Errorf("kind = %s, want continue", outcome.Kind)
	}
}

func TestResolveCustomError(t *testing.T) {
	outcome, err := Resolve(Custom(func([]inspector.DriftEntry) string { return TagError }), missingFixture())
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != Fail {
		t.Fatalf("kind = %s, want fail", outcome.Kind)
	}
	if !strings.Contains(outcome.Message, "Missing required database tables") {
		t.Errorf("expected standard message, got %q", outcome.Message)
	}
}

func TestResolveCustomStringOverride(t *testing.T) {
	outcome, err := Resolve(Custom(func([]inspector.DriftEntry) string {
		return "run rake db:migrate before booting"
	}), missingFixture())
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != Fail {
		t.Fatalf("kind = %s, want fail", outcome.Kind)
	}
	if outcome.Message != "run rake db:migrate before booting" {
		t.Errorf("message = %q, want the callback's exact string", outcome.Message)
	}
}

// An empty callback return is not one of the documented shapes; it fails with
// the standard message rather than being read as approval.
func TestResolveCustomEmptyReturn(t *testing.T) {
	outcome, err := Resolve(Custom(func([]inspector.DriftEntry) string { return "" }), missingFixture())
	if err != nil {
		t.Fatal(err)
	}
	if outcome.Kind != Fail || !strings.Contains(outcome.Message, "Missing required database tables") {
		t.Errorf("outcome = %+v, want fail with standard message", outcome)
	}
}

// Mode validity is checked unconditionally, even with zero missing tables.
func TestResolveInvalidMode(t *testing.T) {
	for _, missing := range [][]inspector.DriftEntry{nil, missingFixture()} {
		_, err := Resolve(Mode{}, missing)
		if err == nil {
			t.Fatal("expected error for zero-value mode")
		}
		var cfgErr *model.ConfigurationError
		if !errors.As(err, &cfgErr) {
			t.Fatalf("expected ConfigurationError, got %T", err)
		}
		if !strings.Contains(err.Error(), "Invalid table_guard_mode") {
			t.Errorf("error = %q", err.Error())
		}
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"silent", "silent", false},
		{"warn", "warn", false},
		{"warning", "warn", false},
		{"ERROR", "error", false},
		{" raise ", "raise", false},
		{"strict", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		mode, err := Parse(tt.in)
		if tt.wantErr {
			if err == nil {
				t.Errorf("Parse(%q): expected error", tt.in)
			} else if !strings.Contains(err.Error(), "Invalid table_guard_mode") {
				t.Errorf("Parse(%q) error = %q", tt.in, err.Error())
			}
			continue
		}
		if err != nil {
			t.Errorf("Parse(%q): %v", tt.in, err)
			continue
		}
		if mode.String() != tt.want {
			t.Errorf("Parse(%q) = %s, want %s", tt.in, mode, tt.want)
		}
	}
}
