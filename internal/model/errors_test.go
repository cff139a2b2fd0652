package model

import (
	"errors"
	"strings"
	"testing"
)

func TestConfigurationError(t *testing.T) {
	err := NewConfigurationError("Invalid table_guard_mode: %s", "strict")
	if err.Error() != "Invalid table_guard_mode: strict" {
		t.Errorf("Error() = %q", err.Error())
	}

	var cfgErr *ConfigurationError
	if !errors.As(error(err), &cfgErr) {
		t.Error("errors.As failed for ConfigurationError")
	}
}

func TestExecutionError(t *testing.T) {
	cause := errors.New("relation already exists")
	err := NewExecutionError(`CREATE TABLE "accounts" (...)`, cause)

	if !errors.Is(err, cause) {
		t.Error("cause not reachable via errors.Is")
	}
	msg := err.Error()
	for _, want := range []string{"ddl execution failed", "relation already exists", `CREATE TABLE "accounts"`, "*errors.errorString"} {
		if !strings.Contains(msg, want) {
			t.Errorf("Error() = %q, missing %q", msg, want)
		}
	}
	// Stack excerpt names this test function.
	if !strings.Contains(msg, "TestExecutionError") {
		t.Errorf("Error() missing stack excerpt: %q", msg)
	}
}

func TestExecutionErrorTruncatesStatement(t *testing.T) {
	stmt := "CREATE TABLE t (" + strings.Repeat("c INTEGER, ", 50) + ")"
	err := NewExecutionError(stmt, errors.New("boom"))
	if len(err.Statement) != 203 || !strings.HasSuffix(err.Statement, "...") {
		t.Errorf("Statement len = %d, want 200 chars plus ellipsis", len(err.Statement))
	}
}

func TestIsPrimary(t *testing.T) {
	tests := []struct {
		spec TableSpec
		want bool
	}{
		{TableSpec{Name: "accounts"}, true},
		{TableSpec{Name: "account"}, true},
		{TableSpec{Name: "Accounts"}, true},
		{TableSpec{Name: "account_otp_keys"}, false},
		{TableSpec{Name: "members", Kind: KindPrimary}, true},
		{TableSpec{Name: "members"}, false},
	}
	for _, tt := range tests {
		if got := tt.spec.IsPrimary("account", "accounts"); got != tt.want {
			t.Errorf("IsPrimary(%q, kind=%q) = %v, want %v", tt.spec.Name, tt.spec.Kind, got, tt.want)
		}
	}
}
