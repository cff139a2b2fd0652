package registry

import (
	"errors"
	"strings"
	"testing"

	"github.com/tableguard/tableguard/internal/model"
)

func TestPluralize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"account", "accounts"},
		{"user", "users"},
		{"accounts", "accounts"}, // already plural
		{"", "s"},                // trivial rule, no special cases
	}
	for _, tt := range tests {
		if got := Pluralize(tt.in); got != tt.want {
			t.Errorf("Pluralize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSingularize(t *testing.T) {
	if got := Singularize("accounts"); got != "account" {
		t.Errorf("Singularize(accounts) = %q, want account", got)
	}
	if got := Singularize("account"); got != "account" {
		t.Errorf("Singularize(account) = %q, want account", got)
	}
}

func TestResolveBase(t *testing.T) {
	specs, err := Default().Resolve("", "base")
	if err != nil {
		t.Fatalf("Resolve(base): %v", err)
	}
	if len(specs) != 1 {
		t.Fatalf("expected 1 spec, got %d", len(specs))
	}

	spec := specs[0]
	if spec.Name != "accounts" {
		t.Errorf("table name = %q, want accounts", spec.Name)
	}
	if spec.Method != "accounts_table" {
		t.Errorf("method = %q, want accounts_table", spec.Method)
	}
	if spec.Kind != model.KindPrimary {
		t.Errorf("kind = %q, want primary", spec.Kind)
	}
	if len(spec.Indexes) != 1 || spec.Indexes[0].Name != "accounts_email_index" {
		t.Errorf("unexpected indexes: %+v", spec.Indexes)
	}
}

// Prefix "user" with webauthn must resolve to user_webauthn_keys and
// user_webauthn_user_ids, with the account-id foreign key column user_id.
func TestResolveWebauthnWithUserPrefix(t *testing.T) {
	specs, err := Default().Resolve("user", "webauthn")
	if err != nil {
		t.Fatalf("Resolve(webauthn): %v", err)
	}
	if len(specs) != 2 {
		t.Fatalf("expected 2 specs, got %d", len(specs))
	}

	byName := make(map[string]model.TableSpec)
	for _, s := range specs {
		byName[s.Name] = s
	}

	if _, ok := byName["user_webauthn_user_ids"]; !ok {
		t.Errorf("missing user_webauthn_user_ids, got %v", names(specs))
	}
	keys, ok := byName["user_webauthn_keys"]
	if !ok {
		t.Fatalf("missing user_webauthn_keys, got %v", names(specs))
	}

	if len(keys.ForeignKeys) != 1 {
		t.Fatalf("expected 1 foreign key, got %d", len(keys.ForeignKeys))
	}
	fk := keys.ForeignKeys[0]
	if fk.Column != "user_id" {
		t.Errorf("fk column = %q, want user_id", fk.Column)
	}
	if fk.ReferencedTable != "users" {
		t.Errorf("fk referenced table = %q, want users", fk.ReferencedTable)
	}
	if keys.Columns[0].Name != "user_id" {
		t.Errorf("first column = %q, want user_id", keys.Columns[0].Name)
	}
	if keys.PrimaryKey[0] != "user_id" {
		t.Errorf("pk[0] = %q, want user_id", keys.PrimaryKey[0])
	}
}

func TestResolveOTP(t *testing.T) {
	specs, err := Default().Resolve("account", "otp")
	if err != nil {
		t.Fatalf("Resolve(otp): %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "account_otp_keys" {
		t.Fatalf("expected account_otp_keys, got %v", names(specs))
	}
}

func TestResolveUnknownFeature(t *testing.T) {
	_, err := Default().Resolve("account", "bogus")
	if err == nil {
		t.Fatal("expected error for unknown feature")
	}
	var cfgErr *model.ConfigurationError
	if !errors.As(err, &cfgErr) {
		t.Fatalf("expected ConfigurationError, got %T", err)
	}
	if want := "No migration template for feature: bogus"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestResolveNoFeatures(t *testing.T) {
	_, err := Default().Resolve("account")
	if err == nil {
		t.Fatal("expected error for empty feature list")
	}
	if want := "No features specified"; err.Error() != want {
		t.Errorf("error = %q, want %q", err.Error(), want)
	}
}

func TestResolveDuplicateFeaturesCollapsed(t *testing.T) {
	specs, err := Default().Resolve("account", "base", "base", "otp")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	if len(specs) != 2 {
		t.Errorf("expected 2 specs, got %v", names(specs))
	}
}

// Every built-in feature must resolve, with unique table names across the
// full set and unique methods within each feature.
func TestResolveAllFeatures(t *testing.T) {
	reg := Default()
	features := reg.Features()
	if len(features) != 19 {
		t.Fatalf("expected 19 built-in features, got %d: %v", len(features), features)
	}

	specs, err := reg.Resolve("account", features...)
	if err != nil {
		t.Fatalf("Resolve(all): %v", err)
	}

	seenTable := make(map[string]bool)
	seenMethod := make(map[string]bool) // feature/method
	for _, s := range specs {
		if seenTable[s.Name] {
			t.Errorf("duplicate table name %q", s.Name)
		}
		seenTable[s.Name] = true

		key := s.Feature + "/" + s.Method
		if seenMethod[key] {
			t.Errorf("duplicate method %q", key)
		}
		seenMethod[key] = true

		if strings.Contains(s.Name, "%") {
			t.Errorf("unresolved placeholder in table name %q", s.Name)
		}
		for _, fk := range s.ForeignKeys {
			if strings.Contains(fk.Column, "%") || strings.Contains(fk.ReferencedTable, "%") {
				t.Errorf("unresolved placeholder in fk of %q: %+v", s.Name, fk)
			}
		}
	}
}

func TestResolveDoesNotMutateTemplates(t *testing.T) {
	reg := Default()
	first, err := reg.Resolve("user", "webauthn")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	_ = first

	second, err := reg.Resolve("account", "webauthn")
	if err != nil {
		t.Fatalf("Resolve: %v", err)
	}
	for _, s := range second {
		if strings.HasPrefix(s.Name, "user_") {
			t.Errorf("template leaked previous resolution: %q", s.Name)
		}
	}
}

// The plugin extension point: registering a new feature makes it resolvable
// like a built-in.
func TestRegisterThirdPartyFeature(t *testing.T) {
	reg := Default()
	reg.Register("magic_link", model.TableSpec{
		Method:  "magic_link_table",
		Feature: "magic_link",
		Name:    "%singular%_magic_link_keys",
		Columns: []model.Column{
			{Name: "id", Type: model.TypeBigint},
			{Name: "key", Type: model.TypeString},
		},
		PrimaryKey: []string{"id"},
	})

	specs, err := reg.Resolve("account", "magic_link")
	if err != nil {
		t.Fatalf("Resolve(magic_link): %v", err)
	}
	if len(specs) != 1 || specs[0].Name != "account_magic_link_keys" {
		t.Errorf("unexpected resolution: %v", names(specs))
	}
}

func names(specs []model.TableSpec) []string {
	out := make([]string, len(specs))
	for i, s := range specs {
		out[i] = s.Name
	}
	return out
}
