package ddl

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"

	"github.com/tableguard/tableguard/internal/inspector"
	"github.com/tableguard/tableguard/internal/model"
	"github.com/tableguard/tableguard/internal/registry"
)

func golden(t *testing.T) *goldie.Goldie {
	t.Helper()
	return goldie.New(t,
		goldie.WithFixtureDir("testdata"),
		goldie.WithNameSuffix(".golden"),
	)
}

func missingFor(t *testing.T, prefix string, features ...string) []inspector.DriftEntry {
	t.Helper()
	specs, err := registry.Default().Resolve(prefix, features...)
	require.NoError(t, err)
	return inspector.AsMissing(specs)
}

func TestMigrationPostgres(t *testing.T) {
	g := NewGenerator(model.DialectFor("postgres"), "account", missingFor(t, "account", "base", "otp"))
	golden(t).Assert(t, "postgres_base_otp", []byte(g.Migration()))
}

func TestCreateSQLMySQL(t *testing.T) {
	g := NewGenerator(model.DialectFor("mysql"), "account", missingFor(t, "account", "base"))
	golden(t).Assert(t, "mysql_base", []byte(g.CreateSQL()))
}

func TestCreateSQLSQLite(t *testing.T) {
	g := NewGenerator(model.DialectFor("sqlite"), "account", missingFor(t, "account", "base"))
	golden(t).Assert(t, "sqlite_base", []byte(g.CreateSQL()))
}

// The primary table is created first and dropped last regardless of the order
// drift entries arrive in.
func TestDependencyOrder(t *testing.T) {
	missing := missingFor(t, "account", "otp", "remember", "base")
	// Shuffle the primary table to the back.
	for i, e := range missing {
		if e.Spec.Name == "accounts" {
			missing = append(missing[:i], missing[i+1:]...)
			missing = append(missing, e)
			break
		}
	}

	g := NewGenerator(model.DialectFor("postgres"), "account", missing)

	tables := g.Tables()
	require.Equal(t, "accounts", tables[0])

	drops := g.DropStatements()
	require.Equal(t, `DROP TABLE IF EXISTS "accounts"`, drops[len(drops)-1])
	for _, stmt := range drops {
		require.True(t, strings.HasPrefix(stmt, "DROP TABLE IF EXISTS "), stmt)
	}
}

func TestCustomPrefix(t *testing.T) {
	g := NewGenerator(model.DialectFor("postgres"), "user", missingFor(t, "user", "base", "otp"))

	require.Equal(t, []string{"users", "user_otp_keys"}, g.Tables())
	sql := g.CreateSQL()
	require.Contains(t, sql, `CREATE TABLE "user_otp_keys"`)
	require.Contains(t, sql, `REFERENCES "users" ("id")`)
}

// MySQL with fractional-second support uses DATETIME(6) columns and a
// CURRENT_TIMESTAMP(6) default.
func TestMySQLFractionalTimestamps(t *testing.T) {
	g := NewGenerator(model.DialectFor("mysql"), "account", missingFor(t, "account", "otp"))
	sql := g.CreateSQL()
	require.Contains(t, sql, "`last_use` DATETIME(6) NOT NULL DEFAULT CURRENT_TIMESTAMP(6)")

	legacy := NewGenerator(model.Dialect{Driver: "mysql"}, "account", missingFor(t, "account", "otp"))
	sql = legacy.CreateSQL()
	require.Contains(t, sql, "`last_use` DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP")
	require.NotContains(t, sql, "DATETIME(6)")
}

// Without the citext extension the email column degrades to VARCHAR(255).
func TestPostgresWithoutCitext(t *testing.T) {
	dialect := model.Dialect{Driver: "postgres", SupportsPartialIndexes: true}
	g := NewGenerator(dialect, "account", missingFor(t, "account", "base"))
	sql := g.CreateSQL()
	require.Contains(t, sql, `"email" VARCHAR(255) NOT NULL`)
	require.NotContains(t, sql, "CITEXT")
}

// MySQL drops the partial-index predicate; the index stays unique.
func TestMySQLPartialIndexSubstitution(t *testing.T) {
	g := NewGenerator(model.DialectFor("mysql"), "account", missingFor(t, "account", "base"))
	sql := g.CreateSQL()
	require.Contains(t, sql, "CREATE UNIQUE INDEX `accounts_email_index` ON `accounts` (`email`)")
	require.NotContains(t, sql, "WHERE")
}

func TestEmptyGenerator(t *testing.T) {
	g := NewGenerator(model.DialectFor("postgres"), "account", nil)
	require.Empty(t, g.Tables())
	require.Empty(t, g.CreateSQL())
	require.Empty(t, g.DropSQL())
}

func TestWriteMigration(t *testing.T) {
	orig := nowFunc
	nowFunc = func() time.Time { return time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC) }
	defer func() { nowFunc = orig }()

	dir := t.TempDir()
	g := NewGenerator(model.DialectFor("postgres"), "account", missingFor(t, "account", "base"))

	path, err := g.WriteMigration(dir, "Base + OTP")
	require.NoError(t, err)
	require.Equal(t, filepath.Join(dir, "20260314092653_create_base_otp.sql"), path)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(content), "-- +goose Up\n"))
	require.Contains(t, string(content), "-- +goose Down\n")
}
