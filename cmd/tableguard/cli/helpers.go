package cli

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/viper"

	"github.com/tableguard/tableguard/internal/connector"
	"github.com/tableguard/tableguard/internal/connector/mysql"
	"github.com/tableguard/tableguard/internal/connector/postgres"
	"github.com/tableguard/tableguard/internal/connector/sqlite"
	"github.com/tableguard/tableguard/internal/guard"
	"github.com/tableguard/tableguard/internal/policy"
	"github.com/tableguard/tableguard/internal/registry"
)

// newConnectorRegistry creates a connector registry with all supported
// database drivers registered.
func newConnectorRegistry() *connector.Registry {
	reg := connector.NewRegistry()
	reg.RegisterDriver("postgres", postgres.New)
	reg.RegisterDriver("mysql", mysql.New)
	reg.RegisterDriver("sqlite", sqlite.New)
	return reg
}

// openConnector connects to the database described by the viper config.
func openConnector() (connector.Connector, error) {
	driver := viper.GetString("driver")
	dsn := viper.GetString("dsn")
	if driver == "" || dsn == "" {
		return nil, fmt.Errorf("driver and dsn are required (flags, tableguard.yaml, or TABLEGUARD_* env)")
	}

	return newConnectorRegistry().Open(connector.ConnectionConfig{
		Driver:     driver,
		DSN:        dsn,
		SchemaName: viper.GetString("schema"),
	})
}

// newGuard builds a Guard from the viper config and a connected connector.
func newGuard(conn guard.Conn) (*guard.Guard, error) {
	mode := policy.Warn
	if s := viper.GetString("mode"); s != "" {
		var err error
		if mode, err = policy.Parse(s); err != nil {
			return nil, err
		}
	}

	remediation, err := guard.ParseRemediation(viper.GetString("remediation"))
	if err != nil {
		return nil, err
	}

	return guard.New(guard.Config{
		Prefix:        viper.GetString("prefix"),
		Features:      viper.GetStringSlice("features"),
		Mode:          mode,
		Remediation:   remediation,
		MigrationsDir: viper.GetString("migrations-dir"),
	}, conn, newLogger())
}

func newLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(os.Stderr, nil))
}

// requireFeatures validates feature args against the built-in registry before
// any database work, so usage errors carry a non-zero exit and a clear message.
func requireFeatures(features []string) error {
	if len(features) == 0 {
		return fmt.Errorf("at least one feature is required (known: %v)", registry.Default().Features())
	}
	reg := registry.Default()
	for _, f := range features {
		if _, err := reg.Feature(f); err != nil {
			return err
		}
	}
	return nil
}
