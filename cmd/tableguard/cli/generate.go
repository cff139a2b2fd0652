package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/tableguard/tableguard/internal/ddl"
	"github.com/tableguard/tableguard/internal/inspector"
	"github.com/tableguard/tableguard/internal/model"
	"github.com/tableguard/tableguard/internal/registry"
)

func newGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate schema artifacts",
	}

	cmd.AddCommand(newGenerateMigrationCmd())

	return cmd
}

func newGenerateMigrationCmd() *cobra.Command {
	var (
		dir    string
		stdout bool
	)

	cmd := &cobra.Command{
		Use:   "migration <feature...>",
		Short: "Generate a create-tables migration for the given features",
		Long: `Generate an up/down migration covering every table the given features
require, dialect-selected by --driver. No database connection is needed; the
file is written to the migrations directory with a timestamped name.`,
		Example: `  tableguard generate migration base otp
  tableguard generate migration base webauthn --prefix user --driver postgres
  tableguard generate migration base --stdout`,
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFeatures(args); err != nil {
				cmd.SilenceUsage = false
				return err
			}
			return runGenerateMigration(cmd, args, dir, stdout)
		},
	}

	cmd.Flags().StringVar(&dir, "dir", "migrations", "directory to write the migration file to")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the migration instead of writing a file")

	return cmd
}

func runGenerateMigration(cmd *cobra.Command, features []string, dir string, stdout bool) error {
	prefix := viper.GetString("prefix")

	specs, err := registry.Default().Resolve(prefix, features...)
	if err != nil {
		return err
	}

	driver := viper.GetString("driver")
	if driver == "" {
		driver = "postgres"
	}
	dialect := model.DialectFor(driver)

	gen := ddl.NewGenerator(dialect, prefix, inspector.AsMissing(specs))

	if stdout {
		fmt.Fprint(cmd.OutOrStdout(), gen.Migration())
		return nil
	}

	path, err := gen.WriteMigration(dir, strings.Join(features, "_"))
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
	return nil
}
