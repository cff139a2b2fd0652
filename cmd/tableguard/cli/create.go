package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newCreateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create the missing required tables",
		Long: `Generate and execute CREATE TABLE statements for every required table the
live database is missing. Existing tables are left untouched. The run is
fail-fast and not transactional across statements: on failure, tables created
so far remain and the command can simply be re-run after fixing the cause.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFeatures(viper.GetStringSlice("features")); err != nil {
				cmd.SilenceUsage = false
				return err
			}
			return runCreate(cmd)
		},
	}

	return cmd
}

func runCreate(cmd *cobra.Command) error {
	conn, err := openConnector()
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	g, err := newGuard(conn)
	if err != nil {
		return err
	}

	ctx := context.Background()
	missing, err := g.MissingTables(ctx)
	if err != nil {
		return err
	}
	if len(missing) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "All required tables exist; nothing to create.")
		return nil
	}

	if err := g.CreateMissing(ctx); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Created %d table(s).\n", len(missing))
	return nil
}
