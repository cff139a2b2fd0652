package cli

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

func newStatusCmd() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "status",
		Short: "Report required-table existence against the live database",
		Long: `Inspect the live database and print, for every table the enabled features
require, whether it exists. Always re-queries the database; exit code is 0
even when tables are missing (this is a report, not a gate).`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := requireFeatures(viper.GetStringSlice("features")); err != nil {
				cmd.SilenceUsage = false
				return err
			}
			return runStatus(cmd, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "table", "output format: table, json, or yaml")

	return cmd
}

func runStatus(cmd *cobra.Command, format string) error {
	conn, err := openConnector()
	if err != nil {
		return err
	}
	defer conn.Disconnect()

	g, err := newGuard(conn)
	if err != nil {
		return err
	}

	entries, err := g.TableStatus(context.Background())
	if err != nil {
		return fmt.Errorf("table status: %w", err)
	}

	type statusRow struct {
		Table   string `json:"table" yaml:"table"`
		Feature string `json:"feature" yaml:"feature"`
		Method  string `json:"method" yaml:"method"`
		Exists  bool   `json:"exists" yaml:"exists"`
	}
	rows := make([]statusRow, len(entries))
	for i, e := range entries {
		rows[i] = statusRow{
			Table:   e.Spec.Name,
			Feature: e.Spec.Feature,
			Method:  e.Spec.Method,
			Exists:  e.Exists,
		}
	}

	out := cmd.OutOrStdout()
	switch format {
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(rows)
	case "yaml":
		return yaml.NewEncoder(out).Encode(rows)
	case "table":
		fmt.Fprintf(out, "%-40s %-24s %-8s\n", "TABLE", "FEATURE", "EXISTS")
		fmt.Fprintf(out, "%-40s %-24s %-8s\n", "-----", "-------", "------")
		missing := 0
		for _, r := range rows {
			exists := "yes"
			if !r.Exists {
				exists = "MISSING"
				missing++
			}
			fmt.Fprintf(out, "%-40s %-24s %-8s\n", r.Table, r.Feature, exists)
		}
		fmt.Fprintf(out, "\n%d required, %d missing\n", len(rows), missing)
		return nil
	default:
		return fmt.Errorf("unknown format %q (table, json, yaml)", format)
	}
}
