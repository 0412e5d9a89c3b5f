package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/config"
)

func newConfigCmd() *cobra.Command {
	var (
		output   string
		validate string
	)

	cmd := &cobra.Command{
		Use:   "config",
		Short: "Generate or validate configuration files",
		Long: `Manage configuration files.

Subcommands:
  init     - Generate a default configuration file
  validate - Validate an existing configuration file

Examples:
  journal config init -o journal.yaml
  journal config validate -f journal.yaml`,
	}

	initCmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default configuration file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Default().SaveToFile(output); err != nil {
				return fmt.Errorf("save config: %w", err)
			}
			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Created default configuration: %s\n", output)
			fmt.Fprintln(out, "\nEdit the file and run with:")
			fmt.Fprintf(out, "  journal --config %s analytics report\n", output)
			return nil
		},
	}
	initCmd.Flags().StringVarP(&output, "output", "o", "journal.yaml", "output config file path")

	validateCmd := &cobra.Command{
		Use:   "validate",
		Short: "Validate a configuration file",
		Long: `Check that a configuration file loads and is valid once JOURNAL_*
environment overrides are applied.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(validate)
			if err != nil {
				return fmt.Errorf("validation failed: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Configuration valid: %s\n", validate)
			switch cfg.Source.Type {
			case "sqlite":
				fmt.Fprintf(out, "  Source: sqlite (%s)\n", cfg.Source.DBPath)
			case "csv":
				fmt.Fprintf(out, "  Source: csv (%s)\n", cfg.Source.CSVPath)
			default:
				fmt.Fprintf(out, "  Source: api (%s)\n", cfg.API.BaseURL)
			}
			fmt.Fprintf(out, "  Analytics: %s, %s\n", cfg.Analytics.Granularity, cfg.Analytics.Timezone)
			fmt.Fprintf(out, "  Policy: max risk %.2f%%, min R:R %.2f\n", cfg.Policy.MaxRiskPct*100, cfg.Policy.MinRR)
			return nil
		},
	}
	validateCmd.Flags().StringVarP(&validate, "file", "f", "", "path to config file (required)")
	validateCmd.MarkFlagRequired("file")

	cmd.AddCommand(initCmd, validateCmd)
	return cmd
}
