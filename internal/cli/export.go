package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/report"
)

func newExportCmd(a *app) *cobra.Command {
	var (
		output        string
		withAnalytics bool
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write trades to a spreadsheet or CSV file",
	}
	cmd.PersistentFlags().StringVarP(&output, "output", "o", "", "Output file (defaults to the export section of the config)")

	xlsx := &cobra.Command{
		Use:   "xlsx",
		Short: "Append new trades to an Excel workbook",
		Long: `Append trades to the "Trade Journal" sheet of an Excel workbook, creating it
if needed. Trades whose ID is already in the sheet are skipped. With
--analytics the Summary, Instruments, Risk-Reward and Over Time sheets are
rewritten from the configured analytics filter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				path = a.cfg.Export.XLSXPath
			}
			return a.exportXLSX(cmd, path, withAnalytics)
		},
	}
	xlsx.Flags().BoolVar(&withAnalytics, "analytics", true, "Also write the analytics sheets")

	csv := &cobra.Command{
		Use:   "csv",
		Short: "Write every trade to a CSV file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := output
			if path == "" {
				path = a.cfg.Export.CSVPath
			}
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			j, err := journal.NewCSV(path)
			if err != nil {
				return err
			}
			for _, t := range snap.Trades {
				if err := j.RecordTrade(t); err != nil {
					j.Close()
					return err
				}
			}
			if err := j.Close(); err != nil {
				return err
			}
			a.metrics.TradesExported.WithLabelValues("csv").Add(float64(len(snap.Trades)))
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d trades to %s\n", len(snap.Trades), path)
			return nil
		},
	}

	cmd.AddCommand(xlsx, csv)
	return cmd
}

func (a *app) exportXLSX(cmd *cobra.Command, path string, withAnalytics bool) error {
	snap, err := a.snapshot(cmd.Context())
	if err != nil {
		return err
	}

	var rep *analytics.Report
	if withAnalytics {
		opts, err := a.reportOptions(analyticsFlags{format: "text"})
		if err != nil {
			return err
		}
		if rep, err = a.cache.Report(cmd.Context(), snap, opts); err != nil {
			return err
		}
	}

	added, err := report.WriteXLSX(path, snap.Trades, rep)
	if err != nil {
		return err
	}
	a.metrics.TradesExported.WithLabelValues("xlsx").Add(float64(added))
	a.log.Info("workbook written", "path", path, "appended", added, "trades", len(snap.Trades))
	fmt.Fprintf(cmd.OutOrStdout(), "Appended %d new trades to %s\n", added, path)
	return nil
}
