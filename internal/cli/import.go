package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/importer"
	"github.com/rustyeddy/tradejournal/journal"
)

func newImportCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import trades from broker platforms",
	}

	var (
		record bool
		format string
	)
	xs := &cobra.Command{
		Use:   "xstation [file|-]",
		Short: "Parse text copied from an xStation 5 position-details panel",
		Long: `Parse the text copied from the xStation 5 position details panel.
Reads stdin when no file (or "-") is given. With --record the trade is
inserted into the SQLite journal given by --db.

Examples:
  pbpaste | journal import xstation
  journal import xstation position.txt --record --db ./journal.sqlite`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var r io.Reader = cmd.InOrStdin()
			if len(args) == 1 && args[0] != "-" {
				fh, err := os.Open(args[0])
				if err != nil {
					return err
				}
				defer fh.Close()
				r = fh
			}

			loc, err := a.cfg.Analytics.Location()
			if err != nil {
				return err
			}
			t, err := importer.ParseXStation(r, loc)
			if err != nil {
				return err
			}

			if record {
				if a.cfg.Source.DBPath == "" {
					return fmt.Errorf("--record needs a SQLite journal (--db)")
				}
				j, err := journal.NewSQLite(a.cfg.Source.DBPath)
				if err != nil {
					return fmt.Errorf("open db: %w", err)
				}
				defer j.Close()

				id, err := j.RecordTrade(cmd.Context(), t)
				if err != nil {
					return err
				}
				t.ID = id
				a.log.Info("trade recorded", "id", id, "instrument", t.Instrument, "db", a.cfg.Source.DBPath)
			}
			a.metrics.TradesImported.WithLabelValues("xstation").Inc()

			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), t)
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
			return nil
		},
	}
	xs.Flags().BoolVar(&record, "record", false, "Insert the trade into the SQLite journal")
	xs.Flags().StringVarP(&format, "format", "f", "org", "Output format: org|json")

	cmd.AddCommand(xs)
	return cmd
}
