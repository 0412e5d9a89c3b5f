package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/journal"
)

func newTradesCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "trades",
		Short: "List and show journal trades",
		Long: `Read trades from the configured source.

Examples:
  journal trades list
  journal trades show 42 --format json`,
	}
	cmd.PersistentFlags().StringVarP(&format, "format", "f", "org", "Output format: org|json")

	list := &cobra.Command{
		Use:   "list",
		Short: "List every trade, newest first as stored",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			return writeTrades(cmd.OutOrStdout(), format, snap.Trades)
		},
	}

	show := &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Show one trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, closer, err := a.openSource()
			if err != nil {
				return err
			}
			defer closer.Close()

			t, err := src.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return fmt.Errorf("get trade: %w", err)
			}
			if format == "json" {
				return writeJSON(cmd.OutOrStdout(), t)
			}
			fmt.Fprintln(cmd.OutOrStdout(), journal.FormatTradeOrg(t))
			return nil
		},
	}

	cmd.AddCommand(list, show)
	return cmd
}

func writeTrades(w io.Writer, format string, trades []journal.Trade) error {
	switch format {
	case "json":
		if trades == nil {
			trades = []journal.Trade{}
		}
		return writeJSON(w, trades)
	case "org", "":
		fmt.Fprintln(w, journal.FormatTradesOrg(trades))
		return nil
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
