package cli

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/report"
	"github.com/rustyeddy/tradejournal/risk"
)

type analyticsFlags struct {
	instrument  string
	from        string
	to          string
	granularity string
	format      string
	points      bool
}

// view renders one part of a report in text form and names the value that
// is encoded for --format json.
type view struct {
	use   string
	short string
	pick  func(*analytics.Report) any
	text  func(io.Writer, *analytics.Report, analyticsFlags)
}

var views = []view{
	{"summary", "Trade statistics", func(r *analytics.Report) any { return r.Summary },
		func(w io.Writer, r *analytics.Report, _ analyticsFlags) { report.PrintSummary(w, r.Summary) }},
	{"equity", "Cumulative P/L curve", func(r *analytics.Report) any { return r.Equity },
		func(w io.Writer, r *analytics.Report, _ analyticsFlags) { report.PrintEquity(w, r.Equity) }},
	{"direction", "Long versus short performance", func(r *analytics.Report) any { return r.Direction },
		func(w io.Writer, r *analytics.Report, _ analyticsFlags) { report.PrintDirection(w, r.Direction) }},
	{"duration", "Hold time versus P/L", func(r *analytics.Report) any { return r.Duration },
		func(w io.Writer, r *analytics.Report, f analyticsFlags) { report.PrintDuration(w, r.Duration, f.points) }},
	{"risk-reward", "P/L by risk:reward bucket", func(r *analytics.Report) any { return r.RiskReward },
		func(w io.Writer, r *analytics.Report, _ analyticsFlags) { report.PrintRiskReward(w, r.RiskReward) }},
	{"over-time", "Trades and P/L per period", func(r *analytics.Report) any { return r.OverTime },
		func(w io.Writer, r *analytics.Report, _ analyticsFlags) { report.PrintOverTime(w, r.OverTime) }},
	{"win-loss", "Win, loss and break-even counts", func(r *analytics.Report) any { return r.WinLoss },
		func(w io.Writer, r *analytics.Report, _ analyticsFlags) { report.PrintWinLoss(w, r.WinLoss) }},
	{"instruments", "P/L by instrument", func(r *analytics.Report) any { return r.ByInstrument },
		func(w io.Writer, r *analytics.Report, _ analyticsFlags) { report.PrintInstruments(w, r.ByInstrument) }},
	{"report", "Every view at once", func(r *analytics.Report) any { return r },
		func(w io.Writer, r *analytics.Report, _ analyticsFlags) { report.PrintReport(w, r) }},
}

func newAnalyticsCmd(a *app) *cobra.Command {
	var f analyticsFlags

	cmd := &cobra.Command{
		Use:   "analytics",
		Short: "Compute trade journal analytics",
		Long: `Compute statistics over the trades of the configured source.

Filters default to the analytics section of the config file.

Examples:
  journal analytics report
  journal analytics summary --instrument EURUSD --from 2024-01-01 --to 2024-03-31
  journal analytics over-time --granularity weekly --format json`,
	}
	pf := cmd.PersistentFlags()
	pf.StringVar(&f.instrument, "instrument", "", `Only this instrument ("all" for every one)`)
	pf.StringVar(&f.from, "from", "", "Only trades opened at or after this date/time")
	pf.StringVar(&f.to, "to", "", "Only trades opened at or before this date/time (a date covers the whole day)")
	pf.StringVar(&f.granularity, "granularity", "", "Over-time bucketing: daily|weekly|monthly")
	pf.StringVar(&f.format, "format", "text", "Output format: text|json")

	for _, v := range views {
		sub := &cobra.Command{
			Use:   v.use,
			Short: v.short,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				r, err := a.report(cmd, f)
				if err != nil {
					return err
				}
				if f.format == "json" {
					return writeJSON(cmd.OutOrStdout(), v.pick(r))
				}
				v.text(cmd.OutOrStdout(), r, f)
				return nil
			},
		}
		if v.use == "duration" {
			sub.Flags().BoolVar(&f.points, "points", false, "List every point, not just the trend")
		}
		cmd.AddCommand(sub)
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "review",
		Short: "Check trades against the risk policy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts, err := a.reportOptions(f)
			if err != nil {
				return err
			}
			snap, err := a.snapshot(cmd.Context())
			if err != nil {
				return err
			}
			decisions := risk.Review(a.cfg.Policy, analytics.Apply(snap.Trades, opts.Filter), opts.Location)
			if f.format == "json" {
				return writeJSON(cmd.OutOrStdout(), decisions)
			}
			report.PrintReview(cmd.OutOrStdout(), decisions)
			return nil
		},
	})

	return cmd
}

// reportOptions merges the command flags over the configured analytics
// defaults.
func (a *app) reportOptions(f analyticsFlags) (analytics.ReportOptions, error) {
	ac := a.cfg.Analytics
	if f.instrument != "" {
		ac.Instrument = f.instrument
	}
	if f.from != "" {
		ac.From = f.from
	}
	if f.to != "" {
		ac.To = f.to
	}
	if f.granularity != "" {
		ac.Granularity = f.granularity
	}
	switch f.format {
	case "text", "json":
	default:
		return analytics.ReportOptions{}, fmt.Errorf("unknown format %q", f.format)
	}

	filter, err := ac.Filter()
	if err != nil {
		return analytics.ReportOptions{}, err
	}
	g, err := analytics.ParseGranularity(ac.Granularity)
	if err != nil {
		return analytics.ReportOptions{}, err
	}
	loc, err := ac.Location()
	if err != nil {
		return analytics.ReportOptions{}, err
	}
	return analytics.ReportOptions{Filter: filter, Granularity: g, Location: loc}, nil
}

func (a *app) report(cmd *cobra.Command, f analyticsFlags) (*analytics.Report, error) {
	opts, err := a.reportOptions(f)
	if err != nil {
		return nil, err
	}
	snap, err := a.snapshot(cmd.Context())
	if err != nil {
		return nil, err
	}

	start := time.Now()
	r, err := a.cache.Report(cmd.Context(), snap, opts)
	if err != nil {
		return nil, err
	}
	a.metrics.ObserveReport(time.Since(start))
	a.log.Debug("report built", "snapshot", snap.ID, "filter", opts.Filter.Key(), "trades", r.Trades)
	return r, nil
}
