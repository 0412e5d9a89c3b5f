// Package report renders analytics results for people: plain-text console
// reports and Excel workbooks.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

const rule = "--------------------------------------------------"

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func section(w io.Writer, title string) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, rule)
}

// PrintReport writes every view of r.
func PrintReport(w io.Writer, r *analytics.Report) {
	fmt.Fprintln(w, "==================================================")
	fmt.Fprintln(w, " Trade Journal Analytics")
	fmt.Fprintln(w, "==================================================")

	inst := r.Filter.Instrument
	if inst == "" {
		inst = "all"
	}
	fmt.Fprintf(w, "Instrument:    %s\n", inst)
	if !r.Filter.Start.IsZero() {
		fmt.Fprintf(w, "From:          %s\n", r.Filter.Start.Format("2006-01-02 15:04"))
	}
	if !r.Filter.End.IsZero() {
		fmt.Fprintf(w, "To:            %s\n", r.Filter.End.Format("2006-01-02 15:04"))
	}
	fmt.Fprintf(w, "Trades:        %d\n", r.Trades)

	section(w, "Trade Statistics")
	PrintSummary(w, r.Summary)

	section(w, "Win / Loss")
	PrintWinLoss(w, r.WinLoss)

	section(w, "Direction Bias")
	PrintDirection(w, r.Direction)

	section(w, "Profit by Instrument")
	PrintInstruments(w, r.ByInstrument)

	section(w, "Risk / Reward")
	PrintRiskReward(w, r.RiskReward)

	section(w, "Trades Over Time ("+r.Granularity.String()+")")
	PrintOverTime(w, r.OverTime)

	section(w, "Duration vs Profit")
	PrintDuration(w, r.Duration, false)

	section(w, "Equity Curve")
	PrintEquity(w, r.Equity)

	fmt.Fprintln(w)
}

func PrintSummary(w io.Writer, s analytics.Summary) {
	fmt.Fprintf(w, "Trades:        %d\n", s.TotalTrades)
	if s.Scored != s.TotalTrades {
		fmt.Fprintf(w, "With P/L:      %d\n", s.Scored)
	}
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", s.WinRate)
	fmt.Fprintf(w, "Total P/L:     %s\n", money(s.TotalProfit))
	fmt.Fprintf(w, "Avg P/L:       %s\n", money(s.AvgProfit))
	fmt.Fprintf(w, "Avg Win:       %s\n", money(s.AvgWin))
	fmt.Fprintf(w, "Avg Loss:      %s\n", money(s.AvgLoss))
	fmt.Fprintf(w, "Biggest Win:   %s\n", money(s.BiggestWin))
	fmt.Fprintf(w, "Biggest Loss:  %s\n", money(s.BiggestLoss))
	if s.ProfitFactor.Valid {
		fmt.Fprintf(w, "Profit Factor: %s\n", s.ProfitFactor.Decimal.StringFixed(2))
	}
	if s.MaxDrawdown.IsPositive() {
		fmt.Fprintf(w, "Max Drawdown:  %s\n", money(s.MaxDrawdown))
	}
}

func PrintWinLoss(w io.Writer, wl analytics.WinLoss) {
	fmt.Fprintf(w, "Wins:          %d\n", wl.Wins)
	fmt.Fprintf(w, "Losses:        %d\n", wl.Losses)
	fmt.Fprintf(w, "Break Even:    %d\n", wl.BreakEven)
	if wl.Unscored > 0 {
		fmt.Fprintf(w, "No P/L:        %d\n", wl.Unscored)
	}
	fmt.Fprintf(w, "Win Rate:      %.2f%%\n", wl.WinRate)
}

func PrintDirection(w io.Writer, b analytics.Bias) {
	fmt.Fprintf(w, "%-8s %7s %9s %12s %9s %12s\n", "Side", "Trades", "With P/L", "Total P/L", "Win Rate", "Avg P/L")
	for _, row := range []struct {
		name string
		s    analytics.SideStats
	}{{"Long", b.Long}, {"Short", b.Short}} {
		fmt.Fprintf(w, "%-8s %7d %9d %12s %8.2f%% %12s\n",
			row.name, row.s.Count, row.s.Scored, money(row.s.TotalProfit), row.s.WinRate, money(row.s.AvgProfit))
	}
	if side := b.Favored(); side != journal.Unknown {
		fmt.Fprintf(w, "%s trades have the better win rate.\n", side)
	} else {
		fmt.Fprintln(w, "Neither side has the better win rate.")
	}
}

func PrintInstruments(w io.Writer, rows []analytics.InstrumentProfit) {
	if len(rows) == 0 {
		fmt.Fprintln(w, "No trades.")
		return
	}
	fmt.Fprintf(w, "%-14s %7s %12s\n", "Instrument", "Trades", "Total P/L")
	for _, p := range rows {
		fmt.Fprintf(w, "%-14s %7d %12s\n", p.Instrument, p.Count, money(p.TotalProfit))
	}
}

func PrintRiskReward(w io.Writer, rr analytics.RiskReward) {
	if !rr.HasData() {
		fmt.Fprintln(w, "No trades with risk and reward recorded.")
		return
	}
	fmt.Fprintf(w, "%-8s %7s %12s\n", "R:R", "Trades", "Total P/L")
	for _, b := range rr.Buckets {
		fmt.Fprintf(w, "%-8s %7d %12s\n", b.Label, b.Count, money(b.TotalProfit))
	}
}

func PrintOverTime(w io.Writer, periods []analytics.Period) {
	if len(periods) == 0 {
		fmt.Fprintln(w, "No dated trades.")
		return
	}
	fmt.Fprintf(w, "%-16s %7s %12s\n", "Period", "Trades", "P/L")
	for _, p := range periods {
		fmt.Fprintf(w, "%-16s %7d %12s\n", p.Label, p.Count, money(p.TotalProfit))
	}
}

// PrintDuration writes the trend line and, when points is set, every point.
func PrintDuration(w io.Writer, dp analytics.DurationProfit, points bool) {
	fmt.Fprintf(w, "Points:        %d\n", len(dp.Points))
	if dp.Regression == nil {
		fmt.Fprintln(w, "Trend:         not enough spread in hold times")
	} else {
		fmt.Fprintf(w, "Trend:         P/L = %.4f * hours %+.4f\n", dp.Regression.Slope, dp.Regression.Intercept)
		if dp.Regression.Correlation != nil {
			fmt.Fprintf(w, "Correlation:   %.4f\n", *dp.Regression.Correlation)
		}
	}
	if !points {
		return
	}
	fmt.Fprintf(w, "%-28s %9s %12s\n", "Trade", "Hours", "P/L")
	for _, p := range dp.Points {
		fmt.Fprintf(w, "%-28s %9.2f %12s\n", p.TradeID, p.Hours, money(p.ProfitLoss))
	}
}

func PrintEquity(w io.Writer, curve []analytics.EquityPoint) {
	if len(curve) == 0 {
		fmt.Fprintln(w, "No trades.")
		return
	}
	fmt.Fprintf(w, "%-10s %-28s %12s\n", "Date", "Trade", "Equity")
	for _, p := range curve {
		fmt.Fprintf(w, "%-10s %-28s %12s\n", p.Label, p.TradeID, money(p.Value))
	}
}

// PrintReview lists rule violations found by risk.Review.
func PrintReview(w io.Writer, decisions []risk.Decision) {
	var flagged int
	for _, d := range decisions {
		if d.Allowed {
			continue
		}
		flagged++
		codes := make([]string, 0, len(d.Violations))
		for _, v := range d.Violations {
			codes = append(codes, v.Code)
		}
		fmt.Fprintf(w, "Trade %s: %s\n", d.TradeID, strings.Join(codes, ", "))
		for _, v := range d.Violations {
			fmt.Fprintf(w, "- %s\n", v.Msg)
		}
	}
	fmt.Fprintf(w, "%d of %d trades broke a rule.\n", flagged, len(decisions))
}
