package analytics

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/rustyeddy/tradejournal/journal"
)

// ReportOptions selects the trades and the time bucketing of a Report.
type ReportOptions struct {
	Filter      Filter
	Granularity Granularity
	// Location is used for period boundaries; nil means UTC.
	Location    *time.Location
}

func (o ReportOptions) key() string {
	loc := "UTC"
	if o.Location != nil {
		loc = o.Location.String()
	}
	return o.Filter.Key() + "|" + o.Granularity.String() + "|" + loc
}

// Report bundles every analytics view of one filtered trade list.
type Report struct {
	Filter       Filter             `json:"-"`
	Granularity  Granularity        `json:"-"`
	Trades       int                `json:"trades"`
	Instruments  []string           `json:"instruments"`
	Summary      Summary            `json:"summary"`
	Equity       []EquityPoint      `json:"equity"`
	Direction    Bias               `json:"direction"`
	Duration     DurationProfit     `json:"duration"`
	RiskReward   RiskReward         `json:"risk_reward"`
	OverTime     []Period           `json:"over_time"`
	WinLoss      WinLoss            `json:"win_loss"`
	ByInstrument []InstrumentProfit `json:"by_instrument"`
}

// BuildReport filters trades and computes each view concurrently. The views
// only read the filtered slice, so they share it without locking. The only
// error is the context's.
func BuildReport(ctx context.Context, trades []journal.Trade, opts ReportOptions) (*Report, error) {
	filtered := Apply(trades, opts.Filter)
	r := &Report{
		Filter:      opts.Filter,
		Granularity: opts.Granularity,
		Trades:      len(filtered),
		Instruments: Instruments(trades),
	}

	g, ctx := errgroup.WithContext(ctx)
	run := func(fn func()) {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			fn()
			return nil
		})
	}

	run(func() { r.Summary = Summarize(filtered) })
	run(func() { r.Equity = EquityCurve(filtered) })
	run(func() { r.Direction = DirectionBias(filtered) })
	run(func() { r.Duration = DurationVsProfit(filtered) })
	run(func() { r.RiskReward = RiskRewardBuckets(filtered) })
	run(func() { r.OverTime = TradesOverTimeIn(filtered, opts.Granularity, opts.Location) })
	run(func() { r.WinLoss = WinLossDistribution(filtered) })
	run(func() { r.ByInstrument = ProfitByInstrument(filtered) })

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return r, nil
}
