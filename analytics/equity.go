package analytics

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// NoDateLabel is the equity label of a trade without an entry time.
const NoDateLabel = "No date"

// EquityPoint is the running P/L after one trade.
type EquityPoint struct {
	TradeID string          `json:"trade_id"`
	Date    time.Time       `json:"date"`
	Label   string          `json:"label"`
	Value   decimal.Decimal `json:"value"`
}

// EquityCurve sorts trades by entry time (stable, undated trades last) and
// returns the cumulative P/L after each one. Trades without a usable P/L
// still produce a point but leave the running total unchanged.
func EquityCurve(trades []journal.Trade) []EquityPoint {
	ordered := slices.Clone(trades)
	slices.SortStableFunc(ordered, func(a, b journal.Trade) int {
		switch {
		case !a.HasEntryTime() && !b.HasEntryTime():
			return 0
		case !a.HasEntryTime():
			return 1
		case !b.HasEntryTime():
			return -1
		}
		return a.EntryTime.Compare(b.EntryTime)
	})

	out := make([]EquityPoint, 0, len(ordered))
	total := decimal.Zero
	for _, t := range ordered {
		if pl, ok := t.PL(); ok {
			total = total.Add(pl)
		}
		label := NoDateLabel
		if t.HasEntryTime() {
			label = t.EntryTime.Format("Jan 2")
		}
		out = append(out, EquityPoint{
			TradeID: t.ID,
			Date:    t.EntryTime,
			Label:   label,
			Value:   total,
		})
	}
	return out
}

// MaxDrawdown is the largest drop from a running peak of the curve. The
// curve is taken to start at zero.
func MaxDrawdown(curve []EquityPoint) decimal.Decimal {
	peak := decimal.Zero
	worst := decimal.Zero
	for _, p := range curve {
		if p.Value.GreaterThan(peak) {
			peak = p.Value
		}
		if dd := peak.Sub(p.Value); dd.GreaterThan(worst) {
			worst = dd
		}
	}
	return worst
}
