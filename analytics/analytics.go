// Package analytics turns a trade list into the statistics and chart series
// shown on the journal's analytics pages.
//
// Every function here is a pure function of its input: nothing mutates or
// keeps the slice it is given, so several aggregations can run over one
// snapshot at the same time. Trades missing a field are left out of the
// statistics that need that field; ratios with a zero denominator come back
// as 0 or nil, never NaN.
package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// UnknownInstrument labels trades recorded without an instrument.
const UnknownInstrument = "Unknown"

var hundred = decimal.NewFromInt(100)

// percent returns n/d*100, or 0 when d is 0.
func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d) * 100
}

// mean returns total/n, or zero when n is 0.
func mean(total decimal.Decimal, n int) decimal.Decimal {
	if n == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(int64(n)))
}

// outcome classifies a trade by the sign of its P/L.
type outcome int

const (
	unscored outcome = iota
	win
	loss
	breakEven
)

func classify(t journal.Trade) (outcome, decimal.Decimal) {
	pl, ok := t.PL()
	if !ok {
		return unscored, decimal.Zero
	}
	switch pl.Sign() {
	case 1:
		return win, pl
	case -1:
		return loss, pl
	default:
		return breakEven, pl
	}
}
