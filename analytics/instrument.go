package analytics

import (
	"slices"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// InstrumentProfit is the P/L of one instrument.
type InstrumentProfit struct {
	Instrument  string          `json:"instrument"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	Count       int             `json:"count"`
}

// ProfitByInstrument totals P/L per instrument, best first. Instruments with
// equal totals keep the order in which they were first seen. Trades without
// an instrument are grouped under UnknownInstrument.
func ProfitByInstrument(trades []journal.Trade) []InstrumentProfit {
	index := make(map[string]int)
	var out []InstrumentProfit
	for _, t := range trades {
		name := t.InstrumentOr(UnknownInstrument)
		i, ok := index[name]
		if !ok {
			i = len(out)
			index[name] = i
			out = append(out, InstrumentProfit{Instrument: name})
		}
		out[i].Count++
		if pl, ok := t.PL(); ok {
			out[i].TotalProfit = out[i].TotalProfit.Add(pl)
		}
	}

	slices.SortStableFunc(out, func(a, b InstrumentProfit) int {
		return b.TotalProfit.Cmp(a.TotalProfit)
	})
	if out == nil {
		out = []InstrumentProfit{}
	}
	return out
}
