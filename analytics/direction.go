package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// SideStats aggregates the trades taken on one side. Count includes trades
// without a usable P/L; Scored does not, and it is the denominator of
// WinRate and AvgProfit.
type SideStats struct {
	Count       int             `json:"count"`
	Scored      int             `json:"scored"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	WinRate     float64         `json:"win_rate"`
	AvgProfit   decimal.Decimal `json:"avg_profit"`

	wins int
}

func (s *SideStats) add(t journal.Trade) {
	s.Count++
	o, pl := classify(t)
	if o == unscored {
		return
	}
	s.Scored++
	if o == win {
		s.wins++
	}
	s.TotalProfit = s.TotalProfit.Add(pl)
}

func (s *SideStats) finish() {
	s.WinRate = percent(s.wins, s.Scored)
	s.AvgProfit = mean(s.TotalProfit, s.Scored)
}

// Bias compares long and short trades.
type Bias struct {
	Long  SideStats `json:"long"`
	Short SideStats `json:"short"`
}

// DirectionBias splits trades by direction. Trades whose direction is
// neither long/buy nor short/sell are left out of both sides.
func DirectionBias(trades []journal.Trade) Bias {
	var b Bias
	for _, t := range trades {
		switch t.Direction {
		case journal.Long:
			b.Long.add(t)
		case journal.Short:
			b.Short.add(t)
		}
	}
	b.Long.finish()
	b.Short.finish()
	return b
}

// Favored names the side with the higher win rate, or Unknown on a tie.
func (b Bias) Favored() journal.Direction {
	switch {
	case b.Long.WinRate > b.Short.WinRate:
		return journal.Long
	case b.Short.WinRate > b.Long.WinRate:
		return journal.Short
	}
	return journal.Unknown
}
