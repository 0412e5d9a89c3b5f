package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// Summary holds the headline numbers of a trade list.
//
// TotalTrades counts every trade. Scored counts the trades with a usable P/L;
// it is the denominator of WinRate and the averages.
type Summary struct {
	TotalTrades int `json:"total_trades"`
	Scored      int `json:"scored"`
	Wins        int `json:"wins"`
	Losses      int `json:"losses"`
	BreakEven   int `json:"break_even"`

	WinRate     float64         `json:"win_rate"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	AvgProfit   decimal.Decimal `json:"avg_profit"`

	AvgWin      decimal.Decimal `json:"avg_win"`
	AvgLoss     decimal.Decimal `json:"avg_loss"`
	BiggestWin  decimal.Decimal `json:"biggest_win"`
	BiggestLoss decimal.Decimal `json:"biggest_loss"`
	GrossProfit decimal.Decimal `json:"gross_profit"`
	GrossLoss   decimal.Decimal `json:"gross_loss"`

	// ProfitFactor is GrossProfit/|GrossLoss|; invalid when nothing was lost.
	ProfitFactor decimal.NullDecimal `json:"profit_factor"`

	// MaxDrawdown is the largest peak-to-trough fall of the equity curve.
	MaxDrawdown decimal.Decimal `json:"max_drawdown"`
}

// Summarize computes the Summary of trades.
func Summarize(trades []journal.Trade) Summary {
	s := Summary{TotalTrades: len(trades)}

	for _, t := range trades {
		o, pl := classify(t)
		switch o {
		case unscored:
			continue
		case win:
			s.Wins++
			s.GrossProfit = s.GrossProfit.Add(pl)
			if pl.GreaterThan(s.BiggestWin) {
				s.BiggestWin = pl
			}
		case loss:
			s.Losses++
			s.GrossLoss = s.GrossLoss.Add(pl)
			if pl.LessThan(s.BiggestLoss) {
				s.BiggestLoss = pl
			}
		case breakEven:
			s.BreakEven++
		}
		s.Scored++
		s.TotalProfit = s.TotalProfit.Add(pl)
	}

	s.WinRate = percent(s.Wins, s.Scored)
	s.AvgProfit = mean(s.TotalProfit, s.Scored)
	s.AvgWin = mean(s.GrossProfit, s.Wins)
	s.AvgLoss = mean(s.GrossLoss, s.Losses)
	if !s.GrossLoss.IsZero() {
		s.ProfitFactor = decimal.NewNullDecimal(s.GrossProfit.Div(s.GrossLoss.Abs()))
	}
	s.MaxDrawdown = MaxDrawdown(EquityCurve(trades))
	return s
}
