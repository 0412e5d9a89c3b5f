package analytics

import "github.com/rustyeddy/tradejournal/journal"

// WinLoss counts trades by the sign of their P/L. Unscored trades had no
// usable P/L; Wins+Losses+BreakEven+Unscored always equals the trade count.
type WinLoss struct {
	Wins      int     `json:"wins"`
	Losses    int     `json:"losses"`
	BreakEven int     `json:"break_even"`
	Unscored  int     `json:"unscored"`
	WinRate   float64 `json:"win_rate"`
}

// Total is the number of trades counted.
func (w WinLoss) Total() int {
	return w.Wins + w.Losses + w.BreakEven + w.Unscored
}

// WinLossDistribution splits trades into wins (> 0), losses (< 0) and
// break-even (== 0). WinRate is over the scored trades.
func WinLossDistribution(trades []journal.Trade) WinLoss {
	var w WinLoss
	for _, t := range trades {
		o, _ := classify(t)
		switch o {
		case win:
			w.Wins++
		case loss:
			w.Losses++
		case breakEven:
			w.BreakEven++
		default:
			w.Unscored++
		}
	}
	w.WinRate = percent(w.Wins, w.Wins+w.Losses+w.BreakEven)
	return w
}
