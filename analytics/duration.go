package analytics

import (
	"math"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// DurationPoint is one trade plotted by hold time against P/L.
type DurationPoint struct {
	TradeID    string          `json:"trade_id"`
	Hours      float64         `json:"hours"`
	ProfitLoss decimal.Decimal `json:"profit_loss"`
}

// Regression is the least-squares line of P/L on hold time.
// Correlation is nil when P/L has no variance.
type Regression struct {
	Slope       float64  `json:"slope"`
	Intercept   float64  `json:"intercept"`
	Correlation *float64 `json:"correlation,omitempty"`
}

// DurationProfit is the scatter series plus its trend line. Regression is nil
// with fewer than two points or when every point has the same hold time.
type DurationProfit struct {
	Points     []DurationPoint `json:"points"`
	Regression *Regression     `json:"regression,omitempty"`
}

// DurationVsProfit plots every trade with a usable P/L. Trades without both
// an entry and an exit time sit at zero hours.
func DurationVsProfit(trades []journal.Trade) DurationProfit {
	points := make([]DurationPoint, 0, len(trades))
	for _, t := range trades {
		pl, ok := t.PL()
		if !ok {
			continue
		}
		var hours float64
		if d, ok := t.HoldTime(); ok {
			hours = d.Hours()
		}
		points = append(points, DurationPoint{TradeID: t.ID, Hours: hours, ProfitLoss: pl})
	}
	return DurationProfit{Points: points, Regression: regress(points)}
}

func regress(points []DurationPoint) *Regression {
	n := float64(len(points))
	if len(points) < 2 {
		return nil
	}

	// Spread is decided on the inputs, not on the float sums below, which
	// do not cancel to zero for values like 0.1 hours or 0.1 P/L.
	constX, constY := true, true
	var sumX, sumY float64
	ys := make([]float64, len(points))
	for i, p := range points {
		if p.Hours != points[0].Hours {
			constX = false
		}
		if !p.ProfitLoss.Equal(points[0].ProfitLoss) {
			constY = false
		}
		ys[i] = p.ProfitLoss.InexactFloat64()
		sumX += p.Hours
		sumY += ys[i]
	}
	if constX {
		return nil
	}
	meanX, meanY := sumX/n, sumY/n

	var sxx, syy, sxy float64
	for i, p := range points {
		dx, dy := p.Hours-meanX, ys[i]-meanY
		sxx += dx * dx
		syy += dy * dy
		sxy += dx * dy
	}

	if constY {
		return &Regression{Slope: 0, Intercept: ys[0]}
	}
	r := &Regression{Slope: sxy / sxx}
	r.Intercept = meanY - r.Slope*meanX
	c := sxy / math.Sqrt(sxx*syy)
	r.Correlation = &c
	return r
}
