package journal

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PL returns the realized profit/loss and whether it was recorded.
func (t Trade) PL() (decimal.Decimal, bool) {
	if !t.ProfitLoss.Valid {
		return decimal.Zero, false
	}
	return t.ProfitLoss.Decimal, true
}

// RiskReward returns reward/risk. It reports false unless both values are
// present and risk is strictly positive.
func (t Trade) RiskReward() (decimal.Decimal, bool) {
	if !t.Risk.Valid || !t.Reward.Valid || !t.Risk.Decimal.IsPositive() {
		return decimal.Zero, false
	}
	return t.Reward.Decimal.Div(t.Risk.Decimal), true
}

// HasEntryTime reports whether the trade carries an open time.
func (t Trade) HasEntryTime() bool {
	return !t.EntryTime.IsZero()
}

// HoldTime is ExitTime - EntryTime. It reports false when either end is missing.
func (t Trade) HoldTime() (time.Duration, bool) {
	if t.EntryTime.IsZero() || t.ExitTime.IsZero() {
		return 0, false
	}
	return t.ExitTime.Sub(t.EntryTime), true
}

// InstrumentOr returns the trimmed instrument, or fallback when it is blank.
func (t Trade) InstrumentOr(fallback string) string {
	if name := strings.TrimSpace(t.Instrument); name != "" {
		return name
	}
	return fallback
}
