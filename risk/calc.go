package risk

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// forexCodes marks an instrument as a currency pair when any appears in it.
var forexCodes = []string{"USD", "EUR", "GBP", "JPY", "AUD", "NZD", "CAD", "CHF"}

// pipsPerUnit converts a forex price move to pips (1 pip = 0.0001).
var pipsPerUnit = decimal.New(1, 4)

// IsForex reports whether instrument looks like a currency pair.
func IsForex(instrument string) bool {
	upper := strings.ToUpper(instrument)
	for _, code := range forexCodes {
		if strings.Contains(upper, code) {
			return true
		}
	}
	return false
}

// Planned computes the money at risk and the reward targeted by a position,
// rounded to cents. Forex pairs are measured in pips times size; anything
// else is price distance times size, signed by direction, so a stop on the
// wrong side gives a negative risk.
//
// ok is false when the direction is unknown or any input is zero.
func Planned(dir journal.Direction, instrument string, entry, stop, target, size decimal.Decimal) (risk, reward decimal.Decimal, ok bool) {
	if entry.IsZero() || stop.IsZero() || target.IsZero() || size.IsZero() {
		return decimal.Zero, decimal.Zero, false
	}

	var riskMove, rewardMove decimal.Decimal
	switch dir {
	case journal.Long:
		riskMove = entry.Sub(stop)
		rewardMove = target.Sub(entry)
	case journal.Short:
		riskMove = stop.Sub(entry)
		rewardMove = entry.Sub(target)
	default:
		return decimal.Zero, decimal.Zero, false
	}

	if IsForex(instrument) {
		riskMove = riskMove.Abs().Mul(pipsPerUnit)
		rewardMove = rewardMove.Abs().Mul(pipsPerUnit)
	}
	return riskMove.Mul(size).Round(2), rewardMove.Mul(size).Round(2), true
}

// PlannedFor runs Planned over the prices recorded on t.
func PlannedFor(t journal.Trade) (risk, reward decimal.Decimal, ok bool) {
	if !t.Entry.Valid || !t.StopLoss.Valid || !t.TakeProfit.Valid || !t.Size.Valid {
		return decimal.Zero, decimal.Zero, false
	}
	return Planned(t.Direction, t.Instrument, t.Entry.Decimal, t.StopLoss.Decimal, t.TakeProfit.Decimal, t.Size.Decimal)
}

// Fill sets Risk and Reward from the trade's prices when neither was
// recorded. Trades that already carry either value are returned unchanged.
func Fill(t journal.Trade) journal.Trade {
	if t.Risk.Valid || t.Reward.Valid {
		return t
	}
	if risk, reward, ok := PlannedFor(t); ok {
		t.Risk = decimal.NewNullDecimal(risk)
		t.Reward = decimal.NewNullDecimal(reward)
	}
	return t
}

// RR is the reward/risk ratio implied by entry, stop and target prices.
// It is invalid when entry equals stop.
func RR(entry, stop, takeProfit decimal.Decimal) decimal.NullDecimal {
	risk := entry.Sub(stop).Abs()
	reward := takeProfit.Sub(entry).Abs()
	if risk.IsZero() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(reward.Div(risk))
}

// RiskPct is risk as a fraction of balance; invalid unless balance > 0.
func RiskPct(risk, balance decimal.Decimal) decimal.NullDecimal {
	if !balance.IsPositive() {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(risk.Div(balance))
}
