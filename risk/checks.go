package risk

import (
	"fmt"
	"slices"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

type Violation struct {
	Code string `json:"code"`
	Msg  string `json:"msg"`
}

// Decision is the review of one journal entry.
type Decision struct {
	TradeID    string      `json:"trade_id"`
	Allowed    bool        `json:"allowed"`
	Violations []Violation `json:"violations,omitempty"`

	Balance        decimal.Decimal     `json:"balance"`
	PlannedRisk    decimal.NullDecimal `json:"planned_risk"`
	PlannedRiskPct decimal.NullDecimal `json:"planned_risk_pct"`
	PlannedRR      decimal.NullDecimal `json:"planned_rr"`
}

func (d *Decision) add(code, msg string) {
	d.Violations = append(d.Violations, Violation{Code: code, Msg: msg})
	d.Allowed = false
}

func pct(d decimal.Decimal) string {
	return d.Mul(decimal.NewFromInt(100)).StringFixed(2) + "%"
}

// Evaluate checks one trade against the policy given the account and the
// realized P/L at the time it was opened.
func Evaluate(p Policy, t journal.Trade, acct AccountSnapshot, pnl PnLSnapshot) Decision {
	d := Decision{TradeID: t.ID, Allowed: true, Balance: acct.Balance}

	if p.RequireStop && !t.StopLoss.Valid {
		d.add("NO_STOP", "no stop loss recorded")
	}

	// Risk + RR
	risk := t.Risk
	if !risk.Valid {
		if r, _, ok := PlannedFor(t); ok {
			risk = decimal.NewNullDecimal(r)
		}
	}
	if risk.Valid {
		d.PlannedRisk = risk
		d.PlannedRiskPct = RiskPct(risk.Decimal, acct.Balance)
	}
	if rr, ok := t.RiskReward(); ok {
		d.PlannedRR = decimal.NewNullDecimal(rr)
	} else if t.Entry.Valid && t.StopLoss.Valid && t.TakeProfit.Valid {
		d.PlannedRR = RR(t.Entry.Decimal, t.StopLoss.Decimal, t.TakeProfit.Decimal)
	}

	if d.PlannedRiskPct.Valid {
		riskPct := d.PlannedRiskPct.Decimal
		if maxPct := decimal.NewFromFloat(p.MaxRiskPct); p.MaxRiskPct > 0 && riskPct.GreaterThan(maxPct) {
			d.add("RISK_TOO_HIGH",
				fmt.Sprintf("planned risk %s exceeds max %s", pct(riskPct), pct(maxPct)))
		} else if defPct := decimal.NewFromFloat(p.DefaultRiskPct); p.DefaultRiskPct > 0 && riskPct.GreaterThan(defPct) {
			d.add("RISK_OVER_DEFAULT",
				fmt.Sprintf("planned risk %s exceeds default %s", pct(riskPct), pct(defPct)))
		}
	}
	if minRR := decimal.NewFromFloat(p.MinRR); p.MinRR > 0 && d.PlannedRR.Valid && d.PlannedRR.Decimal.LessThan(minRR) {
		d.add("RR_TOO_LOW",
			fmt.Sprintf("RR %s below minimum %s", d.PlannedRR.Decimal.StringFixed(2), minRR.StringFixed(2)))
	}

	// Circuit breakers (loss limits)
	if p.MaxDailyLossPct > 0 {
		dayLimit := decimal.NewFromFloat(p.MaxDailyLossPct).Mul(acct.Balance).Neg()
		if pnl.DayRealized.LessThanOrEqual(dayLimit) {
			d.add("DAILY_LOSS_LIMIT",
				fmt.Sprintf("day realized %s <= limit %s", pnl.DayRealized.StringFixed(2), dayLimit.StringFixed(2)))
		}
	}
	if p.MaxWeeklyLossPct > 0 {
		weekLimit := decimal.NewFromFloat(p.MaxWeeklyLossPct).Mul(acct.Balance).Neg()
		if pnl.WeekRealized.LessThanOrEqual(weekLimit) {
			d.add("WEEKLY_LOSS_LIMIT",
				fmt.Sprintf("week realized %s <= limit %s", pnl.WeekRealized.StringFixed(2), weekLimit.StringFixed(2)))
		}
	}

	return d
}

// Review replays the journal in entry-time order from the policy's start
// balance and evaluates every trade. Trades without an entry time are
// reviewed last and never trip the loss limits. Decisions come back in
// replay order.
func Review(p Policy, trades []journal.Trade, loc *time.Location) []Decision {
	if loc == nil {
		loc = time.UTC
	}

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

	balance := decimal.NewFromFloat(p.AccountStartBalance)
	var (
		day, week string
		pnl       PnLSnapshot
	)
	out := make([]Decision, 0, len(ordered))
	for _, t := range ordered {
		if t.HasEntryTime() {
			local := t.EntryTime.In(loc)
			if k := local.Format("2006-01-02"); k != day {
				day, pnl.DayRealized = k, decimal.Zero
			}
			if k := weekStart(local).Format("2006-01-02"); k != week {
				week, pnl.WeekRealized = k, decimal.Zero
			}
		} else {
			day, week, pnl = "", "", PnLSnapshot{}
		}

		out = append(out, Evaluate(p, t, AccountSnapshot{Balance: balance}, pnl))

		if pl, ok := t.PL(); ok {
			balance = balance.Add(pl)
			pnl.DayRealized = pnl.DayRealized.Add(pl)
			pnl.WeekRealized = pnl.WeekRealized.Add(pl)
		}
	}
	return out
}

// weekStart is the Sunday that opens t's week.
func weekStart(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
}
