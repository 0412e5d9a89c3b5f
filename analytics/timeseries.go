package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// Granularity selects the period length of TradesOverTime.
type Granularity int

const (
	Daily Granularity = iota
	Weekly
	Monthly
)

func (g Granularity) String() string {
	switch g {
	case Weekly:
		return "weekly"
	case Monthly:
		return "monthly"
	default:
		return "daily"
	}
}

// ParseGranularity accepts "daily", "weekly" and "monthly" ("" is daily).
func ParseGranularity(s string) (Granularity, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "daily", "day":
		return Daily, nil
	case "weekly", "week":
		return Weekly, nil
	case "monthly", "month":
		return Monthly, nil
	}
	return Daily, fmt.Errorf("unknown granularity %q", s)
}

// Period is one bar of the trades-over-time chart. Key sorts
// lexicographically in time order; Label is the chart caption.
type Period struct {
	Key         string          `json:"key"`
	Label       string          `json:"label"`
	Start       time.Time       `json:"start"`
	Count       int             `json:"count"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// TradesOverTime groups trades into calendar periods computed in UTC.
func TradesOverTime(trades []journal.Trade, g Granularity) []Period {
	return TradesOverTimeIn(trades, g, time.UTC)
}

// TradesOverTimeIn groups trades into calendar periods of loc. Trades without
// an entry time are skipped. Periods come back in ascending order.
func TradesOverTimeIn(trades []journal.Trade, g Granularity, loc *time.Location) []Period {
	if loc == nil {
		loc = time.UTC
	}

	byKey := make(map[string]*Period)
	for _, t := range trades {
		if !t.HasEntryTime() {
			continue
		}
		start := periodStart(t.EntryTime.In(loc), g)
		key := periodKey(start, g)
		p, ok := byKey[key]
		if !ok {
			p = &Period{Key: key, Label: periodLabel(start, g), Start: start}
			byKey[key] = p
		}
		p.Count++
		if pl, ok := t.PL(); ok {
			p.TotalProfit = p.TotalProfit.Add(pl)
		}
	}

	out := make([]Period, 0, len(byKey))
	for _, p := range byKey {
		out = append(out, *p)
	}
	slices.SortFunc(out, func(a, b Period) int { return strings.Compare(a.Key, b.Key) })
	return out
}

func periodStart(t time.Time, g Granularity) time.Time {
	y, m, d := t.Date()
	switch g {
	case Weekly:
		return time.Date(y, m, d-int(t.Weekday()), 0, 0, 0, 0, t.Location())
	case Monthly:
		return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
	default:
		return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
	}
}

func periodKey(start time.Time, g Granularity) string {
	if g == Monthly {
		return start.Format("2006-01")
	}
	return start.Format("2006-01-02")
}

func periodLabel(start time.Time, g Granularity) string {
	switch g {
	case Weekly:
		return "Week of " + start.Format("1/2")
	case Monthly:
		return start.Format("01/2006")
	default:
		return start.Format("01/02")
	}
}
