package journal

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// FormatTradeOrg renders a Trade as an Org-mode block suitable for pasting into a journal.
// Structured facts go in a PROPERTIES drawer; the trader's comments and
// screenshots become the narrative sections.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.InstrumentOr("Unknown"), t.Direction, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":INSTRUMENT: %s\n", t.Instrument))
	b.WriteString(fmt.Sprintf(":DIRECTION: %s\n", t.Direction))
	b.WriteString(fmt.Sprintf(":SIZE: %s\n", orgNum(t.Size, 2)))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %s\n", orgNum(t.Entry, 5)))
	b.WriteString(fmt.Sprintf(":EXIT_PRICE: %s\n", orgNum(t.Exit, 5)))
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %s\n", orgNum(t.StopLoss, 5)))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %s\n", orgNum(t.TakeProfit, 5)))
	b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", orgTime(t.EntryTime)))
	b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", orgTime(t.ExitTime)))
	b.WriteString(fmt.Sprintf(":DURATION: %s\n", t.Duration))
	b.WriteString(fmt.Sprintf(":RISK: %s\n", orgNum(t.Risk, 2)))
	b.WriteString(fmt.Sprintf(":REWARD: %s\n", orgNum(t.Reward, 2)))
	if rr, ok := t.RiskReward(); ok {
		b.WriteString(fmt.Sprintf(":RR: %s\n", rr.StringFixed(2)))
	}
	b.WriteString(fmt.Sprintf(":REALIZED_PL: %s\n", orgNum(t.ProfitLoss, 2)))
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Comments\n")
	if c := strings.TrimSpace(t.Comments); c != "" {
		b.WriteString(c)
		b.WriteString("\n\n")
	} else {
		b.WriteString("- \n\n")
	}
	b.WriteString("*** Screenshots\n")
	if len(t.Screenshots) == 0 {
		b.WriteString("- \n")
	}
	for _, s := range t.Screenshots {
		b.WriteString(fmt.Sprintf("- [[file:%s]]\n", s.Filename))
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func orgNum(d decimal.NullDecimal, places int32) string {
	if !d.Valid {
		return "-"
	}
	return d.Decimal.StringFixed(places)
}

// Use RFC3339 for copy/paste friendliness.
func orgTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.UTC().Format(time.RFC3339)
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
