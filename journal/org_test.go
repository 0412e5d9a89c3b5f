package journal

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	tr := Trade{
		ID:         "01HZX4ABCDEF",
		Instrument: "EURUSD",
		Direction:  Long,
		Entry:      dec("1.085"),
		Exit:       dec("1.0875"),
		StopLoss:   dec("1.084"),
		Size:       dec("1"),
		Risk:       dec("10"),
		Reward:     dec("25"),
		ProfitLoss: dec("25"),
		EntryTime:  time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC),
		ExitTime:   time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC),
		Duration:   "60 min",
		Comments:   "  clean breakout  ",
		Screenshots: []Screenshot{
			{ID: "1", Filename: "abc_entry.png"},
		},
	}

	out := FormatTradeOrg(tr)

	assert.True(t, strings.HasPrefix(out, "** Trade: EURUSD Long (01HZX4AB)\n"))
	assert.Contains(t, out, ":TRADE_ID: 01HZX4ABCDEF\n")
	assert.Contains(t, out, ":ENTRY_PRICE: 1.08500\n")
	assert.Contains(t, out, ":TAKE_PROFIT: -\n")
	assert.Contains(t, out, ":OPEN_TIME: 2024-05-01T09:00:00Z\n")
	assert.Contains(t, out, ":RR: 2.50\n")
	assert.Contains(t, out, ":REALIZED_PL: 25.00\n")
	assert.Contains(t, out, "*** Comments\nclean breakout\n\n")
	assert.Contains(t, out, "- [[file:abc_entry.png]]\n")
}

func TestFormatTradeOrgMissingFields(t *testing.T) {
	t.Parallel()

	out := FormatTradeOrg(Trade{ID: "9"})

	assert.True(t, strings.HasPrefix(out, "** Trade: Unknown Unknown (9)\n"))
	assert.Contains(t, out, ":OPEN_TIME: -\n")
	assert.Contains(t, out, ":REALIZED_PL: -\n")
	assert.NotContains(t, out, ":RR:")
	assert.Contains(t, out, "*** Comments\n- \n")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	out := FormatTradesOrg([]Trade{{ID: "1"}, {ID: "2"}})
	assert.Equal(t, 2, strings.Count(out, "** Trade:"))
	assert.Contains(t, out, "\n\n\n** Trade: Unknown Unknown (2)")

	assert.Equal(t, "", FormatTradesOrg(nil))
}
