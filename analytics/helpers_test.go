package analytics

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradejournal/journal"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func nd(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(d(s))
}

func day(y int, m time.Month, dd int) time.Time {
	return time.Date(y, m, dd, 12, 0, 0, 0, time.UTC)
}

// trade builds a trade with a P/L; an empty pl leaves it unset.
func trade(id, instrument string, dir journal.Direction, pl string, at time.Time) journal.Trade {
	t := journal.Trade{ID: id, Instrument: instrument, Direction: dir, EntryTime: at}
	if pl != "" {
		t.ProfitLoss = nd(pl)
	}
	return t
}

func assertDecEq(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, d(want).Equal(got), append([]any{"want %s got %s", want, got.String()}, msgAndArgs...)...)
}

// sample is a small mixed journal used by several tests.
func sample() []journal.Trade {
	return []journal.Trade{
		trade("1", "EURUSD", journal.Long, "100", day(2024, 3, 4)),
		trade("2", "US30", journal.Short, "-40", day(2024, 3, 2)),
		trade("3", "EURUSD", journal.Long, "0", day(2024, 3, 11)),
		trade("4", "", journal.Unknown, "25.5", day(2024, 4, 1)),
		trade("5", "DAX", journal.Short, "", day(2024, 4, 2)),
		trade("6", "US30", journal.Long, "-10.5", time.Time{}),
	}
}
