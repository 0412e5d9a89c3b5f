package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rustyeddy/tradejournal/journal"
)

func TestSummarize(t *testing.T) {
	t.Parallel()

	s := Summarize(sample())

	assert.Equal(t, 6, s.TotalTrades)
	assert.Equal(t, 5, s.Scored)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 2, s.Losses)
	assert.Equal(t, 1, s.BreakEven)
	assert.InDelta(t, 40.0, s.WinRate, 1e-9)

	assertDecEq(t, "75", s.TotalProfit)
	assertDecEq(t, "15", s.AvgProfit)
	assertDecEq(t, "62.75", s.AvgWin)
	assertDecEq(t, "-25.25", s.AvgLoss)
	assertDecEq(t, "100", s.BiggestWin)
	assertDecEq(t, "-40", s.BiggestLoss)
	assertDecEq(t, "125.5", s.GrossProfit)
	assertDecEq(t, "-50.5", s.GrossLoss)

	if assert.True(t, s.ProfitFactor.Valid) {
		assert.InDelta(t, 125.5/50.5, s.ProfitFactor.Decimal.InexactFloat64(), 1e-9)
	}
}

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)
	assert.Equal(t, 0, s.TotalTrades)
	assert.Equal(t, 0.0, s.WinRate)
	assert.True(t, s.TotalProfit.IsZero())
	assert.True(t, s.AvgProfit.IsZero())
	assert.False(t, s.ProfitFactor.Valid)
	assert.True(t, s.MaxDrawdown.IsZero())
}

func TestSummarizeNoLosses(t *testing.T) {
	t.Parallel()

	s := Summarize([]journal.Trade{
		trade("1", "A", journal.Long, "10", day(2024, 1, 1)),
		trade("2", "A", journal.Long, "30", day(2024, 1, 2)),
	})
	assert.Equal(t, 100.0, s.WinRate)
	assertDecEq(t, "20", s.AvgProfit)
	assert.False(t, s.ProfitFactor.Valid, "profit factor is undefined without losses")
}

func TestWinRateBounds(t *testing.T) {
	t.Parallel()

	lists := [][]journal.Trade{
		nil,
		sample(),
		{trade("1", "A", journal.Long, "-1", day(2024, 1, 1))},
		{trade("1", "A", journal.Long, "0", day(2024, 1, 1))},
		{trade("1", "A", journal.Long, "", day(2024, 1, 1))},
		{trade("1", "A", journal.Long, "5", day(2024, 1, 1))},
	}
	for _, trades := range lists {
		s := Summarize(trades)
		assert.GreaterOrEqual(t, s.WinRate, 0.0)
		assert.LessOrEqual(t, s.WinRate, 100.0)
		assert.Equal(t, s.Wins == 0, s.WinRate == 0)
	}
}

func TestEquityFinalMatchesTotalProfit(t *testing.T) {
	t.Parallel()

	trades := sample()
	curve := EquityCurve(trades)
	s := Summarize(trades)

	if assert.NotEmpty(t, curve) {
		assertDecEq(t, s.TotalProfit.String(), curve[len(curve)-1].Value)
	}
}
