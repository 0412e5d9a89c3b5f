package journal

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	open := time.Date(2024, 4, 10, 9, 0, 0, 0, time.UTC)

	expected := Trade{
		ID:         "123",
		Instrument: "EURUSD",
		Direction:  Short,
		Entry:      dec("1.08500"),
		Exit:       dec("1.08250"),
		StopLoss:   dec("1.0870"),
		TakeProfit: dec("1.0800"),
		Size:       dec("1.5"),
		Risk:       dec("30"),
		Reward:     dec("75"),
		ProfitLoss: dec("375"),
		EntryTime:  open,
		Duration:   "6h30m",
		Comments:   "trend",
	}

	_, err := j.RecordTrade(ctx, expected)
	require.NoError(t, err)
	_, err = j.AddScreenshot(ctx, "123", "abc_entry.png", "static/uploads/abc_entry.png")
	require.NoError(t, err)

	actual, err := j.GetTrade(ctx, "123")
	require.NoError(t, err)

	assert.Equal(t, expected.ID, actual.ID)
	assert.Equal(t, expected.Instrument, actual.Instrument)
	assert.Equal(t, Short, actual.Direction)
	assertDec(t, "1.085", actual.Entry)
	assertDec(t, "1.0825", actual.Exit)
	assertDec(t, "1.087", actual.StopLoss)
	assertDec(t, "1.08", actual.TakeProfit)
	assertDec(t, "1.5", actual.Size)
	assertDec(t, "30", actual.Risk)
	assertDec(t, "75", actual.Reward)
	assertDec(t, "375", actual.ProfitLoss)
	assert.True(t, actual.EntryTime.Equal(open))
	assert.True(t, actual.ExitTime.Equal(open.Add(6*time.Hour+30*time.Minute)))
	assert.Equal(t, "trend", actual.Comments)
	require.Len(t, actual.Screenshots, 1)
	assert.Equal(t, "abc_entry.png", actual.Screenshots[0].Filename)
}

func TestGetTradeNotFound(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.GetTrade(context.Background(), "999")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), "not found")
}

func TestGetTradeNullColumns(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.db.Exec(`INSERT INTO trade (id, instrument) VALUES (5, NULL)`)
	require.NoError(t, err)

	rec, err := j.GetTrade(ctx, "5")
	require.NoError(t, err)
	assert.Equal(t, "", rec.Instrument)
	assert.False(t, rec.ProfitLoss.Valid)
	assert.False(t, rec.Risk.Valid)
	assert.True(t, rec.EntryTime.IsZero())
	assert.True(t, rec.ExitTime.IsZero())
	assert.Empty(t, rec.Screenshots)
}

func TestGetTradeTrimsInstrument(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	_, err := j.db.Exec(`INSERT INTO trade (id, instrument) VALUES (6, '  DE40 ')`)
	require.NoError(t, err)

	rec, err := j.GetTrade(ctx, "6")
	require.NoError(t, err)
	assert.Equal(t, "DE40", rec.Instrument)
}

func TestListTradesNewestFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	for i, id := range []string{"1", "2", "3"} {
		_, err := j.RecordTrade(ctx, Trade{
			ID:         id,
			Instrument: "EURUSD",
			EntryTime:  base.Add(time.Duration(i) * time.Hour),
			ProfitLoss: dec("10"),
		})
		require.NoError(t, err)
	}

	got, err := j.ListTrades(ctx)
	require.NoError(t, err)
	require.Len(t, got, 3)
	assert.Equal(t, "3", got[0].ID)
	assert.Equal(t, "2", got[1].ID)
	assert.Equal(t, "1", got[2].ID)
}

func TestListTradesOpenedBetween(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	baseTime := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	offsets := []time.Duration{1 * time.Hour, 5 * time.Hour, 10 * time.Hour, 24 * time.Hour}
	for i, off := range offsets {
		_, err := j.RecordTrade(ctx, Trade{
			ID:         string(rune('1' + i)),
			Instrument: "GBPUSD",
			EntryTime:  baseTime.Add(off),
		})
		require.NoError(t, err)
	}

	results, err := j.ListTradesOpenedBetween(ctx, baseTime.Add(3*time.Hour), baseTime.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.Equal(t, "2", results[0].ID)
	assert.Equal(t, "3", results[1].ID)
}

func TestListTradesOpenedBetweenBoundaries(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	at := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	_, err := j.RecordTrade(ctx, Trade{ID: "1", Instrument: "EURUSD", EntryTime: at})
	require.NoError(t, err)

	// start is inclusive
	results, err := j.ListTradesOpenedBetween(ctx, at, at.Add(time.Hour))
	require.NoError(t, err)
	assert.Len(t, results, 1)

	// end is exclusive
	results, err = j.ListTradesOpenedBetween(ctx, at.Add(-time.Hour), at)
	require.NoError(t, err)
	assert.Empty(t, results)
}

func TestListTradesEmpty(t *testing.T) {
	t.Parallel()

	j, _ := newTestSQLite(t)
	defer j.Close()

	results, err := j.ListTrades(context.Background())
	require.NoError(t, err)
	assert.Empty(t, results)
}
