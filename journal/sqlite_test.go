package journal

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) (*SQLite, string) {
	t.Helper()

	dir := t.TempDir()
	path := filepath.Join(dir, "trades.db")

	j, err := NewSQLite(path)
	require.NoError(t, err)

	return j, path
}

func TestSQLiteSchemaCreated(t *testing.T) {
	t.Parallel()

	j, path := newTestSQLite(t)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	rows, err := db.Query(`SELECT name FROM sqlite_master WHERE type='table' AND name IN ('trade','screenshot')`)
	require.NoError(t, err)
	defer rows.Close()

	found := map[string]bool{}
	for rows.Next() {
		var name string
		assert.NoError(t, rows.Scan(&name))
		found[name] = true
	}
	assert.NoError(t, rows.Err())

	assert.True(t, found["trade"])
	assert.True(t, found["screenshot"])
}

func TestSQLiteRecordTrade(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, path := newTestSQLite(t)

	open := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	rec := Trade{
		ID:         "11",
		Instrument: "EURUSD",
		Direction:  Long,
		Entry:      dec("1.2345678"),
		Exit:       dec("1.3456789"),
		Size:       dec("0.5"),
		ProfitLoss: dec("-12.5"),
		EntryTime:  open,
		Duration:   "30 min",
		Comments:   "test",
	}

	gotID, err := j.RecordTrade(ctx, rec)
	require.NoError(t, err)
	assert.Equal(t, "11", gotID)
	assert.NoError(t, j.Close())

	db, err := sql.Open("sqlite3", path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var (
		instrument string
		direction  string
		entry      float64
		stopLoss   sql.NullFloat64
		pl         float64
		ts         time.Time
	)
	err = db.QueryRow(`
        SELECT instrument, direction, entry, stop_loss, profit_loss, timestamp
        FROM trade WHERE id = 11`).Scan(&instrument, &direction, &entry, &stopLoss, &pl, &ts)
	require.NoError(t, err)

	assert.Equal(t, "EURUSD", instrument)
	assert.Equal(t, "long", direction)
	assert.InDelta(t, 1.2345678, entry, 1e-9)
	assert.False(t, stopLoss.Valid)
	assert.InDelta(t, -12.5, pl, 1e-9)
	assert.True(t, ts.Equal(open))
}

func TestSQLiteRecordTradeAssignsRowID(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	j, _ := newTestSQLite(t)
	defer j.Close()

	first, err := j.RecordTrade(ctx, Trade{ID: "01HXYZ", Instrument: "US30"})
	require.NoError(t, err)
	second, err := j.RecordTrade(ctx, Trade{Instrument: "US30"})
	require.NoError(t, err)

	assert.Equal(t, "1", first)
	assert.Equal(t, "2", second)
}
