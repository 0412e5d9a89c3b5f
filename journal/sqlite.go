package journal

import (
	"context"
	"database/sql"
	"fmt"
	"strconv"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// SQLite reads and writes a trade-service database file.
type SQLite struct {
	db *sql.DB
}

func NewSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		db.Close()
		return nil, err
	}

	return &SQLite{db: db}, nil
}

// RecordTrade inserts t and returns its ID. Numeric IDs are kept; any other
// ID is replaced by the next row id.
func (j *SQLite) RecordTrade(ctx context.Context, t Trade) (string, error) {
	var id any
	if n, err := strconv.ParseInt(t.ID, 10, 64); err == nil {
		id = n
	}

	direction := t.RawDirection
	if direction == "" && t.Direction != Unknown {
		direction = strings.ToLower(t.Direction.String())
	}

	res, err := j.db.ExecContext(ctx, `
		INSERT INTO trade
		(id, timestamp, instrument, direction, entry, exit, stop_loss, take_profit,
		 size, risk, reward, profit_loss, duration, comments)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, nullTime(t.EntryTime), t.Instrument, direction,
		t.Entry, t.Exit, t.StopLoss, t.TakeProfit,
		t.Size, t.Risk, t.Reward, t.ProfitLoss,
		t.Duration, t.Comments,
	)
	if err != nil {
		return "", fmt.Errorf("insert trade: %w", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(rowID, 10), nil
}

// AddScreenshot records an attachment reference for an existing trade.
func (j *SQLite) AddScreenshot(ctx context.Context, tradeID, filename, path string) (string, error) {
	res, err := j.db.ExecContext(ctx, `
		INSERT INTO screenshot (filename, filepath, upload_date, trade_id)
		VALUES (?, ?, ?, ?)`,
		filename, path, time.Now().UTC(), tradeID,
	)
	if err != nil {
		return "", fmt.Errorf("insert screenshot: %w", err)
	}
	rowID, err := res.LastInsertId()
	if err != nil {
		return "", err
	}
	return strconv.FormatInt(rowID, 10), nil
}

func (j *SQLite) Close() error {
	return j.db.Close()
}

func nullTime(t time.Time) sql.NullTime {
	if t.IsZero() {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
