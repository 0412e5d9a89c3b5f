package journal

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const tradeColumns = `id, timestamp, instrument, direction, entry, exit, stop_loss, take_profit,
	size, risk, reward, profit_loss, duration, comments`

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(s scanner) (Trade, error) {
	var (
		rec        Trade
		id         int64
		ts         sql.NullTime
		instrument sql.NullString
		direction  sql.NullString
		duration   sql.NullString
		comments   sql.NullString
	)
	err := s.Scan(
		&id,
		&ts,
		&instrument,
		&direction,
		&rec.Entry,
		&rec.Exit,
		&rec.StopLoss,
		&rec.TakeProfit,
		&rec.Size,
		&rec.Risk,
		&rec.Reward,
		&rec.ProfitLoss,
		&duration,
		&comments,
	)
	if err != nil {
		return Trade{}, err
	}

	rec.ID = strconv.FormatInt(id, 10)
	rec.Instrument = strings.TrimSpace(instrument.String)
	rec.RawDirection = direction.String
	rec.Direction = ParseDirection(direction.String)
	rec.Duration = duration.String
	rec.Comments = comments.String
	if ts.Valid {
		rec.EntryTime = ts.Time.UTC()
		if d, ok := ParseHoldDuration(rec.Duration); ok {
			rec.ExitTime = rec.EntryTime.Add(d)
		}
	}
	return rec, nil
}

// GetTrade returns a single trade by ID, screenshots included.
func (j *SQLite) GetTrade(ctx context.Context, tradeID string) (Trade, error) {
	row := j.db.QueryRowContext(ctx, `
		SELECT `+tradeColumns+`
		FROM trade
		WHERE id = ?`, tradeID)

	rec, err := scanTrade(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
		}
		return Trade{}, err
	}

	shots, err := j.screenshots(ctx, rec.ID)
	if err != nil {
		return Trade{}, err
	}
	rec.Screenshots = shots
	return rec, nil
}

// ListTrades returns every trade, newest first, the way the trade API lists them.
func (j *SQLite) ListTrades(ctx context.Context) ([]Trade, error) {
	return j.queryTrades(ctx, `
		SELECT `+tradeColumns+`
		FROM trade
		ORDER BY timestamp DESC, id DESC`)
}

// ListTradesOpenedBetween returns trades whose timestamp is within [start, end).
func (j *SQLite) ListTradesOpenedBetween(ctx context.Context, start, end time.Time) ([]Trade, error) {
	return j.queryTrades(ctx, `
		SELECT `+tradeColumns+`
		FROM trade
		WHERE timestamp >= ? AND timestamp < ?
		ORDER BY timestamp ASC, id ASC`, start.UTC(), end.UTC())
}

func (j *SQLite) queryTrades(ctx context.Context, query string, args ...any) ([]Trade, error) {
	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Trade
	for rows.Next() {
		rec, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (j *SQLite) screenshots(ctx context.Context, tradeID string) ([]Screenshot, error) {
	rows, err := j.db.QueryContext(ctx, `
		SELECT id, filename
		FROM screenshot
		WHERE trade_id = ?
		ORDER BY id ASC`, tradeID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Screenshot
	for rows.Next() {
		var (
			id       int64
			filename sql.NullString
		)
		if err := rows.Scan(&id, &filename); err != nil {
			return nil, err
		}
		out = append(out, Screenshot{ID: strconv.FormatInt(id, 10), Filename: filename.String})
	}
	return out, rows.Err()
}
