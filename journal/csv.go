// journal/csv.go
package journal

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/internal/id"
)

// CSVHeader is the column order written by CSVJournal.
var CSVHeader = []string{
	"id", "timestamp", "instrument", "direction", "entry", "exit", "stop_loss", "take_profit",
	"size", "risk", "reward", "profit_loss", "duration", "comments",
}

// CSVJournal appends trades to a CSV file.
type CSVJournal struct {
	trades *csv.Writer
	tf     *os.File
}

func NewCSV(tradesPath string) (*CSVJournal, error) {
	tf, err := os.Create(tradesPath)
	if err != nil {
		return nil, err
	}

	tw := csv.NewWriter(tf)
	if err := tw.Write(CSVHeader); err != nil {
		tf.Close()
		return nil, err
	}
	tw.Flush()
	if err := tw.Error(); err != nil {
		tf.Close()
		return nil, err
	}

	return &CSVJournal{trades: tw, tf: tf}, nil
}

func (j *CSVJournal) RecordTrade(t Trade) error {
	if err := j.trades.Write(csvRow(t)); err != nil {
		return err
	}
	j.trades.Flush()
	return j.trades.Error()
}

func (j *CSVJournal) Close() error {
	j.trades.Flush()
	if err := j.trades.Error(); err != nil {
		return err
	}
	return j.tf.Close()
}

func csvRow(t Trade) []string {
	ts := ""
	if !t.EntryTime.IsZero() {
		ts = t.EntryTime.Format(time.RFC3339)
	}
	direction := t.RawDirection
	if direction == "" && t.Direction != Unknown {
		direction = strings.ToLower(t.Direction.String())
	}
	return []string{
		t.ID,
		ts,
		t.Instrument,
		direction,
		f(t.Entry),
		f(t.Exit),
		f(t.StopLoss),
		f(t.TakeProfit),
		f(t.Size),
		f(t.Risk),
		f(t.Reward),
		f(t.ProfitLoss),
		t.Duration,
		t.Comments,
	}
}

func f(x decimal.NullDecimal) string {
	if !x.Valid {
		return ""
	}
	return x.Decimal.String()
}

// ReadCSV reads trades written by CSVJournal or exported by the trade
// service. Columns are matched by header name; rows without an id get a
// generated one.
func ReadCSV(r io.Reader, loc *time.Location) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, fmt.Errorf("read csv header: %w", err)
	}
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.ToLower(strings.TrimSpace(h))] = i
	}
	get := func(row []string, name string) string {
		i, ok := col[name]
		if !ok || i >= len(row) {
			return ""
		}
		return row[i]
	}

	var out []Trade
	for {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read csv: %w", err)
		}

		w := wireTrade{
			ID:         flexString(strings.TrimSpace(get(row, "id"))),
			Timestamp:  get(row, "timestamp"),
			EntryDate:  get(row, "entry_date"),
			ExitDate:   get(row, "exit_date"),
			Instrument: get(row, "instrument"),
			Direction:  get(row, "direction"),
			Entry:      flexDecimal{ParseDecimal(get(row, "entry"))},
			Exit:       flexDecimal{ParseDecimal(get(row, "exit"))},
			StopLoss:   flexDecimal{ParseDecimal(get(row, "stop_loss"))},
			TakeProfit: flexDecimal{ParseDecimal(get(row, "take_profit"))},
			Size:       flexDecimal{ParseDecimal(get(row, "size"))},
			Risk:       flexDecimal{ParseDecimal(get(row, "risk"))},
			Reward:     flexDecimal{ParseDecimal(get(row, "reward"))},
			ProfitLoss: flexDecimal{ParseDecimal(get(row, "profit_loss"))},
			Duration:   flexString(get(row, "duration")),
			Comments:   get(row, "comments"),
		}
		if w.ID == "" {
			w.ID = flexString(id.New())
		}
		out = append(out, w.normalize(loc))
	}
	return out, nil
}

// CSVFile serves trades from a CSV export.
type CSVFile struct {
	Path     string
	Location *time.Location
}

func (c CSVFile) ListTrades(ctx context.Context) ([]Trade, error) {
	fh, err := os.Open(c.Path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()
	return ReadCSV(fh, c.Location)
}

func (c CSVFile) GetTrade(ctx context.Context, tradeID string) (Trade, error) {
	trades, err := c.ListTrades(ctx)
	if err != nil {
		return Trade{}, err
	}
	for _, t := range trades {
		if t.ID == tradeID {
			return t, nil
		}
	}
	return Trade{}, fmt.Errorf("trade %q: %w", tradeID, ErrNotFound)
}
