package report

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/rustyeddy/tradejournal/analytics"
	"github.com/rustyeddy/tradejournal/journal"
)

// TradeSheet is the sheet holding one row per trade.
const TradeSheet = "Trade Journal"

// Analytics sheets are rewritten on every export.
const (
	SummarySheet    = "Summary"
	InstrumentSheet = "Instruments"
	RRSheet         = "Risk-Reward"
	OverTimeSheet   = "Over Time"
)

const (
	timestampLayout = "2006-01-02 15:04:05"
	maxColWidth     = 50
)

var tradeHeaders = []string{
	"ID", "Timestamp", "Instrument", "Direction", "Entry", "Exit",
	"Stop Loss", "Take Profit", "Size", "Risk", "Reward", "P/L",
	"Duration", "Comments",
}

// WriteXLSX appends trades to the workbook at path, creating it if needed.
// Trades whose ID is already in the trade sheet are skipped. When rep is not
// nil the analytics sheets are replaced with its views. It returns the number
// of rows appended.
func WriteXLSX(path string, trades []journal.Trade, rep *analytics.Report) (int, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	added, err := appendTrades(f, trades)
	if err != nil {
		return 0, err
	}
	if rep != nil {
		if err := writeAnalytics(f, rep); err != nil {
			return 0, err
		}
	}
	if idx, err := f.GetSheetIndex(TradeSheet); err == nil && idx >= 0 {
		f.SetActiveSheet(idx)
	}
	if err := f.SaveAs(path); err != nil {
		return 0, fmt.Errorf("save %s: %w", path, err)
	}
	return added, nil
}

func openWorkbook(path string) (*excelize.File, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		f, err := excelize.OpenFile(path)
		if err != nil {
			return nil, fmt.Errorf("open %s: %w", path, err)
		}
		return f, nil
	case errors.Is(err, fs.ErrNotExist):
		f := excelize.NewFile()
		if err := f.SetSheetName("Sheet1", TradeSheet); err != nil {
			f.Close()
			return nil, err
		}
		return f, nil
	default:
		return nil, err
	}
}

func headerStyle(f *excelize.File) (int, error) {
	return f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center"},
	})
}

// writeHeader writes headers to row 1 of sheet and styles them.
func writeHeader(f *excelize.File, sheet string, headers []string) error {
	row := make([]any, len(headers))
	for i, h := range headers {
		row[i] = h
	}
	if err := f.SetSheetRow(sheet, "A1", &row); err != nil {
		return err
	}
	style, err := headerStyle(f)
	if err != nil {
		return err
	}
	last, err := excelize.CoordinatesToCellName(len(headers), 1)
	if err != nil {
		return err
	}
	return f.SetCellStyle(sheet, "A1", last, style)
}

func appendTrades(f *excelize.File, trades []journal.Trade) (int, error) {
	idx, err := f.GetSheetIndex(TradeSheet)
	if err != nil {
		return 0, err
	}
	if idx < 0 {
		if _, err := f.NewSheet(TradeSheet); err != nil {
			return 0, err
		}
	}

	rows, err := f.GetRows(TradeSheet)
	if err != nil {
		return 0, err
	}
	if len(rows) == 0 {
		if err := writeHeader(f, TradeSheet, tradeHeaders); err != nil {
			return 0, err
		}
		rows = [][]string{tradeHeaders}
	}

	idCol := -1
	for i, h := range rows[0] {
		if h == "ID" {
			idCol = i
			break
		}
	}
	if idCol < 0 {
		return 0, fmt.Errorf("sheet %q has no ID column", TradeSheet)
	}
	seen := make(map[string]bool, len(rows))
	for _, r := range rows[1:] {
		if idCol < len(r) && r[idCol] != "" {
			seen[r[idCol]] = true
		}
	}

	next := len(rows) + 1
	added := 0
	for _, t := range trades {
		if t.ID == "" || seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		cell, err := excelize.CoordinatesToCellName(1, next)
		if err != nil {
			return added, err
		}
		row := tradeRow(t)
		if err := f.SetSheetRow(TradeSheet, cell, &row); err != nil {
			return added, err
		}
		rows = append(rows, rowStrings(row))
		next++
		added++
	}
	return added, fitColumns(f, TradeSheet, rows)
}

func tradeRow(t journal.Trade) []any {
	var id any = t.ID
	if n, err := strconv.ParseInt(t.ID, 10, 64); err == nil {
		id = n
	}
	var ts any
	if t.HasEntryTime() {
		ts = t.EntryTime.Format(timestampLayout)
	}
	return []any{
		id, ts, t.Instrument, t.RawDirection,
		num(t.Entry), num(t.Exit), num(t.StopLoss), num(t.TakeProfit),
		num(t.Size), num(t.Risk), num(t.Reward), num(t.ProfitLoss),
		t.Duration, t.Comments,
	}
}

func num(d decimal.NullDecimal) any {
	if !d.Valid {
		return nil
	}
	return d.Decimal.InexactFloat64()
}

func rowStrings(row []any) []string {
	out := make([]string, len(row))
	for i, v := range row {
		if v != nil {
			out[i] = fmt.Sprint(v)
		}
	}
	return out
}

func fitColumns(f *excelize.File, sheet string, rows [][]string) error {
	widths := map[int]int{}
	for _, r := range rows {
		for i, v := range r {
			widths[i] = max(widths[i], len(v))
		}
	}
	for i, w := range widths {
		col, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheet, col, col, float64(min(w+2, maxColWidth))); err != nil {
			return err
		}
	}
	return nil
}

// replaceSheet drops sheet if present and writes headers and rows to a new
// one.
func replaceSheet(f *excelize.File, sheet string, headers []string, rows [][]any) error {
	if idx, err := f.GetSheetIndex(sheet); err != nil {
		return err
	} else if idx >= 0 {
		if err := f.DeleteSheet(sheet); err != nil {
			return err
		}
	}
	if _, err := f.NewSheet(sheet); err != nil {
		return err
	}
	if err := writeHeader(f, sheet, headers); err != nil {
		return err
	}
	text := [][]string{headers}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &r); err != nil {
			return err
		}
		text = append(text, rowStrings(r))
	}
	return fitColumns(f, sheet, text)
}

func writeAnalytics(f *excelize.File, rep *analytics.Report) error {
	s := rep.Summary
	summary := [][]any{
		{"Trades", s.TotalTrades},
		{"Trades with P/L", s.Scored},
		{"Wins", s.Wins},
		{"Losses", s.Losses},
		{"Break Even", s.BreakEven},
		{"Win Rate %", s.WinRate},
		{"Total P/L", s.TotalProfit.InexactFloat64()},
		{"Average P/L", s.AvgProfit.InexactFloat64()},
		{"Average Win", s.AvgWin.InexactFloat64()},
		{"Average Loss", s.AvgLoss.InexactFloat64()},
		{"Biggest Win", s.BiggestWin.InexactFloat64()},
		{"Biggest Loss", s.BiggestLoss.InexactFloat64()},
		{"Profit Factor", num(s.ProfitFactor)},
		{"Max Drawdown", s.MaxDrawdown.InexactFloat64()},
	}
	if err := replaceSheet(f, SummarySheet, []string{"Metric", "Value"}, summary); err != nil {
		return err
	}

	var inst [][]any
	for _, p := range rep.ByInstrument {
		inst = append(inst, []any{p.Instrument, p.Count, p.TotalProfit.InexactFloat64()})
	}
	if err := replaceSheet(f, InstrumentSheet, []string{"Instrument", "Trades", "Total P/L"}, inst); err != nil {
		return err
	}

	var rr [][]any
	for _, b := range rep.RiskReward.Buckets {
		rr = append(rr, []any{b.Label, b.Count, b.TotalProfit.InexactFloat64()})
	}
	if err := replaceSheet(f, RRSheet, []string{"R:R", "Trades", "Total P/L"}, rr); err != nil {
		return err
	}

	var periods [][]any
	for _, p := range rep.OverTime {
		periods = append(periods, []any{p.Label, p.Count, p.TotalProfit.InexactFloat64()})
	}
	return replaceSheet(f, OverTimeSheet, []string{"Period", "Trades", "P/L"}, periods)
}
