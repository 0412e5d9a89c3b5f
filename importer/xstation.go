// Package importer turns broker-platform exports into journal trades.
package importer

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/risk"
)

// ErrNoTrade is returned when the text holds none of the expected labels.
var ErrNoTrade = errors.New("no xStation position details found")

// Labels of the xStation 5 "position details" panel (Polish UI).
const (
	xsHeader    = "Szczegóły pozycji"
	xsType      = "Typ"
	xsVolume    = "Wolumen"
	xsNetProfit = "Zysk netto"
	xsOpenPrice = "Cena otwarcia"
	xsClosePrc  = "Cena zamknięcia"
	xsStopLoss  = "Stop Loss"
	xsTakeProf  = "Take Profit"
	xsOpenTime  = "Czas otwarcia"
	xsCloseTime = "Czas zamknięcia"
)

// XStationLayout is the date/time layout of the open and close times.
const XStationLayout = "02.01.2006 15:04"

// ParseXStation reads the text copied from an xStation 5 position-details
// panel. Each label sits on its own line with the value on the next; open
// and close times span two lines (date, then time). Times are read in loc
// (UTC when nil).
//
// The duration is derived from the two times in whole minutes, and risk and
// reward are computed from entry, stop, target and volume when all four are
// present.
func ParseXStation(r io.Reader, loc *time.Location) (journal.Trade, error) {
	lines, err := nonEmptyLines(r)
	if err != nil {
		return journal.Trade{}, fmt.Errorf("read clipboard text: %w", err)
	}

	var (
		t     journal.Trade
		found bool
	)
	num := map[string]*decimal.NullDecimal{
		xsVolume:    &t.Size,
		xsNetProfit: &t.ProfitLoss,
		xsOpenPrice: &t.Entry,
		xsClosePrc:  &t.Exit,
		xsStopLoss:  &t.StopLoss,
		xsTakeProf:  &t.TakeProfit,
	}

	for i := 0; i < len(lines); {
		line := lines[i]
		switch {
		case line == xsHeader:
			if i+1 < len(lines) {
				t.Instrument = lines[i+1]
			}
			found = true
			i++
		case line == xsType:
			if i+1 < len(lines) {
				t.RawDirection = "short"
				if strings.EqualFold(lines[i+1], "buy") {
					t.RawDirection = "long"
				}
				t.Direction = journal.ParseDirection(t.RawDirection)
			}
			found = true
			i += 2
		case num[line] != nil:
			if i+1 < len(lines) {
				*num[line] = journal.ParseDecimal(lines[i+1])
			}
			found = true
			i += 2
		case line == xsOpenTime || line == xsCloseTime:
			if i+2 >= len(lines) {
				i++
				continue
			}
			ts, ok := journal.ParseTime(lines[i+1]+" "+lines[i+2], loc)
			if ok {
				if line == xsOpenTime {
					t.EntryTime = ts
				} else {
					t.ExitTime = ts
				}
			}
			found = true
			i += 3
		default:
			i++
		}
	}

	if !found {
		return journal.Trade{}, ErrNoTrade
	}

	if t.HasEntryTime() && !t.ExitTime.IsZero() {
		mins := int(t.ExitTime.Sub(t.EntryTime) / time.Minute)
		t.Duration = fmt.Sprintf("%d min", mins)
	}
	return risk.Fill(t), nil
}

func nonEmptyLines(r io.Reader) ([]string, error) {
	var out []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			out = append(out, line)
		}
	}
	return out, sc.Err()
}
