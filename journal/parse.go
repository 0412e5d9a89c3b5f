package journal

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// wireTrade is the trade shape served by the journal API. Numbers may arrive
// as JSON numbers, numeric strings, "" or null.
type wireTrade struct {
	ID          flexString       `json:"id"`
	Timestamp   string           `json:"timestamp,omitempty"`
	EntryDate   string           `json:"entry_date,omitempty"`
	OpenTime    string           `json:"open_time,omitempty"`
	ExitDate    string           `json:"exit_date,omitempty"`
	CloseTime   string           `json:"close_time,omitempty"`
	Instrument  string           `json:"instrument"`
	Direction   string           `json:"direction"`
	Entry       flexDecimal      `json:"entry"`
	Exit        flexDecimal      `json:"exit"`
	StopLoss    flexDecimal      `json:"stop_loss"`
	TakeProfit  flexDecimal      `json:"take_profit"`
	Size        flexDecimal      `json:"size"`
	Risk        flexDecimal      `json:"risk"`
	Reward      flexDecimal      `json:"reward"`
	ProfitLoss  flexDecimal      `json:"profit_loss"`
	Duration    flexString       `json:"duration"`
	Comments    string           `json:"comments"`
	Screenshots []wireScreenshot `json:"screenshots"`
}

type wireScreenshot struct {
	ID       flexString `json:"id"`
	Filename string     `json:"filename"`
}

type flexDecimal struct {
	decimal.NullDecimal
}

func (f *flexDecimal) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	if s == "null" {
		f.NullDecimal = decimal.NullDecimal{}
		return nil
	}
	if strings.HasPrefix(s, `"`) {
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
	}
	f.NullDecimal = ParseDecimal(s)
	return nil
}

func (f flexDecimal) MarshalJSON() ([]byte, error) {
	if !f.Valid {
		return []byte("null"), nil
	}
	return []byte(f.Decimal.String()), nil
}

type flexString string

func (f *flexString) UnmarshalJSON(b []byte) error {
	s := string(bytes.TrimSpace(b))
	switch {
	case s == "null":
		*f = ""
	case strings.HasPrefix(s, `"`):
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*f = flexString(str)
	default:
		*f = flexString(s)
	}
	return nil
}

var (
	thousandsSep = strings.NewReplacer(" ", "", "\u00a0", "", "\u202f", "", "'", "")
	holdPattern  = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*([a-z]+)$`)
)

// ParseDecimal reads a possibly localized number ("18 939,71", "1,234.5",
// "-40"). Anything unparsable yields an invalid NullDecimal.
func ParseDecimal(s string) decimal.NullDecimal {
	s = thousandsSep.Replace(strings.TrimSpace(s))
	if s == "" {
		return decimal.NullDecimal{}
	}
	switch {
	case strings.Contains(s, ",") && strings.Contains(s, "."):
		// whichever separator comes last is the decimal point
		if strings.LastIndex(s, ",") > strings.LastIndex(s, ".") {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case strings.Contains(s, ","):
		s = strings.ReplaceAll(s, ",", ".")
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(d)
}

var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04",
	"2006-01-02",
	"02.01.2006 15:04:05",
	"02.01.2006 15:04",
}

// ParseTime accepts the date layouts seen in journal data. Values without a
// zone are read in loc (UTC when nil).
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.UTC
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// ParseHoldDuration reads the journal's free-text duration: Go syntax
// ("1h30m"), or a number with a unit ("45 min", "2 hours", "3 days").
// A bare number is taken as minutes.
func ParseHoldDuration(s string) (time.Duration, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return 0, false
	}
	if d, err := time.ParseDuration(s); err == nil {
		return d, true
	}
	if n, err := strconv.ParseFloat(s, 64); err == nil {
		return time.Duration(n * float64(time.Minute)), true
	}
	m := holdPattern.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	n, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return 0, false
	}
	var unit time.Duration
	switch m[2] {
	case "s", "sec", "secs", "second", "seconds":
		unit = time.Second
	case "m", "min", "mins", "minute", "minutes":
		unit = time.Minute
	case "h", "hr", "hrs", "hour", "hours":
		unit = time.Hour
	case "d", "day", "days":
		unit = 24 * time.Hour
	default:
		return 0, false
	}
	return time.Duration(n * float64(unit)), true
}

func (w wireTrade) normalize(loc *time.Location) Trade {
	t := Trade{
		ID:           string(w.ID),
		Instrument:   strings.TrimSpace(w.Instrument),
		Direction:    ParseDirection(w.Direction),
		RawDirection: w.Direction,
		Entry:        w.Entry.NullDecimal,
		Exit:         w.Exit.NullDecimal,
		StopLoss:     w.StopLoss.NullDecimal,
		TakeProfit:   w.TakeProfit.NullDecimal,
		Size:         w.Size.NullDecimal,
		Risk:         w.Risk.NullDecimal,
		Reward:       w.Reward.NullDecimal,
		ProfitLoss:   w.ProfitLoss.NullDecimal,
		Duration:     string(w.Duration),
		Comments:     w.Comments,
	}

	for _, s := range []string{w.EntryDate, w.OpenTime, w.Timestamp} {
		if ts, ok := ParseTime(s, loc); ok {
			t.EntryTime = ts
			break
		}
	}
	for _, s := range []string{w.ExitDate, w.CloseTime} {
		if ts, ok := ParseTime(s, loc); ok {
			t.ExitTime = ts
			break
		}
	}
	if t.ExitTime.IsZero() && !t.EntryTime.IsZero() {
		if d, ok := ParseHoldDuration(t.Duration); ok {
			t.ExitTime = t.EntryTime.Add(d)
		}
	}

	for _, s := range w.Screenshots {
		t.Screenshots = append(t.Screenshots, Screenshot{ID: string(s.ID), Filename: s.Filename})
	}
	return t
}

func toWire(t Trade) wireTrade {
	w := wireTrade{
		ID:         flexString(t.ID),
		Instrument: t.Instrument,
		Direction:  t.RawDirection,
		Entry:      flexDecimal{t.Entry},
		Exit:       flexDecimal{t.Exit},
		StopLoss:   flexDecimal{t.StopLoss},
		TakeProfit: flexDecimal{t.TakeProfit},
		Size:       flexDecimal{t.Size},
		Risk:       flexDecimal{t.Risk},
		Reward:     flexDecimal{t.Reward},
		ProfitLoss: flexDecimal{t.ProfitLoss},
		Duration:   flexString(t.Duration),
		Comments:   t.Comments,
	}
	if w.Direction == "" && t.Direction != Unknown {
		w.Direction = strings.ToLower(t.Direction.String())
	}
	if !t.EntryTime.IsZero() {
		w.EntryDate = t.EntryTime.Format(time.RFC3339)
	}
	if !t.ExitTime.IsZero() {
		w.ExitDate = t.ExitTime.Format(time.RFC3339)
	}
	for _, s := range t.Screenshots {
		w.Screenshots = append(w.Screenshots, wireScreenshot{ID: flexString(s.ID), Filename: s.Filename})
	}
	return w
}

// MarshalJSON writes the trade in the journal API's shape.
func (t Trade) MarshalJSON() ([]byte, error) {
	return json.Marshal(toWire(t))
}

// UnmarshalJSON reads the journal API's shape, with zone-less dates in UTC.
func (t *Trade) UnmarshalJSON(b []byte) error {
	var w wireTrade
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	*t = w.normalize(time.UTC)
	return nil
}

// DecodeTrades reads a JSON array of trades. Zone-less dates are read in loc.
func DecodeTrades(r io.Reader, loc *time.Location) ([]Trade, error) {
	var ws []wireTrade
	if err := json.NewDecoder(r).Decode(&ws); err != nil {
		return nil, fmt.Errorf("decode trades: %w", err)
	}
	out := make([]Trade, 0, len(ws))
	for _, w := range ws {
		out = append(out, w.normalize(loc))
	}
	return out, nil
}

// DecodeTrade reads a single JSON trade object.
func DecodeTrade(r io.Reader, loc *time.Location) (Trade, error) {
	var w wireTrade
	if err := json.NewDecoder(r).Decode(&w); err != nil {
		return Trade{}, fmt.Errorf("decode trade: %w", err)
	}
	return w.normalize(loc), nil
}
