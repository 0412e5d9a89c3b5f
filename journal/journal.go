// journal/journal.go
package journal

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/internal/id"
)

// ErrNotFound is returned by sources when a trade ID does not exist.
var ErrNotFound = errors.New("trade not found")

// Direction is the side of a trade.
type Direction int

const (
	Unknown Direction = iota
	Long
	Short
)

// ParseDirection maps the journal's free-text direction onto a Direction.
// "long"/"buy" and "short"/"sell" are accepted in any case.
func ParseDirection(s string) Direction {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "long", "buy":
		return Long
	case "short", "sell":
		return Short
	default:
		return Unknown
	}
}

func (d Direction) String() string {
	switch d {
	case Long:
		return "Long"
	case Short:
		return "Short"
	default:
		return "Unknown"
	}
}

// Screenshot is an attachment reference. The files themselves live with the
// trade service.
type Screenshot struct {
	ID       string `json:"id"`
	Filename string `json:"filename"`
}

// Trade is one journal entry after normalization. Optional numeric fields are
// NullDecimals; a zero EntryTime or ExitTime means the value was not recorded.
type Trade struct {
	ID           string
	Instrument   string
	Direction    Direction
	RawDirection string

	Entry      decimal.NullDecimal
	Exit       decimal.NullDecimal
	StopLoss   decimal.NullDecimal
	TakeProfit decimal.NullDecimal
	Size       decimal.NullDecimal
	Risk       decimal.NullDecimal
	Reward     decimal.NullDecimal
	ProfitLoss decimal.NullDecimal

	EntryTime time.Time
	ExitTime  time.Time
	Duration  string

	Comments    string
	Screenshots []Screenshot
}

// Snapshot is one observed copy of the trade list. The ID identifies the
// snapshot for caching; callers must not mutate Trades after it is taken.
type Snapshot struct {
	ID      string
	TakenAt time.Time
	Trades  []Trade
}

// Source is anything that can hand out trades: the trade API, a local SQLite
// journal or a CSV export.
type Source interface {
	ListTrades(ctx context.Context) ([]Trade, error)
	GetTrade(ctx context.Context, id string) (Trade, error)
}

// TakeSnapshot lists src's trades and stamps them with a fresh snapshot ID.
func TakeSnapshot(ctx context.Context, src Source) (Snapshot, error) {
	trades, err := src.ListTrades(ctx)
	if err != nil {
		return Snapshot{}, err
	}
	now := time.Now().UTC()
	return Snapshot{ID: id.NewAt(now), TakenAt: now, Trades: trades}, nil
}
