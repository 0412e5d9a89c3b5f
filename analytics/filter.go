package analytics

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

// AllInstruments is the filter value that disables instrument filtering.
const AllInstruments = "all"

// Filter narrows a trade list before aggregation. Zero values disable each
// criterion. Start and End are inclusive bounds on the trade's entry time.
type Filter struct {
	Instrument string
	Start      time.Time
	End        time.Time
}

func (f Filter) hasInstrument() bool {
	inst := strings.TrimSpace(f.Instrument)
	return inst != "" && !strings.EqualFold(inst, AllInstruments)
}

func (f Filter) hasDates() bool {
	return !f.Start.IsZero() || !f.End.IsZero()
}

// Match reports whether t passes the filter. With any date bound set, trades
// without an entry time never match.
func (f Filter) Match(t journal.Trade) bool {
	if f.hasInstrument() && strings.TrimSpace(t.Instrument) != strings.TrimSpace(f.Instrument) {
		return false
	}
	if !f.hasDates() {
		return true
	}
	if !t.HasEntryTime() {
		return false
	}
	if !f.Start.IsZero() && t.EntryTime.Before(f.Start) {
		return false
	}
	if !f.End.IsZero() && t.EntryTime.After(f.End) {
		return false
	}
	return true
}

// Key is a canonical form of the filter, used to key memoized results.
func (f Filter) Key() string {
	inst := ""
	if f.hasInstrument() {
		inst = strings.TrimSpace(f.Instrument)
	}
	return fmt.Sprintf("%s|%s|%s", inst, keyTime(f.Start), keyTime(f.End))
}

func keyTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.UTC().Format(time.RFC3339Nano)
}

// Apply returns the trades matching f in their original order. The result
// never aliases the input.
func Apply(trades []journal.Trade, f Filter) []journal.Trade {
	out := make([]journal.Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Instruments lists the distinct non-blank instruments, sorted.
func Instruments(trades []journal.Trade) []string {
	seen := make(map[string]struct{})
	var out []string
	for _, t := range trades {
		name := strings.TrimSpace(t.Instrument)
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	slices.Sort(out)
	return out
}
