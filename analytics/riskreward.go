package analytics

import (
	"github.com/shopspring/decimal"

	"github.com/rustyeddy/tradejournal/journal"
)

// RRBucket is one bar of the risk/reward histogram.
type RRBucket struct {
	Label       string          `json:"label"`
	Count       int             `json:"count"`
	TotalProfit decimal.Decimal `json:"total_profit"`
}

// RiskReward is the histogram of reward/risk ratios. Buckets is nil when no
// trade had a usable ratio; see HasData.
type RiskReward struct {
	Eligible int        `json:"eligible"`
	Buckets  []RRBucket `json:"buckets"`
}

// HasData distinguishes "no trade had risk and reward" from empty buckets.
func (r RiskReward) HasData() bool {
	return r.Eligible > 0
}

type rrRange struct {
	label string
	min   decimal.NullDecimal // unbounded below when invalid
	max   decimal.NullDecimal // unbounded above when invalid
	exact bool
}

func (r rrRange) contains(x decimal.Decimal) bool {
	if r.exact {
		return x.Equal(r.min.Decimal)
	}
	if r.min.Valid && x.LessThan(r.min.Decimal) {
		return false
	}
	if r.max.Valid && !x.LessThan(r.max.Decimal) {
		return false
	}
	return true
}

func bound(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

// rrRanges are checked in order and the first match wins, so a ratio of
// exactly 1 lands in "1" rather than "1-2".
var rrRanges = []rrRange{
	{label: "<0.5", max: bound("0.5")},
	{label: "0.5-1", min: bound("0.5"), max: bound("1")},
	{label: "1", min: bound("1"), exact: true},
	{label: "1-2", min: bound("1"), max: bound("2")},
	{label: "2-3", min: bound("2"), max: bound("3")},
	{label: "3+", min: bound("3")},
}

// RRLabels returns the bucket labels in display order.
func RRLabels() []string {
	out := make([]string, len(rrRanges))
	for i, r := range rrRanges {
		out[i] = r.label
	}
	return out
}

// RRBucketFor returns the label of the bucket holding ratio.
func RRBucketFor(ratio decimal.Decimal) string {
	for _, r := range rrRanges {
		if r.contains(ratio) {
			return r.label
		}
	}
	return ""
}

// RiskRewardBuckets counts trades by reward/risk ratio. Only trades with
// both values present and a positive risk are counted; their P/L is summed
// per bucket when it is usable.
func RiskRewardBuckets(trades []journal.Trade) RiskReward {
	buckets := make([]RRBucket, len(rrRanges))
	for i, r := range rrRanges {
		buckets[i].Label = r.label
	}

	var eligible int
	for _, t := range trades {
		ratio, ok := t.RiskReward()
		if !ok {
			continue
		}
		for i, r := range rrRanges {
			if !r.contains(ratio) {
				continue
			}
			eligible++
			buckets[i].Count++
			if pl, ok := t.PL(); ok {
				buckets[i].TotalProfit = buckets[i].TotalProfit.Add(pl)
			}
			break
		}
	}

	if eligible == 0 {
		return RiskReward{}
	}
	return RiskReward{Eligible: eligible, Buckets: buckets}
}
