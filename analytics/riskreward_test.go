package analytics

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rustyeddy/tradejournal/journal"
)

func rr(id, risk, reward, pl string) journal.Trade {
	t := trade(id, "EURUSD", journal.Long, pl, day(2024, 1, 1))
	if risk != "" {
		t.Risk = nd(risk)
	}
	if reward != "" {
		t.Reward = nd(reward)
	}
	return t
}

func bucketByLabel(t *testing.T, r RiskReward, label string) RRBucket {
	t.Helper()
	for _, b := range r.Buckets {
		if b.Label == label {
			return b
		}
	}
	t.Fatalf("no bucket %q", label)
	return RRBucket{}
}

func TestRRBucketFor(t *testing.T) {
	t.Parallel()

	tests := []struct {
		ratio string
		want  string
	}{
		{"-0.5", "<0.5"},
		{"0", "<0.5"},
		{"0.4999", "<0.5"},
		{"0.5", "0.5-1"},
		{"0.99", "0.5-1"},
		{"1", "1"},
		{"1.0000", "1"},
		{"1.0001", "1-2"},
		{"1.99", "1-2"},
		{"2", "2-3"},
		{"3", "3+"},
		{"250", "3+"},
	}
	for _, tt := range tests {
		t.Run(tt.ratio, func(t *testing.T) {
			assert.Equal(t, tt.want, RRBucketFor(d(tt.ratio)))
		})
	}
}

func TestRiskRewardBuckets(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		rr("1", "10", "5", "-10"),  // 0.5: lower edge of 0.5-1
		rr("2", "10", "10", "10"),  // exactly 1
		rr("3", "10", "15", "15"),  // 1.5
		rr("4", "10", "30", "30"),  // 3
		rr("5", "10", "4", ""),     // 0.4, no P/L
		rr("6", "0", "10", "10"),   // risk not positive
		rr("7", "-5", "10", "10"),  // risk not positive
		rr("8", "", "10", "10"),    // risk missing
		rr("9", "10", "", "10"),    // reward missing
		rr("10", "20", "10", "-5"), // 0.5 again
	}

	r := RiskRewardBuckets(trades)
	require.True(t, r.HasData())
	assert.Equal(t, 6, r.Eligible)
	assert.Equal(t, RRLabels(), []string{"<0.5", "0.5-1", "1", "1-2", "2-3", "3+"})
	require.Len(t, r.Buckets, 6)

	low := bucketByLabel(t, r, "<0.5")
	assert.Equal(t, 1, low.Count)
	assert.True(t, low.TotalProfit.IsZero())

	half := bucketByLabel(t, r, "0.5-1")
	assert.Equal(t, 2, half.Count)
	assertDecEq(t, "-15", half.TotalProfit)

	assert.Equal(t, 1, bucketByLabel(t, r, "1").Count)
	assert.Equal(t, 1, bucketByLabel(t, r, "1-2").Count)
	assert.Equal(t, 0, bucketByLabel(t, r, "2-3").Count)
	assert.Equal(t, 1, bucketByLabel(t, r, "3+").Count)
}

func TestRiskRewardBucketsPartition(t *testing.T) {
	t.Parallel()

	var trades []journal.Trade
	rewards := []string{"-3", "0", "1", "4.99", "5", "7", "10", "12", "20", "25", "29.9", "30", "100"}
	for i, rw := range rewards {
		trades = append(trades, rr(string(rune('a'+i)), "10", rw, "1"))
	}

	r := RiskRewardBuckets(trades)
	total := 0
	for _, b := range r.Buckets {
		total += b.Count
	}
	assert.Equal(t, len(trades), r.Eligible)
	assert.Equal(t, r.Eligible, total)
}

func TestRiskRewardNoData(t *testing.T) {
	t.Parallel()

	for _, trades := range [][]journal.Trade{
		nil,
		{rr("1", "0", "10", "5"), rr("2", "", "", "5")},
	} {
		r := RiskRewardBuckets(trades)
		assert.False(t, r.HasData())
		assert.Nil(t, r.Buckets)
		assert.Equal(t, 0, r.Eligible)
	}
}
