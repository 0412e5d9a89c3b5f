package journal

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestRiskReward(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		risk   decimal.NullDecimal
		reward decimal.NullDecimal
		want   string
		ok     bool
	}{
		{"half", dec("10"), dec("5"), "0.5", true},
		{"one", dec("7"), dec("7"), "1", true},
		{"zero risk", dec("0"), dec("5"), "", false},
		{"negative risk", dec("-2"), dec("5"), "", false},
		{"missing reward", dec("10"), decimal.NullDecimal{}, "", false},
		{"missing risk", decimal.NullDecimal{}, dec("5"), "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Trade{Risk: tt.risk, Reward: tt.reward}.RiskReward()
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "got %s", got)
			}
		})
	}
}

func TestHoldTime(t *testing.T) {
	t.Parallel()

	open := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)

	d, ok := Trade{EntryTime: open, ExitTime: open.Add(3 * time.Hour)}.HoldTime()
	assert.True(t, ok)
	assert.Equal(t, 3*time.Hour, d)

	_, ok = Trade{EntryTime: open}.HoldTime()
	assert.False(t, ok)
}

func TestPLAndInstrumentOr(t *testing.T) {
	t.Parallel()

	_, ok := Trade{}.PL()
	assert.False(t, ok)

	pl, ok := Trade{ProfitLoss: dec("-3")}.PL()
	assert.True(t, ok)
	assert.Equal(t, "-3", pl.String())

	assert.Equal(t, "Unknown", Trade{Instrument: "  "}.InstrumentOr("Unknown"))
	assert.Equal(t, "XAUUSD", Trade{Instrument: "XAUUSD"}.InstrumentOr("Unknown"))
	assert.Equal(t, "XAUUSD", Trade{Instrument: " XAUUSD\t"}.InstrumentOr("Unknown"))
}
