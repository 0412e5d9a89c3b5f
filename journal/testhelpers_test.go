package journal

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.NullDecimal {
	return decimal.NewNullDecimal(decimal.RequireFromString(s))
}

func assertDec(t *testing.T, want string, got decimal.NullDecimal, msgAndArgs ...any) {
	t.Helper()
	if !assert.True(t, got.Valid, msgAndArgs...) {
		return
	}
	assert.True(t, decimal.RequireFromString(want).Equal(got.Decimal), "want %s got %s", want, got.Decimal)
}
