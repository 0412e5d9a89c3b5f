package risk

import "github.com/shopspring/decimal"

// Policy is the trader's own rulebook that journal entries are reviewed
// against. Percentages are fractions (0.01 = 1%). A zero limit disables its
// check.
type Policy struct {
	AccountStartBalance float64 `json:"account_start_balance" yaml:"account_start_balance" envconfig:"ACCOUNT_START_BALANCE"`

	// Risk limits
	DefaultRiskPct float64 `json:"default_risk_pct" yaml:"default_risk_pct" envconfig:"DEFAULT_RISK_PCT"`
	MaxRiskPct     float64 `json:"max_risk_pct" yaml:"max_risk_pct" envconfig:"MAX_RISK_PCT"`

	// Circuit breakers
	MaxDailyLossPct  float64 `json:"max_daily_loss_pct" yaml:"max_daily_loss_pct" envconfig:"MAX_DAILY_LOSS_PCT"`
	MaxWeeklyLossPct float64 `json:"max_weekly_loss_pct" yaml:"max_weekly_loss_pct" envconfig:"MAX_WEEKLY_LOSS_PCT"`

	// Trade constraints
	MinRR       float64 `json:"min_rr" yaml:"min_rr" envconfig:"MIN_RR"`
	RequireStop bool    `json:"require_stop" yaml:"require_stop" envconfig:"REQUIRE_STOP"`
}

// DefaultPolicy is a conservative retail rulebook.
func DefaultPolicy() Policy {
	return Policy{
		AccountStartBalance: 10000,
		DefaultRiskPct:      0.005,
		MaxRiskPct:          0.01,
		MaxDailyLossPct:     0.015,
		MaxWeeklyLossPct:    0.03,
		MinRR:               1.5,
		RequireStop:         true,
	}
}

// AccountSnapshot is the account state just before a trade was opened.
type AccountSnapshot struct {
	Balance decimal.Decimal
}

// PnLSnapshot is the realized P/L of the trading day and week so far.
type PnLSnapshot struct {
	DayRealized  decimal.Decimal
	WeekRealized decimal.Decimal
}
