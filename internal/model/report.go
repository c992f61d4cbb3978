package model

import (
	"github.com/shopspring/decimal"
)

// TaxReport is the aggregated result of one calculation request.
// TotalGainLoss always equals ShortTermGainLoss + LongTermGainLoss.
type TaxReport struct {
	Method            string          `json:"method"`
	TotalTransactions int             `json:"total_transactions"`
	TotalSales        int             `json:"total_sales"`
	ShortTermGainLoss decimal.Decimal `json:"short_term_gain_loss"`
	LongTermGainLoss  decimal.Decimal `json:"long_term_gain_loss"`
	TotalGainLoss     decimal.Decimal `json:"total_gain_loss"`
	RealizedGains     []RealizedGain  `json:"realized_gains"`
}

// MethodComparison holds the same batch calculated under both methods.
type MethodComparison struct {
	FIFO TaxReport `json:"fifo"`
	LIFO TaxReport `json:"lifo"`
}
