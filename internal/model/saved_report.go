package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// SavedReport is the summary of a persisted tax report as listed by the API.
type SavedReport struct {
	ID                string          `json:"id"`
	Label             string          `json:"label,omitempty"`
	Method            string          `json:"method"`
	TotalTransactions int             `json:"total_transactions"`
	TotalSales        int             `json:"total_sales"`
	ShortTermGainLoss decimal.Decimal `json:"short_term_gain_loss"`
	LongTermGainLoss  decimal.Decimal `json:"long_term_gain_loss"`
	TotalGainLoss     decimal.Decimal `json:"total_gain_loss"`
	CreatedAt         time.Time       `json:"created_at"`
}

// SavedReportRecord pairs a summary with the encrypted realized gains
// payload as stored at rest. The payload never leaves the service layer
// undecrypted.
type SavedReportRecord struct {
	SavedReport
	Payload string
}

// SavedReportDetail is a stored report with its realized gains decrypted
// for API responses.
type SavedReportDetail struct {
	SavedReport
	RealizedGains []RealizedGain `json:"realized_gains"`
}
