package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Lot is a discrete acquisition still open for cost basis matching.
// QuantityRemaining is drained by sales and never goes negative; a lot
// is removed from its inventory the moment it reaches exactly zero.
type Lot struct {
	Symbol            string          `json:"symbol"`
	AcquiredDate      time.Time       `json:"acquired_date"`
	QuantityRemaining decimal.Decimal `json:"quantity_remaining"`
	UnitCostBasis     decimal.Decimal `json:"unit_cost_basis"`
	SourceRow         int             `json:"source_row"`
}
