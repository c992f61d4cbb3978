package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Term classifies a realized gain by holding period.
type Term string

const (
	ShortTerm Term = "short-term"
	LongTerm  Term = "long-term"
)

// RealizedGain records the disposal of quantity drawn from a single lot
// during a sale. Proceeds are net of the pro-rated sale fee; cost basis
// includes the pro-rated acquisition fee. Created once per lot segment
// and immutable thereafter.
type RealizedGain struct {
	Symbol       string          `json:"symbol"`
	AcquiredDate time.Time       `json:"date_acquired"`
	SoldDate     time.Time       `json:"date_sold"`
	Quantity     decimal.Decimal `json:"amount"`
	Proceeds     decimal.Decimal `json:"proceeds"`
	CostBasis    decimal.Decimal `json:"cost_basis"`
	GainLoss     decimal.Decimal `json:"gain_loss"`
	Term         Term            `json:"term"`
	DaysHeld     int             `json:"days_held"`
}
