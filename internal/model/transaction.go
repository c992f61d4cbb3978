package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Kind distinguishes acquisitions from disposals.
type Kind string

const (
	Buy  Kind = "buy"
	Sell Kind = "sell"
)

// Transaction is a validated buy or sell event for a fungible asset.
// Instances are produced by the validator and are not mutated afterwards.
type Transaction struct {
	Row       int             `json:"row"`
	Date      time.Time       `json:"date"`
	Kind      Kind            `json:"type"`
	Symbol    string          `json:"symbol"`
	Quantity  decimal.Decimal `json:"amount"`
	UnitPrice decimal.Decimal `json:"price"`
	Fee       decimal.Decimal `json:"fee"`
}
