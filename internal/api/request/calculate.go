package request

import "encoding/json"

// TransactionRow is one raw candidate row as submitted by a client,
// either as a JSON object or a CSV record. Numeric fields stay unparsed
// until validation so that a bad value can be reported with its row index.
type TransactionRow struct {
	Date   string      `json:"date"`
	Type   string      `json:"type"`
	Amount json.Number `json:"amount"`
	Price  json.Number `json:"price"`
	Symbol string      `json:"symbol"`
	Fee    json.Number `json:"fee,omitempty"`
}

// CalculateRequest asks for a tax report over one batch of transactions.
type CalculateRequest struct {
	Method       string           `json:"method"`
	Transactions []TransactionRow `json:"transactions"`
}

// CompareRequest asks for the same batch calculated under both FIFO and LIFO.
type CompareRequest struct {
	Transactions []TransactionRow `json:"transactions"`
}

// SaveReportRequest asks for a calculation whose result is persisted.
type SaveReportRequest struct {
	Method       string           `json:"method"`
	Label        string           `json:"label,omitempty"`
	Transactions []TransactionRow `json:"transactions"`
}
