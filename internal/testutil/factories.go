package testutil

import (
	"encoding/json"

	"github.com/cryptotax-micro/backend/internal/api/request"
)

// Row builds a raw transaction row the way a JSON or CSV client would
// submit it. Pass "" for fee to leave it at the default.
func Row(date, kind, amount, price, symbol, fee string) request.TransactionRow {
	return request.TransactionRow{
		Date:   date,
		Type:   kind,
		Amount: json.Number(amount),
		Price:  json.Number(price),
		Symbol: symbol,
		Fee:    json.Number(fee),
	}
}

// SampleBatch returns the worked example used across the test suite:
// two BTC buys a year apart from a later 1.2 BTC sale.
//
//	2023-01-15 buy  1.0 BTC @ 20000, fee 10.00  -> unit cost 20010
//	2023-06-10 buy  0.5 BTC @ 30000, fee  7.50  -> unit cost 30015
//	2024-01-05 sell 1.2 BTC @ 45000, fee 15.00  -> net unit proceeds 44987.50
func SampleBatch() []request.TransactionRow {
	return []request.TransactionRow{
		Row("2023-01-15", "buy", "1.0", "20000", "BTC", "10"),
		Row("2023-06-10", "buy", "0.5", "30000", "BTC", "7.50"),
		Row("2024-01-05", "sell", "1.2", "45000", "BTC", "15"),
	}
}
