package validation

import (
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/cryptotax-micro/backend/internal/api/request"
	"github.com/cryptotax-micro/backend/internal/apperrors"
	"github.com/cryptotax-micro/backend/internal/model"
)

// ValidKind contains the allowed transaction type values.
var ValidKind = map[string]bool{
	"buy": true, "sell": true,
}

// ValidateBatch validates and normalizes a raw batch of transaction rows.
//
// Checks per row:
//   - date: required, "2006-01-02" or RFC3339
//   - type: required, one of: buy, sell (case-insensitive)
//   - symbol: required, normalized to upper case
//   - amount: required, numeric, strictly positive
//   - price: required, numeric, non-negative
//   - fee: optional (defaults to 0), numeric, non-negative
//
// The batch is all-or-nothing: any bad row rejects the whole batch with a
// BatchError listing every offending row. On success the transactions are
// returned sorted by (date, input order); the sort is stable because
// same-day ordering decides which lot FIFO and LIFO draw from.
//
// maxBatch bounds total work; batches above it are rejected before any
// per-row parsing. A maxBatch of zero disables the bound.
func ValidateBatch(rows []request.TransactionRow, maxBatch int) ([]model.Transaction, error) {
	if len(rows) == 0 {
		return nil, apperrors.ErrEmptyBatch
	}
	if maxBatch > 0 && len(rows) > maxBatch {
		return nil, fmt.Errorf("%w: %d rows (limit %d)", apperrors.ErrBatchTooLarge, len(rows), maxBatch)
	}

	batchErr := &BatchError{}
	transactions := make([]model.Transaction, 0, len(rows))

	for i, row := range rows {
		tx := model.Transaction{Row: i}

		if strings.TrimSpace(row.Date) == "" {
			batchErr.add(i, "date", "date is required")
		} else {
			date, err := ParseDate(row.Date)
			if err != nil {
				batchErr.add(i, "date", fmt.Sprintf("unparseable date: %s", row.Date))
			}
			tx.Date = date
		}

		kind := strings.ToLower(strings.TrimSpace(row.Type))
		if kind == "" {
			batchErr.add(i, "type", "type is required")
		} else if !ValidKind[kind] {
			batchErr.add(i, "type", fmt.Sprintf("invalid type: %s", row.Type))
		}
		tx.Kind = model.Kind(kind)

		symbol := strings.ToUpper(strings.TrimSpace(row.Symbol))
		if symbol == "" {
			batchErr.add(i, "symbol", "symbol is required")
		}
		tx.Symbol = symbol

		tx.Quantity = parseAmount(batchErr, i, "amount", row.Amount.String(), true, false)
		tx.UnitPrice = parseAmount(batchErr, i, "price", row.Price.String(), true, true)
		tx.Fee = parseAmount(batchErr, i, "fee", row.Fee.String(), false, true)

		transactions = append(transactions, tx)
	}

	if len(batchErr.Rows) > 0 {
		return nil, batchErr
	}

	sort.SliceStable(transactions, func(i, j int) bool {
		return transactions[i].Date.Before(transactions[j].Date)
	})

	return transactions, nil
}

// parseAmount parses one numeric field. A missing optional field yields
// zero; zeroAllowed distinguishes non-negative fields (price, fee) from
// the strictly positive quantity.
func parseAmount(batchErr *BatchError, row int, field, raw string, required, zeroAllowed bool) decimal.Decimal {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		if required {
			batchErr.add(row, field, field+" is required")
		}
		return decimal.Zero
	}

	value, err := decimal.NewFromString(raw)
	if err != nil {
		batchErr.add(row, field, fmt.Sprintf("must be numeric, got %q", raw))
		return decimal.Zero
	}

	if value.IsNegative() {
		batchErr.add(row, field, field+" cannot be negative")
	} else if !zeroAllowed && value.IsZero() {
		batchErr.add(row, field, field+" must be positive")
	}

	return value
}
