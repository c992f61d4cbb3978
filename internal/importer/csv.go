// Package importer parses uploaded CSV ledgers into raw transaction rows.
// Parsing stays structural; field-level validation is the validator's job
// so that errors carry row indices regardless of the input format.
package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/cryptotax-micro/backend/internal/api/request"
	"github.com/cryptotax-micro/backend/internal/apperrors"
)

// requiredColumns must all appear in the header row; fee is optional.
var requiredColumns = []string{"date", "type", "amount", "price", "symbol"}

// SampleCSV is the downloadable template for the expected format.
const SampleCSV = `date,type,amount,price,symbol,fee
2023-01-15,buy,1.0,20000.00,BTC,10.00
2023-03-20,buy,10.0,1800.00,ETH,5.00
2023-06-10,buy,0.5,30000.00,BTC,7.50
2023-09-15,sell,5.0,2000.00,ETH,4.00
2024-01-05,sell,1.2,45000.00,BTC,15.00
`

// ParseTransactions reads a CSV stream with a header row and returns its
// records as raw transaction rows in file order. Column order is free;
// header names are matched case-insensitively. Records with a field count
// different from the header fail the whole import.
func ParseTransactions(r io.Reader) ([]request.TransactionRow, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("%w: file is empty", apperrors.ErrInvalidCSV)
		}
		return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSV, err)
	}

	columns := make(map[string]int, len(header))
	for i, name := range header {
		columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("%w: missing required columns: %s",
			apperrors.ErrInvalidCSVHeaders, strings.Join(missing, ", "))
	}

	var rows []request.TransactionRow
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrInvalidCSV, err)
		}

		rows = append(rows, request.TransactionRow{
			Date:   field(record, columns, "date"),
			Type:   field(record, columns, "type"),
			Amount: json.Number(field(record, columns, "amount")),
			Price:  json.Number(field(record, columns, "price")),
			Symbol: field(record, columns, "symbol"),
			Fee:    json.Number(field(record, columns, "fee")),
		})
	}
	return rows, nil
}

func field(record []string, columns map[string]int, name string) string {
	i, ok := columns[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}
