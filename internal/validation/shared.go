package validation

import (
	"fmt"
	"strings"
)

// RowError describes a single rejected field on a single input row.
// Row is the zero-based index of the row in the submitted batch.
type RowError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Message string `json:"message"`
}

// BatchError carries every offending row of a rejected batch. The batch
// is rejected as a whole; silently dropping rows would corrupt lot
// accounting for every later sale.
type BatchError struct {
	Rows []RowError `json:"rows"`
}

func (e *BatchError) Error() string {
	msgs := make([]string, 0, len(e.Rows))
	for _, re := range e.Rows {
		msgs = append(msgs, fmt.Sprintf("row %d: %s: %s", re.Row, re.Field, re.Message))
	}
	return strings.Join(msgs, "; ")
}

func (e *BatchError) add(row int, field, message string) {
	e.Rows = append(e.Rows, RowError{Row: row, Field: field, Message: message})
}
