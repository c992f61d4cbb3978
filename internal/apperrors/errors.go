package apperrors

import "errors"

// Business logic errors represent validation failures or constraint violations.
// All of them are terminal for the request: no partial report is ever returned.
var (
	// ErrUnknownMethod indicates the requested cost basis method is not FIFO or LIFO.
	ErrUnknownMethod = errors.New("unknown cost basis method")

	// ErrInsufficientInventory indicates a sale exceeds the open lots available
	// for its symbol at that point in the ledger. The whole calculation is
	// aborted rather than recording a partial sale.
	ErrInsufficientInventory = errors.New("insufficient inventory for sale")

	// ErrEmptyBatch indicates a calculation request carried no transactions.
	ErrEmptyBatch = errors.New("transaction batch is empty")

	// ErrBatchTooLarge indicates a batch exceeds the configured row limit.
	ErrBatchTooLarge = errors.New("transaction batch exceeds maximum size")
)

// Domain entity errors represent missing entities.
var (
	// ErrReportNotFound indicates that a saved report with the given ID does not exist.
	ErrReportNotFound = errors.New("report not found")
)

// CSV import errors.
var (
	// ErrInvalidCSV indicates the uploaded file could not be parsed as CSV.
	ErrInvalidCSV = errors.New("invalid CSV file")

	// ErrInvalidCSVHeaders indicates required columns are missing from the header row.
	ErrInvalidCSVHeaders = errors.New("invalid CSV headers")
)

// Operation failure errors represent system-level failures.
var (
	ErrFailedToCalculate      = errors.New("failed to calculate tax report")
	ErrFailedToSaveReport     = errors.New("failed to save report")
	ErrFailedToRetrieveReport = errors.New("failed to retrieve report")
	ErrFailedToListReports    = errors.New("failed to list reports")
	ErrFailedToDeleteReport   = errors.New("failed to delete report")
)
