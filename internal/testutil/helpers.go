package testutil

import (
	"database/sql"
	"testing"

	"github.com/google/uuid"

	"github.com/cryptotax-micro/backend/internal/repository"
	"github.com/cryptotax-micro/backend/internal/secure"
	"github.com/cryptotax-micro/backend/internal/service"
)

// testMaxBatchSize mirrors the production default.
const testMaxBatchSize = 500

// MakeID returns a fresh UUID string.
func MakeID() string {
	return uuid.New().String()
}

// NewTestTaxService builds a TaxService with the default batch bound.
func NewTestTaxService(t *testing.T) *service.TaxService {
	t.Helper()
	return service.NewTaxService(testMaxBatchSize)
}

// NewTestReportService builds a ReportService on the given database with
// an ephemeral encryption key.
func NewTestReportService(t *testing.T, db *sql.DB) *service.ReportService {
	t.Helper()

	codec, err := secure.NewCodec("")
	if err != nil {
		t.Fatalf("Failed to create test codec: %v", err)
	}

	reportRepo := repository.NewReportRepository(db)

	return service.NewReportService(
		reportRepo,
		NewTestTaxService(t),
		codec,
		30,
	)
}
