package service

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/cryptotax-micro/backend/internal/api/request"
	"github.com/cryptotax-micro/backend/internal/model"
	"github.com/cryptotax-micro/backend/internal/tax"
	"github.com/cryptotax-micro/backend/internal/validation"
)

// TaxService orchestrates one calculation request: validate, match,
// aggregate. It is stateless; every calculation builds its own engine
// and inventory, so independent requests can run in parallel.
type TaxService struct {
	maxBatchSize int
}

// NewTaxService creates a TaxService with the given batch size bound.
func NewTaxService(maxBatchSize int) *TaxService {
	return &TaxService{maxBatchSize: maxBatchSize}
}

// Calculate validates the raw rows, matches sales against lots under the
// given method and returns the aggregated report. The same validated
// batch always produces an identical report.
func (s *TaxService) Calculate(method model.Method, rows []request.TransactionRow) (*model.TaxReport, error) {
	transactions, err := validation.ValidateBatch(rows, s.maxBatchSize)
	if err != nil {
		return nil, err
	}

	engine := tax.NewEngine(method)
	gains, err := engine.Process(transactions)
	if err != nil {
		return nil, err
	}

	report := tax.Aggregate(method, transactions, gains)
	return &report, nil
}

// Compare calculates the same batch under FIFO and LIFO. The two
// calculations share no state, so they run concurrently.
func (s *TaxService) Compare(ctx context.Context, rows []request.TransactionRow) (*model.MethodComparison, error) {
	var fifo, lifo *model.TaxReport

	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report, err := s.Calculate(model.FIFO, rows)
		fifo = report
		return err
	})
	g.Go(func() error {
		report, err := s.Calculate(model.LIFO, rows)
		lifo = report
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &model.MethodComparison{FIFO: *fifo, LIFO: *lifo}, nil
}
