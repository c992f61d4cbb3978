package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/cryptotax-micro/backend/internal/api/request"
	"github.com/cryptotax-micro/backend/internal/apperrors"
	"github.com/cryptotax-micro/backend/internal/model"
	"github.com/cryptotax-micro/backend/internal/repository"
	"github.com/cryptotax-micro/backend/internal/secure"
)

// ReportService persists calculated tax reports. Realized gains are
// encrypted before they reach the database; only summaries are stored in
// the clear for listing.
type ReportService struct {
	reportRepo    *repository.ReportRepository
	taxService    *TaxService
	codec         *secure.Codec
	retentionDays int
}

// NewReportService creates a new ReportService with the provided dependencies.
func NewReportService(
	reportRepo *repository.ReportRepository,
	taxService *TaxService,
	codec *secure.Codec,
	retentionDays int,
) *ReportService {
	return &ReportService{
		reportRepo:    reportRepo,
		taxService:    taxService,
		codec:         codec,
		retentionDays: retentionDays,
	}
}

// CreateReport calculates a report for the batch and persists it.
// Calculation failures propagate unchanged so callers can map them to
// the same statuses as an unsaved calculation.
func (s *ReportService) CreateReport(ctx context.Context, method model.Method, label string, rows []request.TransactionRow) (*model.SavedReport, error) {
	report, err := s.taxService.Calculate(method, rows)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(report.RealizedGains)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveReport, err)
	}
	encrypted, err := s.codec.Encrypt(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveReport, err)
	}

	rec := &model.SavedReportRecord{
		SavedReport: model.SavedReport{
			ID:                uuid.New().String(),
			Label:             label,
			Method:            report.Method,
			TotalTransactions: report.TotalTransactions,
			TotalSales:        report.TotalSales,
			ShortTermGainLoss: report.ShortTermGainLoss,
			LongTermGainLoss:  report.LongTermGainLoss,
			TotalGainLoss:     report.TotalGainLoss,
			CreatedAt:         time.Now().UTC(),
		},
		Payload: encrypted,
	}

	if err := s.reportRepo.Insert(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToSaveReport, err)
	}

	return &rec.SavedReport, nil
}

// GetReport retrieves a saved report with its realized gains decrypted.
func (s *ReportService) GetReport(id string) (*model.SavedReportDetail, error) {
	rec, err := s.reportRepo.Get(id)
	if err != nil {
		return nil, err
	}

	payload, err := s.codec.Decrypt(rec.Payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveReport, err)
	}

	var gains []model.RealizedGain
	if err := json.Unmarshal(payload, &gains); err != nil {
		return nil, fmt.Errorf("%w: %v", apperrors.ErrFailedToRetrieveReport, err)
	}
	if gains == nil {
		gains = []model.RealizedGain{}
	}

	return &model.SavedReportDetail{
		SavedReport:   rec.SavedReport,
		RealizedGains: gains,
	}, nil
}

// ListReports retrieves summaries of all saved reports, newest first.
func (s *ReportService) ListReports() ([]model.SavedReport, error) {
	return s.reportRepo.List()
}

// DeleteReport removes a saved report by ID.
func (s *ReportService) DeleteReport(ctx context.Context, id string) error {
	return s.reportRepo.Delete(ctx, id)
}

// PurgeExpired removes reports older than the retention window and
// returns how many were removed. A non-positive retention disables it.
func (s *ReportService) PurgeExpired(ctx context.Context) (int64, error) {
	if s.retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().UTC().AddDate(0, 0, -s.retentionDays)
	return s.reportRepo.DeleteOlderThan(ctx, cutoff)
}
