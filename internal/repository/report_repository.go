package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/cryptotax-micro/backend/internal/apperrors"
	"github.com/cryptotax-micro/backend/internal/model"
)

// ReportRepository provides data access methods for the report table.
// Gain/loss totals are stored as decimal strings to avoid float drift.
type ReportRepository struct {
	db *sql.DB
}

// NewReportRepository creates a new ReportRepository with the provided database connection.
func NewReportRepository(db *sql.DB) *ReportRepository {
	return &ReportRepository{db: db}
}

// Insert stores a saved report record, including its encrypted payload.
func (r *ReportRepository) Insert(ctx context.Context, rec *model.SavedReportRecord) error {
	query := `
		INSERT INTO report (
			id, label, method, total_transactions, total_sales,
			short_term_gain_loss, long_term_gain_loss, total_gain_loss,
			payload, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		rec.ID,
		rec.Label,
		rec.Method,
		rec.TotalTransactions,
		rec.TotalSales,
		rec.ShortTermGainLoss.String(),
		rec.LongTermGainLoss.String(),
		rec.TotalGainLoss.String(),
		rec.Payload,
		rec.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to insert report: %w", err)
	}
	return nil
}

// Get retrieves a single report record by ID, payload included.
// Returns apperrors.ErrReportNotFound when no row matches.
func (r *ReportRepository) Get(id string) (*model.SavedReportRecord, error) {
	query := `
		SELECT id, label, method, total_transactions, total_sales,
			short_term_gain_loss, long_term_gain_loss, total_gain_loss,
			payload, created_at
		FROM report
		WHERE id = ?
	`

	rec, err := scanReport(r.db.QueryRow(query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.ErrReportNotFound
		}
		return nil, err
	}
	return rec, nil
}

// List retrieves summaries of all saved reports, newest first.
// Payloads are not loaded.
func (r *ReportRepository) List() ([]model.SavedReport, error) {
	query := `
		SELECT id, label, method, total_transactions, total_sales,
			short_term_gain_loss, long_term_gain_loss, total_gain_loss,
			created_at
		FROM report
		ORDER BY created_at DESC, id
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("failed to query report table: %w", err)
	}
	defer rows.Close()

	reports := make([]model.SavedReport, 0)
	for rows.Next() {
		var summary model.SavedReport
		var label sql.NullString
		var shortStr, longStr, totalStr, createdStr string

		err := rows.Scan(
			&summary.ID,
			&label,
			&summary.Method,
			&summary.TotalTransactions,
			&summary.TotalSales,
			&shortStr,
			&longStr,
			&totalStr,
			&createdStr,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan report table results: %w", err)
		}

		summary.Label = label.String
		if err := fillTotals(&summary, shortStr, longStr, totalStr, createdStr); err != nil {
			return nil, err
		}
		reports = append(reports, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report table results: %w", err)
	}

	return reports, nil
}

// Delete removes a report by ID. Returns apperrors.ErrReportNotFound when
// no row matched.
func (r *ReportRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM report WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete report: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read delete result: %w", err)
	}
	if affected == 0 {
		return apperrors.ErrReportNotFound
	}
	return nil
}

// DeleteOlderThan removes reports created before the cutoff and returns
// how many were removed. Used by the retention purge job.
func (r *ReportRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM report WHERE created_at < ?`,
		cutoff.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to purge reports: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read purge result: %w", err)
	}
	return affected, nil
}

func scanReport(row *sql.Row) (*model.SavedReportRecord, error) {
	var rec model.SavedReportRecord
	var label sql.NullString
	var shortStr, longStr, totalStr, createdStr string

	err := row.Scan(
		&rec.ID,
		&label,
		&rec.Method,
		&rec.TotalTransactions,
		&rec.TotalSales,
		&shortStr,
		&longStr,
		&totalStr,
		&rec.Payload,
		&createdStr,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, sql.ErrNoRows
		}
		return nil, fmt.Errorf("failed to scan report row: %w", err)
	}

	rec.Label = label.String
	if err := fillTotals(&rec.SavedReport, shortStr, longStr, totalStr, createdStr); err != nil {
		return nil, err
	}
	return &rec, nil
}

func fillTotals(summary *model.SavedReport, shortStr, longStr, totalStr, createdStr string) error {
	var err error
	if summary.ShortTermGainLoss, err = decimal.NewFromString(shortStr); err != nil {
		return fmt.Errorf("failed to parse short term gain/loss: %w", err)
	}
	if summary.LongTermGainLoss, err = decimal.NewFromString(longStr); err != nil {
		return fmt.Errorf("failed to parse long term gain/loss: %w", err)
	}
	if summary.TotalGainLoss, err = decimal.NewFromString(totalStr); err != nil {
		return fmt.Errorf("failed to parse total gain/loss: %w", err)
	}
	if summary.CreatedAt, err = ParseTime(createdStr); err != nil {
		return fmt.Errorf("failed to parse created_at: %w", err)
	}
	return nil
}
