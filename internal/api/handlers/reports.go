package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/cryptotax-micro/backend/internal/api/request"
	"github.com/cryptotax-micro/backend/internal/api/response"
	"github.com/cryptotax-micro/backend/internal/apperrors"
	"github.com/cryptotax-micro/backend/internal/model"
	"github.com/cryptotax-micro/backend/internal/service"
)

// ReportHandler handles HTTP requests for saved report endpoints.
type ReportHandler struct {
	reportService *service.ReportService
}

// NewReportHandler creates a new ReportHandler with the provided service dependency.
func NewReportHandler(reportService *service.ReportService) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
	}
}

// CreateReport handles POST requests to calculate and persist a tax report.
//
// Endpoint: POST /api/report
// Request Body: SaveReportRequest (method, label optional, transactions)
// Response: 201 Created with the saved report summary
// Error: 400/422 as for /api/calculate
// Error: 500 Internal Server Error if persisting fails
func (h *ReportHandler) CreateReport(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.SaveReportRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	method, err := model.ParseMethod(req.Method)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	saved, err := h.reportService.CreateReport(r.Context(), method, req.Label, req.Transactions)
	if err != nil {
		if errors.Is(err, apperrors.ErrFailedToSaveReport) {
			response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToSaveReport.Error(), err.Error())
			return
		}
		respondCalculationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusCreated, saved)
}

// ListReports handles GET requests for saved report summaries, newest first.
//
// Endpoint: GET /api/report
// Response: 200 OK with array of SavedReport
// Error: 500 Internal Server Error if retrieval fails
func (h *ReportHandler) ListReports(w http.ResponseWriter, _ *http.Request) {
	reports, err := h.reportService.ListReports()
	if err != nil {
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToListReports.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, reports)
}

// GetReport handles GET requests for a single saved report, realized
// gains included.
//
// Endpoint: GET /api/report/{uuid}
// Response: 200 OK with SavedReportDetail
// Error: 400 Bad Request if the ID is not a UUID (validated by middleware)
// Error: 404 Not Found if the report does not exist
func (h *ReportHandler) GetReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "uuid")

	report, err := h.reportService.GetReport(reportID)
	if err != nil {
		if errors.Is(err, apperrors.ErrReportNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrReportNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToRetrieveReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusOK, report)
}

// DeleteReport handles DELETE requests for a saved report.
//
// Endpoint: DELETE /api/report/{uuid}
// Response: 204 No Content
// Error: 400 Bad Request if the ID is not a UUID (validated by middleware)
// Error: 404 Not Found if the report does not exist
func (h *ReportHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	reportID := chi.URLParam(r, "uuid")

	if err := h.reportService.DeleteReport(r.Context(), reportID); err != nil {
		if errors.Is(err, apperrors.ErrReportNotFound) {
			response.RespondError(w, http.StatusNotFound, apperrors.ErrReportNotFound.Error(), nil)
			return
		}
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToDeleteReport.Error(), err.Error())
		return
	}

	response.RespondJSON(w, http.StatusNoContent, nil)
}
