package handlers

import (
	"net/http"

	"github.com/cryptotax-micro/backend/internal/api/request"
	"github.com/cryptotax-micro/backend/internal/api/response"
	"github.com/cryptotax-micro/backend/internal/importer"
	"github.com/cryptotax-micro/backend/internal/model"
	"github.com/cryptotax-micro/backend/internal/service"
)

// maxUploadBytes caps CSV uploads; 500 transactions fit comfortably.
const maxUploadBytes = 1 << 20

// CalculateHandler handles HTTP requests for tax calculation endpoints.
// It serves as the HTTP layer adapter, parsing requests and delegating
// business logic to the TaxService.
type CalculateHandler struct {
	taxService *service.TaxService
}

// NewCalculateHandler creates a new CalculateHandler with the provided service dependency.
func NewCalculateHandler(taxService *service.TaxService) *CalculateHandler {
	return &CalculateHandler{
		taxService: taxService,
	}
}

// Calculate handles POST requests to calculate a tax report from JSON
// transaction data.
//
// Endpoint: POST /api/calculate
// Request Body: CalculateRequest (method, transactions)
// Response: 200 OK with {"success": true, "data": TaxReport}
// Error: 400 Bad Request on unknown method or validation failure
// Error: 422 Unprocessable Entity when a sale exceeds available inventory
func (h *CalculateHandler) Calculate(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CalculateRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	method, err := model.ParseMethod(req.Method)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	report, err := h.taxService.Calculate(method, req.Transactions)
	if err != nil {
		respondCalculationError(w, err)
		return
	}

	response.RespondSuccess(w, http.StatusOK, report)
}

// Compare handles POST requests to calculate the same batch under both
// FIFO and LIFO for side-by-side comparison.
//
// Endpoint: POST /api/calculate/compare
// Request Body: CompareRequest (transactions)
// Response: 200 OK with {"success": true, "data": {"fifo": …, "lifo": …}}
func (h *CalculateHandler) Compare(w http.ResponseWriter, r *http.Request) {
	req, err := parseJSON[request.CompareRequest](r)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	comparison, err := h.taxService.Compare(r.Context(), req.Transactions)
	if err != nil {
		respondCalculationError(w, err)
		return
	}

	response.RespondSuccess(w, http.StatusOK, comparison)
}

// UploadResponse is the envelope for CSV uploads; it adds the number of
// rows read from the file to the usual success payload.
type UploadResponse struct {
	Success               bool             `json:"success"`
	Data                  *model.TaxReport `json:"data"`
	TransactionsProcessed int              `json:"transactions_processed"`
}

// UploadCSV handles multipart CSV uploads and returns the calculated
// report. The cost basis method comes from the "method" form value or
// query parameter and defaults to FIFO.
//
// Endpoint: POST /api/upload-csv
// Request: multipart/form-data with a "file" part
// Response: 200 OK with UploadResponse
// Error: 400 Bad Request on missing file, bad CSV, or validation failure
// Error: 422 Unprocessable Entity when a sale exceeds available inventory
func (h *CalculateHandler) UploadCSV(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)

	methodParam := r.URL.Query().Get("method")
	if methodParam == "" {
		methodParam = r.FormValue("method")
	}
	if methodParam == "" {
		methodParam = "FIFO"
	}
	method, err := model.ParseMethod(methodParam)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "CSV file is required", err.Error())
		return
	}
	defer file.Close()

	rows, err := importer.ParseTransactions(file)
	if err != nil {
		response.RespondError(w, http.StatusBadRequest, "failed to parse CSV", err.Error())
		return
	}

	report, err := h.taxService.Calculate(method, rows)
	if err != nil {
		respondCalculationError(w, err)
		return
	}

	response.RespondJSON(w, http.StatusOK, UploadResponse{
		Success:               true,
		Data:                  report,
		TransactionsProcessed: len(rows),
	})
}

// SampleCSV handles GET requests for the CSV template download.
//
// Endpoint: GET /api/sample-csv
// Response: 200 OK with a text/csv attachment
func (h *CalculateHandler) SampleCSV(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="crypto_tax_sample.csv"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck // best-effort static download
	w.Write([]byte(importer.SampleCSV))
}
