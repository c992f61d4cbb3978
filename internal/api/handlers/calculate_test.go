package handlers

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cryptotax-micro/backend/internal/api/request"
	"github.com/cryptotax-micro/backend/internal/api/response"
	"github.com/cryptotax-micro/backend/internal/importer"
	"github.com/cryptotax-micro/backend/internal/model"
	"github.com/cryptotax-micro/backend/internal/testutil"
)

type reportEnvelope struct {
	Success bool            `json:"success"`
	Data    model.TaxReport `json:"data"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) response.ErrorResponse {
	t.Helper()
	var errResp response.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&errResp); err != nil {
		t.Fatalf("Failed to decode error response: %v", err)
	}
	return errResp
}

func TestCalculate(t *testing.T) {
	newHandler := func(t *testing.T) *CalculateHandler {
		return NewCalculateHandler(testutil.NewTestTaxService(t))
	}

	t.Run("returns a report in the success envelope", func(t *testing.T) {
		handler := newHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate", request.CalculateRequest{
			Method:       "FIFO",
			Transactions: testutil.SampleBatch(),
		})
		rec := httptest.NewRecorder()
		handler.Calculate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var envelope reportEnvelope
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !envelope.Success {
			t.Error("Expected success envelope")
		}
		if envelope.Data.Method != "FIFO" {
			t.Errorf("Expected method FIFO, got %s", envelope.Data.Method)
		}
		if envelope.Data.TotalGainLoss.String() != "27972" {
			t.Errorf("Expected total gain 27972, got %s", envelope.Data.TotalGainLoss)
		}
		if len(envelope.Data.RealizedGains) != 2 {
			t.Errorf("Expected 2 realized gains, got %d", len(envelope.Data.RealizedGains))
		}
	})

	t.Run("accepts a lowercase method", func(t *testing.T) {
		handler := newHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate", request.CalculateRequest{
			Method:       "lifo",
			Transactions: testutil.SampleBatch(),
		})
		rec := httptest.NewRecorder()
		handler.Calculate(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("rejects an unknown method", func(t *testing.T) {
		handler := newHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate", request.CalculateRequest{
			Method:       "HIFO",
			Transactions: testutil.SampleBatch(),
		})
		rec := httptest.NewRecorder()
		handler.Calculate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects a malformed body", func(t *testing.T) {
		handler := newHandler(t)

		req := httptest.NewRequest(http.MethodPost, "/api/calculate", strings.NewReader("{not json"))
		rec := httptest.NewRecorder()
		handler.Calculate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("reports validation failures with row details", func(t *testing.T) {
		handler := newHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate", request.CalculateRequest{
			Method: "FIFO",
			Transactions: []request.TransactionRow{
				testutil.Row("2023-01-15", "buy", "1.0", "20000", "BTC", ""),
				testutil.Row("bad-date", "sell", "0", "25000", "BTC", ""),
			},
		})
		rec := httptest.NewRecorder()
		handler.Calculate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("Expected 400, got %d", rec.Code)
		}
		errResp := decodeError(t, rec)
		if errResp.Error != "validation failed" {
			t.Errorf("Unexpected error message: %s", errResp.Error)
		}
		if errResp.Details == nil {
			t.Error("Expected row details in the response")
		}
	})

	t.Run("rejects an oversold batch as unprocessable", func(t *testing.T) {
		handler := newHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate", request.CalculateRequest{
			Method: "FIFO",
			Transactions: []request.TransactionRow{
				testutil.Row("2023-01-15", "buy", "1.0", "20000", "BTC", ""),
				testutil.Row("2023-02-01", "sell", "2.0", "25000", "BTC", ""),
			},
		})
		rec := httptest.NewRecorder()
		handler.Calculate(rec, req)

		if rec.Code != http.StatusUnprocessableEntity {
			t.Errorf("Expected 422, got %d", rec.Code)
		}
	})

	t.Run("rejects an empty batch", func(t *testing.T) {
		handler := newHandler(t)

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate", request.CalculateRequest{
			Method: "FIFO",
		})
		rec := httptest.NewRecorder()
		handler.Calculate(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func TestCompare(t *testing.T) {
	t.Run("returns both methods side by side", func(t *testing.T) {
		handler := NewCalculateHandler(testutil.NewTestTaxService(t))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate/compare", request.CompareRequest{
			Transactions: testutil.SampleBatch(),
		})
		rec := httptest.NewRecorder()
		handler.Compare(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var envelope struct {
			Success bool                   `json:"success"`
			Data    model.MethodComparison `json:"data"`
		}
		if err := json.NewDecoder(rec.Body).Decode(&envelope); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if envelope.Data.FIFO.TotalGainLoss.String() != "27972" {
			t.Errorf("Expected FIFO total 27972, got %s", envelope.Data.FIFO.TotalGainLoss)
		}
		if envelope.Data.LIFO.TotalGainLoss.String() != "24970.5" {
			t.Errorf("Expected LIFO total 24970.5, got %s", envelope.Data.LIFO.TotalGainLoss)
		}
	})

	t.Run("rejects an invalid batch", func(t *testing.T) {
		handler := NewCalculateHandler(testutil.NewTestTaxService(t))

		req := testutil.NewJSONRequest(t, http.MethodPost, "/api/calculate/compare", request.CompareRequest{
			Transactions: []request.TransactionRow{
				testutil.Row("2023-01-15", "buy", "-1", "20000", "BTC", ""),
			},
		})
		rec := httptest.NewRecorder()
		handler.Compare(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func newCSVUpload(t *testing.T, target, csv string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", "transactions.csv")
	if err != nil {
		t.Fatalf("Failed to create form file: %v", err)
	}
	if _, err := part.Write([]byte(csv)); err != nil {
		t.Fatalf("Failed to write CSV: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("Failed to close multipart writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadCSV(t *testing.T) {
	t.Run("calculates from an uploaded file with FIFO default", func(t *testing.T) {
		handler := NewCalculateHandler(testutil.NewTestTaxService(t))

		req := newCSVUpload(t, "/api/upload-csv", importer.SampleCSV)
		rec := httptest.NewRecorder()
		handler.UploadCSV(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp UploadResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if !resp.Success {
			t.Error("Expected success response")
		}
		if resp.TransactionsProcessed != 5 {
			t.Errorf("Expected 5 transactions processed, got %d", resp.TransactionsProcessed)
		}
		if resp.Data == nil || resp.Data.Method != "FIFO" {
			t.Errorf("Expected a FIFO report, got %+v", resp.Data)
		}
	})

	t.Run("honors the method query parameter", func(t *testing.T) {
		handler := NewCalculateHandler(testutil.NewTestTaxService(t))

		req := newCSVUpload(t, "/api/upload-csv?method=lifo", importer.SampleCSV)
		rec := httptest.NewRecorder()
		handler.UploadCSV(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d: %s", rec.Code, rec.Body.String())
		}

		var resp UploadResponse
		if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
			t.Fatalf("Failed to decode response: %v", err)
		}
		if resp.Data == nil || resp.Data.Method != "LIFO" {
			t.Errorf("Expected a LIFO report, got %+v", resp.Data)
		}
	})

	t.Run("rejects a missing file part", func(t *testing.T) {
		handler := NewCalculateHandler(testutil.NewTestTaxService(t))

		var body bytes.Buffer
		writer := multipart.NewWriter(&body)
		if err := writer.Close(); err != nil {
			t.Fatalf("Failed to close multipart writer: %v", err)
		}
		req := httptest.NewRequest(http.MethodPost, "/api/upload-csv", &body)
		req.Header.Set("Content-Type", writer.FormDataContentType())

		rec := httptest.NewRecorder()
		handler.UploadCSV(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects a file with missing columns", func(t *testing.T) {
		handler := NewCalculateHandler(testutil.NewTestTaxService(t))

		req := newCSVUpload(t, "/api/upload-csv", "date,type\n2023-01-15,buy\n")
		rec := httptest.NewRecorder()
		handler.UploadCSV(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects an unknown method parameter", func(t *testing.T) {
		handler := NewCalculateHandler(testutil.NewTestTaxService(t))

		req := newCSVUpload(t, "/api/upload-csv?method=average", importer.SampleCSV)
		rec := httptest.NewRecorder()
		handler.UploadCSV(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}

func TestSampleCSV(t *testing.T) {
	handler := NewCalculateHandler(testutil.NewTestTaxService(t))

	req := httptest.NewRequest(http.MethodGet, "/api/sample-csv", nil)
	rec := httptest.NewRecorder()
	handler.SampleCSV(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if got := rec.Header().Get("Content-Type"); got != "text/csv" {
		t.Errorf("Expected text/csv, got %s", got)
	}
	if got := rec.Header().Get("Content-Disposition"); !strings.Contains(got, "attachment") {
		t.Errorf("Expected attachment disposition, got %s", got)
	}
	if rec.Body.String() != importer.SampleCSV {
		t.Error("Expected body to match the sample template")
	}
}
