package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/cryptotax-micro/backend/internal/testutil"
)

func TestValidateUUIDMiddleware(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := ValidateUUIDMiddleware(next)

	t.Run("passes a valid UUID through", func(t *testing.T) {
		id := testutil.MakeID()
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/report/"+id,
			map[string]string{"uuid": id})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusOK {
			t.Errorf("Expected 200, got %d", rec.Code)
		}
	})

	t.Run("rejects a malformed UUID", func(t *testing.T) {
		req := testutil.NewRequestWithURLParams(http.MethodGet, "/api/report/not-a-uuid",
			map[string]string{"uuid": "not-a-uuid"})

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})

	t.Run("rejects a missing UUID", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/api/report/", nil)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)

		if rec.Code != http.StatusBadRequest {
			t.Errorf("Expected 400, got %d", rec.Code)
		}
	})
}
