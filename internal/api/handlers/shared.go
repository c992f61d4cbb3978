package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cryptotax-micro/backend/internal/api/response"
	"github.com/cryptotax-micro/backend/internal/apperrors"
	"github.com/cryptotax-micro/backend/internal/validation"
)

// parseJSON decodes the request body into T.
func parseJSON[T any](r *http.Request) (T, error) {
	var v T
	if err := json.NewDecoder(r.Body).Decode(&v); err != nil {
		return v, err
	}
	return v, nil
}

// respondCalculationError maps a calculation failure to its HTTP status.
// Validation problems are the client's to fix (400), a well-formed batch
// that oversells its inventory is unprocessable (422), anything else is
// a server failure.
func respondCalculationError(w http.ResponseWriter, err error) {
	var batchErr *validation.BatchError
	switch {
	case errors.As(err, &batchErr):
		response.RespondError(w, http.StatusBadRequest, "validation failed", batchErr.Rows)
	case errors.Is(err, apperrors.ErrUnknownMethod),
		errors.Is(err, apperrors.ErrEmptyBatch),
		errors.Is(err, apperrors.ErrBatchTooLarge):
		response.RespondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, apperrors.ErrInsufficientInventory):
		response.RespondError(w, http.StatusUnprocessableEntity, apperrors.ErrInsufficientInventory.Error(), err.Error())
	default:
		response.RespondError(w, http.StatusInternalServerError, apperrors.ErrFailedToCalculate.Error(), err.Error())
	}
}
