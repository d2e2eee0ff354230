// internal/api/handler/respond.go
package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"settleflow/internal/api/types"
	"settleflow/internal/util"
)

// DefaultTimeout bounds request handling at the router level.
const DefaultTimeout = 60 * time.Second

// validate checks request payloads; shared across handlers.
var validate = validator.New()

func respondWithJSON(logger zerolog.Logger, w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal JSON response")
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

// respondWithError maps service errors onto the stable HTTP error envelope.
func respondWithError(logger zerolog.Logger, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	kind := "internal"
	message := "Internal server error"

	switch {
	case util.IsError(err, util.ErrInvalidInput):
		statusCode, kind, message = http.StatusBadRequest, "validation", "Invalid input provided"
	case util.IsError(err, util.ErrAmountMismatch):
		statusCode, kind, message = http.StatusBadRequest, "amount_mismatch", "Claimed amount does not match order totals"
	case util.IsError(err, util.ErrCurrencyMismatch):
		statusCode, kind, message = http.StatusBadRequest, "currency_mismatch", "Currency mismatch"
	case util.IsError(err, util.ErrInsufficientFunds):
		statusCode, kind, message = http.StatusBadRequest, "insufficient_funds", "Insufficient funds"
	case util.IsError(err, util.ErrOrderNotFound):
		statusCode, kind, message = http.StatusNotFound, "not_found", "Order not found"
	case util.IsError(err, util.ErrWalletNotFound):
		statusCode, kind, message = http.StatusNotFound, "not_found", "Wallet not found"
	case util.IsError(err, util.ErrNotFound):
		statusCode, kind, message = http.StatusNotFound, "not_found", "Resource not found"
	case util.IsError(err, util.ErrAlreadyPaid):
		statusCode, kind, message = http.StatusConflict, "already_paid", "Order already paid"
	case util.IsError(err, util.ErrAlreadyClaimed):
		statusCode, kind, message = http.StatusConflict, "already_claimed", "Order already claimed"
	case util.IsError(err, util.ErrGateway):
		statusCode, kind, message = http.StatusInternalServerError, "gateway", "Payment gateway error"
		logger.Error().Err(err).Msg("gateway failure")
	default:
		logger.Error().Err(err).Msg("unhandled service error")
	}

	respondWithJSON(logger, w, statusCode, types.ErrorResponse{Error: types.ErrorBody{Kind: kind, Message: message}})
}
