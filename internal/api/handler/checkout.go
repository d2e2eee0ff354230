// internal/api/handler/checkout.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"settleflow/internal/service"
	"settleflow/internal/util"
)

// CheckoutHandler handles HTTP requests for checkout creation and capture.
type CheckoutHandler struct {
	service service.CheckoutService
	logger  zerolog.Logger
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(svc service.CheckoutService, logger zerolog.Logger) *CheckoutHandler {
	return &CheckoutHandler{service: svc, logger: logger}
}

// CreateCheckoutRequest is the body for POST /checkout/create.
type CreateCheckoutRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency" validate:"required,len=3"`
	OrderIDs []string        `json:"order_ids" validate:"required,min=1,dive,required"`
}

// CreateCheckout handles POST /checkout/create.
func (h *CheckoutHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	var req CreateCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	transactionID, err := h.service.InitiateCheckout(r.Context(), req.OrderIDs, req.Amount, req.Currency)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusCreated, map[string]string{
		"transaction_id": transactionID,
	})
}

// CaptureCheckoutRequest is the body for POST /checkout/capture.
type CaptureCheckoutRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
}

// CaptureCheckout handles POST /checkout/capture.
func (h *CheckoutHandler) CaptureCheckout(w http.ResponseWriter, r *http.Request) {
	var req CaptureCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	result, err := h.service.CaptureCheckout(r.Context(), req.TransactionID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, result)
}
