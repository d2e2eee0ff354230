// internal/api/handler/order.go
package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"

	"settleflow/internal/service"
	"settleflow/internal/util"
)

// OrderHandler handles HTTP requests for claiming and fulfilling orders.
type OrderHandler struct {
	service service.AssignmentService
	logger  zerolog.Logger
}

// NewOrderHandler creates a new OrderHandler.
func NewOrderHandler(svc service.AssignmentService, logger zerolog.Logger) *OrderHandler {
	return &OrderHandler{service: svc, logger: logger}
}

// ClaimRequest is the body for POST /orders/{orderID}/claim and release.
type ClaimRequest struct {
	FulfillerID string `json:"fulfiller_id" validate:"required"`
}

// Claim handles POST /orders/{orderID}/claim.
func (h *OrderHandler) Claim(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.Claim(r.Context(), orderID, req.FulfillerID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"status": "assigned"})
}

// Release handles POST /orders/{orderID}/release.
func (h *OrderHandler) Release(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	var req ClaimRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if err := h.service.Release(r.Context(), orderID, req.FulfillerID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"status": "released"})
}

// Complete handles POST /orders/{orderID}/complete, the interface point for
// the external fulfillment-completion signal.
func (h *OrderHandler) Complete(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "orderID")

	if err := h.service.Complete(r.Context(), orderID); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"status": "completed"})
}
