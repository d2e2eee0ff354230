// internal/api/handler/webhook.go
package handler

import (
	"encoding/json"
	"io"
	"net/http"

	"github.com/rs/zerolog"

	"settleflow/internal/gateway"
	"settleflow/internal/service"
	"settleflow/internal/util"
)

// WebhookHandler receives gateway-initiated payment events. A verified
// payment.completed event runs the same idempotent capture path as the
// synchronous endpoint, so the two confirmation routes can never disagree.
type WebhookHandler struct {
	verifier gateway.WebhookVerifier
	service  service.CheckoutService
	logger   zerolog.Logger
}

// NewWebhookHandler creates a new WebhookHandler.
func NewWebhookHandler(verifier gateway.WebhookVerifier, svc service.CheckoutService, logger zerolog.Logger) *WebhookHandler {
	return &WebhookHandler{verifier: verifier, service: svc, logger: logger}
}

// HandleGatewayEvent handles POST /webhooks/gateway.
func (h *WebhookHandler) HandleGatewayEvent(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if !h.verifier.Verify(body, r.Header.Get(gateway.SignatureHeader)) {
		h.logger.Warn().Msg("webhook signature verification failed")
		respondWithJSON(h.logger, w, http.StatusUnauthorized, map[string]string{"error": "invalid signature"})
		return
	}

	var event gateway.Event
	if err := json.Unmarshal(body, &event); err != nil {
		respondWithError(h.logger, w, util.ErrInvalidInput)
		return
	}

	if event.Type != gateway.EventPaymentCompleted {
		h.logger.Debug().Str("type", event.Type).Msg("ignoring gateway event")
		respondWithJSON(h.logger, w, http.StatusOK, map[string]string{"status": "ignored"})
		return
	}

	result, err := h.service.CaptureCheckout(r.Context(), event.TransactionID)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, result)
}
