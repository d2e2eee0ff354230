// internal/api/handler/wallet.go
package handler

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"settleflow/internal/api/types"
	"settleflow/internal/domain"
	"settleflow/internal/service"
	"settleflow/internal/util"
)

// WalletHandler handles HTTP requests related to wallet operations.
type WalletHandler struct {
	service         service.WalletService
	defaultCurrency string
	logger          zerolog.Logger
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(svc service.WalletService, defaultCurrency string, logger zerolog.Logger) *WalletHandler {
	return &WalletHandler{service: svc, defaultCurrency: defaultCurrency, logger: logger}
}

// currencyOf resolves the wallet currency: explicit query parameter or the
// platform default.
func (h *WalletHandler) currencyOf(r *http.Request) string {
	if c := r.URL.Query().Get("currency"); c != "" {
		return c
	}
	return h.defaultCurrency
}

// GetBalance handles GET /wallets/{ownerID}.
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	wallet, err := h.service.GetBalance(r.Context(), ownerID, h.currencyOf(r))
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, map[string]interface{}{
		"balance":  wallet.Balance,
		"currency": wallet.Currency,
	})
}

// GetTransactions handles GET /wallets/{ownerID}/transactions?limit&offset.
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit <= 0 || limit > 100 {
		limit = 10
	}
	offset, err := strconv.Atoi(r.URL.Query().Get("offset"))
	if err != nil || offset < 0 {
		offset = 0
	}

	transactions, totalCount, err := h.service.ListTransactions(r.Context(), ownerID, h.currencyOf(r), limit, offset)
	if err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusOK, types.PaginatedResponse[domain.WalletTransaction]{
		Data:       transactions,
		Limit:      limit,
		Offset:     offset,
		TotalCount: totalCount,
	})
}

// WithdrawRequest is the body for POST /wallets/{ownerID}/withdraw.
type WithdrawRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	Currency string          `json:"currency"`
	Method   string          `json:"method" validate:"required"`
	Details  string          `json:"details"`
}

// Withdraw handles POST /wallets/{ownerID}/withdraw.
func (h *WalletHandler) Withdraw(w http.ResponseWriter, r *http.Request) {
	ownerID := chi.URLParam(r, "ownerID")

	var req WithdrawRequest
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
	if req.Currency == "" {
		req.Currency = h.defaultCurrency
	}

	if _, err := h.service.RequestWithdrawal(r.Context(), ownerID, req.Amount, req.Currency, req.Method, req.Details); err != nil {
		respondWithError(h.logger, w, err)
		return
	}

	respondWithJSON(h.logger, w, http.StatusAccepted, map[string]string{"status": "pending"})
}
