// internal/api/router.go
package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"

	"settleflow/internal/api/handler"
)

// Handlers groups everything the router mounts.
type Handlers struct {
	Checkout *handler.CheckoutHandler
	Order    *handler.OrderHandler
	Wallet   *handler.WalletHandler
	Webhook  *handler.WebhookHandler
}

// NewRouter sets up and returns a new HTTP router.
func NewRouter(h Handlers, logger zerolog.Logger) http.Handler {
	r := chi.NewRouter()

	// Global middlewares
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(handler.DefaultTimeout))

	// Health check endpoint
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})

	r.Route("/checkout", func(r chi.Router) {
		r.Post("/create", h.Checkout.CreateCheckout)
		r.Post("/capture", h.Checkout.CaptureCheckout)
	})

	r.Route("/orders", func(r chi.Router) {
		r.Post("/{orderID}/claim", h.Order.Claim)
		r.Post("/{orderID}/release", h.Order.Release)
		r.Post("/{orderID}/complete", h.Order.Complete)
	})

	r.Route("/wallets", func(r chi.Router) {
		r.Get("/{ownerID}", h.Wallet.GetBalance)
		r.Get("/{ownerID}/transactions", h.Wallet.GetTransactions)
		r.Post("/{ownerID}/withdraw", h.Wallet.Withdraw)
	})

	r.Post("/webhooks/gateway", h.Webhook.HandleGatewayEvent)

	return r
}
