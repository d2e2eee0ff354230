// internal/app.go
package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	router "settleflow/internal/api"
	"settleflow/internal/api/handler"
	"settleflow/internal/config"
	"settleflow/internal/gateway"
	"settleflow/internal/notify"
	"settleflow/internal/repository"
	"settleflow/internal/repository/postgres"
	"settleflow/internal/service"
	"settleflow/pkg/db"
	"settleflow/pkg/logger"
)

// Application holds all the initialized components of the application.
type Application struct {
	Config *config.AppConfig
	Logger zerolog.Logger
	DB     *sqlx.DB

	// Repositories
	OrderRepository       repository.OrderRepository
	WalletRepository      repository.WalletRepository
	TransactionRepository repository.WalletTransactionRepository

	// Collaborators
	Gateway  gateway.PaymentGateway
	Notifier notify.Notifier

	// Services
	WalletService     service.WalletService
	Distributor       service.Distributor
	CheckoutService   service.CheckoutService
	AssignmentService service.AssignmentService

	// HTTP API
	HTTPHandler http.Handler
}

// NewApplication creates a new Application instance.
func NewApplication() *Application {
	return &Application{}
}

// Initialize initializes all application components.
func (app *Application) Initialize(ctx context.Context) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	app.Config = cfg

	app.Logger = logger.New(logger.Config{Level: cfg.LogLevel, Pretty: cfg.LogPretty})
	app.Logger.Info().Msg("configuration loaded")

	database, err := db.NewPostgresDB(cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	app.DB = database
	app.Logger.Info().Msg("database connection established")

	app.OrderRepository = postgres.NewOrderRepository(app.DB)
	app.WalletRepository = postgres.NewWalletRepository(app.DB)
	app.TransactionRepository = postgres.NewWalletTransactionRepository(app.DB)

	app.Gateway = gateway.NewClient(cfg.Gateway.BaseURL, cfg.Gateway.APIKey, cfg.Gateway.Timeout, app.Logger)
	if cfg.NotifyURL != "" {
		app.Notifier = notify.NewHTTPNotifier(cfg.NotifyURL, app.Logger)
	} else {
		app.Notifier = notify.NopNotifier{}
	}

	app.WalletService = service.NewWalletService(
		app.DB, // DBTxBeginner
		app.DB, // DBExecutor for non-transactional reads
		app.WalletRepository,
		app.TransactionRepository,
		service.LogPayoutQueue{Logger: app.Logger},
		db.BeginTx,
		db.CommitTx,
		db.RollbackTx,
		app.Logger,
	)
	app.Distributor = service.NewDistributor(app.WalletService, cfg.Commission, app.Logger)
	app.CheckoutService = service.NewCheckoutService(app.DB, app.OrderRepository, app.Gateway, app.Distributor, app.Notifier, app.Logger)
	app.AssignmentService = service.NewAssignmentService(app.DB, app.OrderRepository, app.Logger)
	app.Logger.Info().Msg("services initialized")

	webhookVerifier := gateway.NewHMACVerifier(cfg.Gateway.WebhookSecret)
	app.HTTPHandler = router.NewRouter(router.Handlers{
		Checkout: handler.NewCheckoutHandler(app.CheckoutService, app.Logger),
		Order:    handler.NewOrderHandler(app.AssignmentService, app.Logger),
		Wallet:   handler.NewWalletHandler(app.WalletService, cfg.DefaultCurrency, app.Logger),
		Webhook:  handler.NewWebhookHandler(webhookVerifier, app.CheckoutService, app.Logger),
	}, app.Logger)
	app.Logger.Info().Msg("HTTP router and handlers initialized")

	return nil
}

// Shutdown gracefully shuts down application resources.
func (app *Application) Shutdown(ctx context.Context) error {
	app.Logger.Info().Msg("shutting down application")
	if app.DB != nil {
		if err := app.DB.Close(); err != nil {
			app.Logger.Error().Err(err).Msg("failed to close database connection")
			return fmt.Errorf("failed to close database connection: %w", err)
		}
	}
	app.Logger.Info().Msg("application shut down gracefully")
	return nil
}
