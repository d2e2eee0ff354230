// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"

	"settleflow/internal/domain"
	"settleflow/pkg/db" // Import db package for its Config struct
)

// GatewayConfig holds payment-provider connection settings.
type GatewayConfig struct {
	BaseURL       string
	APIKey        string
	WebhookSecret string
	Timeout       time.Duration
}

// CommissionConfig holds the platform's cut per payment method. Injected into
// the distribution engine at construction so settlement is deterministic per
// call instead of reading a mutable settings table.
type CommissionConfig struct {
	DefaultRate     decimal.Decimal
	Rates           map[domain.PaymentMethod]decimal.Decimal
	PlatformOwnerID string
}

// RateFor returns the commission rate for a payment method.
func (c CommissionConfig) RateFor(method domain.PaymentMethod) decimal.Decimal {
	if rate, ok := c.Rates[method]; ok {
		return rate
	}
	return c.DefaultRate
}

// AppConfig holds all application-wide configurations.
type AppConfig struct {
	ServerPort      string
	DefaultCurrency string
	LogLevel        string
	LogPretty       bool
	DB              db.Config
	Gateway         GatewayConfig
	Commission      CommissionConfig
	NotifyURL       string
}

// LoadConfig loads configuration from environment variables, reading an
// optional .env file first.
func LoadConfig() (*AppConfig, error) {
	// Missing .env is fine; real environments set variables directly.
	_ = godotenv.Load()

	dbPort, err := strconv.Atoi(getEnv("DB_PORT", "5432"))
	if err != nil {
		return nil, fmt.Errorf("invalid DB_PORT: %w", err)
	}

	gatewayTimeout, err := time.ParseDuration(getEnv("GATEWAY_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("invalid GATEWAY_TIMEOUT: %w", err)
	}

	defaultRate, err := decimal.NewFromString(getEnv("COMMISSION_RATE", "0.05"))
	if err != nil {
		return nil, fmt.Errorf("invalid COMMISSION_RATE: %w", err)
	}

	rates := map[domain.PaymentMethod]decimal.Decimal{}
	for method, envKey := range map[domain.PaymentMethod]string{
		domain.PaymentMethodMobileMoney: "COMMISSION_RATE_MOBILE_MONEY",
		domain.PaymentMethodCard:        "COMMISSION_RATE_CARD",
	} {
		if raw := os.Getenv(envKey); raw != "" {
			rate, err := decimal.NewFromString(raw)
			if err != nil {
				return nil, fmt.Errorf("invalid %s: %w", envKey, err)
			}
			rates[method] = rate
		}
	}

	return &AppConfig{
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		DefaultCurrency: getEnv("DEFAULT_CURRENCY", "XOF"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		LogPretty:       os.Getenv("LOG_PRETTY") == "true",
		DB: db.Config{
			Host:     getEnv("DB_HOST", "localhost"),
			Port:     dbPort,
			User:     getEnv("DB_USER", "user"),
			Password: getEnv("DB_PASSWORD", "password"),
			DBName:   getEnv("DB_NAME", "settleflowdb"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		Gateway: GatewayConfig{
			BaseURL:       getEnv("GATEWAY_BASE_URL", "http://localhost:9090"),
			APIKey:        os.Getenv("GATEWAY_API_KEY"),
			WebhookSecret: os.Getenv("GATEWAY_WEBHOOK_SECRET"),
			Timeout:       gatewayTimeout,
		},
		Commission: CommissionConfig{
			DefaultRate:     defaultRate,
			Rates:           rates,
			PlatformOwnerID: os.Getenv("PLATFORM_OWNER_ID"),
		},
		NotifyURL: os.Getenv("NOTIFY_URL"),
	}, nil
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
