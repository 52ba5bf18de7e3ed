package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"github.com/wealthpath/expenses/pkg/currency"
)

type Config struct {
	// Server
	Port string
	Env  string // "development", "production"

	// Database
	DatabaseURL   string
	RunMigrations bool

	// CORS
	AllowedOrigins []string

	// Display currency for exports and reports
	DefaultCurrency currency.Currency

	// Budget alerts
	BudgetAlertsEnabled bool
	BudgetAlertSchedule string        // Cron expression (e.g., "0 9 * * *" for daily at 09:00)
	BudgetAlertTimeout  time.Duration // Timeout for one evaluation cycle

	// RabbitMQ (optional; alerts are logged when empty)
	AMQPURL        string
	AMQPExchange   string
	AMQPRoutingKey string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first when present; real environment variables win.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		// Server
		Port: getEnv("PORT", "8080"),
		Env:  getEnv("ENV", "development"),

		// Database
		DatabaseURL:   getEnv("DATABASE_URL", "postgres://localhost:5432/expenses?sslmode=disable"),
		RunMigrations: getBoolEnv("RUN_MIGRATIONS", true),

		// CORS
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "http://localhost:3000")),

		DefaultCurrency: currency.Currency(strings.ToUpper(getEnv("DEFAULT_CURRENCY", string(currency.DefaultCurrency)))),

		// Budget alerts
		BudgetAlertsEnabled: getBoolEnv("BUDGET_ALERTS_ENABLED", true),
		BudgetAlertSchedule: getEnv("BUDGET_ALERT_SCHEDULE", "0 9 * * *"),
		BudgetAlertTimeout:  getDurationEnv("BUDGET_ALERT_TIMEOUT", 30*time.Second),

		// RabbitMQ
		AMQPURL:        os.Getenv("AMQP_URL"),
		AMQPExchange:   getEnv("AMQP_EXCHANGE", "expenses"),
		AMQPRoutingKey: getEnv("AMQP_ROUTING_KEY", "budget.alert"),
	}
}

// Validate reports the first configuration value that cannot be used.
func (c *Config) Validate() error {
	if _, err := strconv.Atoi(c.Port); err != nil {
		return fmt.Errorf("invalid PORT %q: %w", c.Port, err)
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if !currency.IsValid(string(c.DefaultCurrency)) {
		return fmt.Errorf("unsupported DEFAULT_CURRENCY %q", c.DefaultCurrency)
	}
	if c.BudgetAlertsEnabled {
		if len(strings.Fields(c.BudgetAlertSchedule)) != 5 {
			return fmt.Errorf("BUDGET_ALERT_SCHEDULE must have 5 fields, got %q", c.BudgetAlertSchedule)
		}
		if c.BudgetAlertTimeout <= 0 {
			return fmt.Errorf("BUDGET_ALERT_TIMEOUT must be positive")
		}
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

// AMQPEnabled reports whether alerts should be published to RabbitMQ.
func (c *Config) AMQPEnabled() bool {
	return c.AMQPURL != ""
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getBoolEnv(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}

func splitList(value string) []string {
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
