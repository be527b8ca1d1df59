package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  []string
	HTTPAddr     string
	DBDSN        string
	LogLevel     string

	// JWTSecret verifies tokens issued by the identity provider.
	JWTSecret string

	ShopLocation  *time.Location
	PublicBaseURL string

	SendGridAPIKey    string
	EmailFrom         string
	EmailFromName     string
	CampaignTestEmail string
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}
	return fromEnv()
}

func fromEnv() (*Config, error) {
	cfg := &Config{}

	// Application environment (default: dev)
	cfg.IsProduction = getEnv("APP_ENV", "dev") == PROD_STRING

	cfg.ProdOrigins = splitList(getEnv("PROD_ORIGINS", ""))
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")
	cfg.LogLevel = getEnv("LOG_LEVEL", "info")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for verifying tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	tz := getEnv("SHOP_TIMEZONE", "Europe/London")
	loc, err := time.LoadLocation(tz)
	if err != nil {
		return nil, fmt.Errorf("invalid SHOP_TIMEZONE %q: %w", tz, err)
	}
	cfg.ShopLocation = loc

	cfg.PublicBaseURL = strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:5173"), "/")

	cfg.SendGridAPIKey = os.Getenv("SENDGRID_API_KEY")
	cfg.EmailFrom = getEnv("EMAIL_FROM", "bookings@swarv.co.uk")
	cfg.EmailFromName = getEnv("EMAIL_FROM_NAME", "Swarv Barbershop")
	cfg.CampaignTestEmail = os.Getenv("CAMPAIGN_TEST_EMAIL")

	return cfg, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// splitList parses a comma separated list, dropping blanks.
func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
