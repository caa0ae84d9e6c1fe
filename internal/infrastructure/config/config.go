package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"quotedesk/internal/usecase"

	"github.com/shopspring/decimal"
)

// Config is the explicit configuration struct for the service. Everything
// comes from environment variables (godotenv loads .env in main); defaults
// that used to hide in form layers, like per-category unit prices, live here.
type Config struct {
	Server   ServerConfig
	Mail     MailConfig
	Renderer RendererConfig
	Defaults usecase.QuoteDefaults
}

type ServerConfig struct {
	Port int
}

type MailConfig struct {
	Host     string
	Port     int
	Username string
	Password string
	From     string
	Timeout  time.Duration
	Mock     bool
}

type RendererConfig struct {
	Timeout   time.Duration
	RemoteURL string
	NoSandbox bool
	Mock      bool
}

// Load reads the full configuration from the environment.
func Load() Config {
	return Config{
		Server: ServerConfig{
			Port: getenvInt("HTTP_PORT", 8080),
		},
		Mail: MailConfig{
			Host:     os.Getenv("SMTP_HOST"),
			Port:     getenvInt("SMTP_PORT", 587),
			Username: os.Getenv("SMTP_USERNAME"),
			Password: os.Getenv("SMTP_PASSWORD"),
			From:     getenvDefault("MAIL_FROM", "quotes@quotedesk.local"),
			Timeout:  getenvDuration("MAIL_TIMEOUT", 30*time.Second),
			Mock:     getenvBool("MAIL_DISPATCHER_MOCK"),
		},
		Renderer: RendererConfig{
			Timeout:   getenvDuration("RENDERER_TIMEOUT", 30*time.Second),
			RemoteURL: os.Getenv("CHROME_REMOTE_URL"),
			NoSandbox: getenvBool("CHROME_NO_SANDBOX"),
			Mock:      getenvBool("DOCUMENT_RENDERER_MOCK"),
		},
		Defaults: usecase.QuoteDefaults{
			UnitPrices: parseUnitPrices(os.Getenv("QUOTE_DEFAULT_UNIT_PRICES")),
		},
	}
}

// parseUnitPrices parses "standard=108,premium=250" into per-category
// default unit prices. Malformed entries are logged and skipped.
func parseUnitPrices(raw string) map[string]decimal.Decimal {
	prices := map[string]decimal.Decimal{}
	for _, pair := range strings.Split(raw, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		category, value, ok := strings.Cut(pair, "=")
		if !ok {
			log.Printf("[config] skipping malformed default unit price entry %q", pair)
			continue
		}
		price, err := decimal.NewFromString(strings.TrimSpace(value))
		if err != nil {
			log.Printf("[config] skipping unparsable default unit price %q err=%v", pair, err)
			continue
		}
		prices[strings.ToLower(strings.TrimSpace(category))] = price
	}
	return prices
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("[config] invalid integer for %s=%q, using default %d", key, v, def)
		return def
	}
	return n
}

func getenvDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("[config] invalid duration for %s=%q, using default %s", key, v, def)
		return def
	}
	return d
}

func getenvBool(key string) bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv(key))) {
	case "1", "true", "yes", "on", "mock":
		return true
	}
	return false
}
