package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/shopspring/decimal"
)

// Fallbacks used when the environment leaves a secret unset. Fine for local
// development only.
const (
	DefaultJWTSecret     = "your-super-secret-key-change-in-production"
	DefaultAdminPassword = "admin123"
)

type Config struct {
	Port        string
	DatabaseURL string
	JWTSecret   string
	JWTTTLHours int

	ConversionRate   decimal.Decimal
	DomesticCategory string
	// Categories are created at startup when missing.
	Categories []string

	KafkaBrokers []string
	KafkaTopic   string

	AdminEmail    string
	AdminPassword string
}

// Load reads configuration from the environment. Call godotenv.Load first
// when a .env file should be honoured.
func Load() (Config, error) {
	rate, err := decimal.NewFromString(getenv("CONVERSION_RATE", "40"))
	if err != nil {
		return Config{}, errors.Wrap(err, "CONVERSION_RATE")
	}
	if !rate.IsPositive() {
		return Config{}, errors.Newf("CONVERSION_RATE must be positive, got %s", rate)
	}

	ttl, err := strconv.Atoi(getenv("JWT_TTL_HOURS", "24"))
	if err != nil || ttl <= 0 {
		return Config{}, errors.New("JWT_TTL_HOURS must be a positive integer")
	}

	domestic := getenv("DOMESTIC_CATEGORY", "Lazer Hastanesi")
	categories := splitCSV(os.Getenv("PRODUCT_CATEGORIES"))
	if len(categories) == 0 {
		categories = []string{domestic}
	}

	return Config{
		Port:             getenv("PORT", "3000"),
		DatabaseURL:      databaseURL(),
		JWTSecret:        getenv("JWT_SECRET", DefaultJWTSecret),
		JWTTTLHours:      ttl,
		ConversionRate:   rate,
		DomesticCategory: domestic,
		Categories:       categories,
		KafkaBrokers:     splitCSV(os.Getenv("KAFKA_BROKERS")),
		KafkaTopic:       getenv("KAFKA_TOPIC", "crm.events"),
		AdminEmail:       getenv("ADMIN_EMAIL", "admin@example.com"),
		AdminPassword:    getenv("ADMIN_PASSWORD", DefaultAdminPassword),
	}, nil
}

// InsecureDefaults names the secret variables still set to their built-in
// fallback values.
func (c Config) InsecureDefaults() []string {
	var names []string
	if c.JWTSecret == DefaultJWTSecret {
		names = append(names, "JWT_SECRET")
	}
	if c.AdminPassword == DefaultAdminPassword {
		names = append(names, "ADMIN_PASSWORD")
	}
	return names
}

func databaseURL() string {
	if dsn := os.Getenv("DATABASE_URL"); dsn != "" {
		return dsn
	}
	return fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=%s",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		getenv("DB_PORT", "5432"),
		getenv("DB_TIMEZONE", "Europe/Istanbul"),
	)
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func splitCSV(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			out = append(out, t)
		}
	}
	return out
}
