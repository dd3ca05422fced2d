package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"hotelstay/internal/domain/shared/money"
	"hotelstay/internal/domain/stay"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                string
	LogLevel           string
	HTTPAddr           string
	StorageMode        string
	MongoURI           string
	MongoDB            string
	KafkaBrokers       []string
	KafkaTopicPrefix   string
	IdempotencyTTL     time.Duration
	OutboxPollInterval time.Duration
	RetryBackoff       []time.Duration
	HotelsFixtures     string
	Timezone           *time.Location
	Pricing            stay.Config
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		StorageMode:      strings.ToLower(getEnv("STORAGE_MODE", StorageMemory)),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "hotelstay"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		HotelsFixtures:   os.Getenv("HOTELS_FIXTURES"),
	}
	brokers := getEnv("KAFKA_BROKERS", "")
	if brokers != "" {
		for _, b := range strings.Split(brokers, ",") {
			if b = strings.TrimSpace(b); b != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, b)
			}
		}
	}
	idempotencyTTL, err := parseDurationEnv("IDEMP_TTL", 24*time.Hour)
	if err != nil {
		return Config{}, err
	}
	cfg.IdempotencyTTL = idempotencyTTL

	poll, err := parseDurationEnv("OUTBOX_POLL_INTERVAL", 500*time.Millisecond)
	if err != nil {
		return Config{}, err
	}
	cfg.OutboxPollInterval = poll

	retryStr := getEnv("RETRY_BACKOFF", "1s,5s,30s")
	for _, raw := range strings.Split(retryStr, ",") {
		val := strings.TrimSpace(raw)
		if val == "" {
			continue
		}
		d, err := time.ParseDuration(val)
		if err != nil {
			return Config{}, fmt.Errorf("invalid RETRY_BACKOFF component %q: %w", raw, err)
		}
		cfg.RetryBackoff = append(cfg.RetryBackoff, d)
	}

	loc, err := time.LoadLocation(getEnv("TIMEZONE", "UTC"))
	if err != nil {
		return Config{}, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Timezone = loc

	pricing, err := loadPricing()
	if err != nil {
		return Config{}, err
	}
	cfg.Pricing = pricing

	switch cfg.StorageMode {
	case StorageMemory:
	case StorageMongo:
		if cfg.MongoURI == "" {
			return Config{}, fmt.Errorf("MONGO_URI is required when STORAGE_MODE=mongo")
		}
	default:
		return Config{}, fmt.Errorf("invalid STORAGE_MODE %q", cfg.StorageMode)
	}
	return cfg, nil
}

func loadPricing() (stay.Config, error) {
	var out stay.Config
	fee, err := parseDecimalEnv("SERVICE_FEE_FLAT", decimal.Zero)
	if err != nil {
		return out, err
	}
	if fee.IsNegative() {
		return out, fmt.Errorf("SERVICE_FEE_FLAT must not be negative")
	}
	tax, err := parseDecimalEnv("TAX_RATE_PERCENT", decimal.Zero)
	if err != nil {
		return out, err
	}
	if tax.IsNegative() || tax.GreaterThan(decimal.NewFromInt(100)) {
		return out, fmt.Errorf("TAX_RATE_PERCENT must be within 0..100")
	}
	mode, err := money.ParseRoundingMode(os.Getenv("ROUNDING_MODE"))
	if err != nil {
		return out, fmt.Errorf("invalid ROUNDING_MODE: %w", err)
	}
	policy, err := stay.ParseGuestPolicy(os.Getenv("GUEST_POLICY"))
	if err != nil {
		return out, fmt.Errorf("invalid GUEST_POLICY: %w", err)
	}
	places, err := parseIntEnv("MINOR_UNIT_PLACES", 0)
	if err != nil {
		return out, err
	}
	if places < 0 {
		return out, fmt.Errorf("MINOR_UNIT_PLACES must not be negative")
	}
	return stay.Config{
		ServiceFeeFlat:  fee,
		TaxRatePercent:  tax,
		Rounding:        mode,
		GuestPolicy:     policy,
		Currency:        strings.ToUpper(getEnv("CURRENCY", stay.DefaultCurrency)),
		MinorUnitPlaces: int32(places),
	}, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDurationEnv(key string, def time.Duration) (time.Duration, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s duration: %w", key, err)
	}
	return d, nil
}

func parseDecimalEnv(key string, def decimal.Decimal) (decimal.Decimal, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, fmt.Errorf("invalid %s decimal: %w", key, err)
	}
	return d, nil
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return n, nil
}
