package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"hotelstay/internal/domain/shared/money"
	"hotelstay/internal/domain/stay"
)

var keys = []string{
	"APP_ENV", "LOG_LEVEL", "HTTP_ADDR", "STORAGE_MODE", "MONGO_URI", "MONGO_DB",
	"KAFKA_BROKERS", "KAFKA_TOPIC_PREFIX", "IDEMP_TTL", "OUTBOX_POLL_INTERVAL",
	"RETRY_BACKOFF", "HOTELS_FIXTURES", "TIMEZONE", "SERVICE_FEE_FLAT",
	"TAX_RATE_PERCENT", "ROUNDING_MODE", "GUEST_POLICY", "CURRENCY", "MINOR_UNIT_PLACES",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "dev", cfg.Env)
	assert.Equal(t, ":8080", cfg.HTTPAddr)
	assert.Equal(t, StorageMemory, cfg.StorageMode)
	assert.Equal(t, 500*time.Millisecond, cfg.OutboxPollInterval)
	assert.Equal(t, []time.Duration{time.Second, 5 * time.Second, 30 * time.Second}, cfg.RetryBackoff)
	assert.Equal(t, time.UTC, cfg.Timezone)
	assert.True(t, cfg.Pricing.ServiceFeeFlat.IsZero())
	assert.True(t, cfg.Pricing.TaxRatePercent.IsZero())
	assert.Equal(t, money.RoundHalfUp, cfg.Pricing.Rounding)
	assert.Equal(t, stay.FlatPolicy{}, cfg.Pricing.GuestPolicy)
	assert.Equal(t, "INR", cfg.Pricing.Currency)
}

func TestLoadPricingOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("SERVICE_FEE_FLAT", "200")
	t.Setenv("TAX_RATE_PERCENT", "12.5")
	t.Setenv("ROUNDING_MODE", "half_even")
	t.Setenv("GUEST_POLICY", "paired")
	t.Setenv("CURRENCY", "usd")
	t.Setenv("MINOR_UNIT_PLACES", "2")
	t.Setenv("KAFKA_BROKERS", "k1:9092, k2:9092,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.Pricing.ServiceFeeFlat.Equal(decimal.NewFromInt(200)))
	assert.True(t, cfg.Pricing.TaxRatePercent.Equal(decimal.RequireFromString("12.5")))
	assert.Equal(t, money.RoundHalfEven, cfg.Pricing.Rounding)
	assert.Equal(t, "paired", cfg.Pricing.GuestPolicy.Name())
	assert.Equal(t, "USD", cfg.Pricing.Currency)
	assert.EqualValues(t, 2, cfg.Pricing.MinorUnitPlaces)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := map[string]string{
		"SERVICE_FEE_FLAT":     "-1",
		"TAX_RATE_PERCENT":     "abc",
		"ROUNDING_MODE":        "sideways",
		"GUEST_POLICY":         "vip",
		"MINOR_UNIT_PLACES":    "two",
		"IDEMP_TTL":            "soon",
		"RETRY_BACKOFF":        "1s,later",
		"TIMEZONE":             "Mars/Olympus",
		"STORAGE_MODE":         "redis",
		"OUTBOX_POLL_INTERVAL": "fast",
	}
	for key, val := range cases {
		t.Run(key, func(t *testing.T) {
			clearEnv(t)
			t.Setenv(key, val)
			_, err := Load()
			assert.Error(t, err)
		})
	}
}

func TestLoadMongoRequiresURI(t *testing.T) {
	clearEnv(t)
	t.Setenv("STORAGE_MODE", "mongo")
	_, err := Load()
	require.Error(t, err)

	t.Setenv("MONGO_URI", "mongodb://localhost:27017")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "hotelstay", cfg.MongoDB)
}
