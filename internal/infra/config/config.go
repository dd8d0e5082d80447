package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env              string
	HTTPAddr         string
	Currency         string
	CatalogSource    string
	CatalogFixtures  string
	CatalogSeed      bool
	VoucherFixtures  string
	VoucherSource    string
	VoucherAPIURL    string
	VoucherTimeout   time.Duration
	BookingSink      string
	IdempotencyStore string
	IdempotencyTTL   time.Duration
	MongoURI         string
	MongoDB          string
	KafkaBrokers     []string
	KafkaTopicPrefix string
	RedisAddr        string
	RedisDB          int
	RateLimitRPS     float64
	RateLimitBurst   int
	CORSOrigins      []string
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	cfg := Config{
		Env:              getEnv("APP_ENV", "dev"),
		HTTPAddr:         getEnv("HTTP_ADDR", ":8080"),
		Currency:         strings.ToUpper(getEnv("CURRENCY", "USD")),
		CatalogSource:    strings.ToLower(getEnv("CATALOG_SOURCE", "memory")),
		CatalogFixtures:  getEnv("CATALOG_FIXTURES", "data/places.json"),
		VoucherFixtures:  getEnv("VOUCHER_FIXTURES", "data/vouchers.json"),
		VoucherSource:    strings.ToLower(getEnv("VOUCHER_SOURCE", "memory")),
		VoucherAPIURL:    os.Getenv("VOUCHER_API_URL"),
		BookingSink:      strings.ToLower(getEnv("BOOKING_SINK", "memory")),
		IdempotencyStore: strings.ToLower(getEnv("IDEMPOTENCY_STORE", "memory")),
		MongoURI:         os.Getenv("MONGO_URI"),
		MongoDB:          getEnv("MONGO_DB", "homestay"),
		KafkaTopicPrefix: getEnv("KAFKA_TOPIC_PREFIX", ""),
		RedisAddr:        getEnv("REDIS_ADDR", "localhost:6379"),
	}
	cfg.KafkaBrokers = splitList(os.Getenv("KAFKA_BROKERS"))
	cfg.CORSOrigins = splitList(getEnv("CORS_ORIGINS", "*"))

	var err error
	if cfg.VoucherTimeout, err = parseDurationEnv("VOUCHER_TIMEOUT", 5*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.IdempotencyTTL, err = parseDurationEnv("IDEMP_TTL", 168*time.Hour); err != nil {
		return Config{}, err
	}
	if cfg.RedisDB, err = parseIntEnv("REDIS_DB", 0); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitRPS, err = parseFloatEnv("RATE_LIMIT_RPS", 20); err != nil {
		return Config{}, err
	}
	if cfg.RateLimitBurst, err = parseIntEnv("RATE_LIMIT_BURST", 40); err != nil {
		return Config{}, err
	}
	if cfg.CatalogSeed, err = parseBoolEnv("CATALOG_SEED", false); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks backend selections and the infrastructure they need.
func (c Config) Validate() error {
	if len(c.Currency) != 3 {
		return fmt.Errorf("invalid CURRENCY %q", c.Currency)
	}
	if err := oneOf("CATALOG_SOURCE", c.CatalogSource, "memory", "mongo"); err != nil {
		return err
	}
	if err := oneOf("VOUCHER_SOURCE", c.VoucherSource, "memory", "http", "mongo"); err != nil {
		return err
	}
	if err := oneOf("BOOKING_SINK", c.BookingSink, "memory", "kafka"); err != nil {
		return err
	}
	if err := oneOf("IDEMPOTENCY_STORE", c.IdempotencyStore, "memory", "mongo", "redis"); err != nil {
		return err
	}
	if c.UsesMongo() && c.MongoURI == "" {
		return fmt.Errorf("MONGO_URI is required")
	}
	if c.VoucherSource == "http" && c.VoucherAPIURL == "" {
		return fmt.Errorf("VOUCHER_API_URL is required")
	}
	if c.BookingSink == "kafka" && len(c.KafkaBrokers) == 0 {
		return fmt.Errorf("KAFKA_BROKERS is required")
	}
	if c.IdempotencyStore == "redis" && c.RedisAddr == "" {
		return fmt.Errorf("REDIS_ADDR is required")
	}
	if c.RateLimitRPS < 0 || c.RateLimitBurst < 0 {
		return fmt.Errorf("rate limit values must be non-negative")
	}
	return nil
}

// UsesMongo reports whether any backend selection needs a Mongo connection.
func (c Config) UsesMongo() bool {
	return c.CatalogSource == "mongo" || c.VoucherSource == "mongo" || c.IdempotencyStore == "mongo"
}

func oneOf(key, value string, allowed ...string) error {
	for _, a := range allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("invalid %s %q (want one of %s)", key, value, strings.Join(allowed, ", "))
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if v := strings.TrimSpace(part); v != "" {
			out = append(out, v)
		}
	}
	return out
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

func parseBoolEnv(key string, def bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return def, nil
	}
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "t", "true", "yes", "y", "on":
		return true, nil
	case "0", "f", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid %s boolean: %q", key, raw)
	}
}

func parseIntEnv(key string, def int) (int, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s integer: %w", key, err)
	}
	return v, nil
}

func parseFloatEnv(key string, def float64) (float64, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s number: %w", key, err)
	}
	return v, nil
}
