package config

import (
	"strings"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	for _, key := range []string{"APP_ENV", "HTTP_ADDR", "CURRENCY", "CATALOG_SOURCE", "VOUCHER_SOURCE", "BOOKING_SINK", "IDEMPOTENCY_STORE", "MONGO_URI", "KAFKA_BROKERS", "IDEMP_TTL", "VOUCHER_TIMEOUT", "RATE_LIMIT_RPS", "RATE_LIMIT_BURST", "REDIS_DB"} {
		t.Setenv(key, "")
	}
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Env != "dev" || cfg.HTTPAddr != ":8080" || cfg.Currency != "USD" {
		t.Fatalf("unexpected defaults %+v", cfg)
	}
	if cfg.CatalogSource != "memory" || cfg.VoucherSource != "memory" || cfg.BookingSink != "memory" {
		t.Fatalf("unexpected backends %+v", cfg)
	}
	if cfg.IdempotencyTTL != 168*time.Hour || cfg.VoucherTimeout != 5*time.Second {
		t.Fatalf("unexpected durations %+v", cfg)
	}
	if cfg.UsesMongo() {
		t.Fatal("memory defaults must not need mongo")
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		want string
	}{
		{name: "bad duration", env: map[string]string{"VOUCHER_TIMEOUT": "soon"}, want: "VOUCHER_TIMEOUT"},
		{name: "bad catalog source", env: map[string]string{"CATALOG_SOURCE": "sql"}, want: "CATALOG_SOURCE"},
		{name: "mongo without uri", env: map[string]string{"CATALOG_SOURCE": "mongo", "MONGO_URI": ""}, want: "MONGO_URI"},
		{name: "http vouchers without url", env: map[string]string{"VOUCHER_SOURCE": "http", "VOUCHER_API_URL": ""}, want: "VOUCHER_API_URL"},
		{name: "kafka without brokers", env: map[string]string{"BOOKING_SINK": "kafka", "KAFKA_BROKERS": ""}, want: "KAFKA_BROKERS"},
		{name: "bad currency", env: map[string]string{"CURRENCY": "EURO"}, want: "CURRENCY"},
		{name: "bad rate", env: map[string]string{"RATE_LIMIT_RPS": "fast"}, want: "RATE_LIMIT_RPS"},
		{name: "bad seed flag", env: map[string]string{"CATALOG_SEED": "maybe"}, want: "CATALOG_SEED"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := Load()
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %s, got %v", tt.want, err)
			}
		})
	}
}

func TestLoadKafkaBrokersList(t *testing.T) {
	t.Setenv("BOOKING_SINK", "kafka")
	t.Setenv("KAFKA_BROKERS", "a:9092, b:9092,,")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(cfg.KafkaBrokers) != 2 || cfg.KafkaBrokers[1] != "b:9092" {
		t.Fatalf("unexpected brokers %v", cfg.KafkaBrokers)
	}
}
