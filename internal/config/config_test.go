package config

import (
	"slices"
	"testing"

	"github.com/shopspring/decimal"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "KAFKA_BROKERS", "CATALOG_SOURCE", "ORDER_TOPIC", "FREE_SHIPPING_THRESHOLD", "SHIPPING_FEE", "TAX_RATE"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %s", cfg.Port)
	}
	if cfg.CatalogSource != CatalogStatic {
		t.Errorf("expected static catalog, got %s", cfg.CatalogSource)
	}
	if cfg.OrderTopic != "order.placed" {
		t.Errorf("expected order.placed topic, got %s", cfg.OrderTopic)
	}
	if cfg.KafkaBrokers != nil {
		t.Errorf("expected no brokers, got %v", cfg.KafkaBrokers)
	}
	if !cfg.Pricing.FreeShippingThreshold.Equal(decimal.NewFromInt(500)) {
		t.Errorf("expected threshold 500, got %s", cfg.Pricing.FreeShippingThreshold)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("expected defaults to validate, got %v", err)
	}
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("KAFKA_BROKERS", "kafka-1:9092, kafka-2:9092,")
	t.Setenv("FREE_SHIPPING_THRESHOLD", "100")
	t.Setenv("TAX_RATE", "not-a-number")
	t.Setenv("BACKEND_API_URL", "https://api.example.com/")

	cfg := Load()

	if cfg.Port != "9000" {
		t.Errorf("expected port 9000, got %s", cfg.Port)
	}
	if !slices.Equal(cfg.KafkaBrokers, []string{"kafka-1:9092", "kafka-2:9092"}) {
		t.Errorf("unexpected brokers: %v", cfg.KafkaBrokers)
	}
	if !cfg.Pricing.FreeShippingThreshold.Equal(decimal.NewFromInt(100)) {
		t.Errorf("expected threshold 100, got %s", cfg.Pricing.FreeShippingThreshold)
	}
	if !cfg.Pricing.TaxRate.Equal(decimal.RequireFromString("0.08")) {
		t.Errorf("expected invalid tax rate to fall back to 0.08, got %s", cfg.Pricing.TaxRate)
	}
	if cfg.BackendAPIURL != "https://api.example.com" {
		t.Errorf("expected trailing slash trimmed, got %s", cfg.BackendAPIURL)
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{name: "static", cfg: Config{CatalogSource: CatalogStatic}},
		{name: "postgres without url", cfg: Config{CatalogSource: CatalogPostgres}, wantErr: true},
		{name: "postgres with url", cfg: Config{CatalogSource: CatalogPostgres, PostgresURL: "postgres://localhost"}},
		{name: "backend without url", cfg: Config{CatalogSource: CatalogBackend}, wantErr: true},
		{name: "unknown source", cfg: Config{CatalogSource: "csv"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
