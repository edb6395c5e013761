package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/joao-fontenele/modestwear-storefront/internal/cart"
)

// Catalog sources.
const (
	CatalogStatic   = "static"
	CatalogPostgres = "postgres"
	CatalogBackend  = "backend"
)

type Config struct {
	Port            string
	PostgresURL     string
	KafkaBrokers    []string
	OrderTopic      string
	ConsumerGroup   string
	BackendAPIURL   string
	GoogleClientID  string
	CatalogSource   string
	Pricing         cart.PricingConfig
	OTLPEndpoint    string
	EmailServiceURL string
	StorefrontURL   string
	MigrationsPath  string
	RequestTimeout  int
}

func Load() *Config {
	pricing := cart.DefaultPricingConfig()

	return &Config{
		Port:            getEnv("PORT", "8080"),
		PostgresURL:     getEnv("POSTGRES_URL", ""),
		KafkaBrokers:    getEnvAsList("KAFKA_BROKERS"),
		OrderTopic:      getEnv("ORDER_TOPIC", "order.placed"),
		ConsumerGroup:   getEnv("CONSUMER_GROUP", "order-confirmation-worker"),
		BackendAPIURL:   strings.TrimRight(getEnv("BACKEND_API_URL", ""), "/"),
		GoogleClientID:  getEnv("GOOGLE_CLIENT_ID", ""),
		CatalogSource:   getEnv("CATALOG_SOURCE", CatalogStatic),
		OTLPEndpoint:    getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		EmailServiceURL: getEnv("EMAIL_SERVICE_URL", ""),
		StorefrontURL:   strings.TrimRight(getEnv("STOREFRONT_URL", ""), "/"),
		MigrationsPath:  getEnv("MIGRATIONS_PATH", "file://migrations"),
		RequestTimeout:  getEnvAsInt("REQUEST_TIMEOUT_SECONDS", 10),
		Pricing: cart.PricingConfig{
			FreeShippingThreshold: getEnvAsDecimal("FREE_SHIPPING_THRESHOLD", pricing.FreeShippingThreshold),
			FlatShippingFee:       getEnvAsDecimal("SHIPPING_FEE", pricing.FlatShippingFee),
			TaxRate:               getEnvAsDecimal("TAX_RATE", pricing.TaxRate),
		},
	}
}

// Validate checks the settings the storefront cannot start without.
func (c *Config) Validate() error {
	var errs []error

	switch c.CatalogSource {
	case CatalogStatic:
	case CatalogPostgres:
		if c.PostgresURL == "" {
			errs = append(errs, errors.New("POSTGRES_URL is required when CATALOG_SOURCE is postgres"))
		}
	case CatalogBackend:
		if c.BackendAPIURL == "" {
			errs = append(errs, errors.New("BACKEND_API_URL is required when CATALOG_SOURCE is backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown CATALOG_SOURCE %q", c.CatalogSource))
	}

	if c.Pricing.TaxRate.IsNegative() || c.Pricing.FlatShippingFee.IsNegative() || c.Pricing.FreeShippingThreshold.IsNegative() {
		errs = append(errs, errors.New("pricing values must not be negative"))
	}

	return errors.Join(errs...)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDecimal(key string, defaultValue decimal.Decimal) decimal.Decimal {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return defaultValue
	}
	value, err := decimal.NewFromString(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsList(key string) []string {
	valueStr := getEnv(key, "")
	if valueStr == "" {
		return nil
	}

	var values []string
	for _, v := range strings.Split(valueStr, ",") {
		if v = strings.TrimSpace(v); v != "" {
			values = append(values, v)
		}
	}
	return values
}
