package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

// Config holds all configuration for the application
type Config struct {
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	JWTSecret  string
	Port       string
	Env        string

	Store StoreConfig
}

// StoreConfig holds storefront settings. These are passed into
// calculations as values so the pricing code stays deterministic;
// nothing below the handlers reads them ambiently.
type StoreConfig struct {
	Currency       string
	TaxRatePercent decimal.Decimal
	ShippingCharge decimal.Decimal
}

// App is the loaded configuration, set once at startup.
var App *Config

// LoadConfig loads configuration from environment variables
func LoadConfig() (*Config, error) {
	err := godotenv.Load()
	if err != nil {
		return nil, fmt.Errorf("error loading .env file: %v", err)
	}

	config := &Config{
		DBHost:     os.Getenv("DB_HOST"),
		DBPort:     os.Getenv("DB_PORT"),
		DBUser:     os.Getenv("DB_USER"),
		DBPassword: os.Getenv("DB_PASSWORD"),
		DBName:     os.Getenv("DB_NAME"),
		JWTSecret:  os.Getenv("JWT_SECRET"),
		Port:       os.Getenv("PORT"),
		Env:        os.Getenv("ENV"),
		Store: StoreConfig{
			Currency:       envOr("STORE_CURRENCY", "INR"),
			TaxRatePercent: envDecimal("STORE_TAX_RATE", "18"),
			ShippingCharge: envDecimal("STORE_SHIPPING_CHARGE", "49"),
		},
	}

	App = config
	return config, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envDecimal(key, fallback string) decimal.Decimal {
	v := os.Getenv(key)
	if v == "" {
		v = fallback
	}
	d, err := decimal.NewFromString(v)
	if err != nil {
		d, _ = decimal.NewFromString(fallback)
	}
	return d
}
