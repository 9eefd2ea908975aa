package config

import (
	"os"
	"strings"

	"github.com/joho/godotenv"
	"go.uber.org/fx"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPPort    string
	LogLevel    string

	Seller SellerIdentity

	// SACCode is the default service accounting code applied when a line
	// item carries none.
	SACCode string
	// LogoPath points at an optional logo image embedded into invoices.
	// A missing file never fails rendering.
	LogoPath string

	DBType     string
	DBHost     string
	DBPort     string
	DBName     string
	DBUser     string
	DBPassword string
	DBSSLMode  string
}

// SellerIdentity is the registered seller printed on every invoice.
type SellerIdentity struct {
	LegalName    string
	AddressLine1 string
	City         string
	State        string
	Pincode      string
	StateCode    string
	GSTIN        string
	PAN          string
	Email        string
	Phone        string
	// RoundingMode is passed to the engine; empty means invoice-level.
	RoundingMode string
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:     getenv("APP_SERVICE", "taxara"),
		AppVersion:  getenv("APP_VERSION", "0.1.0"),
		Environment: getenv("ENVIRONMENT", "development"),
		HTTPPort:    getenv("HTTP_PORT", "8080"),
		LogLevel:    getenv("LOG_LEVEL", "info"),

		Seller: SellerIdentity{
			LegalName:    getenv("SELLER_LEGAL_NAME", "Taxara Labs Private Limited"),
			AddressLine1: getenv("SELLER_ADDRESS_LINE1", ""),
			City:         getenv("SELLER_CITY", "Mumbai"),
			State:        getenv("SELLER_STATE", "Maharashtra"),
			Pincode:      getenv("SELLER_PINCODE", ""),
			StateCode:    getenv("SELLER_STATE_CODE", "27"),
			GSTIN:        strings.TrimSpace(getenv("SELLER_GSTIN", "")),
			PAN:          strings.TrimSpace(getenv("SELLER_PAN", "")),
			Email:        getenv("SELLER_EMAIL", ""),
			Phone:        getenv("SELLER_PHONE", ""),
			RoundingMode: getenv("SELLER_ROUNDING_MODE", "invoice_level"),
		},

		SACCode:  getenv("DEFAULT_SAC_CODE", "9983"),
		LogoPath: getenv("INVOICE_LOGO_PATH", "assets/logo.png"),

		DBType:     getenv("DATABASE_TYPE", "sqlite"),
		DBHost:     getenv("DATABASE_HOST", "localhost"),
		DBPort:     getenv("DATABASE_PORT", "5432"),
		DBName:     getenv("DATABASE_NAME", "taxara"),
		DBUser:     getenv("DATABASE_USER", "postgres"),
		DBPassword: getenv("DATABASE_PASSWORD", ""),
		DBSSLMode:  getenv("DATABASE_SSLMODE", "disable"),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// Module wires configuration loading.
var Module = fx.Module("config",
	fx.Provide(Load),
)
