package config

import (
	"strings"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/pkg/logger"
)

type Config struct {
	App       AppConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	Log       LogConfig
	Printer   PrinterConfig
	Store     StoreConfig
	Billing   BillingConfig
}

type AppConfig struct {
	Name  string
	Env   string
	Port  string
	Debug bool
}

type DatabaseConfig struct {
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	Timezone string
}

type JWTConfig struct {
	Secret      string
	Issuer      string
	ExpiryHours time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	Requests int
	Duration int // seconds
}

type LogConfig struct {
	Level  string
	Format string
	Output string
}

type PrinterConfig struct {
	Type    string // usb, network, none
	USBPath string
	Address string
	Width   int
}

// StoreConfig is the business header printed on receipts
type StoreConfig struct {
	Name    string
	Address string
	Phone   string
	GSTIN   string
}

type BillingConfig struct {
	DefaultTaxMode  enum.TaxMode
	GSTSlabs        []decimal.Decimal
	EnforceGSTSlabs bool
}

// Load reads .env and the environment into a Config
func Load() *Config {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Warn().Err(err).Msg(".env file not found, using environment variables")
	}

	setDefaults(v)
	return build(v)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_NAME", "billdesk-api")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_DEBUG", true)
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "billdesk")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_TIMEZONE", "Asia/Kolkata")
	v.SetDefault("JWT_SECRET", "change-this-secret-in-production")
	v.SetDefault("JWT_ISSUER", "billdesk-api")
	v.SetDefault("JWT_EXPIRY_HOURS", 24)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "")
	v.SetDefault("RATE_LIMIT_REQUESTS", 100)
	v.SetDefault("RATE_LIMIT_DURATION", 60)
	logDefaults := logger.DefaultConfig()
	v.SetDefault("LOG_LEVEL", logDefaults.Level)
	v.SetDefault("LOG_FORMAT", logDefaults.Format)
	v.SetDefault("LOG_OUTPUT", logDefaults.Output)
	v.SetDefault("PRINTER_TYPE", "none")
	v.SetDefault("PRINTER_WIDTH", 32)
	v.SetDefault("STORE_NAME", "BillDesk Store")
	v.SetDefault("BILLING_DEFAULT_TAX_MODE", "exclusive")
	v.SetDefault("BILLING_GST_SLABS", "0,5,12,18")
	v.SetDefault("BILLING_ENFORCE_GST_SLABS", false)
}

func build(v *viper.Viper) *Config {
	return &Config{
		App: AppConfig{
			Name:  v.GetString("APP_NAME"),
			Env:   v.GetString("APP_ENV"),
			Port:  v.GetString("APP_PORT"),
			Debug: v.GetBool("APP_DEBUG"),
		},
		Database: DatabaseConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			SSLMode:  v.GetString("DB_SSL_MODE"),
			Timezone: v.GetString("DB_TIMEZONE"),
		},
		JWT: JWTConfig{
			Secret:      v.GetString("JWT_SECRET"),
			Issuer:      v.GetString("JWT_ISSUER"),
			ExpiryHours: time.Duration(v.GetInt("JWT_EXPIRY_HOURS")) * time.Hour,
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			Requests: v.GetInt("RATE_LIMIT_REQUESTS"),
			Duration: v.GetInt("RATE_LIMIT_DURATION"),
		},
		Log: LogConfig{
			Level:  v.GetString("LOG_LEVEL"),
			Format: v.GetString("LOG_FORMAT"),
			Output: v.GetString("LOG_OUTPUT"),
		},
		Printer: PrinterConfig{
			Type:    v.GetString("PRINTER_TYPE"),
			USBPath: v.GetString("PRINTER_USB_PATH"),
			Address: v.GetString("PRINTER_ADDRESS"),
			Width:   v.GetInt("PRINTER_WIDTH"),
		},
		Store: StoreConfig{
			Name:    v.GetString("STORE_NAME"),
			Address: v.GetString("STORE_ADDRESS"),
			Phone:   v.GetString("STORE_PHONE"),
			GSTIN:   v.GetString("STORE_GSTIN"),
		},
		Billing: BillingConfig{
			DefaultTaxMode:  parseTaxMode(v.GetString("BILLING_DEFAULT_TAX_MODE")),
			GSTSlabs:        parseSlabs(v.GetString("BILLING_GST_SLABS")),
			EnforceGSTSlabs: v.GetBool("BILLING_ENFORCE_GST_SLABS"),
		},
	}
}

func (c *DatabaseConfig) DSN() string {
	return "host=" + c.Host +
		" user=" + c.User +
		" password=" + c.Password +
		" dbname=" + c.Name +
		" port=" + c.Port +
		" sslmode=" + c.SSLMode +
		" TimeZone=" + c.Timezone
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseTaxMode(s string) enum.TaxMode {
	mode, err := enum.ParseTaxMode(s)
	if err != nil {
		log.Warn().Str("value", s).Msg("invalid BILLING_DEFAULT_TAX_MODE, using exclusive")
		return enum.TaxModeExclusive
	}
	return mode
}

func parseSlabs(s string) []decimal.Decimal {
	var slabs []decimal.Decimal
	for _, part := range splitList(s) {
		d, err := decimal.NewFromString(part)
		if err != nil || d.IsNegative() || d.GreaterThan(decimal.NewFromInt(100)) {
			log.Warn().Str("value", part).Msg("ignoring invalid GST slab")
			continue
		}
		slabs = append(slabs, d)
	}
	return slabs
}
