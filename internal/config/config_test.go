package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sangkips/billdesk-api/internal/domain/enum"
	"github.com/sangkips/billdesk-api/pkg/logger"
)

func TestLoad_Defaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "billdesk-api", cfg.App.Name)
	assert.Equal(t, 24*time.Hour, cfg.JWT.ExpiryHours)
	assert.Equal(t, enum.TaxModeExclusive, cfg.Billing.DefaultTaxMode)
	require.Len(t, cfg.Billing.GSTSlabs, 4)
	assert.Equal(t, "18", cfg.Billing.GSTSlabs[3].String())
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, 32, cfg.Printer.Width)

	logDefaults := logger.DefaultConfig()
	assert.Equal(t, logDefaults.Level, cfg.Log.Level)
	assert.Equal(t, logDefaults.Format, cfg.Log.Format)
	assert.Equal(t, logDefaults.Output, cfg.Log.Output)
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("BILLING_DEFAULT_TAX_MODE", "Inclusive")
	t.Setenv("BILLING_GST_SLABS", "0, 3, 28, nope, 140")
	t.Setenv("BILLING_ENFORCE_GST_SLABS", "true")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example")
	t.Setenv("STORE_GSTIN", "29ABCDE1234F1Z5")
	t.Setenv("LOG_OUTPUT", "stderr")

	cfg := Load()

	assert.Equal(t, "9090", cfg.App.Port)
	assert.Equal(t, enum.TaxModeInclusive, cfg.Billing.DefaultTaxMode)
	assert.True(t, cfg.Billing.EnforceGSTSlabs)
	require.Len(t, cfg.Billing.GSTSlabs, 3)
	assert.Equal(t, "28", cfg.Billing.GSTSlabs[2].String())
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "29ABCDE1234F1Z5", cfg.Store.GSTIN)
	assert.Equal(t, "stderr", cfg.Log.Output)
}

func TestLoad_InvalidTaxModeFallsBack(t *testing.T) {
	t.Setenv("BILLING_DEFAULT_TAX_MODE", "sideways")

	assert.Equal(t, enum.TaxModeExclusive, Load().Billing.DefaultTaxMode)
}

func TestDSN(t *testing.T) {
	c := DatabaseConfig{Host: "db", Port: "5432", Name: "bill", User: "u", Password: "p", SSLMode: "disable", Timezone: "UTC"}

	assert.Equal(t, "host=db user=u password=p dbname=bill port=5432 sslmode=disable TimeZone=UTC", c.DSN())
}
