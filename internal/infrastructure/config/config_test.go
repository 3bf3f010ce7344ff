package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "salon-backend", cfg.App.Name)
	assert.Equal(t, "development", cfg.App.Env)
	assert.Equal(t, "8080", cfg.App.Port)
	assert.Equal(t, "localhost", cfg.Database.Host)
	assert.Equal(t, 5432, cfg.Database.Port)
	assert.Equal(t, "info", cfg.Log.Level)

	// Business constants default to the values the sheets were built on.
	assert.Equal(t, float64(500000), cfg.Business.InsuredMinimum)
	assert.Equal(t, 30, cfg.Business.GiftCardValidityDays)
	assert.Equal(t, float64(21), cfg.Business.InvoiceTaxRate)
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("SALON_DATABASE_HOST", "db.internal")
	t.Setenv("SALON_BUSINESS_INSURED_MINIMUM", "750000")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, float64(750000), cfg.Business.InsuredMinimum)
}

func TestValidate_PoolSettings(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Database.MaxIdleConns = 50
	cfg.Database.MaxOpenConns = 10
	assert.Error(t, cfg.validate())
}

func TestValidate_Production(t *testing.T) {
	base := func() *Config {
		cfg := &Config{}
		applyDefaults(cfg)
		cfg.App.Env = "production"
		cfg.JWT.Secret = "0123456789abcdef0123456789abcdef"
		cfg.Database.Password = "secret"
		cfg.Database.SSLMode = "require"
		return cfg
	}

	assert.NoError(t, base().validate())

	cfg := base()
	cfg.JWT.Secret = "short"
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.Database.SSLMode = "disable"
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.HTTP.CORSAllowOrigins = []string{"*"}
	assert.Error(t, cfg.validate())

	cfg = base()
	cfg.Swagger.Enabled = true
	assert.Error(t, cfg.validate())
}

func TestValidate_BusinessBounds(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)
	cfg.Business.InvoiceTaxRate = 150
	assert.Error(t, cfg.validate())
}

func TestDatabaseConfig_DSN(t *testing.T) {
	d := DatabaseConfig{
		Host:     "localhost",
		Port:     5432,
		User:     "postgres",
		Password: "p@ss/word",
		DBName:   "salon",
		SSLMode:  "disable",
	}
	dsn := d.DSN()
	assert.Contains(t, dsn, "postgres://")
	assert.Contains(t, dsn, "sslmode=disable")
	assert.NotContains(t, dsn, "p@ss/word", "password must be escaped")
}
