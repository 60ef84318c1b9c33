package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Port:               "3000",
		DBHost:             "localhost",
		DBName:             "comunidad",
		DBPassword:         "secure-password",
		DBSSLMode:          "require",
		TracingExporter:    "stdout",
		TracingSampleRatio: 1,
	}
}

func TestConfig_ValidateSSLMode(t *testing.T) {
	tests := []struct {
		name        string
		env         string
		sslMode     string
		expectError bool
	}{
		{"Production with empty SSL mode", "production", "", true},
		{"Production with disable SSL mode", "production", "disable", true},
		{"Production with require SSL mode", "production", "require", false},
		{"Prod with disable SSL mode", "prod", "disable", true},
		{"Prod with verify-full SSL mode", "prod", "verify-full", false},
		{"Development with disable SSL mode", "development", "disable", false},
		{"Test with empty SSL mode", "test", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			c.Env = tt.env
			c.DBSSLMode = tt.sslMode

			err := c.Validate()
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"Missing port", func(c *Config) { c.Port = "" }},
		{"Missing database name", func(c *Config) { c.DBName = "" }},
		{"Sample ratio above one", func(c *Config) { c.TracingSampleRatio = 1.5 }},
		{"Unknown exporter", func(c *Config) { c.TracingExporter = "jaeger" }},
		{"Default password in production", func(c *Config) { c.Env = "production"; c.DBPassword = "password" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(c)
			assert.Error(t, c.Validate())
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "test")
	t.Setenv("PORT", "4100")
	t.Setenv("DB_SSLMODE", "  DISABLE  ")

	c, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "4100", c.Port)
	assert.Equal(t, "disable", c.DBSSLMode)
	assert.Equal(t, "comunidad", c.DBName)
	assert.Equal(t, 25, c.DBMaxOpenConns)
	assert.Equal(t, "*", c.AllowedOrigins)
	assert.False(t, c.IsProduction())
	assert.False(t, c.SeedDemo)
}
