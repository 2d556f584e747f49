// internal/config/config_test.go
package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("DB_SQLITE_PATH", "test.db")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 6, cfg.Pagination.DefaultLimit)
	assert.Equal(t, "ru", cfg.ShoppingList.Locale)
	assert.Equal(t, "shopping_cart.pdf", cfg.ShoppingList.Filename)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.True(t, cfg.RateLimit.Enabled)
	assert.Equal(t, "test.db", cfg.Database.DSN())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("ENVIRONMENT", "development")
	t.Setenv("DB_DRIVER", "sqlite")
	t.Setenv("PAGE_SIZE", "10")
	t.Setenv("RATE_LIMIT_ENABLED", "FALSE")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "5s")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 10, cfg.Pagination.DefaultLimit)
	assert.False(t, cfg.RateLimit.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.CORS.AllowedOrigins)
	assert.Equal(t, "5s", cfg.Server.ShutdownTimeout.String())
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Environment: "production",
			JWT:         JWTConfig{SecretKey: "real-secret"},
			Database:    DatabaseConfig{Driver: "postgres", Password: "pw"},
			Pagination:  PaginationConfig{DefaultLimit: 6, MaxLimit: 100},
		}
	}
	require.NoError(t, valid().Validate())

	cfg := valid()
	cfg.JWT.SecretKey = defaultJWTSecret
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Database.Password = ""
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Database.Driver = "mysql"
	assert.Error(t, cfg.Validate())

	cfg = valid()
	cfg.Pagination.MaxLimit = 1
	assert.Error(t, cfg.Validate())
}

func TestPostgresDSN(t *testing.T) {
	d := DatabaseConfig{Driver: "postgres", Host: "db", Port: "5432", User: "foodgram", Password: "pw", Database: "foodgram", SSLMode: "disable"}
	assert.Equal(t, "host=db port=5432 user=foodgram password=pw dbname=foodgram sslmode=disable", d.DSN())
}
