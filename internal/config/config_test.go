package config

import (
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.AppPort)
	assert.Equal(t, "postgres", cfg.DBDriver)
	assert.Equal(t, 8*time.Hour, cfg.JWTTTL)
	assert.True(t, cfg.RabbitMQEnabled)
	assert.Equal(t, "/media", cfg.MediaBaseURL)
	assert.False(t, cfg.IsProduction())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("APP_PORT", "3000")
	t.Setenv("DB_DRIVER", "SQLITE")
	t.Setenv("JWT_TTL", "30m")
	t.Setenv("RABBITMQ_ENABLED", "false")
	t.Setenv("APP_ENV", "Production")

	cfg, err := load(viper.New())
	require.NoError(t, err)
	assert.Equal(t, ":3000", cfg.AppPort)
	assert.Equal(t, "sqlite", cfg.DBDriver)
	assert.Equal(t, 30*time.Minute, cfg.JWTTTL)
	assert.False(t, cfg.RabbitMQEnabled)
	assert.True(t, cfg.IsProduction())
}

func TestLoad_Invalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	_, err := load(viper.New())
	assert.ErrorContains(t, err, "JWT_SECRET")

	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DB_DRIVER", "mysql")
	_, err = load(viper.New())
	assert.ErrorContains(t, err, "DB_DRIVER")
}
