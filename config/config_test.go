package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig("test", nil)
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080", cfg.APIBaseURL)
	assert.Equal(t, "file", cfg.Store)
	assert.NotEmpty(t, cfg.StorePath)
	assert.Equal(t, "user", cfg.LinkMode)
	assert.Equal(t, "en", cfg.Lang)
	assert.Equal(t, 10*time.Second, cfg.Timeout)
	assert.False(t, cfg.Debug)
}

func TestNewConfig_Flags(t *testing.T) {
	args := []string{"-a", "http://api.test", "-s", "memory", "-m", "public", "-l", "ru", "-t", "2s", "-d"}

	cfg, err := NewConfig("test", args)
	require.NoError(t, err)

	assert.Equal(t, "http://api.test", cfg.APIBaseURL)
	assert.Equal(t, "memory", cfg.Store)
	assert.Equal(t, "public", cfg.LinkMode)
	assert.Equal(t, "ru", cfg.Lang)
	assert.Equal(t, 2*time.Second, cfg.Timeout)
	assert.True(t, cfg.Debug)
}

func TestNewConfig_EnvOverridesFlags(t *testing.T) {
	t.Setenv("SHORTY_API_URL", "http://env.test")
	t.Setenv("SHORTY_STORE", "redis")
	t.Setenv("SHORTY_REDIS_ADDR", "localhost:6379")
	t.Setenv("SHORTY_TIMEOUT", "500ms")
	t.Setenv("SHORTY_DEBUG", "true")

	cfg, err := NewConfig("test", []string{"-a", "http://flag.test", "-s", "memory"})
	require.NoError(t, err)

	assert.Equal(t, "http://env.test", cfg.APIBaseURL)
	assert.Equal(t, "redis", cfg.Store)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 500*time.Millisecond, cfg.Timeout)
	assert.True(t, cfg.Debug)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		args []string
		env  map[string]string
	}{
		{name: "unknown store", args: []string{"-s", "sqlite"}},
		{name: "unknown link mode", args: []string{"-m", "hash"}},
		{name: "redis without address", args: []string{"-s", "redis"}},
		{name: "file without path", args: []string{"-f", ""}},
		{name: "unknown flag", args: []string{"-x"}},
		{name: "bad timeout env", env: map[string]string{"SHORTY_TIMEOUT": "soon"}},
		{name: "bad debug env", env: map[string]string{"SHORTY_DEBUG": "maybe"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig("test", tt.args)
			assert.Error(t, err)
		})
	}
}

func TestNewConfig_Args(t *testing.T) {
	cfg, err := NewConfig("test", []string{"-s", "memory", "shorten", "-url", "example.com"})
	require.NoError(t, err)
	assert.Equal(t, []string{"shorten", "-url", "example.com"}, cfg.Args)
}
