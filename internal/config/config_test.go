package config_test

import (
	"testing"
	"time"

	"github.com/dom/league-skinset-finder/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SHARE_SECRET", "secret")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/catalog.json", cfg.CatalogPath)
	assert.Equal(t, 720, cfg.ShareExpirationHours)
	assert.Equal(t, 5*time.Minute, cfg.ResultCacheTTL)
	assert.Equal(t, 5000, cfg.MaxResultRows)
	assert.Equal(t, 0, cfg.ResolverWorkers)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("SHARE_SECRET", "secret")
	t.Setenv("PORT", "9000")
	t.Setenv("REDIS_ADDRESS", "localhost:6379")
	t.Setenv("RESOLVER_WORKERS", "4")
	t.Setenv("MAX_RESULT_ROWS", "not-a-number")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, "localhost:6379", cfg.RedisAddress)
	assert.Equal(t, 4, cfg.ResolverWorkers)
	assert.Equal(t, 5000, cfg.MaxResultRows, "unparsable values fall back")
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{
			name: "missing share secret",
			env:  map[string]string{"SHARE_SECRET": ""},
		},
		{
			name: "negative row cap",
			env:  map[string]string{"SHARE_SECRET": "secret", "MAX_RESULT_ROWS": "-1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
