package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"PORT", "DATABASE_URL", "PARTNERS", "ROUTE_CACHE_TTL_SECONDS", "OPTIMIZER_MAX_PASSES"} {
		t.Setenv(k, "")
	}

	c := Load()
	assert.Equal(t, "8080", c.Port)
	assert.Empty(t, c.DatabaseURL)
	assert.Equal(t, 10*time.Minute, c.RouteTTL)
	assert.Equal(t, []string{"Partner A", "Partner B", "Partner C"}, c.Partners)
	assert.Zero(t, c.MaxPasses)
	require.NoError(t, c.Validate())
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("PARTNERS", " alice, ,bob ")
	t.Setenv("ROUTE_CACHE_TTL_SECONDS", "30")
	t.Setenv("OPTIMIZER_MAX_PASSES", "not-a-number")

	c := Load()
	assert.Equal(t, "9090", c.Port)
	assert.Equal(t, []string{"alice", "bob"}, c.Partners)
	assert.Equal(t, 30*time.Second, c.RouteTTL)
	assert.Zero(t, c.MaxPasses)
}

func TestValidate(t *testing.T) {
	c := &Config{Port: "8080", RouteTTL: -time.Second, MaxPasses: -1}
	err := c.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ROUTE_CACHE_TTL_SECONDS")
	assert.Contains(t, err.Error(), "OPTIMIZER_MAX_PASSES")
	assert.Contains(t, err.Error(), "PARTNERS")
}
