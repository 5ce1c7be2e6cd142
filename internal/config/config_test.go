package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "data/hearthome.db", cfg.DBPath)
	assert.Equal(t, 8780, cfg.APIPort)
	assert.Equal(t, 30*time.Second, cfg.TickInterval)
	assert.Equal(t, 24*time.Hour, cfg.DayLength)
	assert.Equal(t, int64(42), cfg.ClimateSeed)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("HEARTHOME_PORT", "9000")
	t.Setenv("HEARTHOME_DAY_LENGTH", "10m")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9000, cfg.APIPort)
	assert.Equal(t, 10*time.Minute, cfg.DayLength)
}
