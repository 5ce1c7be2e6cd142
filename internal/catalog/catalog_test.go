package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefault(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	assert.NotEmpty(t, c.Plants)
	assert.NotEmpty(t, c.Mushrooms)
	assert.NotEmpty(t, c.Equipment)
}

func TestLoadDefault_Basil(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	basil, ok := c.Plant("basil")
	require.True(t, ok)
	assert.Equal(t, 7.0, basil.DaysToMature)
	assert.Equal(t, 4.0, basil.MaxFreshDays)
}

func TestLookup_UnknownID(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	_, ok := c.Plant("tumbleweed")
	assert.False(t, ok)
	_, ok = c.Mushroom("tumbleweed")
	assert.False(t, ok)
	_, ok = c.EquipmentByID("tumbleweed")
	assert.False(t, ok)
}

func TestLoadDefault_MushroomWindowsSane(t *testing.T) {
	c, err := LoadDefault()
	require.NoError(t, err)

	for id, m := range c.Mushrooms {
		assert.Less(t, m.HumidityMin, m.HumidityMax, id)
		assert.Less(t, m.TempMinC, m.TempMaxC, id)
		assert.Positive(t, m.DaysToMature, id)
	}
}
