package climate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProvider_Deterministic(t *testing.T) {
	a := NewProvider(42)
	b := NewProvider(42)

	for day := 0.0; day < 60; day += 0.7 {
		assert.Equal(t, a.At(day), b.At(day), "day %v", day)
	}
}

func TestProvider_SeedChangesCurve(t *testing.T) {
	a := NewProvider(1)
	b := NewProvider(2)

	differs := false
	for day := 0.0; day < 30; day++ {
		if a.At(day) != b.At(day) {
			differs = true
			break
		}
	}
	assert.True(t, differs)
}

func TestProvider_RangesSane(t *testing.T) {
	p := NewProvider(7)

	for day := 0.0; day < 365; day++ {
		c := p.At(day)
		assert.GreaterOrEqual(t, c.Humidity, 0.65, "day %v", day)
		assert.LessOrEqual(t, c.Humidity, 1.0, "day %v", day)
		assert.GreaterOrEqual(t, c.TempC, 13.0, "day %v", day)
		assert.LessOrEqual(t, c.TempC, 24.0, "day %v", day)
	}
}
