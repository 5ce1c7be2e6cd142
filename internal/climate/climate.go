// Package climate produces the grow-room environment curve: smooth,
// deterministic daily humidity and temperature plus a fresh-air flag. The
// simulation core treats climate as caller-supplied input; this package is
// the default supplier.
package climate

import (
	opensimplex "github.com/ojrac/opensimplex-go"
)

// Conditions is one day's sampled environment.
type Conditions struct {
	Humidity float64 `json:"humidity"` // relative, 0..1
	TempC    float64 `json:"temp_c"`
	FreshAir bool    `json:"fresh_air"` // window cracked / vent running
}

// Provider samples deterministic conditions from seeded noise. Two
// providers with the same seed always agree, which keeps replayed ticks
// reproducible.
type Provider struct {
	humidity opensimplex.Noise
	temp     opensimplex.Noise
	air      opensimplex.Noise
}

// NewProvider creates a provider for the given world seed.
func NewProvider(seed int64) *Provider {
	return &Provider{
		humidity: opensimplex.NewNormalized(seed),
		temp:     opensimplex.NewNormalized(seed + 1),
		air:      opensimplex.NewNormalized(seed + 2),
	}
}

// At samples conditions for a (possibly fractional) simulated day.
func (p *Provider) At(day float64) Conditions {
	// Normalized noise is in [0,1]. Humidity drifts around the band most
	// mushrooms want; temperature around a lived-in apartment's range.
	h := 0.70 + 0.25*p.humidity.Eval2(day*0.13, 0.5)
	t := 14.0 + 9.0*p.temp.Eval2(0.5, day*0.09)

	// Fresh air roughly four days out of five.
	fresh := p.air.Eval2(day*0.31, 2.5) > 0.2

	return Conditions{Humidity: h, TempC: t, FreshAir: fresh}
}
