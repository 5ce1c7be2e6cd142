// Package pantry models harvested and stored goods and the one decay law
// that governs all of them. Freshness only ever moves down; drying is the
// single escape hatch and pins freshness permanently.
package pantry

import "github.com/google/uuid"

// Good is one batch of harvested or stored produce.
type Good struct {
	ID           uuid.UUID `json:"id"`
	TypeID       string    `json:"type_id"`
	Location     string    `json:"location"` // "counter", "pantry", "fridge", ...
	Quantity     float64   `json:"quantity"`
	Freshness    float64   `json:"freshness"` // 1.0 at harvest, 0 = spoiled
	MaxFreshDays float64   `json:"max_fresh_days"`
	DaysOnShelf  float64   `json:"days_on_shelf"`
	Dried        bool      `json:"dried"`
}

// New creates a fully fresh good.
func New(typeID, location string, quantity, maxFreshDays float64) Good {
	return Good{
		ID:           uuid.New(),
		TypeID:       typeID,
		Location:     location,
		Quantity:     quantity,
		Freshness:    1.0,
		MaxFreshDays: maxFreshDays,
	}
}

// Decay advances a good's shelf time and recomputes freshness. Dried goods
// are immune. A good with an unknown (non-positive) shelf ceiling is
// returned unchanged rather than spoiling the whole batch pass.
func Decay(g Good, elapsedDays float64) Good {
	if g.Dried {
		g.Freshness = 1.0
		return g
	}
	if elapsedDays <= 0 || g.MaxFreshDays <= 0 {
		return g
	}
	g.DaysOnShelf += elapsedDays
	g.Freshness = 1.0 - g.DaysOnShelf/g.MaxFreshDays
	if g.Freshness < 0 {
		g.Freshness = 0
	}
	return g
}

// DecayAll decays every good and splits off the fully spoiled ones. Dried
// goods are always retained.
func DecayAll(goods []Good, elapsedDays float64) (kept, spoiled []Good) {
	for _, g := range goods {
		g = Decay(g, elapsedDays)
		if g.Freshness <= 0 && !g.Dried {
			spoiled = append(spoiled, g)
			continue
		}
		kept = append(kept, g)
	}
	return kept, spoiled
}

// Dry preserves a good permanently. Decay never touches it again.
func Dry(g Good) Good {
	g.Dried = true
	g.Freshness = 1.0
	return g
}
