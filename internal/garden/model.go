package garden

import (
	"math"

	"github.com/ambergrove/hearthome/internal/catalog"
	"github.com/ambergrove/hearthome/internal/pantry"
	"github.com/ambergrove/hearthome/internal/tuning"
)

// Conditions carries everything external to a unit that its growth can
// depend on for one advance call.
type Conditions struct {
	StorageBonus float64 // kitchen/storage multiplier, 1 = neutral
	SynergyBonus float64 // additive fraction from the synergy bus, 0 = none
	Humidity     float64 // grow-room relative humidity, 0..1
	TempC        float64
	FreshAir     bool
}

// Model advances growable units against the type catalog. Both crop
// families go through the same contract; family differences live in the
// stage tables and the modifier stack.
type Model struct {
	Catalog *catalog.Catalog
}

// NewModel creates a growth model over a catalog.
func NewModel(c *catalog.Catalog) *Model {
	return &Model{Catalog: c}
}

// Advance applies elapsed time to a unit. A unit at its terminal stage, or
// with an unknown type id, is returned unchanged. Growth never regresses
// and progress never exceeds 1.
func (m *Model) Advance(u Unit, elapsedDays float64, cond Conditions) Unit {
	if elapsedDays <= 0 {
		return u
	}
	policy := PolicyFor(u.Family)
	if u.Stage == policy.Terminal() {
		return u
	}

	var daysToMature float64
	mult := 1.0

	switch u.Family {
	case FamilyMushroom:
		mt, ok := m.Catalog.Mushroom(u.TypeID)
		if !ok {
			return u
		}
		daysToMature = mt.DaysToMature

		fit := environmentFit(mt, cond)
		u = observeEnvironment(u, fit)
		mult *= u.EnvScore
	default:
		pt, ok := m.Catalog.Plant(u.TypeID)
		if !ok {
			return u
		}
		daysToMature = pt.DaysToMature

		if u.LightExposed {
			mult *= tuning.PlantLightBonus
		}
	}

	if cond.StorageBonus > 0 {
		mult *= cond.StorageBonus
	}
	if cond.SynergyBonus > 0 {
		mult *= 1 + cond.SynergyBonus
	}

	if daysToMature <= 0 {
		return u
	}

	u.GrowthProgress += elapsedDays / daysToMature * mult
	if u.GrowthProgress > 1 {
		u.GrowthProgress = 1
	}
	u.Stage = policy.StageFor(u.GrowthProgress)
	return u
}

// Harvest converts a terminal-stage unit into a fully fresh good. Returns
// false when the unit is not ready or its type is unknown; the caller keeps
// the unit either way until it decides to discard.
func (m *Model) Harvest(u Unit, location string) (pantry.Good, bool) {
	if u.Stage != PolicyFor(u.Family).Terminal() {
		return pantry.Good{}, false
	}

	switch u.Family {
	case FamilyMushroom:
		mt, ok := m.Catalog.Mushroom(u.TypeID)
		if !ok {
			return pantry.Good{}, false
		}
		envMod := u.EnvScore
		if !u.EnvSeeded {
			envMod = 1
		}
		yield := roundTo(mt.BaseYield*envMod, mt.YieldPrecision)
		return pantry.New(u.TypeID, location, yield, mt.MaxFreshDays), true
	default:
		pt, ok := m.Catalog.Plant(u.TypeID)
		if !ok {
			return pantry.Good{}, false
		}
		yield := roundTo(pt.BaseYield*u.PotModifier, pt.YieldPrecision)
		return pantry.New(u.TypeID, location, yield, pt.MaxFreshDays), true
	}
}

// observeEnvironment folds one gated fit observation into the unit's
// rolling environment score: 70% prior, 30% new, seeded from the first
// observation rather than a neutral default. Early-life conditions
// dominate briefly, then wash out over the growth cycle.
func observeEnvironment(u Unit, fit float64) Unit {
	if !u.EnvSeeded {
		u.EnvScore = fit
		u.EnvSeeded = true
		return u
	}
	u.EnvScore = tuning.EnvScorePriorWeight*u.EnvScore + tuning.EnvScoreNewWeight*fit
	return u
}

// environmentFit scores current conditions against a species' preferred
// windows, gated by fresh air: without it, a fresh-air-demanding species
// never scores above the cap no matter how good the window fit is.
func environmentFit(mt catalog.MushroomType, cond Conditions) float64 {
	h := windowFit(cond.Humidity, mt.HumidityMin, mt.HumidityMax)
	t := windowFit(cond.TempC, mt.TempMinC, mt.TempMaxC)
	fit := (h + t) / 2

	if mt.NeedsFreshAir && !cond.FreshAir && fit > tuning.MushroomFreshAirCap {
		fit = tuning.MushroomFreshAirCap
	}
	return fit
}

// windowFit is 1 inside [lo, hi] and falls off linearly outside, reaching
// zero one half-window-width past either bound.
func windowFit(v, lo, hi float64) float64 {
	if v >= lo && v <= hi {
		return 1
	}
	tolerance := (hi - lo) / 2
	if tolerance <= 0 {
		return 0
	}
	var dist float64
	if v < lo {
		dist = lo - v
	} else {
		dist = v - hi
	}
	fit := 1 - dist/tolerance
	if fit < 0 {
		fit = 0
	}
	return fit
}

func roundTo(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}
