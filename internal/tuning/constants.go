// Package tuning holds the simulation balance constants.
// Everything that gameplay iteration touches lives here, in one place.
package tuning

import "time"

// Time scale.
const (
	// DayLength is how much wall-clock time equals one simulated day.
	// The daemon can shrink this for fast playtests; the core only ever
	// sees ratios of elapsed time to DayLength.
	DayLength  = 24 * time.Hour
	WeekLength = 7 * DayLength
)

// Synergy bus.
const (
	// SynergyDecayWindowDays is the fixed window over which any synergy
	// event's contribution falls linearly to zero. Shared by all synergy
	// types.
	SynergyDecayWindowDays = 14.0
)

// Crop growth.
const (
	// PlantLightBonus multiplies growth for a plant whose slot passes the
	// binary light-coverage test.
	PlantLightBonus = 1.2

	// MushroomFreshAirCap caps the environmental-fit contribution when a
	// fresh-air-demanding species grows without fresh air exchange.
	MushroomFreshAirCap = 0.6

	// Environment score rolling average weights: 70% prior, 30% new
	// observation, seeded from the first observed fit.
	EnvScorePriorWeight = 0.7
	EnvScoreNewWeight   = 0.3
)

// Household economy defaults for a fresh save.
const (
	StartingMoney        = 100.0
	DefaultWeeklyRent    = 50.0
	DefaultWeeklyGrocery = 30.0
	DefaultWeeklyIncome  = 0.0
	DefaultStorageBonus  = 1.0
)
