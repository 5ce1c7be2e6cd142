package garden

import "github.com/google/uuid"

// Family distinguishes the two crop lines. They share one growth contract
// but carry different accumulators and stage tables.
type Family string

const (
	FamilyPlant    Family = "plant"
	FamilyMushroom Family = "mushroom"
)

// Unit is one growing crop instance. Created when a seed or spawn bag is
// consumed, mutated only by the growth model, removed on harvest or
// discard.
type Unit struct {
	ID             uuid.UUID `json:"id"`
	TypeID         string    `json:"type_id"`
	Family         Family    `json:"family"`
	GrowthProgress float64   `json:"growth_progress"` // 0..1
	Stage          Stage     `json:"stage"`           // always StageFor(GrowthProgress)

	// Plant accumulators.
	LightExposed bool    `json:"light_exposed,omitempty"` // slot passes the light-coverage test
	PotModifier  float64 `json:"pot_modifier,omitempty"`  // from pot equipment, 1 = plain pot

	// Mushroom accumulators.
	EnvScore  float64 `json:"env_score,omitempty"` // rolling environment fit, used at harvest
	EnvSeeded bool    `json:"env_seeded,omitempty"`
}

// NewPlant creates a freshly planted plant unit.
func NewPlant(typeID string, lightExposed bool, potModifier float64) Unit {
	if potModifier <= 0 {
		potModifier = 1
	}
	return Unit{
		ID:           uuid.New(),
		TypeID:       typeID,
		Family:       FamilyPlant,
		Stage:        PlantStages.StageFor(0),
		LightExposed: lightExposed,
		PotModifier:  potModifier,
	}
}

// NewMushroom creates a freshly inoculated mushroom unit.
func NewMushroom(typeID string) Unit {
	return Unit{
		ID:     uuid.New(),
		TypeID: typeID,
		Family: FamilyMushroom,
		Stage:  MushroomStages.StageFor(0),
	}
}
