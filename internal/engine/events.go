package engine

import (
	"github.com/google/uuid"

	"github.com/ambergrove/hearthome/internal/econ"
	"github.com/ambergrove/hearthome/internal/garden"
)

// EventKind discriminates the events a tick can emit.
type EventKind string

const (
	EventPlantStageChange EventKind = "plant_stage_change"
	EventPlantReady       EventKind = "plant_ready"
	EventItemSpoiled      EventKind = "item_spoiled"
	EventRentPaid         EventKind = "rent_paid"
)

// Event is one discrete occurrence observed during a tick. Payload holds
// the kind-specific struct below.
type Event struct {
	Kind    EventKind `json:"kind"`
	Day     float64   `json:"day"`
	Payload any       `json:"payload"`
}

// StageChangePayload accompanies plant_stage_change and plant_ready.
type StageChangePayload struct {
	UnitID uuid.UUID     `json:"unit_id"`
	TypeID string        `json:"type_id"`
	Family garden.Family `json:"family"`
	From   garden.Stage  `json:"from"`
	To     garden.Stage  `json:"to"`
}

// SpoilagePayload accompanies item_spoiled, one per storage location.
type SpoilagePayload struct {
	Location string   `json:"location"`
	Count    int      `json:"count"`
	TypeIDs  []string `json:"type_ids"`
}

// RentPaidPayload accompanies rent_paid.
type RentPaidPayload struct {
	econ.Settlement
	Week int `json:"week"`
}
