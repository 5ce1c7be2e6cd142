// Package engine is the time coordinator: it converts wall-clock deltas
// into simulated days and runs growth, decay and the weekly economy in a
// fixed order over an immutable snapshot, returning a new snapshot plus the
// events the tick produced.
package engine

import (
	"math"
	"sort"
	"time"

	"github.com/ambergrove/hearthome/internal/catalog"
	"github.com/ambergrove/hearthome/internal/climate"
	"github.com/ambergrove/hearthome/internal/econ"
	"github.com/ambergrove/hearthome/internal/garden"
	"github.com/ambergrove/hearthome/internal/pantry"
	"github.com/ambergrove/hearthome/internal/synergy"
	"github.com/ambergrove/hearthome/internal/tuning"
)

// Snapshot is the full mutable simulation state a tick operates on.
type Snapshot struct {
	Units        []garden.Unit `json:"units"`
	Goods        []pantry.Good `json:"goods"`
	Econ         econ.State    `json:"econ"`
	WeeklyIncome float64       `json:"weekly_income"`
	StorageBonus float64       `json:"storage_bonus"` // kitchen equipment, derived outside the core
	LastRentPaid time.Time     `json:"last_rent_paid"`
}

// Envelope is a tick's input: the timestamp pair, the game anchor, and the
// snapshot.
type Envelope struct {
	LastTick    time.Time `json:"last_tick"`
	CurrentTime time.Time `json:"current_time"`
	GameStart   time.Time `json:"game_start"`
	Snapshot    Snapshot  `json:"snapshot"`
}

// Result is a tick's output. GameDay is always derived from CurrentTime and
// GameStart, never carried as independent state.
type Result struct {
	Snapshot Snapshot  `json:"snapshot"`
	GameDay  float64   `json:"game_day"`
	LastTick time.Time `json:"last_tick"`
	Events   []Event   `json:"events"`
}

// ClimateSource supplies grow-room conditions per simulated day.
// *climate.Provider is the production implementation.
type ClimateSource interface {
	At(day float64) climate.Conditions
}

// Coordinator wires the growth model, the decay model, the ledger and the
// synergy bus into one ordered tick.
type Coordinator struct {
	Garden  *garden.Model
	Catalog *catalog.Catalog
	Bus     *synergy.Bus
	Climate ClimateSource

	// DayLength is wall-clock time per simulated day. Zero means
	// tuning.DayLength.
	DayLength time.Duration
}

// NewCoordinator creates a coordinator over shared collaborators. The bus
// is caller-owned: tests and the daemon each construct their own.
func NewCoordinator(cat *catalog.Catalog, bus *synergy.Bus, clim ClimateSource) *Coordinator {
	return &Coordinator{
		Garden:  garden.NewModel(cat),
		Catalog: cat,
		Bus:     bus,
		Climate: clim,
	}
}

func (c *Coordinator) dayLength() time.Duration {
	if c.DayLength > 0 {
		return c.DayLength
	}
	return tuning.DayLength
}

// GameDay derives the absolute simulated day for a wall-clock instant. Day
// numbering starts at 1.
func (c *Coordinator) GameDay(env Envelope, at time.Time) float64 {
	return 1 + float64(at.Sub(env.GameStart))/float64(c.dayLength())
}

// Tick applies the elapsed time between LastTick and CurrentTime to the
// snapshot. Non-positive elapsed time (clock skew, replayed call) is a
// benign no-op. Within one tick the order is fixed: growth, then decay,
// then — at most once — rent settlement, because the grocery-savings term
// reads the post-decay pantry.
func (c *Coordinator) Tick(env Envelope) Result {
	elapsed := env.CurrentTime.Sub(env.LastTick)
	if elapsed <= 0 {
		return Result{
			Snapshot: env.Snapshot,
			GameDay:  c.GameDay(env, env.CurrentTime),
			LastTick: env.LastTick,
		}
	}

	elapsedDays := float64(elapsed) / float64(c.dayLength())
	day := c.GameDay(env, env.CurrentTime)
	snap := env.Snapshot
	var events []Event

	// 1. Growth.
	cond := c.Climate.At(day)
	snap.Units, events = c.advanceUnits(snap, elapsedDays, day, cond, events)

	// 2. Decay.
	var spoiled []pantry.Good
	snap.Goods, spoiled = pantry.DecayAll(snap.Goods, elapsedDays)
	events = appendSpoilage(events, day, spoiled)

	// 3. Weekly economy, settled at most once per tick no matter how many
	// week boundaries the elapsed time skipped over.
	if econ.IsPaymentDue(snap.LastRentPaid, env.CurrentTime, 7*c.dayLength()) {
		savings := c.grocerySavings(snap.Goods, snap.Econ.WeeklyGroceryBase)
		state, settlement := econ.SettleWeeklyExpenses(
			snap.Econ, snap.Econ.WeeklyRent, snap.Econ.WeeklyGroceryBase, savings, snap.WeeklyIncome)
		snap.Econ = state
		snap.LastRentPaid = env.CurrentTime

		// The week just paid for: completed weeks since the game anchor.
		week := int(math.Floor(float64(env.CurrentTime.Sub(env.GameStart)) / float64(7*c.dayLength())))
		events = append(events, Event{
			Kind:    EventRentPaid,
			Day:     day,
			Payload: RentPaidPayload{Settlement: settlement, Week: week},
		})
	}

	return Result{
		Snapshot: snap,
		GameDay:  day,
		LastTick: env.CurrentTime,
		Events:   events,
	}
}

// SkipDays fast-forwards n simulated days. It is pure sugar over Tick with
// an advanced CurrentTime; there is no separate fast-forward code path that
// could drift from single-tick semantics.
func (c *Coordinator) SkipDays(env Envelope, n float64) Result {
	env.CurrentTime = env.CurrentTime.Add(time.Duration(n * float64(c.dayLength())))
	return c.Tick(env)
}

func (c *Coordinator) advanceUnits(snap Snapshot, elapsedDays, day float64, cond climate.Conditions, events []Event) ([]garden.Unit, []Event) {
	plantBonus := c.Bus.BonusFor(synergy.SubsystemPlants, day)
	mushroomBonus := c.Bus.BonusFor(synergy.SubsystemMushrooms, day)

	units := make([]garden.Unit, 0, len(snap.Units))
	for _, u := range snap.Units {
		gc := garden.Conditions{
			StorageBonus: snap.StorageBonus,
			Humidity:     cond.Humidity,
			TempC:        cond.TempC,
			FreshAir:     cond.FreshAir,
		}
		if u.Family == garden.FamilyMushroom {
			gc.SynergyBonus = mushroomBonus
		} else {
			gc.SynergyBonus = plantBonus
		}

		next := c.Garden.Advance(u, elapsedDays, gc)
		if next.Stage != u.Stage {
			kind := EventPlantStageChange
			if next.Stage == garden.PolicyFor(next.Family).Terminal() {
				kind = EventPlantReady
			}
			events = append(events, Event{
				Kind: kind,
				Day:  day,
				Payload: StageChangePayload{
					UnitID: next.ID,
					TypeID: next.TypeID,
					Family: next.Family,
					From:   u.Stage,
					To:     next.Stage,
				},
			})
		}
		units = append(units, next)
	}
	return units, events
}

// grocerySavings values the post-decay pantry against the weekly grocery
// bill: fresher food offsets more shopping, capped at the bill itself.
func (c *Coordinator) grocerySavings(goods []pantry.Good, groceryBase float64) float64 {
	total := 0.0
	for _, g := range goods {
		total += c.groceryValue(g.TypeID) * g.Quantity * g.Freshness
	}
	return math.Min(total, groceryBase)
}

func (c *Coordinator) groceryValue(typeID string) float64 {
	if p, ok := c.Catalog.Plant(typeID); ok {
		return p.GroceryValue
	}
	if m, ok := c.Catalog.Mushroom(typeID); ok {
		return m.GroceryValue
	}
	return 0
}

func appendSpoilage(events []Event, day float64, spoiled []pantry.Good) []Event {
	if len(spoiled) == 0 {
		return events
	}

	byLocation := make(map[string][]string)
	for _, g := range spoiled {
		byLocation[g.Location] = append(byLocation[g.Location], g.TypeID)
	}

	locations := make([]string, 0, len(byLocation))
	for loc := range byLocation {
		locations = append(locations, loc)
	}
	sort.Strings(locations)

	for _, loc := range locations {
		events = append(events, Event{
			Kind: EventItemSpoiled,
			Day:  day,
			Payload: SpoilagePayload{
				Location: loc,
				Count:    len(byLocation[loc]),
				TypeIDs:  byLocation[loc],
			},
		})
	}
	return events
}
