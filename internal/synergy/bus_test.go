package synergy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBonusFor_LinearDecay(t *testing.T) {
	b := NewBus(14)
	b.Emit(Event{Type: "herb_rack", Source: SubsystemKitchen, Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 10})

	// age 7 of a 14-day window: half the original amount.
	assert.InDelta(t, 0.1, b.BonusFor(SubsystemPlants, 17), 1e-9)
}

func TestBonusFor_FullAmountAtEmission(t *testing.T) {
	b := NewBus(14)
	b.Emit(Event{Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 10})

	assert.InDelta(t, 0.2, b.BonusFor(SubsystemPlants, 10), 1e-9)
}

func TestBonusFor_ZeroBeyondWindow(t *testing.T) {
	b := NewBus(14)
	b.Emit(Event{Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 10})

	assert.Equal(t, 0.0, b.BonusFor(SubsystemPlants, 24.0001))
	assert.Equal(t, 0.0, b.BonusFor(SubsystemPlants, 100))
}

func TestBonusFor_StrictlyDecreasingWithAge(t *testing.T) {
	b := NewBus(14)
	b.Emit(Event{Target: SubsystemMushrooms, Amount: 0.5, EmittedOnDay: 0})

	prev := b.BonusFor(SubsystemMushrooms, 0)
	for day := 1.0; day <= 13; day++ {
		cur := b.BonusFor(SubsystemMushrooms, day)
		assert.Less(t, cur, prev, "day %v", day)
		prev = cur
	}
}

func TestBonusFor_IgnoresOtherTargets(t *testing.T) {
	b := NewBus(14)
	b.Emit(Event{Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 0})

	assert.Equal(t, 0.0, b.BonusFor(SubsystemMushrooms, 0))
}

func TestBonusFor_SumsMultipleEvents(t *testing.T) {
	b := NewBus(10)
	b.Emit(Event{Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 0})
	b.Emit(Event{Target: SubsystemPlants, Amount: 0.1, EmittedOnDay: 5})

	// day 5: 0.2*(1-5/10) + 0.1*1 = 0.2
	assert.InDelta(t, 0.2, b.BonusFor(SubsystemPlants, 5), 1e-9)
}

func TestActiveEvents(t *testing.T) {
	b := NewBus(14)
	b.Emit(Event{Type: "old", Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 0})
	b.Emit(Event{Type: "new", Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 20})

	active := b.ActiveEvents(SubsystemPlants, 20)

	assert.Len(t, active, 1)
	assert.Equal(t, "new", active[0].Type)
}

func TestEmit_NotifiesInRegistrationOrder(t *testing.T) {
	b := NewBus(14)
	var order []int
	b.Subscribe(func(Event) { order = append(order, 1) })
	b.Subscribe(func(Event) { order = append(order, 2) })
	b.Subscribe(func(Event) { order = append(order, 3) })

	b.Emit(Event{Target: SubsystemPlants})

	assert.Equal(t, []int{1, 2, 3}, order)
}

func TestEmit_PanickingSubscriberIsolated(t *testing.T) {
	b := NewBus(14)
	var reached bool
	b.Subscribe(func(Event) { panic("listener bug") })
	b.Subscribe(func(Event) { reached = true })

	assert.NotPanics(t, func() {
		b.Emit(Event{Target: SubsystemPlants, Amount: 0.1})
	})
	assert.True(t, reached)
	assert.Len(t, b.Events(), 1, "event recorded despite subscriber panic")
}

func TestPrune_DoesNotChangeBonuses(t *testing.T) {
	b := NewBus(14)
	b.Emit(Event{Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 0})
	b.Emit(Event{Target: SubsystemPlants, Amount: 0.3, EmittedOnDay: 18})

	before := b.BonusFor(SubsystemPlants, 20)
	b.Prune(20)
	after := b.BonusFor(SubsystemPlants, 20)

	assert.Equal(t, before, after)
	assert.Len(t, b.Events(), 1, "expired event physically dropped")
}

func TestRestore_RoundTrip(t *testing.T) {
	b := NewBus(14)
	b.Emit(Event{Type: "a", Target: SubsystemPlants, Amount: 0.2, EmittedOnDay: 1})
	b.Emit(Event{Type: "b", Target: SubsystemMushrooms, Amount: 0.4, EmittedOnDay: 2})

	b2 := NewBus(14)
	b2.Restore(b.Events())

	assert.Equal(t, b.BonusFor(SubsystemPlants, 3), b2.BonusFor(SubsystemPlants, 3))
	assert.Equal(t, b.Events(), b2.Events())
}
