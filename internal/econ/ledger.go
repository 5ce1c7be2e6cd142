// Package econ provides the household ledger: pure functions over a single
// money/rent/grocery record. Every operation returns a new State; nothing in
// this package holds a balance of its own.
package econ

import (
	"errors"
	"math"
	"time"
)

// ErrInsufficientFunds reports a withdrawal that was not performed. The
// returned state is unchanged, so callers branch with errors.Is and move on.
var ErrInsufficientFunds = errors.New("econ: insufficient funds")

// State is the complete household economy record.
type State struct {
	Money             float64 `json:"money" db:"money"`
	WeeklyRent        float64 `json:"weekly_rent" db:"weekly_rent"`
	WeeklyGroceryBase float64 `json:"weekly_grocery_base" db:"weekly_grocery_base"`
}

// Settlement is the breakdown of one combined weekly expense charge.
type Settlement struct {
	Income    float64 `json:"income"`
	Rent      float64 `json:"rent"`
	Groceries float64 `json:"groceries"` // grocery cost net of savings
	Savings   float64 `json:"savings"`
	NetChange float64 `json:"net_change"`
}

// Deposit adds amount to the balance.
func Deposit(s State, amount float64) State {
	s.Money += amount
	return s
}

// Withdraw removes amount from the balance. Without allowOverdraft a
// withdrawal that would go negative is not performed and
// ErrInsufficientFunds is returned alongside the unchanged state.
func Withdraw(s State, amount float64, allowOverdraft bool) (State, error) {
	if !allowOverdraft && s.Money < amount {
		return s, ErrInsufficientFunds
	}
	s.Money -= amount
	return s, nil
}

// SettleWeeklyExpenses applies one week's rent and groceries (net of
// decay-derived savings) together with any income, in a single step.
func SettleWeeklyExpenses(s State, rent, groceryBase, grocerySavings, income float64) (State, Settlement) {
	groceries := math.Max(0, groceryBase-grocerySavings)
	net := income - rent - groceries
	s.Money += net
	return s, Settlement{
		Income:    income,
		Rent:      rent,
		Groceries: groceries,
		Savings:   grocerySavings,
		NetChange: net,
	}
}

// IsPaymentDue reports whether a full period has elapsed since lastPaid.
func IsPaymentDue(lastPaid, now time.Time, period time.Duration) bool {
	return now.Sub(lastPaid) >= period
}

// ProjectRunwayDays projects how many days the balance lasts at the current
// weekly cashflow. Returns +Inf whenever net weekly cashflow is
// non-negative.
func ProjectRunwayDays(money, weeklyExpenses, weeklyIncome float64) float64 {
	net := weeklyIncome - weeklyExpenses
	if net >= 0 {
		return math.Inf(1)
	}
	return math.Floor(money/-net) * 7
}
