package econ

import (
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDeposit(t *testing.T) {
	s := State{Money: 10}

	s2 := Deposit(s, 5)

	assert.Equal(t, 15.0, s2.Money)
	assert.Equal(t, 10.0, s.Money, "original state untouched")
}

func TestWithdraw(t *testing.T) {
	s := State{Money: 10}

	s2, err := Withdraw(s, 4, false)

	require.NoError(t, err)
	assert.Equal(t, 6.0, s2.Money)
}

func TestWithdraw_InsufficientFunds(t *testing.T) {
	s := State{Money: 10}

	s2, err := Withdraw(s, 11, false)

	assert.ErrorIs(t, err, ErrInsufficientFunds)
	assert.Equal(t, s, s2, "state unchanged when not performed")
}

func TestWithdraw_Overdraft(t *testing.T) {
	s := State{Money: 10}

	s2, err := Withdraw(s, 25, true)

	require.NoError(t, err)
	assert.Equal(t, -15.0, s2.Money)
}

func TestSettleWeeklyExpenses(t *testing.T) {
	s := State{Money: 100, WeeklyRent: 50, WeeklyGroceryBase: 30}

	s2, breakdown := SettleWeeklyExpenses(s, 50, 30, 10, 0)

	assert.Equal(t, 30.0, s2.Money)
	assert.Equal(t, 50.0, breakdown.Rent)
	assert.Equal(t, 20.0, breakdown.Groceries)
	assert.Equal(t, 10.0, breakdown.Savings)
	assert.Equal(t, -70.0, breakdown.NetChange)
}

func TestSettleWeeklyExpenses_SavingsNeverNegative(t *testing.T) {
	s := State{Money: 100}

	// Savings above the grocery base cannot turn the grocery bill into
	// income.
	s2, breakdown := SettleWeeklyExpenses(s, 50, 30, 45, 0)

	assert.Equal(t, 0.0, breakdown.Groceries)
	assert.Equal(t, 50.0, s2.Money)
}

func TestSettleWeeklyExpenses_WithIncome(t *testing.T) {
	s := State{Money: 100}

	s2, breakdown := SettleWeeklyExpenses(s, 50, 30, 0, 120)

	assert.Equal(t, 140.0, s2.Money)
	assert.Equal(t, 40.0, breakdown.NetChange)
}

func TestIsPaymentDue(t *testing.T) {
	start := time.Unix(0, 0)
	week := 7 * 24 * time.Hour

	assert.False(t, IsPaymentDue(start, start.Add(6*24*time.Hour), week))
	assert.True(t, IsPaymentDue(start, start.Add(week), week))
	assert.True(t, IsPaymentDue(start, start.Add(30*24*time.Hour), week))
}

func TestProjectRunwayDays(t *testing.T) {
	tests := []struct {
		name     string
		money    float64
		expenses float64
		income   float64
		want     float64
	}{
		{"breaking even", 100, 80, 80, math.Inf(1)},
		{"positive cashflow", 0, 80, 100, math.Inf(1)},
		{"burning 10 a week", 100, 90, 80, 70},
		{"partial weeks floored", 95, 90, 80, 63},
		{"broke", 0, 50, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ProjectRunwayDays(tt.money, tt.expenses, tt.income))
		})
	}
}
