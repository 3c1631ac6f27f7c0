package billing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gymdesk/internal/domain/members"
	"gymdesk/internal/domain/plans"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func plan(t *testing.T, tier plans.Tier) plans.Plan {
	t.Helper()
	p, ok := plans.DefaultCatalog().Get(tier)
	require.True(t, ok)
	return p
}

func TestApplyDailyExtendsFromCurrentEnd(t *testing.T) {
	m := &members.Member{Plan: plans.Daily, EndDate: date(2024, 1, 10)}
	today := date(2024, 1, 5)

	out := apply(plan(t, plans.Daily), m, 200_00, 5, today)

	assert.True(t, out.Renewed)
	assert.Equal(t, date(2024, 1, 15), out.EndDate, "active membership extends from its end, not from today")
	assert.Equal(t, 5, out.DailyDaysPaid)
	assert.Equal(t, int64(200_00), out.Balance)
}

func TestApplyDailyLapsedRestartsFromToday(t *testing.T) {
	m := &members.Member{Plan: plans.Daily, EndDate: date(2024, 1, 1)}
	today := date(2024, 1, 5)

	out := apply(plan(t, plans.Daily), m, 200_00, 5, today)

	assert.True(t, out.Renewed)
	assert.Equal(t, date(2024, 1, 10), out.EndDate)
}

func TestApplyDailyOverwritesDaysPaid(t *testing.T) {
	m := &members.Member{Plan: plans.Daily, EndDate: date(2024, 1, 10), DailyDaysPaid: 30}
	out := apply(plan(t, plans.Daily), m, 200_00, 2, date(2024, 1, 5))
	assert.Equal(t, 2, out.DailyDaysPaid)
}

func TestApplyDailyZeroDaysIsBalanceTopUp(t *testing.T) {
	m := &members.Member{Plan: plans.Daily, EndDate: date(2024, 1, 10), Balance: 50_00}
	out := apply(plan(t, plans.Daily), m, 200_00, 0, date(2024, 1, 5))

	assert.False(t, out.Renewed)
	assert.Equal(t, date(2024, 1, 10), out.EndDate)
	assert.Equal(t, int64(250_00), out.Balance)
}

func TestApplyPeriodicBelowThresholdAccumulates(t *testing.T) {
	m := &members.Member{Plan: plans.Monthly, EndDate: date(2024, 2, 1)}
	out := apply(plan(t, plans.Monthly), m, 2_000_00, 0, date(2024, 1, 5))

	assert.False(t, out.Renewed)
	assert.Equal(t, int64(2_000_00), out.Balance)
	assert.Equal(t, date(2024, 2, 1), out.EndDate)
	assert.Equal(t, 0, out.SaunaSessions)
}

func TestApplyPeriodicThresholdCrossed(t *testing.T) {
	m := &members.Member{Plan: plans.Monthly, EndDate: date(2024, 2, 1), Balance: 2_000_00}
	out := apply(plan(t, plans.Monthly), m, 1_500_00, 0, date(2024, 1, 5))

	assert.True(t, out.Renewed)
	assert.Equal(t, int64(500_00), out.Balance, "remainder carries over")
	assert.Equal(t, date(2024, 3, 2), out.EndDate, "one 30-day period from the current end")
	assert.Equal(t, plans.SaunaGrant, out.SaunaSessions)
}

func TestApplyPeriodicMultiPeriod(t *testing.T) {
	m := &members.Member{Plan: plans.Monthly, EndDate: date(2024, 1, 1)}
	today := date(2024, 1, 5)

	out := apply(plan(t, plans.Monthly), m, 7_000_00, 0, today)

	assert.True(t, out.Renewed)
	assert.Equal(t, int64(1_000_00), out.Balance)
	// lapsed, so two 30-day periods from today
	assert.Equal(t, today.AddDate(0, 0, 60), out.EndDate)
}

func TestApplyWeeklyNeverGrantsSauna(t *testing.T) {
	m := &members.Member{Plan: plans.Weekly, EndDate: date(2024, 1, 1)}
	out := apply(plan(t, plans.Weekly), m, 1_000_00, 0, date(2024, 1, 5))

	assert.True(t, out.Renewed)
	assert.Equal(t, 0, out.SaunaSessions)
}

func TestApplyNeverProducesNegativeState(t *testing.T) {
	cat := plans.DefaultCatalog()
	today := date(2024, 1, 5)
	for _, tier := range cat.Tiers() {
		p, _ := cat.Get(tier)
		m := &members.Member{Plan: tier, EndDate: date(2024, 1, 1), StartDate: date(2023, 12, 1)}
		for _, amount := range []int64{1, 99, p.Price, p.Price * 3} {
			out := apply(p, m, amount, 1, today)
			assert.GreaterOrEqual(t, out.Balance, int64(0), "tier %s amount %d", tier, amount)
			assert.GreaterOrEqual(t, out.SaunaSessions, 0)
			assert.False(t, out.EndDate.Before(m.StartDate))
		}
	}
}

func TestRemainingDue(t *testing.T) {
	cat := plans.DefaultCatalog()
	s := &Service{cat: cat}

	assert.Equal(t, int64(1_000_00), s.RemainingDue(&members.Member{Plan: plans.Monthly, Balance: 2_000_00}))
	assert.Equal(t, int64(0), s.RemainingDue(&members.Member{Plan: plans.Monthly, Balance: 3_500_00}))
	assert.Equal(t, int64(0), s.RemainingDue(&members.Member{Plan: plans.Daily, Balance: 0}))
}
