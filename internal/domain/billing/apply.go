package billing

import (
	"time"

	"gymdesk/internal/domain/members"
	"gymdesk/internal/domain/plans"
)

// outcome is the member state a payment produces. Computed purely so the
// renewal rules can be tested without a database; the service persists it
// inside the payment transaction.
type outcome struct {
	EndDate       time.Time
	Balance       int64
	SaunaSessions int
	DailyDaysPaid int
	Renewed       bool
}

// renewalBase is the date a new period extends from: the current expiry
// while the membership is still active, otherwise today. A lapsed
// membership restarts the clock instead of back-filling the gap.
func renewalBase(endDate, today time.Time) time.Time {
	if endDate.Before(today) {
		return today
	}
	return endDate
}

// apply folds one payment into a member snapshot.
//
// Daily members buy explicit days: daysPaid extends the expiry from the
// renewal base and overwrites the last days-paid figure; the amount itself
// only accumulates on the balance. With daysPaid == 0 the payment is a
// plain balance top-up.
//
// Periodic members accumulate the balance until it covers the plan price,
// then convert as many full periods as it holds, keep the remainder and —
// on qualifying tiers — replenish the sauna counter.
func apply(p plans.Plan, m *members.Member, amount int64, daysPaid int, today time.Time) outcome {
	out := outcome{
		EndDate:       m.EndDate,
		Balance:       m.Balance + amount,
		SaunaSessions: m.SaunaSessions,
		DailyDaysPaid: m.DailyDaysPaid,
	}

	if p.Tier == plans.Daily {
		if daysPaid > 0 {
			out.EndDate = renewalBase(m.EndDate, today).AddDate(0, 0, daysPaid)
			out.DailyDaysPaid = daysPaid
			out.Renewed = true
		}
		return out
	}

	if out.Balance < p.Price {
		return out
	}

	periods := out.Balance / p.Price
	out.Balance -= periods * p.Price
	out.EndDate = renewalBase(m.EndDate, today).AddDate(0, 0, int(periods)*p.DurationDays)
	if p.GrantsSauna {
		out.SaunaSessions = plans.SaunaGrant
	}
	out.Renewed = true
	return out
}
