package members

import (
	"time"

	"gymdesk/internal/domain/plans"
)

type Member struct {
	ID            int64
	Name          string
	Phone         string
	Plan          plans.Tier
	StartDate     time.Time
	EndDate       time.Time
	SaunaSessions int
	Balance       int64 // minor units, unconsumed remainder toward the next renewal
	DailyDaysPaid int
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// Active reports whether the membership has not lapsed as of the given day.
func (m *Member) Active(today time.Time) bool {
	return !m.EndDate.Before(today)
}

// ExpiresWithin reports whether the membership ends inside the next n days
// (still active today). Used for the "soon to expire" roster flag.
func (m *Member) ExpiresWithin(today time.Time, n int) bool {
	return m.Active(today) && !m.EndDate.After(today.AddDate(0, 0, n))
}

// Filter narrows ListMembers results. Zero values mean "no restriction".
type Filter struct {
	Name  string
	Phone string
	Plan  plans.Tier
}
