package attendance

import (
	"time"

	"gymdesk/internal/domain/plans"
)

type Record struct {
	ID       int64
	MemberID int64
	Date     time.Time
}

// Entry is a record joined with the member's current name and plan, the
// shape the visit log displays and exports.
type Entry struct {
	Record
	MemberName string
	MemberPlan plans.Tier
}
