package payments

import "time"

type Method string

const (
	MethodCash           Method = "cash"
	MethodMobileTransfer Method = "mobile_transfer"
)

func (m Method) Valid() bool {
	return m == MethodCash || m == MethodMobileTransfer
}

// Payment is one entry of the append-only ledger. Entries are never
// mutated; they disappear only when their member is cascade-deleted.
type Payment struct {
	ID       int64
	MemberID int64
	Amount   int64 // minor units
	Note     string
	Date     time.Time
	Method   Method
	DaysPaid int // daily-plan payments only
}
