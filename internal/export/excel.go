// Package export renders record lists into .xlsx reports. It only
// consumes the plain structs the domain packages return; no queries of
// its own.
package export

import (
	"fmt"
	"io"
	"time"

	"github.com/xuri/excelize/v2"

	"gymdesk/internal/domain/attendance"
	"gymdesk/internal/domain/members"
	"gymdesk/internal/domain/payments"
	"gymdesk/internal/domain/plans"
)

// ExpiringSoonDays is the roster highlight threshold: memberships ending
// inside this many days are flagged. Display-only.
const ExpiringSoonDays = 3

const dateLayout = "2006-01-02"

func writeSheet(w io.Writer, header []interface{}, rows [][]interface{}) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(f.GetActiveSheetIndex())
	if err := f.SetSheetRow(sheet, "A1", &header); err != nil {
		return fmt.Errorf("export: header: %w", err)
	}
	for i, r := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("export: cell: %w", err)
		}
		row := r
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("export: row %d: %w", i+2, err)
		}
	}
	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("export: write: %w", err)
	}
	return nil
}

// MembersSheet writes the member roster: schedule, balance, remaining due
// toward the next period and the expiring-soon flag.
func MembersSheet(w io.Writer, list []members.Member, cat *plans.Catalog, today time.Time) error {
	header := []interface{}{
		"id", "name", "phone", "plan", "start_date", "end_date",
		"sauna_sessions", "balance", "remaining_due", "expiring_soon",
	}
	rows := make([][]interface{}, 0, len(list))
	for _, m := range list {
		var due int64
		if p, ok := cat.Get(m.Plan); ok && m.Plan != plans.Daily && p.Price > m.Balance {
			due = p.Price - m.Balance
		}
		rows = append(rows, []interface{}{
			m.ID,
			m.Name,
			m.Phone,
			string(m.Plan),
			m.StartDate.Format(dateLayout),
			m.EndDate.Format(dateLayout),
			m.SaunaSessions,
			plans.FormatAmount(m.Balance),
			plans.FormatAmount(due),
			m.ExpiresWithin(today, ExpiringSoonDays),
		})
	}
	return writeSheet(w, header, rows)
}

// PaymentsSheet writes the payment journal.
func PaymentsSheet(w io.Writer, list []payments.Payment) error {
	header := []interface{}{
		"id", "member_id", "amount", "method", "date", "days_paid", "note",
	}
	rows := make([][]interface{}, 0, len(list))
	for _, p := range list {
		rows = append(rows, []interface{}{
			p.ID,
			p.MemberID,
			plans.FormatAmount(p.Amount),
			string(p.Method),
			p.Date.Format(dateLayout),
			p.DaysPaid,
			p.Note,
		})
	}
	return writeSheet(w, header, rows)
}

// AttendanceSheet writes the visit log joined with member name and plan.
func AttendanceSheet(w io.Writer, list []attendance.Entry) error {
	header := []interface{}{"id", "date", "member_id", "member_name", "plan"}
	rows := make([][]interface{}, 0, len(list))
	for _, e := range list {
		rows = append(rows, []interface{}{
			e.ID,
			e.Date.Format(dateLayout),
			e.MemberID,
			e.MemberName,
			string(e.MemberPlan),
		})
	}
	return writeSheet(w, header, rows)
}
