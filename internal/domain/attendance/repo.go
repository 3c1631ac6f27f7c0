package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymdesk/internal/domain/members"
	"gymdesk/internal/infra/metrics"
)

const fkViolation = "23503"

type Repo struct {
	pool *pgxpool.Pool
	met  *metrics.Metrics
}

func NewRepo(pool *pgxpool.Pool, met *metrics.Metrics) *Repo {
	return &Repo{pool: pool, met: met}
}

// dateOnly drops the clock so a check-in near midnight lands on the same
// calendar day the billing engine uses.
func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Mark records a visit for the given day. A member checks in at most once
// per day: a repeated call for the same (member, date) returns false and
// leaves the ledger unchanged. An unknown member fails with
// members.ErrNotFound via the foreign key.
func (r *Repo) Mark(ctx context.Context, memberID int64, date time.Time) (bool, error) {
	tag, err := r.pool.Exec(ctx, `
		INSERT INTO attendance (member_id, attendance_date)
		VALUES ($1, $2)
		ON CONFLICT (member_id, attendance_date) DO NOTHING
	`, memberID, dateOnly(date))
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == fkViolation {
			return false, members.ErrNotFound
		}
		return false, err
	}
	recorded := tag.RowsAffected() > 0
	if recorded && r.met != nil {
		r.met.AttendanceMarked.Inc()
	}
	return recorded, nil
}

// List returns visits inside the inclusive date range, newest first, each
// joined with the member's current name and plan. Zero bounds are open.
func (r *Repo) List(ctx context.Context, from, to time.Time) ([]Entry, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT a.id, a.member_id, a.attendance_date, m.name, m.plan
		FROM attendance a
		JOIN members m ON m.id = a.member_id
		WHERE ($1::date IS NULL OR a.attendance_date >= $1)
		  AND ($2::date IS NULL OR a.attendance_date <= $2)
		ORDER BY a.attendance_date DESC, a.id DESC
	`, nullableDate(from), nullableDate(to))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.MemberID, &e.Date, &e.MemberName, &e.MemberPlan); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// CountOn is the number of check-ins on a single day.
func (r *Repo) CountOn(ctx context.Context, date time.Time) (int, error) {
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance WHERE attendance_date = $1
	`, dateOnly(date)).Scan(&n)
	return n, err
}

// CountWindow counts check-ins over `span` days starting at `start`,
// bounds inclusive.
func (r *Repo) CountWindow(ctx context.Context, start time.Time, span int) (int, error) {
	if span < 1 {
		span = 1
	}
	day := dateOnly(start)
	var n int
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM attendance
		WHERE attendance_date >= $1 AND attendance_date <= $2
	`, day, day.AddDate(0, 0, span-1)).Scan(&n)
	return n, err
}

func nullableDate(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	d := dateOnly(t)
	return &d
}
