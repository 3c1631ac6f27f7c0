package members

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymdesk/internal/domain/plans"
)

var ErrNotFound = errors.New("members: not found")

type Repo struct {
	pool *pgxpool.Pool
	cat  *plans.Catalog
}

func NewRepo(pool *pgxpool.Pool, cat *plans.Catalog) *Repo {
	return &Repo{pool: pool, cat: cat}
}

const memberCols = `id, name, phone, plan, start_date, end_date, sauna_sessions, balance, daily_days_paid, created_at, updated_at`

func scanMember(row pgx.Row) (*Member, error) {
	var m Member
	err := row.Scan(&m.ID, &m.Name, &m.Phone, &m.Plan, &m.StartDate, &m.EndDate,
		&m.SaunaSessions, &m.Balance, &m.DailyDaysPaid, &m.CreatedAt, &m.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// Create registers a new member. The first expiry and the sauna baseline
// are derived from the plan: a daily member gets daysPaid days (at least
// one), every other tier gets its full period.
func (r *Repo) Create(ctx context.Context, name, phone string, tier plans.Tier, startDate time.Time, daysPaid int) (*Member, error) {
	p, ok := r.cat.Get(tier)
	if !ok {
		return nil, fmt.Errorf("members: unknown plan %q", tier)
	}

	endDate := startDate.AddDate(0, 0, p.DurationDays)
	dailyDays := 0
	if tier == plans.Daily {
		if daysPaid < 1 {
			daysPaid = 1
		}
		dailyDays = daysPaid
		endDate = startDate.AddDate(0, 0, daysPaid)
	}

	row := r.pool.QueryRow(ctx, `
		INSERT INTO members (name, phone, plan, start_date, end_date, sauna_sessions, balance, daily_days_paid)
		VALUES ($1,$2,$3,$4,$5,$6,0,$7)
		RETURNING `+memberCols,
		strings.TrimSpace(name), strings.TrimSpace(phone), string(tier),
		startDate, endDate, r.cat.SaunaBaseline(tier), dailyDays)
	return scanMember(row)
}

func (r *Repo) Get(ctx context.Context, id int64) (*Member, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+memberCols+` FROM members WHERE id = $1`, id)
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Update overwrites identity and schedule fields and re-derives the sauna
// baseline from the (possibly changed) plan. The balance is deliberately
// left untouched: it belongs to the billing engine.
func (r *Repo) Update(ctx context.Context, id int64, name, phone string, tier plans.Tier, startDate, endDate time.Time) (*Member, error) {
	if _, ok := r.cat.Get(tier); !ok {
		return nil, fmt.Errorf("members: unknown plan %q", tier)
	}
	if endDate.Before(startDate) {
		return nil, fmt.Errorf("members: end date %s before start date %s",
			endDate.Format("2006-01-02"), startDate.Format("2006-01-02"))
	}

	row := r.pool.QueryRow(ctx, `
		UPDATE members
		SET name = $2, phone = $3, plan = $4, start_date = $5, end_date = $6,
		    sauna_sessions = $7, updated_at = now()
		WHERE id = $1
		RETURNING `+memberCols,
		id, strings.TrimSpace(name), strings.TrimSpace(phone), string(tier),
		startDate, endDate, r.cat.SaunaBaseline(tier))
	m, err := scanMember(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return m, nil
}

// Delete removes the member together with every payment and attendance row
// that references it, in one transaction. Deleting an unknown id is a no-op.
func (r *Repo) Delete(ctx context.Context, id int64) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if _, err := tx.Exec(ctx, `DELETE FROM attendance WHERE member_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM payments WHERE member_id = $1`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(ctx, `DELETE FROM members WHERE id = $1`, id); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

// List returns members newest-first. Name and phone filters are
// case-insensitive substring matches; an empty tier means all plans.
func (r *Repo) List(ctx context.Context, f Filter) ([]Member, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberCols+`
		FROM members
		WHERE ($1 = '' OR name ILIKE '%' || $1 || '%')
		  AND ($2 = '' OR phone ILIKE '%' || $2 || '%')
		  AND ($3 = '' OR plan = $3)
		ORDER BY id DESC
	`, f.Name, f.Phone, string(f.Plan))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}

// ListExpiring returns active members whose membership ends within the next
// `within` days (inclusive), soonest first.
func (r *Repo) ListExpiring(ctx context.Context, today time.Time, within int) ([]Member, error) {
	y, m, d := today.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	rows, err := r.pool.Query(ctx, `
		SELECT `+memberCols+`
		FROM members
		WHERE end_date >= $1 AND end_date <= $2
		ORDER BY end_date, id
	`, day, day.AddDate(0, 0, within))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *m)
	}
	return out, rows.Err()
}
