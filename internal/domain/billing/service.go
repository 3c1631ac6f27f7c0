package billing

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"gymdesk/internal/domain/members"
	"gymdesk/internal/domain/payments"
	"gymdesk/internal/domain/plans"
	"gymdesk/internal/infra/metrics"
)

var (
	ErrInvalidAmount = errors.New("billing: amount must be positive")
	ErrInvalidMethod = errors.New("billing: unknown payment method")
	ErrInvalidDays   = errors.New("billing: days paid must not be negative")
)

// Service is the billing engine: it turns a payment event into an updated
// membership state. Every mutation of a member's balance, expiry or sauna
// counter goes through here.
type Service struct {
	pool *pgxpool.Pool
	cat  *plans.Catalog
	met  *metrics.Metrics
	now  func() time.Time
}

func NewService(pool *pgxpool.Pool, cat *plans.Catalog, met *metrics.Metrics) *Service {
	return &Service{pool: pool, cat: cat, met: met, now: time.Now}
}

func dateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// RecordPayment validates the payment, then applies it to the member in a
// single transaction: the ledger entry, the new balance, the expiry and
// the sauna counter commit together or not at all. The member row is
// locked for the duration, so concurrent payments to one member serialize.
func (s *Service) RecordPayment(ctx context.Context, memberID int64, amount int64, note string, method payments.Method, daysPaid int) (bool, error) {
	if amount <= 0 {
		return false, ErrInvalidAmount
	}
	if !method.Valid() {
		return false, ErrInvalidMethod
	}
	if daysPaid < 0 {
		return false, ErrInvalidDays
	}

	today := dateOnly(s.now())

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return false, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var m members.Member
	err = tx.QueryRow(ctx, `
		SELECT id, plan, end_date, sauna_sessions, balance, daily_days_paid
		FROM members
		WHERE id = $1
		FOR UPDATE
	`, memberID).Scan(&m.ID, &m.Plan, &m.EndDate, &m.SaunaSessions, &m.Balance, &m.DailyDaysPaid)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return false, members.ErrNotFound
		}
		return false, err
	}

	p, ok := s.cat.Get(m.Plan)
	if !ok {
		return false, fmt.Errorf("billing: member %d has unknown plan %q", m.ID, m.Plan)
	}

	out := apply(p, &m, amount, daysPaid, today)

	_, err = tx.Exec(ctx, `
		INSERT INTO payments (member_id, amount, note, payment_date, payment_method, days_paid)
		VALUES ($1,$2,$3,$4,$5,$6)
	`, memberID, amount, note, today, string(method), daysPaid)
	if err != nil {
		return false, err
	}

	_, err = tx.Exec(ctx, `
		UPDATE members
		SET end_date = $2, balance = $3, sauna_sessions = $4, daily_days_paid = $5, updated_at = now()
		WHERE id = $1
	`, memberID, out.EndDate, out.Balance, out.SaunaSessions, out.DailyDaysPaid)
	if err != nil {
		return false, err
	}

	if err := tx.Commit(ctx); err != nil {
		return false, err
	}

	if s.met != nil {
		s.met.PaymentsRecorded.WithLabelValues(string(method)).Inc()
		if out.Renewed {
			s.met.Renewals.WithLabelValues(string(m.Plan)).Inc()
		}
	}
	return out.Renewed, nil
}

// UseSaunaSession consumes one sauna session. Running out of sessions is a
// normal outcome, reported as ok=false; only an unknown member is an error.
// The decrement is a single conditional UPDATE, so the counter can never
// go negative however many callers race.
func (s *Service) UseSaunaSession(ctx context.Context, memberID int64) (bool, int, error) {
	var remaining int
	err := s.pool.QueryRow(ctx, `
		UPDATE members
		SET sauna_sessions = sauna_sessions - 1, updated_at = now()
		WHERE id = $1 AND sauna_sessions > 0
		RETURNING sauna_sessions
	`, memberID).Scan(&remaining)
	if err == nil {
		if s.met != nil {
			s.met.SaunaSessionsUsed.Inc()
		}
		return true, remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return false, 0, err
	}

	// either no member or no sessions left
	var exists bool
	if err := s.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM members WHERE id = $1)`, memberID).Scan(&exists); err != nil {
		return false, 0, err
	}
	if !exists {
		return false, 0, members.ErrNotFound
	}
	return false, 0, nil
}

// RemainingDue is the display figure "still owed toward the next period":
// plan price minus the current balance, floored at zero. Not the same
// thing as the lifetime payment total.
func (s *Service) RemainingDue(m *members.Member) int64 {
	p, ok := s.cat.Get(m.Plan)
	if !ok || p.Tier == plans.Daily {
		return 0
	}
	if due := p.Price - m.Balance; due > 0 {
		return due
	}
	return 0
}
