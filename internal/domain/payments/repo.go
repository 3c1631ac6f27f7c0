package payments

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ pool *pgxpool.Pool }

func NewRepo(pool *pgxpool.Pool) *Repo { return &Repo{pool: pool} }

const paymentCols = `id, member_id, amount, note, payment_date, payment_method, days_paid`

func (r *Repo) ListByMember(ctx context.Context, memberID int64) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentCols+`
		FROM payments
		WHERE member_id = $1
		ORDER BY id DESC
	`, memberID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Amount, &p.Note, &p.Date, &p.Method, &p.DaysPaid); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// List returns the full payment journal, newest entries first.
func (r *Repo) List(ctx context.Context) ([]Payment, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+paymentCols+`
		FROM payments
		ORDER BY id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Payment
	for rows.Next() {
		var p Payment
		if err := rows.Scan(&p.ID, &p.MemberID, &p.Amount, &p.Note, &p.Date, &p.Method, &p.DaysPaid); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// SumByMember is the member's lifetime paid total. Distinct from the
// member's balance, which only holds the unconsumed remainder toward the
// next renewal.
func (r *Repo) SumByMember(ctx context.Context, memberID int64) (int64, error) {
	var total int64
	err := r.pool.QueryRow(ctx, `
		SELECT COALESCE(SUM(amount), 0) FROM payments WHERE member_id = $1
	`, memberID).Scan(&total)
	return total, err
}
