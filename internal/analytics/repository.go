package analytics

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billfold/billfold/internal/invoices"
)

type pgRepository struct {
	pool *pgxpool.Pool
}

// NewRepository returns the Postgres backed aggregate queries.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &pgRepository{pool: pool}
}

// TotalsByCurrency sums item amounts plus tax per currency for invoices in
// the given status. Currencies come from the line items, so mixed-currency
// invoices contribute to every group they touch.
func (r *pgRepository) TotalsByCurrency(ctx context.Context, ownerID uuid.UUID, status invoices.Status) ([]CurrencyAmount, error) {
	query := `
		SELECT it.currency_code, SUM(it.subtotal * (1 + i.tax_rate / 100.0))
		FROM invoice_items it
		JOIN invoices i ON i.id = it.invoice_id
		WHERE i.owner_id = $1 AND i.status = $2
		GROUP BY it.currency_code
		ORDER BY it.currency_code`

	rows, err := r.pool.Query(ctx, query, ownerID, status)
	if err != nil {
		return nil, fmt.Errorf("analytics: totals by currency: %w", err)
	}
	defer rows.Close()

	out := make([]CurrencyAmount, 0, 4)
	for rows.Next() {
		var amount CurrencyAmount
		if err := rows.Scan(&amount.CurrencyCode, &amount.Amount); err != nil {
			return nil, fmt.Errorf("analytics: totals by currency: %w", err)
		}
		out = append(out, amount)
	}
	return out, rows.Err()
}

func (r *pgRepository) CountsByStatus(ctx context.Context, ownerID uuid.UUID) ([]StatusCount, error) {
	query := `
		SELECT status, COUNT(*)
		FROM invoices
		WHERE owner_id = $1
		GROUP BY status
		ORDER BY status`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("analytics: counts by status: %w", err)
	}
	defer rows.Close()

	out := make([]StatusCount, 0, 4)
	for rows.Next() {
		var count StatusCount
		if err := rows.Scan(&count.Status, &count.Count); err != nil {
			return nil, fmt.Errorf("analytics: counts by status: %w", err)
		}
		out = append(out, count)
	}
	return out, rows.Err()
}

// MonthlySeries returns invoiced and paid totals per calendar month for the
// trailing window, oldest month first. Months without invoices are omitted.
func (r *pgRepository) MonthlySeries(ctx context.Context, ownerID uuid.UUID, months int) ([]MonthlyPoint, error) {
	query := `
		SELECT to_char(date_trunc('month', created_at), 'YYYY-MM') AS month,
		       SUM(total) AS invoiced,
		       SUM(total) FILTER (WHERE status = 'paid') AS paid
		FROM invoices
		WHERE owner_id = $1
		  AND created_at >= date_trunc('month', now()) - ($2 - 1) * INTERVAL '1 month'
		GROUP BY 1
		ORDER BY 1`

	rows, err := r.pool.Query(ctx, query, ownerID, months)
	if err != nil {
		return nil, fmt.Errorf("analytics: monthly series: %w", err)
	}
	defer rows.Close()

	out := make([]MonthlyPoint, 0, months)
	for rows.Next() {
		var (
			point MonthlyPoint
			paid  *float64
		)
		if err := rows.Scan(&point.Month, &point.Invoiced, &paid); err != nil {
			return nil, fmt.Errorf("analytics: monthly series: %w", err)
		}
		if paid != nil {
			point.Paid = *paid
		}
		out = append(out, point)
	}
	return out, rows.Err()
}
