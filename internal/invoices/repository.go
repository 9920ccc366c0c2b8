package invoices

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billfold/billfold/internal/platform/db"
	"github.com/billfold/billfold/internal/shared"
)

// Amounts is the single subtotal/tax/total triple persisted on an invoice.
type Amounts struct {
	Subtotal  float64
	TaxRate   float64
	TaxAmount float64
	Total     float64
}

// Repository defines data access for invoices and their line items.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]InvoiceWithItems, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (InvoiceWithItems, error)
	Create(ctx context.Context, input CreateInvoiceInput, amounts Amounts) (Invoice, error)
	Update(ctx context.Context, ownerID, id uuid.UUID, patch UpdateInvoiceInput) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const invoiceColumns = `id, owner_id, invoice_number, customer_name, customer_email, due_date, notes,
	subtotal, tax_rate, tax_amount, total, status, created_at, updated_at`

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]InvoiceWithItems, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var invoices []Invoice
	for rows.Next() {
		inv, err := scanInvoice(rows)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	rows.Close()

	out := make([]InvoiceWithItems, 0, len(invoices))
	for _, inv := range invoices {
		items, err := r.listItems(ctx, inv.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, InvoiceWithItems{Invoice: inv, Items: items})
	}
	return out, nil
}

func (r *repository) Get(ctx context.Context, ownerID, id uuid.UUID) (InvoiceWithItems, error) {
	query := `SELECT ` + invoiceColumns + ` FROM invoices WHERE id = $1 AND owner_id = $2`

	inv, err := scanInvoice(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return InvoiceWithItems{}, shared.ErrNotFound
	}
	if err != nil {
		return InvoiceWithItems{}, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return InvoiceWithItems{}, err
	}
	return InvoiceWithItems{Invoice: inv, Items: items}, nil
}

// Create persists the invoice and its items in one transaction. The invoice
// number is derived inside the transaction from the owner's most recent
// invoice, with that row locked to serialise concurrent creations.
func (r *repository) Create(ctx context.Context, input CreateInvoiceInput, amounts Amounts) (Invoice, error) {
	var created Invoice

	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var last string
		err := tx.QueryRow(ctx,
			`SELECT invoice_number FROM invoices WHERE owner_id = $1 ORDER BY created_at DESC LIMIT 1 FOR UPDATE`,
			input.OwnerID,
		).Scan(&last)
		if err != nil && !errors.Is(err, pgx.ErrNoRows) {
			return err
		}

		number, err := NextNumber(last)
		if err != nil {
			return err
		}

		now := time.Now()
		created = Invoice{
			ID:            uuid.New(),
			OwnerID:       input.OwnerID,
			Number:        number,
			CustomerName:  input.CustomerName,
			CustomerEmail: input.CustomerEmail,
			DueDate:       input.DueDate,
			Notes:         input.Notes,
			Subtotal:      amounts.Subtotal,
			TaxRate:       amounts.TaxRate,
			TaxAmount:     amounts.TaxAmount,
			Total:         amounts.Total,
			Status:        StatusDraft,
			CreatedAt:     now,
			UpdatedAt:     now,
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO invoices (id, owner_id, invoice_number, customer_name, customer_email, due_date, notes,
				subtotal, tax_rate, tax_amount, total, status, created_at, updated_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $13)`,
			created.ID, created.OwnerID, created.Number, created.CustomerName, created.CustomerEmail,
			created.DueDate, created.Notes, created.Subtotal, created.TaxRate, created.TaxAmount,
			created.Total, created.Status, now,
		)
		if err != nil {
			return err
		}

		for _, item := range input.Items {
			_, err = tx.Exec(ctx, `
				INSERT INTO invoice_items (id, invoice_id, product_id, description, quantity, unit_price, currency_code, subtotal, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
				uuid.New(), created.ID, item.ProductID, item.Description, item.Quantity,
				item.UnitPrice, item.CurrencyCode, item.UnitPrice*float64(item.Quantity), now,
			)
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return Invoice{}, err
	}
	return created, nil
}

// Update patches status, notes and due date. Amount columns are deliberately
// not part of this statement.
func (r *repository) Update(ctx context.Context, ownerID, id uuid.UUID, patch UpdateInvoiceInput) error {
	query := `
		UPDATE invoices
		SET status = COALESCE($1, status),
			notes = COALESCE($2, notes),
			due_date = COALESCE($3, due_date),
			updated_at = $4
		WHERE id = $5 AND owner_id = $6`

	tag, err := r.pool.Exec(ctx, query, patch.Status, patch.Notes, patch.DueDate, time.Now(), id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the invoice and its items in one transaction rather than
// relying on store-side cascade behavior.
func (r *repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM invoice_items WHERE invoice_id = $1`, id); err != nil {
			return err
		}
		tag, err := tx.Exec(ctx, `DELETE FROM invoices WHERE id = $1 AND owner_id = $2`, id, ownerID)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		return nil
	})
}

// listItems loads the line items for one invoice, resolving the product
// image reference through a left join so dangling references come back nil.
func (r *repository) listItems(ctx context.Context, invoiceID uuid.UUID) ([]Item, error) {
	query := `
		SELECT it.id, it.invoice_id, it.product_id, it.description, it.quantity,
			it.unit_price, it.currency_code, it.subtotal, p.image_url, it.created_at
		FROM invoice_items it
		LEFT JOIN products p ON p.id = it.product_id
		WHERE it.invoice_id = $1
		ORDER BY it.created_at, it.id`

	rows, err := r.pool.Query(ctx, query, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		var it Item
		err := rows.Scan(&it.ID, &it.InvoiceID, &it.ProductID, &it.Description, &it.Quantity,
			&it.UnitPrice, &it.CurrencyCode, &it.Subtotal, &it.ProductImageURL, &it.CreatedAt)
		if err != nil {
			return nil, err
		}
		items = append(items, it)
	}
	return items, rows.Err()
}

func scanInvoice(row pgx.Row) (Invoice, error) {
	var inv Invoice
	err := row.Scan(&inv.ID, &inv.OwnerID, &inv.Number, &inv.CustomerName, &inv.CustomerEmail,
		&inv.DueDate, &inv.Notes, &inv.Subtotal, &inv.TaxRate, &inv.TaxAmount, &inv.Total,
		&inv.Status, &inv.CreatedAt, &inv.UpdatedAt)
	return inv, err
}
