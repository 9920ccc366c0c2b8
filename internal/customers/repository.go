package customers

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billfold/billfold/internal/shared"
)

// Repository defines data access for customers.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Customer, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Customer, error)
	Create(ctx context.Context, customer Customer) (Customer, error)
	Update(ctx context.Context, customer Customer) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const customerColumns = `id, owner_id, first_name, last_name, gender, phone, address, email, created_at, updated_at`

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Customer
	for rows.Next() {
		c, err := scanCustomer(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, ownerID, id uuid.UUID) (Customer, error) {
	query := `SELECT ` + customerColumns + ` FROM customers WHERE id = $1 AND owner_id = $2`

	c, err := scanCustomer(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Customer{}, shared.ErrNotFound
	}
	return c, err
}

func (r *repository) Create(ctx context.Context, customer Customer) (Customer, error) {
	query := `
		INSERT INTO customers (id, owner_id, first_name, last_name, gender, phone, address, email, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id`

	now := time.Now()
	if customer.ID == uuid.Nil {
		customer.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, query,
		customer.ID, customer.OwnerID, customer.FirstName, customer.LastName,
		customer.Gender, customer.Phone, customer.Address, customer.Email, now,
	).Scan(&customer.ID)
	if err != nil {
		return Customer{}, err
	}
	customer.CreatedAt = now
	customer.UpdatedAt = now
	return customer, nil
}

func (r *repository) Update(ctx context.Context, customer Customer) error {
	query := `
		UPDATE customers
		SET first_name = $1, last_name = $2, gender = $3, phone = $4, address = $5, email = $6, updated_at = $7
		WHERE id = $8 AND owner_id = $9`

	tag, err := r.pool.Exec(ctx, query,
		customer.FirstName, customer.LastName, customer.Gender,
		customer.Phone, customer.Address, customer.Email,
		time.Now(), customer.ID, customer.OwnerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// Delete removes the customer row. Invoices keep their denormalized
// customer name and email snapshots.
func (r *repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM customers WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanCustomer(row pgx.Row) (Customer, error) {
	var c Customer
	err := row.Scan(&c.ID, &c.OwnerID, &c.FirstName, &c.LastName, &c.Gender,
		&c.Phone, &c.Address, &c.Email, &c.CreatedAt, &c.UpdatedAt)
	return c, err
}
