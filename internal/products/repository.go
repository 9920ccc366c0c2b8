package products

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billfold/billfold/internal/shared"
)

// Repository defines data access for products.
type Repository interface {
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Product, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (Product, error)
	Create(ctx context.Context, product Product) (Product, error)
	Update(ctx context.Context, product Product) error
	Delete(ctx context.Context, ownerID, id uuid.UUID) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const productColumns = `id, owner_id, name, description, price, currency_code, image_url, created_at, updated_at`

func (r *repository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE owner_id = $1 ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, query, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) Get(ctx context.Context, ownerID, id uuid.UUID) (Product, error) {
	query := `SELECT ` + productColumns + ` FROM products WHERE id = $1 AND owner_id = $2`

	p, err := scanProduct(r.pool.QueryRow(ctx, query, id, ownerID))
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, shared.ErrNotFound
	}
	return p, err
}

func (r *repository) Create(ctx context.Context, product Product) (Product, error) {
	query := `
		INSERT INTO products (id, owner_id, name, description, price, currency_code, image_url, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $8)
		RETURNING id`

	now := time.Now()
	if product.ID == uuid.Nil {
		product.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, query,
		product.ID, product.OwnerID, product.Name, product.Description,
		product.Price, product.CurrencyCode, product.ImageURL, now,
	).Scan(&product.ID)
	if err != nil {
		return Product{}, err
	}
	product.CreatedAt = now
	product.UpdatedAt = now
	return product, nil
}

func (r *repository) Update(ctx context.Context, product Product) error {
	query := `
		UPDATE products
		SET name = $1, description = $2, price = $3, currency_code = $4, image_url = $5, updated_at = $6
		WHERE id = $7 AND owner_id = $8`

	tag, err := r.pool.Exec(ctx, query,
		product.Name, product.Description, product.Price, product.CurrencyCode,
		product.ImageURL, time.Now(), product.ID, product.OwnerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM products WHERE id = $1 AND owner_id = $2`, id, ownerID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func scanProduct(row pgx.Row) (Product, error) {
	var p Product
	err := row.Scan(&p.ID, &p.OwnerID, &p.Name, &p.Description, &p.Price,
		&p.CurrencyCode, &p.ImageURL, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}
