package business

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billfold/billfold/internal/shared"
)

// Repository defines data access for business profiles.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Info, error)
	Create(ctx context.Context, info Info) (Info, error)
	Update(ctx context.Context, info Info) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const infoColumns = `id, owner_id, business_name, address, tax_number, phone, email, logo_url, default_currency, tax_rate, created_at, updated_at`

func (r *repository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (Info, error) {
	query := `SELECT ` + infoColumns + ` FROM business_info WHERE owner_id = $1`

	var info Info
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&info.ID, &info.OwnerID, &info.BusinessName, &info.Address, &info.TaxNumber,
		&info.Phone, &info.Email, &info.LogoURL, &info.DefaultCurrency, &info.TaxRate,
		&info.CreatedAt, &info.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Info{}, shared.ErrNotFound
	}
	return info, err
}

func (r *repository) Create(ctx context.Context, info Info) (Info, error) {
	query := `
		INSERT INTO business_info (id, owner_id, business_name, address, tax_number, phone, email, logo_url, default_currency, tax_rate, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $11)
		RETURNING id`

	now := time.Now()
	if info.ID == uuid.Nil {
		info.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, query,
		info.ID, info.OwnerID, info.BusinessName, info.Address, info.TaxNumber,
		info.Phone, info.Email, info.LogoURL, info.DefaultCurrency, info.TaxRate, now,
	).Scan(&info.ID)
	if err != nil {
		return Info{}, err
	}
	info.CreatedAt = now
	info.UpdatedAt = now
	return info, nil
}

func (r *repository) Update(ctx context.Context, info Info) error {
	query := `
		UPDATE business_info
		SET business_name = $1, address = $2, tax_number = $3, phone = $4, email = $5,
			logo_url = $6, default_currency = $7, tax_rate = $8, updated_at = $9
		WHERE owner_id = $10`

	tag, err := r.pool.Exec(ctx, query,
		info.BusinessName, info.Address, info.TaxNumber, info.Phone, info.Email,
		info.LogoURL, info.DefaultCurrency, info.TaxRate, time.Now(), info.OwnerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
