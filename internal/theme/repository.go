package theme

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/billfold/billfold/internal/shared"
)

// Repository defines data access for template themes.
type Repository interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (Theme, error)
	Create(ctx context.Context, t Theme) (Theme, error)
	Update(ctx context.Context, t Theme) error
}

type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed repository.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

const themeColumns = `id, owner_id, primary_color, secondary_color, accent_color, font_family, layout, logo_position, created_at, updated_at`

func (r *repository) GetByOwner(ctx context.Context, ownerID uuid.UUID) (Theme, error) {
	query := `SELECT ` + themeColumns + ` FROM template_settings WHERE owner_id = $1`

	var t Theme
	err := r.pool.QueryRow(ctx, query, ownerID).Scan(
		&t.ID, &t.OwnerID, &t.PrimaryColor, &t.SecondaryColor, &t.AccentColor,
		&t.FontFamily, &t.Layout, &t.LogoPosition, &t.CreatedAt, &t.UpdatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return Theme{}, shared.ErrNotFound
	}
	return t, err
}

func (r *repository) Create(ctx context.Context, t Theme) (Theme, error) {
	query := `
		INSERT INTO template_settings (id, owner_id, primary_color, secondary_color, accent_color, font_family, layout, logo_position, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $9)
		RETURNING id`

	now := time.Now()
	if t.ID == uuid.Nil {
		t.ID = uuid.New()
	}
	err := r.pool.QueryRow(ctx, query,
		t.ID, t.OwnerID, t.PrimaryColor, t.SecondaryColor, t.AccentColor,
		t.FontFamily, t.Layout, t.LogoPosition, now,
	).Scan(&t.ID)
	if err != nil {
		return Theme{}, err
	}
	t.CreatedAt = now
	t.UpdatedAt = now
	return t, nil
}

func (r *repository) Update(ctx context.Context, t Theme) error {
	query := `
		UPDATE template_settings
		SET primary_color = $1, secondary_color = $2, accent_color = $3,
			font_family = $4, layout = $5, logo_position = $6, updated_at = $7
		WHERE owner_id = $8`

	tag, err := r.pool.Exec(ctx, query,
		t.PrimaryColor, t.SecondaryColor, t.AccentColor, t.FontFamily,
		t.Layout, t.LogoPosition, time.Now(), t.OwnerID,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}
