package products

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog entry. Invoices copy product fields into their line
// items at creation time; they never reference products live.
type Product struct {
	ID           uuid.UUID `json:"id"`
	OwnerID      uuid.UUID `json:"owner_id"`
	Name         string    `json:"name"`
	Description  *string   `json:"description,omitempty"`
	Price        float64   `json:"price"`
	CurrencyCode string    `json:"currency_code"`
	ImageURL     *string   `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
