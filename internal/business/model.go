package business

import (
	"time"

	"github.com/google/uuid"
)

// Info is the single business profile row per owner.
type Info struct {
	ID              uuid.UUID `json:"id"`
	OwnerID         uuid.UUID `json:"owner_id"`
	BusinessName    string    `json:"business_name"`
	Address         *string   `json:"address,omitempty"`
	TaxNumber       *string   `json:"tax_number,omitempty"`
	Phone           *string   `json:"phone,omitempty"`
	Email           *string   `json:"email,omitempty"`
	LogoURL         *string   `json:"logo_url,omitempty"`
	DefaultCurrency string    `json:"default_currency"`
	TaxRate         float64   `json:"tax_rate"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// Defaults used when a profile row is auto-provisioned on first access.
const (
	DefaultBusinessName = "My Business"
	DefaultCurrency     = "USD"
	DefaultTaxRate      = 10.0
)
