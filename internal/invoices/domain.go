package invoices

import (
	"time"

	"github.com/google/uuid"
)

// Status enumerates invoice statuses. The lifecycle is flat: the UI offers
// draft, sent, paid and cancelled, and no transition order is enforced.
type Status string

const (
	StatusDraft     Status = "draft"
	StatusSent      Status = "sent"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// ValidStatus reports whether s is one of the accepted values.
func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusCancelled:
		return true
	}
	return false
}

// Invoice model. Customer name and email are denormalized snapshots taken at
// creation; deleting the customer afterwards does not touch them. Amounts
// are computed once at creation and never recomputed.
type Invoice struct {
	ID            uuid.UUID  `json:"id"`
	OwnerID       uuid.UUID  `json:"owner_id"`
	Number        string     `json:"invoice_number"`
	CustomerName  string     `json:"customer_name"`
	CustomerEmail *string    `json:"customer_email,omitempty"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Notes         *string    `json:"notes,omitempty"`
	Subtotal      float64    `json:"subtotal"`
	TaxRate       float64    `json:"tax_rate"`
	TaxAmount     float64    `json:"tax_amount"`
	Total         float64    `json:"total"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// Item is one line on an invoice, created atomically with it and never
// edited independently. ProductID is a weak reference that may dangle once
// the product is deleted; the copied description and price survive.
type Item struct {
	ID              uuid.UUID  `json:"id"`
	InvoiceID       uuid.UUID  `json:"invoice_id"`
	ProductID       *uuid.UUID `json:"product_id,omitempty"`
	Description     string     `json:"description"`
	Quantity        int        `json:"quantity"`
	UnitPrice       float64    `json:"unit_price"`
	CurrencyCode    string     `json:"currency_code"`
	Subtotal        float64    `json:"subtotal"`
	ProductImageURL *string    `json:"product_image_url,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}

// InvoiceWithItems is an invoice enriched with its line items.
type InvoiceWithItems struct {
	Invoice
	Items []Item `json:"items"`
}

// ItemInput describes one line of a new invoice.
type ItemInput struct {
	ProductID    *uuid.UUID
	Description  string
	Quantity     int
	UnitPrice    float64
	CurrencyCode string
}

// CreateInvoiceInput carries everything needed to create an invoice with its
// items in one transaction.
type CreateInvoiceInput struct {
	OwnerID       uuid.UUID
	CustomerName  string
	CustomerEmail *string
	DueDate       *time.Time
	Notes         *string
	Items         []ItemInput
}

// UpdateInvoiceInput patches the mutable invoice fields. Amounts are never
// part of an update.
type UpdateInvoiceInput struct {
	Status  *Status
	Notes   *string
	DueDate *time.Time
}
