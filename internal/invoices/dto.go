package invoices

import "time"

type ItemForm struct {
	ProductID    *string `json:"product_id,omitempty" validate:"omitempty,uuid4"`
	Description  string  `json:"description" validate:"required,max=500"`
	Quantity     int     `json:"quantity" validate:"required,gt=0"`
	UnitPrice    float64 `json:"unit_price" validate:"required,gt=0"`
	CurrencyCode string  `json:"currency_code" validate:"required,len=3,uppercase"`
}

type CreateInvoiceForm struct {
	CustomerName  string     `json:"customer_name" validate:"required,max=200"`
	CustomerEmail *string    `json:"customer_email,omitempty" validate:"omitempty,email"`
	DueDate       *time.Time `json:"due_date,omitempty"`
	Notes         *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	Items         []ItemForm `json:"items" validate:"required,min=1,dive"`
}

type UpdateInvoiceForm struct {
	Status  *string    `json:"status,omitempty" validate:"omitempty,oneof=draft sent paid cancelled"`
	Notes   *string    `json:"notes,omitempty" validate:"omitempty,max=2000"`
	DueDate *time.Time `json:"due_date,omitempty"`
}

type PreviewForm struct {
	Items []ItemForm `json:"items" validate:"required,dive"`
}
