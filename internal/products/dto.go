package products

type ProductForm struct {
	Name         string  `json:"name" validate:"required,max=200"`
	Description  *string `json:"description,omitempty" validate:"omitempty,max=1000"`
	Price        float64 `json:"price" validate:"required,gt=0"`
	CurrencyCode string  `json:"currency_code" validate:"required,len=3,uppercase"`
	ImageURL     *string `json:"image_url,omitempty" validate:"omitempty,max=2000"`
}
