package customers

type CustomerForm struct {
	FirstName string  `json:"first_name" validate:"required,max=100"`
	LastName  string  `json:"last_name" validate:"required,max=100"`
	Gender    *string `json:"gender,omitempty" validate:"omitempty,oneof=male female other"`
	Phone     *string `json:"phone,omitempty" validate:"omitempty,max=50"`
	Address   *string `json:"address,omitempty" validate:"omitempty,max=500"`
	Email     *string `json:"email,omitempty" validate:"omitempty,email"`
}
