package transport

type RegisterRequest struct {
	Name     string `json:"name"     validate:"required"`
	Email    string `json:"email"    validate:"required"`
	Password string `json:"password" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateUserRequest leaves a field untouched when it is absent. Password is not updatable here.
type UpdateUserRequest struct {
	Name  *string `json:"name"  validate:"omitnil,min=1"`
	Email *string `json:"email" validate:"omitnil,min=1"`
	Role  *string `json:"role"  validate:"omitnil,oneof=admin customer"`
}

type CreateProductRequest struct {
	Name   *string  `json:"name"   validate:"required,min=1"`
	Price  *float64 `json:"price"  validate:"required"`
	Amount *float64 `json:"amount"`
	Img    *string  `json:"img"`
}

type UpdateProductRequest struct {
	Name   *string  `json:"name"   validate:"omitnil,min=1"`
	Price  *float64 `json:"price"`
	Amount *float64 `json:"amount"`
	Img    *string  `json:"img"`
}
