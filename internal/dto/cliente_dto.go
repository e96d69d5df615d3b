package dto

type CrearClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefono *string `json:"telefono" validate:"omitempty,max=50"`
}

// ActualizarClienteRequest lista explícitamente los campos mutables.
type ActualizarClienteRequest struct {
	Nombre   string  `json:"nombre"   validate:"required,max=255"`
	Email    *string `json:"email"    validate:"omitempty,email"`
	Telefono *string `json:"telefono" validate:"omitempty,max=50"`
}

type ClienteResponse struct {
	ID       uint    `json:"id"`
	Nombre   string  `json:"nombre"`
	Email    *string `json:"email"`
	Telefono *string `json:"telefono"`
}
