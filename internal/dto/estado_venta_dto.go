package dto

type CrearEstadoVentaRequest struct {
	Nombre string `json:"nombre" validate:"required,max=100"`
}

type EstadoVentaResponse struct {
	ID     uint   `json:"id"`
	Nombre string `json:"nombre"`
}
