package dto

import "github.com/shopspring/decimal"

type ItemVentaRequest struct {
	ProductoID uint `json:"producto_id" validate:"required"`
	Cantidad   int  `json:"cantidad"    validate:"required,min=1"`
}

// RegistrarVentaRequest cubre creación y actualización de ventas. El total no
// se recibe: siempre se deriva de los items. El usuario actuante llega como
// parámetro explícito del servicio, nunca de estado ambiente.
type RegistrarVentaRequest struct {
	Fecha     string             `json:"fecha"      validate:"required,datetime=2006-01-02"`
	ClienteID uint               `json:"cliente_id" validate:"required"`
	Productos []ItemVentaRequest `json:"productos"  validate:"required,min=1,dive"`
	EstadoID  uint               `json:"estado"     validate:"required"`
}

type ActualizarEstadoVentaRequest struct {
	EstadoID uint `json:"estado" validate:"required"`
}

type ItemVentaResponse struct {
	ProductoID uint            `json:"producto_id"`
	Producto   string          `json:"producto"`
	Cantidad   int             `json:"cantidad"`
	Precio     decimal.Decimal `json:"precio"`
	Subtotal   decimal.Decimal `json:"subtotal"`
}

type VentaResponse struct {
	ID        uint                `json:"id"`
	Fecha     string              `json:"fecha"`
	Total     decimal.Decimal     `json:"total"`
	ClienteID uint                `json:"cliente_id"`
	Cliente   string              `json:"cliente,omitempty"`
	UsuarioID uint                `json:"usuario_id"`
	Estado    string              `json:"estado,omitempty"`
	EstadoID  uint                `json:"estado_id,omitempty"`
	Items     []ItemVentaResponse `json:"items"`
	CreatedAt string              `json:"created_at"`
}

// VentaFilter is bound from the query string of GET /v1/ventas.
type VentaFilter struct {
	FechaInicio string `form:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin"    validate:"omitempty,datetime=2006-01-02"`
	ClienteID   uint   `form:"cliente_id"`
	Page        int    `form:"page,default=1"   validate:"min=1"`
	Limit       int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type VentaListResponse struct {
	Data  []VentaResponse `json:"data"`
	Total int64           `json:"total"`
	Page  int             `json:"page"`
	Limit int             `json:"limit"`
}
