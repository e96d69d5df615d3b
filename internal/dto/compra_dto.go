package dto

import "github.com/shopspring/decimal"

// RegistrarCompraRequest cubre creación y actualización: la actualización
// reemplaza todos los campos y reconcilia el stock (revertir y reaplicar).
type RegistrarCompraRequest struct {
	TipoTransaccion string          `json:"tipo_transaccion" validate:"required,oneof=compra ajuste"`
	Monto           decimal.Decimal `json:"monto"            validate:"min=0"`
	Descripcion     string          `json:"descripcion"      validate:"required"`
	Fecha           string          `json:"fecha"            validate:"required,datetime=2006-01-02"`
	Categoria       string          `json:"categoria"        validate:"required,max=100"`
	UsuarioID       uint            `json:"usuario_id"       validate:"required"`
	MateriaPrimaID  uint            `json:"materia_prima_id" validate:"required"`
	Cantidad        decimal.Decimal `json:"cantidad"         validate:"min=0"`
}

type CompraResponse struct {
	ID              uint            `json:"id"`
	TipoTransaccion string          `json:"tipo_transaccion"`
	Monto           decimal.Decimal `json:"monto"`
	Descripcion     string          `json:"descripcion"`
	Fecha           string          `json:"fecha"`
	Categoria       string          `json:"categoria"`
	UsuarioID       uint            `json:"usuario_id"`
	MateriaPrimaID  uint            `json:"materia_prima_id"`
	MateriaPrima    string          `json:"materia_prima,omitempty"`
	Cantidad        decimal.Decimal `json:"cantidad"`
}

// CompraFilter is bound from the query string of GET /v1/compras.
type CompraFilter struct {
	Tipo      string `form:"tipo"      validate:"omitempty,oneof=compra ajuste incremento decremento"`
	Categoria string `form:"categoria"`
	Page      int    `form:"page,default=1"   validate:"min=1"`
	Limit     int    `form:"limit,default=50" validate:"min=1,max=200"`
}

type CompraListResponse struct {
	Data  []CompraResponse `json:"data"`
	Total int64            `json:"total"`
	Page  int              `json:"page"`
	Limit int              `json:"limit"`
}
