package dto

import "github.com/shopspring/decimal"

type CrearMateriaPrimaRequest struct {
	Nombre             string          `json:"nombre"              validate:"required,max=255"`
	CantidadDisponible decimal.Decimal `json:"cantidad_disponible" validate:"min=0"`
	UnidadMedida       string          `json:"unidad_medida"       validate:"required,max=50"`
	CostoUnitario      decimal.Decimal `json:"costo_unitario"      validate:"min=0"`
}

// ActualizarMateriaPrimaRequest no acepta cantidad_disponible: el stock se
// mueve únicamente por compras y ajustes de inventario.
type ActualizarMateriaPrimaRequest struct {
	Nombre        string          `json:"nombre"         validate:"required,max=255"`
	UnidadMedida  string          `json:"unidad_medida"  validate:"required,max=50"`
	CostoUnitario decimal.Decimal `json:"costo_unitario" validate:"min=0"`
}

type MateriaPrimaResponse struct {
	ID                 uint            `json:"id"`
	Nombre             string          `json:"nombre"`
	CantidadDisponible decimal.Decimal `json:"cantidad_disponible"`
	UnidadMedida       string          `json:"unidad_medida"`
	CostoUnitario      decimal.Decimal `json:"costo_unitario"`
}

// AjusteInventarioRequest es el ajuste manual de stock de una materia prima.
// "incremento" suma; "decremento" resta con piso en cero.
type AjusteInventarioRequest struct {
	MateriaPrimaID uint            `json:"materia_prima_id" validate:"required"`
	Cantidad       decimal.Decimal `json:"cantidad"         validate:"required"`
	Tipo           string          `json:"tipo"             validate:"required,oneof=incremento decremento"`
}
