package dto

import "github.com/shopspring/decimal"

type CrearProductoRequest struct {
	Nombre    string          `json:"nombre"    validate:"required,max=255"`
	Categoria string          `json:"categoria" validate:"required,max=100"`
	Precio    decimal.Decimal `json:"precio"    validate:"min=0"`
	// CantidadDisponible es el stock inicial; después de la creación solo el
	// libro de inventario lo modifica.
	CantidadDisponible int `json:"cantidad_disponible" validate:"min=0"`
	StockMinimo        int `json:"stock_minimo"        validate:"min=0"`
}

// ActualizarProductoRequest excluye cantidad_disponible a propósito: el stock
// pertenece al libro de inventario, no al update genérico.
type ActualizarProductoRequest struct {
	Nombre      string          `json:"nombre"       validate:"required,max=255"`
	Categoria   string          `json:"categoria"    validate:"required,max=100"`
	Precio      decimal.Decimal `json:"precio"       validate:"min=0"`
	StockMinimo int             `json:"stock_minimo" validate:"min=0"`
}

type ProductoResponse struct {
	ID                 uint                     `json:"id"`
	Nombre             string                   `json:"nombre"`
	Categoria          string                   `json:"categoria"`
	Precio             decimal.Decimal          `json:"precio"`
	CantidadDisponible int                      `json:"cantidad_disponible"`
	StockMinimo        int                      `json:"stock_minimo"`
	MateriasPrimas     []VinculoRecetaResponse  `json:"materias_primas,omitempty"`
}

// CrearVinculoRequest asocia una materia prima a la receta de un producto.
type CrearVinculoRequest struct {
	MateriaPrimaID    uint            `json:"materia_prima_id"    validate:"required"`
	CantidadPorUnidad decimal.Decimal `json:"cantidad_por_unidad" validate:"min=0"`
}

type VinculoRecetaResponse struct {
	MateriaPrimaID    uint            `json:"materia_prima_id"`
	Nombre            string          `json:"nombre"`
	UnidadMedida      string          `json:"unidad_medida"`
	CantidadPorUnidad decimal.Decimal `json:"cantidad_por_unidad"`
}
