package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Producto es un artículo vendible (bombón, tableta, caja surtida) elaborado a
// partir de materias primas en proporciones fijas por unidad.
//
// CantidadDisponible la administra exclusivamente el libro de inventario:
// se descuenta al asociar el producto a una venta y se restaura al
// eliminar/reemplazar esa asociación. Nunca se escribe por el update genérico.
type Producto struct {
	ID                 uint            `gorm:"primaryKey"`
	Nombre             string          `gorm:"not null;index"`
	Categoria          string          `gorm:"not null"`
	Precio             decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CantidadDisponible int             `gorm:"not null;default:0"`
	StockMinimo        int             `gorm:"not null;default:5"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	MateriasPrimas []ProductoMateriaPrima `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
	VentaItems     []VentaProducto        `gorm:"foreignKey:ProductoID;constraint:OnDelete:CASCADE"`
}

func (Producto) TableName() string { return "productos" }
