package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProductoMateriaPrima define la receta: cuánta materia prima consume una
// unidad del producto.
type ProductoMateriaPrima struct {
	ID                uint            `gorm:"primaryKey"`
	ProductoID        uint            `gorm:"not null;index;uniqueIndex:idx_producto_materia"`
	MateriaPrimaID    uint            `gorm:"not null;index;uniqueIndex:idx_producto_materia"`
	CantidadPorUnidad decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt         time.Time
	UpdatedAt         time.Time

	Producto     *Producto     `gorm:"foreignKey:ProductoID"`
	MateriaPrima *MateriaPrima `gorm:"foreignKey:MateriaPrimaID"`
}

func (ProductoMateriaPrima) TableName() string { return "producto_materia_prima" }
