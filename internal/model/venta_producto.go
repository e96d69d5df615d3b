package model

import "time"

// VentaProducto vincula una venta con un producto vendido y su cantidad.
type VentaProducto struct {
	ID         uint `gorm:"primaryKey"`
	VentaID    uint `gorm:"not null;index;uniqueIndex:idx_venta_producto"`
	ProductoID uint `gorm:"not null;index;uniqueIndex:idx_venta_producto"`
	Cantidad   int  `gorm:"not null"`
	CreatedAt  time.Time
	UpdatedAt  time.Time

	Producto *Producto `gorm:"foreignKey:ProductoID"`
}

func (VentaProducto) TableName() string { return "venta_producto" }
