package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Venta es una transacción con un cliente. Total es derivado: siempre igual a
// la suma de precio × cantidad de sus items al momento de asociarlos, nunca
// editable de forma independiente.
type Venta struct {
	ID        uint            `gorm:"primaryKey"`
	Fecha     time.Time       `gorm:"not null;index"`
	Total     decimal.Decimal `gorm:"type:decimal(12,2);not null;default:0"`
	ClienteID uint            `gorm:"not null;index"`
	UsuarioID uint            `gorm:"not null;index"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Cliente *Cliente           `gorm:"foreignKey:ClienteID"`
	Usuario *Usuario           `gorm:"foreignKey:UsuarioID"`
	Items   []VentaProducto    `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
	Estados []EstadoVentaVenta `gorm:"foreignKey:VentaID;constraint:OnDelete:CASCADE"`
}

func (Venta) TableName() string { return "ventas" }
