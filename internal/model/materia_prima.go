package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// MateriaPrima es un insumo consumible (cacao, leche, azúcar) con stock propio.
// CantidadDisponible solo se mueve a través de compras y ajustes de inventario;
// debe reconciliar con la suma firmada de todas las compras que la referencian.
type MateriaPrima struct {
	ID                 uint            `gorm:"primaryKey"`
	Nombre             string          `gorm:"not null;index"`
	CantidadDisponible decimal.Decimal `gorm:"type:decimal(12,3);not null;default:0"`
	UnidadMedida       string          `gorm:"not null"`
	CostoUnitario      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	CreatedAt          time.Time
	UpdatedAt          time.Time

	Productos []ProductoMateriaPrima `gorm:"foreignKey:MateriaPrimaID;constraint:OnDelete:CASCADE"`
	Compras   []Compra               `gorm:"foreignKey:MateriaPrimaID;constraint:OnDelete:CASCADE"`
}

func (MateriaPrima) TableName() string { return "materia_primas" }
