package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de transacción de una Compra. "compra" y "ajuste" llegan del caller;
// "incremento" y "decremento" los genera el ajuste manual de inventario como
// registro de auditoría.
const (
	TipoCompra     = "compra"
	TipoAjuste     = "ajuste"
	TipoIncremento = "incremento"
	TipoDecremento = "decremento"
)

// Compra es todo evento que afecta el stock de una materia prima: una
// adquisición real o un ajuste manual. Cantidad se suma al stock al crearla y
// se resta al eliminarla; la actualización revierte y reaplica.
type Compra struct {
	ID              uint            `gorm:"primaryKey"`
	TipoTransaccion string          `gorm:"not null;index"`
	Monto           decimal.Decimal `gorm:"type:decimal(12,2);not null"`
	Descripcion     string          `gorm:"not null"`
	Fecha           time.Time       `gorm:"not null;index"`
	Categoria       string          `gorm:"not null"`
	UsuarioID       uint            `gorm:"not null;index"`
	MateriaPrimaID  uint            `gorm:"not null;index"`
	Cantidad        decimal.Decimal `gorm:"type:decimal(12,3);not null"`
	CreatedAt       time.Time
	UpdatedAt       time.Time

	Usuario      *Usuario      `gorm:"foreignKey:UsuarioID"`
	MateriaPrima *MateriaPrima `gorm:"foreignKey:MateriaPrimaID"`
}

func (Compra) TableName() string { return "compras" }
