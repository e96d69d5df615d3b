package model

import "time"

// EstadoVenta es una etapa nominal del ciclo de vida de una venta
// (Pendiente, Procesando, Completada, Cancelada, Reembolsada).
type EstadoVenta struct {
	ID        uint   `gorm:"primaryKey"`
	Nombre    string `gorm:"uniqueIndex;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EstadoVenta) TableName() string { return "estados_ventas" }

// EstadoVentaVenta asocia una venta con su estado. La asociación lleva
// timestamps: CreatedAt marca cuándo la venta entró en ese estado, lo que
// alimenta el KPI de tiempo promedio hasta "Completada".
type EstadoVentaVenta struct {
	ID            uint `gorm:"primaryKey"`
	VentaID       uint `gorm:"not null;index"`
	EstadoVentaID uint `gorm:"not null;index"`
	CreatedAt     time.Time
	UpdatedAt     time.Time

	Estado *EstadoVenta `gorm:"foreignKey:EstadoVentaID"`
}

func (EstadoVentaVenta) TableName() string { return "estado_venta_venta" }
