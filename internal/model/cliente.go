package model

import "time"

// Cliente es un comprador registrado. Email es opcional pero único cuando existe.
type Cliente struct {
	ID        uint    `gorm:"primaryKey"`
	Nombre    string  `gorm:"not null;index"`
	Email     *string `gorm:"uniqueIndex"`
	Telefono  *string
	CreatedAt time.Time
	UpdatedAt time.Time

	Ventas []Venta `gorm:"foreignKey:ClienteID;constraint:OnDelete:CASCADE"`
}

func (Cliente) TableName() string { return "clientes" }
