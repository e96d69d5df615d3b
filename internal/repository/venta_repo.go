package repository

import (
	"context"
	"time"

	"chocolateria/internal/dto"
	"chocolateria/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type VentaRepository interface {
	CreateTx(tx *gorm.DB, v *model.Venta) error
	FindByID(ctx context.Context, id uint) (*model.Venta, error)
	FindForUpdateTx(tx *gorm.DB, id uint) (*model.Venta, error)
	UpdateCamposTx(tx *gorm.DB, id uint, fecha time.Time, clienteID uint, total decimal.Decimal) error
	UpdateTotalTx(tx *gorm.DB, id uint, total decimal.Decimal) error
	DeleteTx(tx *gorm.DB, id uint) error

	// Items venta ↔ producto
	CreateItemTx(tx *gorm.DB, item *model.VentaProducto) error
	DetachProductosTx(tx *gorm.DB, ventaID uint) error

	// Estado: semántica sync — una venta tiene un único estado vigente.
	SyncEstadoTx(tx *gorm.DB, ventaID, estadoID uint) error
	DetachEstadosTx(tx *gorm.DB, ventaID uint) error

	List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error)

	DB() *gorm.DB
}

type ventaRepo struct{ db *gorm.DB }

func NewVentaRepository(db *gorm.DB) VentaRepository { return &ventaRepo{db: db} }

func (r *ventaRepo) CreateTx(tx *gorm.DB, v *model.Venta) error {
	return tx.Create(v).Error
}

func (r *ventaRepo) FindByID(ctx context.Context, id uint) (*model.Venta, error) {
	var v model.Venta
	err := r.db.WithContext(ctx).
		Preload("Cliente").Preload("Usuario").
		Preload("Items.Producto").
		Preload("Estados.Estado").
		First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) FindForUpdateTx(tx *gorm.DB, id uint) (*model.Venta, error) {
	var v model.Venta
	err := tx.Preload("Items").First(&v, id).Error
	return &v, err
}

func (r *ventaRepo) UpdateCamposTx(tx *gorm.DB, id uint, fecha time.Time, clienteID uint, total decimal.Decimal) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Updates(map[string]interface{}{
		"fecha":      fecha,
		"cliente_id": clienteID,
		"total":      total,
	}).Error
}

func (r *ventaRepo) UpdateTotalTx(tx *gorm.DB, id uint, total decimal.Decimal) error {
	return tx.Model(&model.Venta{}).Where("id = ?", id).Update("total", total).Error
}

func (r *ventaRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Venta{}, id).Error
}

func (r *ventaRepo) CreateItemTx(tx *gorm.DB, item *model.VentaProducto) error {
	return tx.Create(item).Error
}

func (r *ventaRepo) DetachProductosTx(tx *gorm.DB, ventaID uint) error {
	return tx.Where("venta_id = ?", ventaID).Delete(&model.VentaProducto{}).Error
}

func (r *ventaRepo) SyncEstadoTx(tx *gorm.DB, ventaID, estadoID uint) error {
	if err := tx.Where("venta_id = ?", ventaID).Delete(&model.EstadoVentaVenta{}).Error; err != nil {
		return err
	}
	return tx.Create(&model.EstadoVentaVenta{VentaID: ventaID, EstadoVentaID: estadoID}).Error
}

func (r *ventaRepo) DetachEstadosTx(tx *gorm.DB, ventaID uint) error {
	return tx.Where("venta_id = ?", ventaID).Delete(&model.EstadoVentaVenta{}).Error
}

func (r *ventaRepo) List(ctx context.Context, filter dto.VentaFilter) ([]model.Venta, int64, error) {
	var ventas []model.Venta
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Venta{})
	if filter.FechaInicio != "" {
		q = q.Where("fecha >= ?", filter.FechaInicio)
	}
	if filter.FechaFin != "" {
		q = q.Where("fecha <= ?", filter.FechaFin)
	}
	if filter.ClienteID != 0 {
		q = q.Where("cliente_id = ?", filter.ClienteID)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("Cliente").Preload("Items.Producto").Preload("Estados.Estado").
		Order("fecha DESC").Limit(filter.Limit).Offset(offset).Find(&ventas).Error
	return ventas, total, err
}

func (r *ventaRepo) DB() *gorm.DB { return r.db }
