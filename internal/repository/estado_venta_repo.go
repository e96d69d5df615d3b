package repository

import (
	"context"

	"chocolateria/internal/model"

	"gorm.io/gorm"
)

type EstadoVentaRepository interface {
	Create(ctx context.Context, e *model.EstadoVenta) error
	FindByID(ctx context.Context, id uint) (*model.EstadoVenta, error)
	List(ctx context.Context) ([]model.EstadoVenta, error)
	Update(ctx context.Context, e *model.EstadoVenta) error
	Delete(ctx context.Context, id uint) error
}

type estadoVentaRepo struct{ db *gorm.DB }

func NewEstadoVentaRepository(db *gorm.DB) EstadoVentaRepository {
	return &estadoVentaRepo{db: db}
}

func (r *estadoVentaRepo) Create(ctx context.Context, e *model.EstadoVenta) error {
	return r.db.WithContext(ctx).Create(e).Error
}

func (r *estadoVentaRepo) FindByID(ctx context.Context, id uint) (*model.EstadoVenta, error) {
	var e model.EstadoVenta
	err := r.db.WithContext(ctx).First(&e, id).Error
	return &e, err
}

func (r *estadoVentaRepo) List(ctx context.Context) ([]model.EstadoVenta, error) {
	var estados []model.EstadoVenta
	err := r.db.WithContext(ctx).Order("id ASC").Find(&estados).Error
	return estados, err
}

func (r *estadoVentaRepo) Update(ctx context.Context, e *model.EstadoVenta) error {
	return r.db.WithContext(ctx).Save(e).Error
}

func (r *estadoVentaRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&model.EstadoVenta{}, id).Error
}
