package repository

import (
	"context"

	"chocolateria/internal/dto"
	"chocolateria/internal/model"

	"gorm.io/gorm"
)

type CompraRepository interface {
	CreateTx(tx *gorm.DB, c *model.Compra) error
	FindByID(ctx context.Context, id uint) (*model.Compra, error)
	FindForUpdateTx(tx *gorm.DB, id uint) (*model.Compra, error)
	UpdateTx(tx *gorm.DB, c *model.Compra) error
	DeleteTx(tx *gorm.DB, id uint) error
	List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error)
	ListCategorias(ctx context.Context) ([]string, error)

	DB() *gorm.DB
}

type compraRepo struct{ db *gorm.DB }

func NewCompraRepository(db *gorm.DB) CompraRepository { return &compraRepo{db: db} }

func (r *compraRepo) CreateTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Create(c).Error
}

func (r *compraRepo) FindByID(ctx context.Context, id uint) (*model.Compra, error) {
	var c model.Compra
	err := r.db.WithContext(ctx).
		Preload("MateriaPrima").Preload("Usuario").
		First(&c, id).Error
	return &c, err
}

func (r *compraRepo) FindForUpdateTx(tx *gorm.DB, id uint) (*model.Compra, error) {
	var c model.Compra
	err := tx.First(&c, id).Error
	return &c, err
}

func (r *compraRepo) UpdateTx(tx *gorm.DB, c *model.Compra) error {
	return tx.Save(c).Error
}

func (r *compraRepo) DeleteTx(tx *gorm.DB, id uint) error {
	return tx.Delete(&model.Compra{}, id).Error
}

func (r *compraRepo) List(ctx context.Context, filter dto.CompraFilter) ([]model.Compra, int64, error) {
	var compras []model.Compra
	var total int64

	q := r.db.WithContext(ctx).Model(&model.Compra{})
	if filter.Tipo != "" {
		q = q.Where("tipo_transaccion = ?", filter.Tipo)
	}
	if filter.Categoria != "" {
		q = q.Where("categoria = ?", filter.Categoria)
	}

	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (filter.Page - 1) * filter.Limit
	err := q.Preload("MateriaPrima").
		Order("fecha DESC").Limit(filter.Limit).Offset(offset).Find(&compras).Error
	return compras, total, err
}

func (r *compraRepo) ListCategorias(ctx context.Context) ([]string, error) {
	var categorias []string
	err := r.db.WithContext(ctx).Model(&model.Compra{}).
		Distinct("categoria").Order("categoria ASC").Pluck("categoria", &categorias).Error
	return categorias, err
}

func (r *compraRepo) DB() *gorm.DB { return r.db }
