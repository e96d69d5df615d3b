package repository

import (
	"context"

	"chocolateria/internal/model"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ProductoRepository defines the data access contract for products and their
// raw-material recipe links. Services depend on this interface, not on the
// concrete GORM implementation, enabling clean unit testing via stubs.
type ProductoRepository interface {
	Create(ctx context.Context, p *model.Producto) error
	FindByID(ctx context.Context, id uint) (*model.Producto, error)
	List(ctx context.Context) ([]model.Producto, error)
	Update(ctx context.Context, p *model.Producto) error
	Delete(ctx context.Context, id uint) error

	// Used inside transactions — callers must pass the tx instance.
	// FindForUpdateTx takes a row lock so concurrent quantity mutations on the
	// same product serialize instead of losing updates.
	FindForUpdateTx(tx *gorm.DB, id uint) (*model.Producto, error)
	UpdateStockTx(tx *gorm.DB, id uint, delta int) error

	// Receta producto ↔ materia prima
	CreateVinculo(ctx context.Context, v *model.ProductoMateriaPrima) error
	DeleteVinculo(ctx context.Context, productoID, materiaPrimaID uint) error

	StockBajo(ctx context.Context) ([]model.Producto, error)

	// DB exposes the underlying *gorm.DB so services can open transactions.
	DB() *gorm.DB
}

type productoRepo struct{ db *gorm.DB }

func NewProductoRepository(db *gorm.DB) ProductoRepository { return &productoRepo{db: db} }

func (r *productoRepo) Create(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *productoRepo) FindByID(ctx context.Context, id uint) (*model.Producto, error) {
	var p model.Producto
	err := r.db.WithContext(ctx).
		Preload("MateriasPrimas.MateriaPrima").
		First(&p, id).Error
	return &p, err
}

func (r *productoRepo) List(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Preload("MateriasPrimas.MateriaPrima").
		Order("nombre ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) Update(ctx context.Context, p *model.Producto) error {
	return r.db.WithContext(ctx).Save(p).Error
}

func (r *productoRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.Producto{ID: id}).Error
}

func (r *productoRepo) FindForUpdateTx(tx *gorm.DB, id uint) (*model.Producto, error) {
	var p model.Producto
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&p, id).Error
	return &p, err
}

func (r *productoRepo) UpdateStockTx(tx *gorm.DB, id uint, delta int) error {
	return tx.Model(&model.Producto{}).Where("id = ?", id).
		Update("cantidad_disponible", gorm.Expr("cantidad_disponible + ?", delta)).Error
}

func (r *productoRepo) CreateVinculo(ctx context.Context, v *model.ProductoMateriaPrima) error {
	// syncWithoutDetaching semantics: re-linking the same pair updates the ratio.
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "producto_id"}, {Name: "materia_prima_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"cantidad_por_unidad"}),
	}).Create(v).Error
}

func (r *productoRepo) DeleteVinculo(ctx context.Context, productoID, materiaPrimaID uint) error {
	return r.db.WithContext(ctx).
		Where("producto_id = ? AND materia_prima_id = ?", productoID, materiaPrimaID).
		Delete(&model.ProductoMateriaPrima{}).Error
}

func (r *productoRepo) StockBajo(ctx context.Context) ([]model.Producto, error) {
	var productos []model.Producto
	err := r.db.WithContext(ctx).
		Where("cantidad_disponible <= stock_minimo").
		Order("cantidad_disponible ASC").Find(&productos).Error
	return productos, err
}

func (r *productoRepo) DB() *gorm.DB { return r.db }
