package repository

import (
	"context"

	"chocolateria/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type MateriaPrimaRepository interface {
	Create(ctx context.Context, m *model.MateriaPrima) error
	FindByID(ctx context.Context, id uint) (*model.MateriaPrima, error)
	List(ctx context.Context) ([]model.MateriaPrima, error)
	Update(ctx context.Context, m *model.MateriaPrima) error
	Delete(ctx context.Context, id uint) error

	// Transactional quantity mutations. FindForUpdateTx locks the row for the
	// duration of the ledger operation; SetCantidadTx writes the clamped value.
	FindForUpdateTx(tx *gorm.DB, id uint) (*model.MateriaPrima, error)
	AddCantidadTx(tx *gorm.DB, id uint, delta decimal.Decimal) error
	SetCantidadTx(tx *gorm.DB, id uint, cantidad decimal.Decimal) error

	DB() *gorm.DB
}

type materiaPrimaRepo struct{ db *gorm.DB }

func NewMateriaPrimaRepository(db *gorm.DB) MateriaPrimaRepository {
	return &materiaPrimaRepo{db: db}
}

func (r *materiaPrimaRepo) Create(ctx context.Context, m *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *materiaPrimaRepo) FindByID(ctx context.Context, id uint) (*model.MateriaPrima, error) {
	var m model.MateriaPrima
	err := r.db.WithContext(ctx).First(&m, id).Error
	return &m, err
}

func (r *materiaPrimaRepo) List(ctx context.Context) ([]model.MateriaPrima, error) {
	var materias []model.MateriaPrima
	err := r.db.WithContext(ctx).Order("nombre ASC").Find(&materias).Error
	return materias, err
}

func (r *materiaPrimaRepo) Update(ctx context.Context, m *model.MateriaPrima) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *materiaPrimaRepo) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Select(clause.Associations).Delete(&model.MateriaPrima{ID: id}).Error
}

func (r *materiaPrimaRepo) FindForUpdateTx(tx *gorm.DB, id uint) (*model.MateriaPrima, error) {
	var m model.MateriaPrima
	err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, id).Error
	return &m, err
}

func (r *materiaPrimaRepo) AddCantidadTx(tx *gorm.DB, id uint, delta decimal.Decimal) error {
	return tx.Model(&model.MateriaPrima{}).Where("id = ?", id).
		Update("cantidad_disponible", gorm.Expr("cantidad_disponible + ?", delta)).Error
}

func (r *materiaPrimaRepo) SetCantidadTx(tx *gorm.DB, id uint, cantidad decimal.Decimal) error {
	return tx.Model(&model.MateriaPrima{}).Where("id = ?", id).
		Update("cantidad_disponible", cantidad).Error
}

func (r *materiaPrimaRepo) DB() *gorm.DB { return r.db }
