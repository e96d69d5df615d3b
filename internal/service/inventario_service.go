package service

import (
	"context"
	"fmt"
	"time"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/model"
	"chocolateria/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// InventarioService maneja los ajustes manuales de stock de materia prima y
// la receta producto ↔ materia prima.
type InventarioService interface {
	// AjustarInventario aplica un incremento o decremento manual. El decremento
	// tiene piso en cero: nunca deja stock negativo. Cada ajuste deja una
	// compra sintética como rastro de auditoría, con monto derivado
	// cantidad × costo unitario y categoría "Inventario".
	AjustarInventario(ctx context.Context, usuarioID uint, req dto.AjusteInventarioRequest) (*dto.MateriaPrimaResponse, error)

	CrearVinculo(ctx context.Context, productoID uint, req dto.CrearVinculoRequest) error
	EliminarVinculo(ctx context.Context, productoID, materiaPrimaID uint) error

	AlertasStockBajo(ctx context.Context) ([]dto.ProductoResponse, error)
}

type inventarioService struct {
	materiaRepo  repository.MateriaPrimaRepository
	productoRepo repository.ProductoRepository
	compraRepo   repository.CompraRepository
}

func NewInventarioService(
	materiaRepo repository.MateriaPrimaRepository,
	productoRepo repository.ProductoRepository,
	compraRepo repository.CompraRepository,
) InventarioService {
	return &inventarioService{materiaRepo: materiaRepo, productoRepo: productoRepo, compraRepo: compraRepo}
}

func (s *inventarioService) AjustarInventario(ctx context.Context, usuarioID uint, req dto.AjusteInventarioRequest) (*dto.MateriaPrimaResponse, error) {
	if _, err := s.materiaRepo.FindByID(ctx, req.MateriaPrimaID); err != nil {
		return nil, apierror.NewNotFound("materia prima", req.MateriaPrimaID)
	}

	var materia *model.MateriaPrima
	txErr := runTx(ctx, s.materiaRepo.DB(), func(tx *gorm.DB) error {
		var err error
		materia, err = s.materiaRepo.FindForUpdateTx(tx, req.MateriaPrimaID)
		if err != nil {
			return err
		}

		var nueva decimal.Decimal
		if req.Tipo == model.TipoIncremento {
			nueva = materia.CantidadDisponible.Add(req.Cantidad)
		} else {
			nueva = materia.CantidadDisponible.Sub(req.Cantidad)
			if nueva.IsNegative() {
				nueva = decimal.Zero
			}
		}
		if err := s.materiaRepo.SetCantidadTx(tx, materia.ID, nueva); err != nil {
			return err
		}
		materia.CantidadDisponible = nueva

		auditoria := model.Compra{
			TipoTransaccion: req.Tipo,
			Monto:           req.Cantidad.Mul(materia.CostoUnitario),
			Descripcion: fmt.Sprintf("Ajuste de inventario: %s de %s %s",
				req.Tipo, req.Cantidad.String(), materia.UnidadMedida),
			Fecha:          time.Now(),
			Categoria:      "Inventario",
			UsuarioID:      usuarioID,
			MateriaPrimaID: materia.ID,
			Cantidad:       req.Cantidad,
		}
		return s.compraRepo.CreateTx(tx, &auditoria)
	})
	if txErr != nil {
		return nil, apierror.NewTxAbort("ajustar inventario", txErr)
	}
	return materiaPrimaToResponse(materia), nil
}

func (s *inventarioService) CrearVinculo(ctx context.Context, productoID uint, req dto.CrearVinculoRequest) error {
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return apierror.NewNotFound("producto", productoID)
	}
	if _, err := s.materiaRepo.FindByID(ctx, req.MateriaPrimaID); err != nil {
		return apierror.NewNotFound("materia prima", req.MateriaPrimaID)
	}
	return s.productoRepo.CreateVinculo(ctx, &model.ProductoMateriaPrima{
		ProductoID:        productoID,
		MateriaPrimaID:    req.MateriaPrimaID,
		CantidadPorUnidad: req.CantidadPorUnidad,
	})
}

func (s *inventarioService) EliminarVinculo(ctx context.Context, productoID, materiaPrimaID uint) error {
	if _, err := s.productoRepo.FindByID(ctx, productoID); err != nil {
		return apierror.NewNotFound("producto", productoID)
	}
	return s.productoRepo.DeleteVinculo(ctx, productoID, materiaPrimaID)
}

func (s *inventarioService) AlertasStockBajo(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.productoRepo.StockBajo(ctx)
	if err != nil {
		return nil, err
	}
	alertas := make([]dto.ProductoResponse, 0, len(productos))
	for i := range productos {
		alertas = append(alertas, *productoToResponse(&productos[i]))
	}
	return alertas, nil
}
