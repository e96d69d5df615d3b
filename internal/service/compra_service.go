package service

import (
	"context"
	"time"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/model"
	"chocolateria/internal/repository"

	"gorm.io/gorm"
)

// CompraService es el libro de inventario de materias primas: toda compra o
// ajuste mueve CantidadDisponible dentro de la misma transacción que escribe
// la fila, de modo que el stock siempre reconcilia con el historial.
type CompraService interface {
	Registrar(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error)
	Eliminar(ctx context.Context, id uint) error
	ObtenerPorID(ctx context.Context, id uint) (*dto.CompraResponse, error)
	Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error)
	ListarCategorias(ctx context.Context) ([]string, error)
}

type compraService struct {
	repo        repository.CompraRepository
	materiaRepo repository.MateriaPrimaRepository
	usuarioRepo repository.UsuarioRepository
}

func NewCompraService(
	repo repository.CompraRepository,
	materiaRepo repository.MateriaPrimaRepository,
	usuarioRepo repository.UsuarioRepository,
) CompraService {
	return &compraService{repo: repo, materiaRepo: materiaRepo, usuarioRepo: usuarioRepo}
}

// Registrar inserta la compra y suma su cantidad al stock de la materia prima
// en una única transacción. La cantidad llega ya firmada por el caller: tanto
// "compra" como "ajuste" suman tal cual.
func (s *compraService) Registrar(ctx context.Context, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.usuarioRepo.FindByID(ctx, req.UsuarioID); err != nil {
		return nil, apierror.NewNotFound("usuario", req.UsuarioID)
	}
	if _, err := s.materiaRepo.FindByID(ctx, req.MateriaPrimaID); err != nil {
		return nil, apierror.NewNotFound("materia prima", req.MateriaPrimaID)
	}

	compra := model.Compra{
		TipoTransaccion: req.TipoTransaccion,
		Monto:           req.Monto,
		Descripcion:     req.Descripcion,
		Fecha:           fecha,
		Categoria:       req.Categoria,
		UsuarioID:       req.UsuarioID,
		MateriaPrimaID:  req.MateriaPrimaID,
		Cantidad:        req.Cantidad,
	}

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &compra); err != nil {
			return err
		}
		if _, err := s.materiaRepo.FindForUpdateTx(tx, req.MateriaPrimaID); err != nil {
			return err
		}
		return s.materiaRepo.AddCantidadTx(tx, req.MateriaPrimaID, req.Cantidad)
	})
	if txErr != nil {
		return nil, apierror.NewTxAbort("registrar compra", txErr)
	}
	return compraToResponse(&compra), nil
}

// Actualizar reconcilia el stock con la secuencia revertir-y-reaplicar:
// resta la cantidad vieja de la materia prima original, aplica los campos
// nuevos y suma la cantidad nueva a la materia prima (posiblemente otra).
// Todo dentro de una transacción: un fallo a mitad deja las cantidades intactas.
func (s *compraService) Actualizar(ctx context.Context, id uint, req dto.RegistrarCompraRequest) (*dto.CompraResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NewNotFound("compra", id)
	}
	if _, err := s.usuarioRepo.FindByID(ctx, req.UsuarioID); err != nil {
		return nil, apierror.NewNotFound("usuario", req.UsuarioID)
	}
	if _, err := s.materiaRepo.FindByID(ctx, req.MateriaPrimaID); err != nil {
		return nil, apierror.NewNotFound("materia prima", req.MateriaPrimaID)
	}

	var compra *model.Compra
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		var err error
		compra, err = s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return err
		}

		// Revertir la contribución vieja sobre la materia prima original.
		if _, err := s.materiaRepo.FindForUpdateTx(tx, compra.MateriaPrimaID); err != nil {
			return err
		}
		if err := s.materiaRepo.AddCantidadTx(tx, compra.MateriaPrimaID, compra.Cantidad.Neg()); err != nil {
			return err
		}

		compra.TipoTransaccion = req.TipoTransaccion
		compra.Monto = req.Monto
		compra.Descripcion = req.Descripcion
		compra.Fecha = fecha
		compra.Categoria = req.Categoria
		compra.UsuarioID = req.UsuarioID
		compra.MateriaPrimaID = req.MateriaPrimaID
		compra.Cantidad = req.Cantidad
		if err := s.repo.UpdateTx(tx, compra); err != nil {
			return err
		}

		// Reaplicar la cantidad nueva sobre la materia prima nueva.
		if _, err := s.materiaRepo.FindForUpdateTx(tx, req.MateriaPrimaID); err != nil {
			return err
		}
		return s.materiaRepo.AddCantidadTx(tx, req.MateriaPrimaID, req.Cantidad)
	})
	if txErr != nil {
		return nil, apierror.NewTxAbort("actualizar compra", txErr)
	}
	return compraToResponse(compra), nil
}

// Eliminar cancela la contribución de la compra al stock y borra la fila.
func (s *compraService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NewNotFound("compra", id)
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		compra, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		if _, err := s.materiaRepo.FindForUpdateTx(tx, compra.MateriaPrimaID); err != nil {
			return err
		}
		if err := s.materiaRepo.AddCantidadTx(tx, compra.MateriaPrimaID, compra.Cantidad.Neg()); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return apierror.NewTxAbort("eliminar compra", txErr)
	}
	return nil
}

func (s *compraService) ObtenerPorID(ctx context.Context, id uint) (*dto.CompraResponse, error) {
	compra, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("compra", id)
	}
	return compraToResponse(compra), nil
}

func (s *compraService) Listar(ctx context.Context, filter dto.CompraFilter) (*dto.CompraListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	compras, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompraResponse, 0, len(compras))
	for i := range compras {
		items = append(items, *compraToResponse(&compras[i]))
	}
	return &dto.CompraListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

func (s *compraService) ListarCategorias(ctx context.Context) ([]string, error) {
	return s.repo.ListCategorias(ctx)
}

func parseFecha(fecha string) (time.Time, error) {
	t, err := time.Parse("2006-01-02", fecha)
	if err != nil {
		return time.Time{}, apierror.NewValidationMsg("fecha invalida: " + fecha)
	}
	return t, nil
}

func compraToResponse(c *model.Compra) *dto.CompraResponse {
	resp := &dto.CompraResponse{
		ID:              c.ID,
		TipoTransaccion: c.TipoTransaccion,
		Monto:           c.Monto,
		Descripcion:     c.Descripcion,
		Fecha:           c.Fecha.Format("2006-01-02"),
		Categoria:       c.Categoria,
		UsuarioID:       c.UsuarioID,
		MateriaPrimaID:  c.MateriaPrimaID,
		Cantidad:        c.Cantidad,
	}
	if c.MateriaPrima != nil {
		resp.MateriaPrima = c.MateriaPrima.Nombre
	}
	return resp
}
