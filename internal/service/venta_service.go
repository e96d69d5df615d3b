package service

import (
	"context"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/model"
	"chocolateria/internal/repository"
	"chocolateria/internal/worker"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// VentaService administra ventas y el lado producto del libro de inventario:
// asociar un producto a una venta descuenta su stock; quitar la asociación lo
// restaura. El total es siempre derivado de los items.
type VentaService interface {
	Registrar(ctx context.Context, usuarioID uint, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error)
	ActualizarEstado(ctx context.Context, id, estadoID uint) (*dto.VentaResponse, error)
	Eliminar(ctx context.Context, id uint) error
	ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error)
	Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error)
}

type ventaService struct {
	repo               repository.VentaRepository
	productoRepo       repository.ProductoRepository
	clienteRepo        repository.ClienteRepository
	estadoRepo         repository.EstadoVentaRepository
	usuarioRepo        repository.UsuarioRepository
	dispatcher         *worker.Dispatcher
	allowNegativeStock bool
}

func NewVentaService(
	repo repository.VentaRepository,
	productoRepo repository.ProductoRepository,
	clienteRepo repository.ClienteRepository,
	estadoRepo repository.EstadoVentaRepository,
	usuarioRepo repository.UsuarioRepository,
	dispatcher *worker.Dispatcher,
	allowNegativeStock bool,
) VentaService {
	return &ventaService{
		repo:               repo,
		productoRepo:       productoRepo,
		clienteRepo:        clienteRepo,
		estadoRepo:         estadoRepo,
		usuarioRepo:        usuarioRepo,
		dispatcher:         dispatcher,
		allowNegativeStock: allowNegativeStock,
	}
}

func (s *ventaService) validarReferencias(ctx context.Context, usuarioID uint, req dto.RegistrarVentaRequest) error {
	if _, err := s.clienteRepo.FindByID(ctx, req.ClienteID); err != nil {
		return apierror.NewNotFound("cliente", req.ClienteID)
	}
	if _, err := s.usuarioRepo.FindByID(ctx, usuarioID); err != nil {
		return apierror.NewNotFound("usuario", usuarioID)
	}
	if _, err := s.estadoRepo.FindByID(ctx, req.EstadoID); err != nil {
		return apierror.NewNotFound("estado de venta", req.EstadoID)
	}
	return nil
}

// aplicarItems asocia los items a la venta dentro de tx, descontando stock y
// acumulando el total. Devuelve las alertas de stock bajo detectadas para
// despachar después del commit.
func (s *ventaService) aplicarItems(tx *gorm.DB, ventaID uint, items []dto.ItemVentaRequest) (decimal.Decimal, []worker.AlertaStock, error) {
	total := decimal.Zero
	var alertas []worker.AlertaStock

	for _, item := range items {
		p, err := s.productoRepo.FindForUpdateTx(tx, item.ProductoID)
		if err != nil {
			return decimal.Zero, nil, apierror.NewNotFound("producto", item.ProductoID)
		}
		if !s.allowNegativeStock && p.CantidadDisponible < item.Cantidad {
			return decimal.Zero, nil, apierror.NewValidationMsg(
				"stock insuficiente para el producto " + p.Nombre)
		}

		subtotal := p.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		total = total.Add(subtotal)

		if err := s.repo.CreateItemTx(tx, &model.VentaProducto{
			VentaID:    ventaID,
			ProductoID: item.ProductoID,
			Cantidad:   item.Cantidad,
		}); err != nil {
			return decimal.Zero, nil, err
		}
		if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, -item.Cantidad); err != nil {
			return decimal.Zero, nil, err
		}

		restante := p.CantidadDisponible - item.Cantidad
		if restante <= p.StockMinimo {
			alertas = append(alertas, worker.AlertaStock{
				ProductoID:  p.ID,
				Nombre:      p.Nombre,
				Stock:       restante,
				StockMinimo: p.StockMinimo,
			})
		}
	}
	return total, alertas, nil
}

// restaurarItems devuelve al stock la cantidad de cada item actualmente
// asociado a la venta.
func (s *ventaService) restaurarItems(tx *gorm.DB, items []model.VentaProducto) error {
	for _, item := range items {
		if _, err := s.productoRepo.FindForUpdateTx(tx, item.ProductoID); err != nil {
			return err
		}
		if err := s.productoRepo.UpdateStockTx(tx, item.ProductoID, item.Cantidad); err != nil {
			return err
		}
	}
	return nil
}

func (s *ventaService) despachar(ctx context.Context, alertas []worker.AlertaStock) {
	if s.dispatcher == nil {
		return
	}
	for _, a := range alertas {
		_ = s.dispatcher.EnqueueAlertaStock(ctx, a)
	}
}

// Registrar crea la venta con total 0, asocia cada item descontando stock,
// escribe el total acumulado y adjunta el estado inicial. Cualquier fallo a
// mitad del recorrido hace rollback completo: ningún descuento parcial
// sobrevive.
func (s *ventaService) Registrar(ctx context.Context, usuarioID uint, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	if err := s.validarReferencias(ctx, usuarioID, req); err != nil {
		return nil, err
	}

	venta := model.Venta{
		Fecha:     fecha,
		Total:     decimal.Zero,
		ClienteID: req.ClienteID,
		UsuarioID: usuarioID,
	}
	var alertas []worker.AlertaStock

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		if err := s.repo.CreateTx(tx, &venta); err != nil {
			return err
		}
		total, als, err := s.aplicarItems(tx, venta.ID, req.Productos)
		if err != nil {
			return err
		}
		alertas = als
		venta.Total = total
		if err := s.repo.UpdateTotalTx(tx, venta.ID, total); err != nil {
			return err
		}
		return s.repo.SyncEstadoTx(tx, venta.ID, req.EstadoID)
	})
	if txErr != nil {
		return nil, wrapVentaErr("registrar venta", txErr)
	}

	s.despachar(ctx, alertas)
	return s.ObtenerPorID(ctx, venta.ID)
}

// Actualizar restaura el stock de todos los items vigentes, los desasocia y
// vuelve a aplicar los items nuevos recalculando el total desde cero, como en
// Registrar. El estado se sincroniza: un único estado vigente, el anterior se
// elimina.
func (s *ventaService) Actualizar(ctx context.Context, id uint, req dto.RegistrarVentaRequest) (*dto.VentaResponse, error) {
	fecha, err := parseFecha(req.Fecha)
	if err != nil {
		return nil, err
	}
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("venta", id)
	}
	if err := s.validarReferencias(ctx, venta.UsuarioID, req); err != nil {
		return nil, err
	}

	var alertas []worker.AlertaStock

	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		actual, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		if err := s.restaurarItems(tx, actual.Items); err != nil {
			return err
		}
		if err := s.repo.DetachProductosTx(tx, id); err != nil {
			return err
		}

		total, als, err := s.aplicarItems(tx, id, req.Productos)
		if err != nil {
			return err
		}
		alertas = als

		if err := s.repo.UpdateCamposTx(tx, id, fecha, req.ClienteID, total); err != nil {
			return err
		}
		return s.repo.SyncEstadoTx(tx, id, req.EstadoID)
	})
	if txErr != nil {
		return nil, wrapVentaErr("actualizar venta", txErr)
	}

	s.despachar(ctx, alertas)
	return s.ObtenerPorID(ctx, id)
}

// ActualizarEstado reemplaza el estado vigente (sync, no acumula) y devuelve
// la venta completa con asociaciones para confirmación del cliente.
func (s *ventaService) ActualizarEstado(ctx context.Context, id, estadoID uint) (*dto.VentaResponse, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, apierror.NewNotFound("venta", id)
	}
	if _, err := s.estadoRepo.FindByID(ctx, estadoID); err != nil {
		return nil, apierror.NewNotFound("estado de venta", estadoID)
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		return s.repo.SyncEstadoTx(tx, id, estadoID)
	})
	if txErr != nil {
		return nil, wrapVentaErr("actualizar estado de venta", txErr)
	}
	return s.ObtenerPorID(ctx, id)
}

// Eliminar restaura el stock de cada producto asociado, desasocia productos y
// estados, y borra la venta.
func (s *ventaService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NewNotFound("venta", id)
	}
	txErr := runTx(ctx, s.repo.DB(), func(tx *gorm.DB) error {
		venta, err := s.repo.FindForUpdateTx(tx, id)
		if err != nil {
			return err
		}
		if err := s.restaurarItems(tx, venta.Items); err != nil {
			return err
		}
		if err := s.repo.DetachProductosTx(tx, id); err != nil {
			return err
		}
		if err := s.repo.DetachEstadosTx(tx, id); err != nil {
			return err
		}
		return s.repo.DeleteTx(tx, id)
	})
	if txErr != nil {
		return wrapVentaErr("eliminar venta", txErr)
	}
	return nil
}

func (s *ventaService) ObtenerPorID(ctx context.Context, id uint) (*dto.VentaResponse, error) {
	venta, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("venta", id)
	}
	return ventaToResponse(venta), nil
}

func (s *ventaService) Listar(ctx context.Context, filter dto.VentaFilter) (*dto.VentaListResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 {
		filter.Limit = 50
	}
	ventas, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.VentaResponse, 0, len(ventas))
	for i := range ventas {
		items = append(items, *ventaToResponse(&ventas[i]))
	}
	return &dto.VentaListResponse{
		Data:  items,
		Total: total,
		Page:  filter.Page,
		Limit: filter.Limit,
	}, nil
}

// wrapVentaErr conserva los errores tipados que ya vienen del recorrido y
// envuelve el resto como aborto de transacción.
func wrapVentaErr(op string, err error) error {
	switch err.(type) {
	case *apierror.NotFoundError, *apierror.ValidationError:
		return err
	default:
		return apierror.NewTxAbort(op, err)
	}
}

func ventaToResponse(v *model.Venta) *dto.VentaResponse {
	items := make([]dto.ItemVentaResponse, 0, len(v.Items))
	for _, item := range v.Items {
		resp := dto.ItemVentaResponse{
			ProductoID: item.ProductoID,
			Cantidad:   item.Cantidad,
		}
		if item.Producto != nil {
			resp.Producto = item.Producto.Nombre
			resp.Precio = item.Producto.Precio
			resp.Subtotal = item.Producto.Precio.Mul(decimal.NewFromInt(int64(item.Cantidad)))
		}
		items = append(items, resp)
	}

	resp := &dto.VentaResponse{
		ID:        v.ID,
		Fecha:     v.Fecha.Format("2006-01-02"),
		Total:     v.Total,
		ClienteID: v.ClienteID,
		UsuarioID: v.UsuarioID,
		Items:     items,
		CreatedAt: v.CreatedAt.Format("2006-01-02T15:04:05Z"),
	}
	if v.Cliente != nil {
		resp.Cliente = v.Cliente.Nombre
	}
	if len(v.Estados) > 0 {
		ultimo := v.Estados[len(v.Estados)-1]
		resp.EstadoID = ultimo.EstadoVentaID
		if ultimo.Estado != nil {
			resp.Estado = ultimo.Estado.Nombre
		}
	}
	return resp
}
