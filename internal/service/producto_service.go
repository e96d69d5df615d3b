package service

import (
	"context"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/model"
	"chocolateria/internal/repository"
)

// ProductoService cubre el CRUD de productos. La actualización nunca toca
// CantidadDisponible: ese campo pertenece al libro de inventario.
type ProductoService interface {
	Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error)
	Listar(ctx context.Context) ([]dto.ProductoResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type productoService struct {
	repo repository.ProductoRepository
}

func NewProductoService(repo repository.ProductoRepository) ProductoService {
	return &productoService{repo: repo}
}

func (s *productoService) Crear(ctx context.Context, req dto.CrearProductoRequest) (*dto.ProductoResponse, error) {
	producto := &model.Producto{
		Nombre:             req.Nombre,
		Categoria:          req.Categoria,
		Precio:             req.Precio,
		CantidadDisponible: req.CantidadDisponible,
		StockMinimo:        req.StockMinimo,
	}
	if err := s.repo.Create(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) ObtenerPorID(ctx context.Context, id uint) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("producto", id)
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Listar(ctx context.Context) ([]dto.ProductoResponse, error) {
	productos, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.ProductoResponse, len(productos))
	for i := range productos {
		resp[i] = *productoToResponse(&productos[i])
	}
	return resp, nil
}

func (s *productoService) Actualizar(ctx context.Context, id uint, req dto.ActualizarProductoRequest) (*dto.ProductoResponse, error) {
	producto, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("producto", id)
	}
	producto.Nombre = req.Nombre
	producto.Categoria = req.Categoria
	producto.Precio = req.Precio
	producto.StockMinimo = req.StockMinimo
	if err := s.repo.Update(ctx, producto); err != nil {
		return nil, err
	}
	return productoToResponse(producto), nil
}

func (s *productoService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NewNotFound("producto", id)
	}
	return s.repo.Delete(ctx, id)
}

func productoToResponse(p *model.Producto) *dto.ProductoResponse {
	resp := &dto.ProductoResponse{
		ID:                 p.ID,
		Nombre:             p.Nombre,
		Categoria:          p.Categoria,
		Precio:             p.Precio,
		CantidadDisponible: p.CantidadDisponible,
		StockMinimo:        p.StockMinimo,
	}
	for _, v := range p.MateriasPrimas {
		vinculo := dto.VinculoRecetaResponse{
			MateriaPrimaID:    v.MateriaPrimaID,
			CantidadPorUnidad: v.CantidadPorUnidad,
		}
		if v.MateriaPrima != nil {
			vinculo.Nombre = v.MateriaPrima.Nombre
			vinculo.UnidadMedida = v.MateriaPrima.UnidadMedida
		}
		resp.MateriasPrimas = append(resp.MateriasPrimas, vinculo)
	}
	return resp
}
