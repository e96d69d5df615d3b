package service

import (
	"context"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/model"
	"chocolateria/internal/repository"
)

type EstadoVentaService interface {
	Crear(ctx context.Context, req dto.CrearEstadoVentaRequest) (*dto.EstadoVentaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.EstadoVentaResponse, error)
	Listar(ctx context.Context) ([]dto.EstadoVentaResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.CrearEstadoVentaRequest) (*dto.EstadoVentaResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type estadoVentaService struct {
	repo repository.EstadoVentaRepository
}

func NewEstadoVentaService(repo repository.EstadoVentaRepository) EstadoVentaService {
	return &estadoVentaService{repo: repo}
}

func (s *estadoVentaService) Crear(ctx context.Context, req dto.CrearEstadoVentaRequest) (*dto.EstadoVentaResponse, error) {
	estado := &model.EstadoVenta{Nombre: req.Nombre}
	if err := s.repo.Create(ctx, estado); err != nil {
		return nil, err
	}
	return estadoToResponse(estado), nil
}

func (s *estadoVentaService) ObtenerPorID(ctx context.Context, id uint) (*dto.EstadoVentaResponse, error) {
	estado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("estado de venta", id)
	}
	return estadoToResponse(estado), nil
}

func (s *estadoVentaService) Listar(ctx context.Context) ([]dto.EstadoVentaResponse, error) {
	estados, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.EstadoVentaResponse, len(estados))
	for i := range estados {
		resp[i] = *estadoToResponse(&estados[i])
	}
	return resp, nil
}

func (s *estadoVentaService) Actualizar(ctx context.Context, id uint, req dto.CrearEstadoVentaRequest) (*dto.EstadoVentaResponse, error) {
	estado, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("estado de venta", id)
	}
	estado.Nombre = req.Nombre
	if err := s.repo.Update(ctx, estado); err != nil {
		return nil, err
	}
	return estadoToResponse(estado), nil
}

func (s *estadoVentaService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NewNotFound("estado de venta", id)
	}
	return s.repo.Delete(ctx, id)
}

func estadoToResponse(e *model.EstadoVenta) *dto.EstadoVentaResponse {
	return &dto.EstadoVentaResponse{ID: e.ID, Nombre: e.Nombre}
}
