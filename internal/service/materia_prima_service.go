package service

import (
	"context"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/model"
	"chocolateria/internal/repository"
)

// MateriaPrimaService cubre el CRUD de materias primas. Igual que con
// productos, la actualización no acepta cantidad_disponible.
type MateriaPrimaService interface {
	Crear(ctx context.Context, req dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error)
	ObtenerPorID(ctx context.Context, id uint) (*dto.MateriaPrimaResponse, error)
	Listar(ctx context.Context) ([]dto.MateriaPrimaResponse, error)
	Actualizar(ctx context.Context, id uint, req dto.ActualizarMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error)
	Eliminar(ctx context.Context, id uint) error
}

type materiaPrimaService struct {
	repo repository.MateriaPrimaRepository
}

func NewMateriaPrimaService(repo repository.MateriaPrimaRepository) MateriaPrimaService {
	return &materiaPrimaService{repo: repo}
}

func (s *materiaPrimaService) Crear(ctx context.Context, req dto.CrearMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error) {
	materia := &model.MateriaPrima{
		Nombre:             req.Nombre,
		CantidadDisponible: req.CantidadDisponible,
		UnidadMedida:       req.UnidadMedida,
		CostoUnitario:      req.CostoUnitario,
	}
	if err := s.repo.Create(ctx, materia); err != nil {
		return nil, err
	}
	return materiaPrimaToResponse(materia), nil
}

func (s *materiaPrimaService) ObtenerPorID(ctx context.Context, id uint) (*dto.MateriaPrimaResponse, error) {
	materia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("materia prima", id)
	}
	return materiaPrimaToResponse(materia), nil
}

func (s *materiaPrimaService) Listar(ctx context.Context) ([]dto.MateriaPrimaResponse, error) {
	materias, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	resp := make([]dto.MateriaPrimaResponse, len(materias))
	for i := range materias {
		resp[i] = *materiaPrimaToResponse(&materias[i])
	}
	return resp, nil
}

func (s *materiaPrimaService) Actualizar(ctx context.Context, id uint, req dto.ActualizarMateriaPrimaRequest) (*dto.MateriaPrimaResponse, error) {
	materia, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, apierror.NewNotFound("materia prima", id)
	}
	materia.Nombre = req.Nombre
	materia.UnidadMedida = req.UnidadMedida
	materia.CostoUnitario = req.CostoUnitario
	if err := s.repo.Update(ctx, materia); err != nil {
		return nil, err
	}
	return materiaPrimaToResponse(materia), nil
}

func (s *materiaPrimaService) Eliminar(ctx context.Context, id uint) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return apierror.NewNotFound("materia prima", id)
	}
	return s.repo.Delete(ctx, id)
}

func materiaPrimaToResponse(m *model.MateriaPrima) *dto.MateriaPrimaResponse {
	return &dto.MateriaPrimaResponse{
		ID:                 m.ID,
		Nombre:             m.Nombre,
		CantidadDisponible: m.CantidadDisponible,
		UnidadMedida:       m.UnidadMedida,
		CostoUnitario:      m.CostoUnitario,
	}
}
