package handler

import (
	"net/http"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/service"

	"github.com/gin-gonic/gin"
)

type EstadosVentasHandler struct{ svc service.EstadoVentaService }

func NewEstadosVentasHandler(svc service.EstadoVentaService) *EstadosVentasHandler {
	return &EstadosVentasHandler{svc: svc}
}

func (h *EstadosVentasHandler) Crear(c *gin.Context) {
	var req dto.CrearEstadoVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Crear(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

func (h *EstadosVentasHandler) Listar(c *gin.Context) {
	resp, err := h.svc.Listar(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, apierror.New("Error al listar estados"))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstadosVentasHandler) ObtenerPorID(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	resp, err := h.svc.ObtenerPorID(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstadosVentasHandler) Actualizar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req dto.CrearEstadoVentaRequest
	if !bindAndValidate(c, &req) {
		return
	}
	resp, err := h.svc.Actualizar(c.Request.Context(), id, req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *EstadosVentasHandler) Eliminar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.svc.Eliminar(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
