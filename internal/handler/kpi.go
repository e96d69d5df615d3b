package handler

import (
	"net/http"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/service"

	"github.com/gin-gonic/gin"
)

type KPIHandler struct{ svc service.KPIService }

func NewKPIHandler(svc service.KPIService) *KPIHandler {
	return &KPIHandler{svc: svc}
}

// Obtener devuelve el tablero de métricas para el rango pedido (por defecto,
// el mes corriente).
func (h *KPIHandler) Obtener(c *gin.Context) {
	var filter dto.KPIFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
		return
	}
	if err := validate.Struct(&filter); err != nil {
		c.JSON(http.StatusUnprocessableEntity, apierror.New("rango de fechas invalido"))
		return
	}
	resp, err := h.svc.Obtener(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}
