package handler

import (
	"errors"
	"net/http"
	"reflect"
	"strconv"

	"chocolateria/internal/apierror"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking ("Bad field type decimal.Decimal").
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// bindAndValidate binds JSON body and runs go-playground/validator tags.
// Returns false and writes the error response if validation fails —
// the caller should return immediately without writing another response.
func bindAndValidate(c *gin.Context, req interface{}) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("JSON invalido: "+err.Error()))
		return false
	}
	if err := validate.Struct(req); err != nil {
		fields := make(map[string]string)
		for _, fe := range err.(validator.ValidationErrors) {
			fields[fe.Field()] = fe.Tag()
		}
		c.JSON(http.StatusUnprocessableEntity, apierror.NewValidation(fields))
		return false
	}
	return true
}

// parseID lee un parámetro de ruta numérico. Escribe la respuesta 400 y
// devuelve false si no es un entero positivo.
func parseID(c *gin.Context, name string) (uint, bool) {
	raw, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || raw == 0 {
		c.JSON(http.StatusBadRequest, apierror.New("ID invalido"))
		return 0, false
	}
	return uint(raw), true
}

// respondError traduce los errores tipados del servicio a códigos HTTP:
// NotFoundError → 404, ValidationError → 422, TxAbortError y el resto → 400.
func respondError(c *gin.Context, err error) {
	var nf *apierror.NotFoundError
	if errors.As(err, &nf) {
		c.JSON(http.StatusNotFound, apierror.New(nf.Error()))
		return
	}
	var ve *apierror.ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusUnprocessableEntity, ve)
		return
	}
	var tx *apierror.TxAbortError
	if errors.As(err, &tx) {
		c.JSON(http.StatusBadRequest, apierror.New(tx.Error()))
		return
	}
	c.JSON(http.StatusBadRequest, apierror.New(err.Error()))
}

// currentUserID devuelve el id del usuario autenticado que el middleware JWT
// dejó en el contexto. 0 cuando la ruta no pasó por el middleware.
func currentUserID(c *gin.Context) uint {
	v, ok := c.Get("user_id")
	if !ok {
		return 0
	}
	id, _ := v.(uint)
	return id
}
