package service_test

import (
	"context"
	"testing"

	"chocolateria/internal/apierror"
	"chocolateria/internal/dto"
	"chocolateria/internal/model"
	"chocolateria/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedMateria(repo *stubMateriaPrimaRepo, nombre string, cantidad, costo float64) *model.MateriaPrima {
	m := &model.MateriaPrima{
		Nombre:             nombre,
		CantidadDisponible: decimal.NewFromFloat(cantidad),
		UnidadMedida:       "kg",
		CostoUnitario:      decimal.NewFromFloat(costo),
	}
	_ = repo.Create(context.Background(), m)
	return m
}

func seedUsuario(repo *stubUsuarioRepo, username string) *model.Usuario {
	u := &model.Usuario{Username: username, Nombre: username, PasswordHash: "x", Activo: true}
	_ = repo.Create(context.Background(), u)
	return u
}

func compraRequest(usuarioID, materiaID uint, cantidad float64) dto.RegistrarCompraRequest {
	return dto.RegistrarCompraRequest{
		TipoTransaccion: model.TipoCompra,
		Monto:           decimal.NewFromFloat(1200),
		Descripcion:     "Compra de cacao",
		Fecha:           "2026-08-10",
		Categoria:       "Insumos",
		UsuarioID:       usuarioID,
		MateriaPrimaID:  materiaID,
		Cantidad:        decimal.NewFromFloat(cantidad),
	}
}

// Escenario del libro: stock 10, compra de 5 → 15, la compra se corrige a
// 3 → 13, se elimina → 10. Cada paso debe cancelar exactamente su
// contribución anterior.
func TestCompraRegistrarActualizarEliminar(t *testing.T) {
	compraRepo := newStubCompraRepo()
	materiaRepo := newStubMateriaPrimaRepo()
	usuarioRepo := newStubUsuarioRepo()
	svc := service.NewCompraService(compraRepo, materiaRepo, usuarioRepo)

	usuario := seedUsuario(usuarioRepo, "vendedor")
	materia := seedMateria(materiaRepo, "Cacao", 10, 45)
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, compraRequest(usuario.ID, materia.ID, 5))
	require.NoError(t, err)
	assert.Equal(t, "15", materia.CantidadDisponible.String())

	req := compraRequest(usuario.ID, materia.ID, 3)
	_, err = svc.Actualizar(ctx, resp.ID, req)
	require.NoError(t, err)
	assert.Equal(t, "13", materia.CantidadDisponible.String())

	require.NoError(t, svc.Eliminar(ctx, resp.ID))
	assert.Equal(t, "10", materia.CantidadDisponible.String())
}

func TestCompraRegistrarMateriaInexistente(t *testing.T) {
	compraRepo := newStubCompraRepo()
	materiaRepo := newStubMateriaPrimaRepo()
	usuarioRepo := newStubUsuarioRepo()
	svc := service.NewCompraService(compraRepo, materiaRepo, usuarioRepo)

	usuario := seedUsuario(usuarioRepo, "vendedor")

	_, err := svc.Registrar(context.Background(), compraRequest(usuario.ID, 99, 5))
	var nf *apierror.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "materia prima", nf.Recurso)
}

func TestCompraFechaInvalida(t *testing.T) {
	svc := service.NewCompraService(newStubCompraRepo(), newStubMateriaPrimaRepo(), newStubUsuarioRepo())

	req := compraRequest(1, 1, 5)
	req.Fecha = "10/08/2026"
	_, err := svc.Registrar(context.Background(), req)
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
}

// Al cambiar la materia prima referenciada, la reversión aplica sobre la
// original y la reaplicación sobre la nueva.
func TestCompraActualizarCambiaMateria(t *testing.T) {
	compraRepo := newStubCompraRepo()
	materiaRepo := newStubMateriaPrimaRepo()
	usuarioRepo := newStubUsuarioRepo()
	svc := service.NewCompraService(compraRepo, materiaRepo, usuarioRepo)

	usuario := seedUsuario(usuarioRepo, "vendedor")
	cacao := seedMateria(materiaRepo, "Cacao", 10, 45)
	leche := seedMateria(materiaRepo, "Leche", 20, 12)
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, compraRequest(usuario.ID, cacao.ID, 5))
	require.NoError(t, err)
	assert.Equal(t, "15", cacao.CantidadDisponible.String())

	req := compraRequest(usuario.ID, leche.ID, 8)
	_, err = svc.Actualizar(ctx, resp.ID, req)
	require.NoError(t, err)

	assert.Equal(t, "10", cacao.CantidadDisponible.String())
	assert.Equal(t, "28", leche.CantidadDisponible.String())
}

func TestCompraListarCategorias(t *testing.T) {
	compraRepo := newStubCompraRepo()
	materiaRepo := newStubMateriaPrimaRepo()
	usuarioRepo := newStubUsuarioRepo()
	svc := service.NewCompraService(compraRepo, materiaRepo, usuarioRepo)

	usuario := seedUsuario(usuarioRepo, "vendedor")
	materia := seedMateria(materiaRepo, "Cacao", 10, 45)
	ctx := context.Background()

	_, err := svc.Registrar(ctx, compraRequest(usuario.ID, materia.ID, 5))
	require.NoError(t, err)

	categorias, err := svc.ListarCategorias(ctx)
	require.NoError(t, err)
	assert.Contains(t, categorias, "Insumos")
}
