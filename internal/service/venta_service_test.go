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

type entornoVenta struct {
	ventaRepo    *stubVentaRepo
	productoRepo *stubProductoRepo
	clienteRepo  *stubClienteRepo
	estadoRepo   *stubEstadoVentaRepo
	usuarioRepo  *stubUsuarioRepo

	usuario  *model.Usuario
	cliente  *model.Cliente
	producto *model.Producto
	estado   *model.EstadoVenta
}

func nuevoEntornoVenta(t *testing.T) *entornoVenta {
	t.Helper()
	e := &entornoVenta{
		productoRepo: newStubProductoRepo(),
		clienteRepo:  newStubClienteRepo(),
		estadoRepo:   newStubEstadoVentaRepo(),
		usuarioRepo:  newStubUsuarioRepo(),
	}
	e.ventaRepo = newStubVentaRepo(e.productoRepo, e.clienteRepo, e.estadoRepo)

	ctx := context.Background()
	e.usuario = seedUsuario(e.usuarioRepo, "vendedor")
	e.cliente = &model.Cliente{Nombre: "Ana"}
	require.NoError(t, e.clienteRepo.Create(ctx, e.cliente))
	e.producto = &model.Producto{
		Nombre:             "Tableta 70%",
		Categoria:          "Tabletas",
		Precio:             decimal.NewFromFloat(20),
		CantidadDisponible: 50,
		StockMinimo:        5,
	}
	require.NoError(t, e.productoRepo.Create(ctx, e.producto))
	e.estado = &model.EstadoVenta{Nombre: "Pendiente"}
	require.NoError(t, e.estadoRepo.Create(ctx, e.estado))
	return e
}

func (e *entornoVenta) servicio(allowNegative bool) service.VentaService {
	return service.NewVentaService(
		e.ventaRepo, e.productoRepo, e.clienteRepo, e.estadoRepo, e.usuarioRepo,
		nil, allowNegative)
}

func (e *entornoVenta) request(cantidad int) dto.RegistrarVentaRequest {
	return dto.RegistrarVentaRequest{
		Fecha:     "2026-08-15",
		ClienteID: e.cliente.ID,
		Productos: []dto.ItemVentaRequest{{ProductoID: e.producto.ID, Cantidad: cantidad}},
		EstadoID:  e.estado.ID,
	}
}

// Producto a 20.00 con stock 50; venta de 4 unidades → total 80.00, stock 46.
func TestVentaRegistrarDescuentaStock(t *testing.T) {
	e := nuevoEntornoVenta(t)
	svc := e.servicio(true)

	resp, err := svc.Registrar(context.Background(), e.usuario.ID, e.request(4))
	require.NoError(t, err)

	assert.Equal(t, "80", resp.Total.String())
	assert.Equal(t, 46, e.producto.CantidadDisponible)
	assert.Equal(t, "Pendiente", resp.Estado)
	require.Len(t, resp.Items, 1)
	assert.Equal(t, "80", resp.Items[0].Subtotal.String())
}

// Eliminar la venta restaura el stock exactamente al valor previo.
func TestVentaEliminarRestauraStock(t *testing.T) {
	e := nuevoEntornoVenta(t)
	svc := e.servicio(true)
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, e.usuario.ID, e.request(4))
	require.NoError(t, err)
	require.Equal(t, 46, e.producto.CantidadDisponible)

	require.NoError(t, svc.Eliminar(ctx, resp.ID))
	assert.Equal(t, 50, e.producto.CantidadDisponible)

	_, err = svc.ObtenerPorID(ctx, resp.ID)
	var nf *apierror.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

// Actualizar con los mismos campos no cambia ni el total ni el stock.
func TestVentaActualizarIdempotente(t *testing.T) {
	e := nuevoEntornoVenta(t)
	svc := e.servicio(true)
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, e.usuario.ID, e.request(4))
	require.NoError(t, err)

	actualizado, err := svc.Actualizar(ctx, resp.ID, e.request(4))
	require.NoError(t, err)

	assert.Equal(t, resp.Total.String(), actualizado.Total.String())
	assert.Equal(t, 46, e.producto.CantidadDisponible)
}

// Actualizar con otra cantidad revierte el descuento viejo y aplica el nuevo.
func TestVentaActualizarRecalculaStockYTotal(t *testing.T) {
	e := nuevoEntornoVenta(t)
	svc := e.servicio(true)
	ctx := context.Background()

	resp, err := svc.Registrar(ctx, e.usuario.ID, e.request(4))
	require.NoError(t, err)

	actualizado, err := svc.Actualizar(ctx, resp.ID, e.request(10))
	require.NoError(t, err)

	assert.Equal(t, "200", actualizado.Total.String())
	assert.Equal(t, 40, e.producto.CantidadDisponible)
}

// Semántica sync: un único estado vigente, el anterior se reemplaza.
func TestVentaActualizarEstado(t *testing.T) {
	e := nuevoEntornoVenta(t)
	svc := e.servicio(true)
	ctx := context.Background()

	completada := &model.EstadoVenta{Nombre: "Completada"}
	require.NoError(t, e.estadoRepo.Create(ctx, completada))

	resp, err := svc.Registrar(ctx, e.usuario.ID, e.request(2))
	require.NoError(t, err)
	require.Equal(t, "Pendiente", resp.Estado)

	conEstado, err := svc.ActualizarEstado(ctx, resp.ID, completada.ID)
	require.NoError(t, err)
	assert.Equal(t, "Completada", conEstado.Estado)
	assert.Equal(t, completada.ID, conEstado.EstadoID)
}

// Con la política de stock negativo deshabilitada, la venta se rechaza y no
// queda ningún descuento parcial.
func TestVentaStockInsuficiente(t *testing.T) {
	e := nuevoEntornoVenta(t)
	svc := e.servicio(false)

	_, err := svc.Registrar(context.Background(), e.usuario.ID, e.request(60))
	var ve *apierror.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, 50, e.producto.CantidadDisponible)
}

// Comportamiento histórico: sin la política, el stock puede quedar negativo.
func TestVentaStockNegativoPermitido(t *testing.T) {
	e := nuevoEntornoVenta(t)
	svc := e.servicio(true)

	_, err := svc.Registrar(context.Background(), e.usuario.ID, e.request(60))
	require.NoError(t, err)
	assert.Equal(t, -10, e.producto.CantidadDisponible)
}

func TestVentaClienteInexistente(t *testing.T) {
	e := nuevoEntornoVenta(t)
	svc := e.servicio(true)

	req := e.request(1)
	req.ClienteID = 99
	_, err := svc.Registrar(context.Background(), e.usuario.ID, req)
	var nf *apierror.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "cliente", nf.Recurso)
}
