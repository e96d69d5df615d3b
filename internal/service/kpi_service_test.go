package service_test

import (
	"context"
	"testing"
	"time"

	"chocolateria/internal/dto"
	"chocolateria/internal/repository"
	"chocolateria/internal/service"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubKPIRepo devuelve valores fijos por métrica. SumVentas distingue el
// período actual del anterior por orden de llamada: el servicio siempre
// consulta primero el rango pedido y después el corrido un mes atrás.
type stubKPIRepo struct {
	ventasActual   decimal.Decimal
	ventasAnterior decimal.Decimal
	llamadasSum    int

	countVentas      int64
	clientesActivos  int64
	clientesTotal    int64
	clientesPrevios  int64
	clientesRetenido int64
	costoVentas      decimal.Decimal
	avgCantidad      float64
	avgPrecio        float64
	stockBajo        int64
	inventarioTotal  decimal.Decimal
	ventaDiaria      decimal.Decimal
	costoMateria     decimal.Decimal
	gastosCompras    decimal.Decimal
	horasCompletada  float64
	diasReposicion   float64
	porUsuario       []int64
	usuarios         int64
	porMes           []dto.VentaMensual
}

func (r *stubKPIRepo) SumVentas(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	r.llamadasSum++
	if r.llamadasSum == 1 {
		return r.ventasActual, nil
	}
	return r.ventasAnterior, nil
}

func (r *stubKPIRepo) CountVentas(_ context.Context, _, _ time.Time) (int64, error) {
	return r.countVentas, nil
}

func (r *stubKPIRepo) ProductosMasVendidos(_ context.Context, _, _ time.Time, _ int) ([]dto.ProductoVendido, error) {
	return nil, nil
}

func (r *stubKPIRepo) CountClientesActivos(_ context.Context, _, _ time.Time) (int64, error) {
	return r.clientesActivos, nil
}

func (r *stubKPIRepo) CountClientes(_ context.Context) (int64, error) {
	return r.clientesTotal, nil
}

func (r *stubKPIRepo) CountClientesConVentaAntes(_ context.Context, _ time.Time) (int64, error) {
	return r.clientesPrevios, nil
}

func (r *stubKPIRepo) CountClientesRetenidos(_ context.Context, _, _, _ time.Time) (int64, error) {
	return r.clientesRetenido, nil
}

func (r *stubKPIRepo) CostoVentas(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return r.costoVentas, nil
}

func (r *stubKPIRepo) PromedioInventario(_ context.Context) (float64, float64, error) {
	return r.avgCantidad, r.avgPrecio, nil
}

func (r *stubKPIRepo) CountStockBajo(_ context.Context) (int64, error) {
	return r.stockBajo, nil
}

func (r *stubKPIRepo) InventarioTotal(_ context.Context) (decimal.Decimal, error) {
	return r.inventarioTotal, nil
}

func (r *stubKPIRepo) PromedioVentaDiaria(_ context.Context, _ time.Time) (decimal.Decimal, error) {
	return r.ventaDiaria, nil
}

func (r *stubKPIRepo) CostoMateriaPrimaVendida(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return r.costoMateria, nil
}

func (r *stubKPIRepo) SumGastosCompras(_ context.Context, _, _ time.Time) (decimal.Decimal, error) {
	return r.gastosCompras, nil
}

func (r *stubKPIRepo) HorasPromedioHastaCompletada(_ context.Context, _, _ time.Time) (float64, error) {
	return r.horasCompletada, nil
}

func (r *stubKPIRepo) DiasPromedioReposicion(_ context.Context, _, _ time.Time) (float64, error) {
	return r.diasReposicion, nil
}

func (r *stubKPIRepo) VentasPorUsuario(_ context.Context, _, _ time.Time) ([]int64, error) {
	return r.porUsuario, nil
}

func (r *stubKPIRepo) CountUsuarios(_ context.Context) (int64, error) {
	return r.usuarios, nil
}

func (r *stubKPIRepo) VentasPorMes(_ context.Context, _, _ time.Time) ([]dto.VentaMensual, error) {
	return r.porMes, nil
}

var _ repository.KPIRepository = (*stubKPIRepo)(nil)

func filtroAgosto() dto.KPIFilter {
	return dto.KPIFilter{FechaInicio: "2026-08-01", FechaFin: "2026-08-31"}
}

// Período anterior en cero → crecimiento definido como 100, nunca división
// por cero.
func TestKPICrecimientoSinPeriodoAnterior(t *testing.T) {
	repo := &stubKPIRepo{
		ventasActual:   decimal.NewFromInt(500),
		ventasAnterior: decimal.Zero,
		countVentas:    5,
	}
	svc := service.NewKPIService(repo)

	resp, err := svc.Obtener(context.Background(), filtroAgosto())
	require.NoError(t, err)
	assert.Equal(t, float64(100), resp.CrecimientoVentas)
	assert.Equal(t, "100", resp.TicketPromedio.String())
}

func TestKPICrecimientoConPeriodoAnterior(t *testing.T) {
	repo := &stubKPIRepo{
		ventasActual:   decimal.NewFromInt(150),
		ventasAnterior: decimal.NewFromInt(100),
		countVentas:    3,
	}
	svc := service.NewKPIService(repo)

	resp, err := svc.Obtener(context.Background(), filtroAgosto())
	require.NoError(t, err)
	assert.InDelta(t, 50, resp.CrecimientoVentas, 0.001)
}

// Sin ventas en el rango todos los derivados caen a su fallback en lugar de
// propagar una división por cero.
func TestKPISinVentas(t *testing.T) {
	repo := &stubKPIRepo{
		ventasActual:   decimal.Zero,
		ventasAnterior: decimal.Zero,
	}
	svc := service.NewKPIService(repo)

	resp, err := svc.Obtener(context.Background(), filtroAgosto())
	require.NoError(t, err)
	assert.True(t, resp.TicketPromedio.IsZero())
	assert.Zero(t, resp.MargenesGanancia)
	assert.Zero(t, resp.FrecuenciaCompra)
	assert.Zero(t, resp.RotacionInventario)
	assert.Zero(t, resp.DiasInventarioRestante)
	assert.Zero(t, resp.EficienciaUsuarios)
	// La rama literal: período anterior en cero devuelve 100 aun sin ventas.
	assert.Equal(t, float64(100), resp.CrecimientoVentas)
}

func TestKPIMargenYNetos(t *testing.T) {
	repo := &stubKPIRepo{
		ventasActual:   decimal.NewFromInt(200),
		ventasAnterior: decimal.NewFromInt(200),
		countVentas:    4,
		costoMateria:   decimal.NewFromInt(50),
	}
	svc := service.NewKPIService(repo)

	resp, err := svc.Obtener(context.Background(), filtroAgosto())
	require.NoError(t, err)
	assert.Equal(t, "150", resp.IngresosNetos.String())
	assert.InDelta(t, 75, resp.MargenesGanancia, 0.001)
	assert.Zero(t, resp.CrecimientoVentas)
}

func TestKPIRetencionYEficiencia(t *testing.T) {
	repo := &stubKPIRepo{
		ventasActual:     decimal.NewFromInt(100),
		ventasAnterior:   decimal.NewFromInt(100),
		countVentas:      10,
		clientesActivos:  5,
		clientesTotal:    8,
		clientesPrevios:  4,
		clientesRetenido: 2,
		usuarios:         3,
		porUsuario:       []int64{4, 6},
	}
	svc := service.NewKPIService(repo)

	resp, err := svc.Obtener(context.Background(), filtroAgosto())
	require.NoError(t, err)
	assert.Equal(t, int64(5), resp.ClientesActivos)
	assert.Equal(t, int64(3), resp.ClientesInactivos)
	assert.InDelta(t, 50, resp.RetencionClientes, 0.001)
	assert.InDelta(t, 5, resp.EficienciaUsuarios, 0.001) // (4+6)/2
}
