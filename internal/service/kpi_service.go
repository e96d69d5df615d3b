package service

import (
	"context"
	"time"

	"chocolateria/internal/dto"
	"chocolateria/internal/repository"

	"github.com/shopspring/decimal"
)

// KPIService calcula el tablero de métricas sobre un rango de fechas. Camino
// de solo lectura: una consulta independiente por métrica, sin transacción.
// Todo denominador cero tiene un fallback definido en lugar de propagar un
// error de división.
type KPIService interface {
	Obtener(ctx context.Context, filter dto.KPIFilter) (*dto.KPIResponse, error)
}

type kpiService struct {
	repo repository.KPIRepository
}

func NewKPIService(repo repository.KPIRepository) KPIService {
	return &kpiService{repo: repo}
}

// rangoFechas resuelve el rango pedido; por defecto va del inicio del mes
// corriente hasta ahora.
func rangoFechas(filter dto.KPIFilter) (time.Time, time.Time, error) {
	now := time.Now()
	desde := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	hasta := now

	if filter.FechaInicio != "" {
		t, err := parseFecha(filter.FechaInicio)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		desde = t
	}
	if filter.FechaFin != "" {
		t, err := parseFecha(filter.FechaFin)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		// Incluir el día completo de la fecha fin.
		hasta = t.Add(24*time.Hour - time.Second)
	}
	return desde, hasta, nil
}

func (s *kpiService) Obtener(ctx context.Context, filter dto.KPIFilter) (*dto.KPIResponse, error) {
	desde, hasta, err := rangoFechas(filter)
	if err != nil {
		return nil, err
	}

	resp := &dto.KPIResponse{}

	ventasTotales, err := s.repo.SumVentas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	resp.VentasTotales = ventasTotales
	resp.IngresosBrutos = ventasTotales

	// Crecimiento contra el mismo rango corrido un mes hacia atrás. Con
	// período anterior en cero, cualquier venta desde la nada cuenta como
	// 100% de crecimiento.
	anterior, err := s.repo.SumVentas(ctx, desde.AddDate(0, -1, 0), hasta.AddDate(0, -1, 0))
	if err != nil {
		return nil, err
	}
	if anterior.IsZero() {
		resp.CrecimientoVentas = 100
	} else {
		resp.CrecimientoVentas = ventasTotales.Sub(anterior).
			Div(anterior).Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	countVentas, err := s.repo.CountVentas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	if countVentas > 0 {
		resp.TicketPromedio = ventasTotales.Div(decimal.NewFromInt(countVentas)).Round(2)
	} else {
		resp.TicketPromedio = decimal.Zero
	}

	resp.ProductosMasVendidos, err = s.repo.ProductosMasVendidos(ctx, desde, hasta, 5)
	if err != nil {
		return nil, err
	}

	activos, err := s.repo.CountClientesActivos(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	totalClientes, err := s.repo.CountClientes(ctx)
	if err != nil {
		return nil, err
	}
	resp.ClientesActivos = activos
	resp.ClientesInactivos = totalClientes - activos

	// frecuenciaCompra = días del rango / (ventas por cliente activo).
	if activos > 0 && countVentas > 0 {
		dias := hasta.Sub(desde).Hours() / 24
		resp.FrecuenciaCompra = dias / (float64(countVentas) / float64(activos))
	}

	previos, err := s.repo.CountClientesConVentaAntes(ctx, desde)
	if err != nil {
		return nil, err
	}
	if previos > 0 {
		retenidos, err := s.repo.CountClientesRetenidos(ctx, desde, desde, hasta)
		if err != nil {
			return nil, err
		}
		resp.RetencionClientes = float64(retenidos) / float64(previos) * 100
	}

	costoVentas, err := s.repo.CostoVentas(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	avgCantidad, avgPrecio, err := s.repo.PromedioInventario(ctx)
	if err != nil {
		return nil, err
	}
	if inventarioMedio := avgCantidad * avgPrecio; inventarioMedio > 0 {
		resp.RotacionInventario = costoVentas.InexactFloat64() / inventarioMedio
	}

	resp.AlertasStockBajo, err = s.repo.CountStockBajo(ctx)
	if err != nil {
		return nil, err
	}

	inventarioTotal, err := s.repo.InventarioTotal(ctx)
	if err != nil {
		return nil, err
	}
	ventaDiaria, err := s.repo.PromedioVentaDiaria(ctx, time.Now().AddDate(0, 0, -30))
	if err != nil {
		return nil, err
	}
	if !ventaDiaria.IsZero() {
		resp.DiasInventarioRestante = inventarioTotal.Div(ventaDiaria).InexactFloat64()
	}

	costoMateria, err := s.repo.CostoMateriaPrimaVendida(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	resp.IngresosNetos = ventasTotales.Sub(costoMateria)
	if !ventasTotales.IsZero() {
		resp.MargenesGanancia = resp.IngresosNetos.Div(ventasTotales).
			Mul(decimal.NewFromInt(100)).InexactFloat64()
	}

	resp.GastosMateriaPrima, err = s.repo.SumGastosCompras(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	resp.TiempoPromedioVentas, err = s.repo.HorasPromedioHastaCompletada(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	resp.TiempoReposicionInventario, err = s.repo.DiasPromedioReposicion(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}

	totalUsuarios, err := s.repo.CountUsuarios(ctx)
	if err != nil {
		return nil, err
	}
	porUsuario, err := s.repo.VentasPorUsuario(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	if totalUsuarios > 0 && len(porUsuario) > 0 {
		var suma int64
		for _, c := range porUsuario {
			suma += c
		}
		resp.EficienciaUsuarios = float64(suma) / float64(len(porUsuario))
	}

	resp.VentasPorMes, err = s.repo.VentasPorMes(ctx, desde, hasta)
	if err != nil {
		return nil, err
	}
	return resp, nil
}
