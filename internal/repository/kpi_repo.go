package repository

import (
	"context"
	"time"

	"chocolateria/internal/dto"
	"chocolateria/internal/model"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// KPIRepository agrupa las lecturas agregadas del tablero. Cada método es una
// consulta independiente y de solo lectura; el servicio combina los resultados
// y aplica los fallbacks de denominador cero.
type KPIRepository interface {
	SumVentas(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
	CountVentas(ctx context.Context, desde, hasta time.Time) (int64, error)
	ProductosMasVendidos(ctx context.Context, desde, hasta time.Time, limit int) ([]dto.ProductoVendido, error)
	CountClientesActivos(ctx context.Context, desde, hasta time.Time) (int64, error)
	CountClientes(ctx context.Context) (int64, error)
	CountClientesConVentaAntes(ctx context.Context, fecha time.Time) (int64, error)
	CountClientesRetenidos(ctx context.Context, fecha, desde, hasta time.Time) (int64, error)
	CostoVentas(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
	PromedioInventario(ctx context.Context) (cantidad, precio float64, err error)
	CountStockBajo(ctx context.Context) (int64, error)
	InventarioTotal(ctx context.Context) (decimal.Decimal, error)
	PromedioVentaDiaria(ctx context.Context, desde time.Time) (decimal.Decimal, error)
	CostoMateriaPrimaVendida(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
	SumGastosCompras(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error)
	HorasPromedioHastaCompletada(ctx context.Context, desde, hasta time.Time) (float64, error)
	DiasPromedioReposicion(ctx context.Context, desde, hasta time.Time) (float64, error)
	VentasPorUsuario(ctx context.Context, desde, hasta time.Time) ([]int64, error)
	CountUsuarios(ctx context.Context) (int64, error)
	VentasPorMes(ctx context.Context, desde, hasta time.Time) ([]dto.VentaMensual, error)
}

type kpiRepo struct{ db *gorm.DB }

func NewKPIRepository(db *gorm.DB) KPIRepository { return &kpiRepo{db: db} }

func (r *kpiRepo) sumDecimal(ctx context.Context, query string, args ...interface{}) (decimal.Decimal, error) {
	var total decimal.Decimal
	row := r.db.WithContext(ctx).Raw(query, args...).Row()
	if err := row.Scan(&total); err != nil {
		return decimal.Zero, err
	}
	return total, nil
}

func (r *kpiRepo) avgFloat(ctx context.Context, query string, args ...interface{}) (float64, error) {
	var v float64
	row := r.db.WithContext(ctx).Raw(query, args...).Row()
	if err := row.Scan(&v); err != nil {
		return 0, err
	}
	return v, nil
}

func (r *kpiRepo) SumVentas(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	return r.sumDecimal(ctx,
		`SELECT COALESCE(SUM(total), 0) FROM ventas WHERE fecha BETWEEN ? AND ?`, desde, hasta)
}

func (r *kpiRepo) CountVentas(ctx context.Context, desde, hasta time.Time) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Venta{}).
		Where("fecha BETWEEN ? AND ?", desde, hasta).Count(&total).Error
	return total, err
}

func (r *kpiRepo) ProductosMasVendidos(ctx context.Context, desde, hasta time.Time, limit int) ([]dto.ProductoVendido, error) {
	var rows []dto.ProductoVendido
	err := r.db.WithContext(ctx).Raw(`
		SELECT p.nombre, SUM(vp.cantidad) AS cantidad_vendida
		FROM productos p
		JOIN venta_producto vp ON vp.producto_id = p.id
		JOIN ventas v ON v.id = vp.venta_id
		WHERE v.fecha BETWEEN ? AND ?
		GROUP BY p.id, p.nombre
		ORDER BY cantidad_vendida DESC
		LIMIT ?`, desde, hasta, limit).Scan(&rows).Error
	return rows, err
}

func (r *kpiRepo) CountClientesActivos(ctx context.Context, desde, hasta time.Time) (int64, error) {
	var total int64
	row := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT cliente_id) FROM ventas WHERE fecha BETWEEN ? AND ?`,
		desde, hasta).Row()
	err := row.Scan(&total)
	return total, err
}

func (r *kpiRepo) CountClientes(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Cliente{}).Count(&total).Error
	return total, err
}

func (r *kpiRepo) CountClientesConVentaAntes(ctx context.Context, fecha time.Time) (int64, error) {
	var total int64
	row := r.db.WithContext(ctx).Raw(
		`SELECT COUNT(DISTINCT cliente_id) FROM ventas WHERE fecha < ?`, fecha).Row()
	err := row.Scan(&total)
	return total, err
}

func (r *kpiRepo) CountClientesRetenidos(ctx context.Context, fecha, desde, hasta time.Time) (int64, error) {
	var total int64
	row := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(DISTINCT v.cliente_id)
		FROM ventas v
		WHERE v.fecha BETWEEN ? AND ?
		  AND v.cliente_id IN (SELECT DISTINCT cliente_id FROM ventas WHERE fecha < ?)`,
		desde, hasta, fecha).Row()
	err := row.Scan(&total)
	return total, err
}

// CostoVentas es el costo de lo vendido valuado a precio de lista del producto.
func (r *kpiRepo) CostoVentas(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	return r.sumDecimal(ctx, `
		SELECT COALESCE(SUM(vp.cantidad * p.precio), 0)
		FROM venta_producto vp
		JOIN ventas v ON v.id = vp.venta_id
		JOIN productos p ON p.id = vp.producto_id
		WHERE v.fecha BETWEEN ? AND ?`, desde, hasta)
}

func (r *kpiRepo) PromedioInventario(ctx context.Context) (float64, float64, error) {
	var res struct {
		Cantidad float64
		Precio   float64
	}
	err := r.db.WithContext(ctx).Raw(`
		SELECT COALESCE(AVG(cantidad_disponible), 0) AS cantidad,
		       COALESCE(AVG(precio), 0) AS precio
		FROM productos`).Scan(&res).Error
	return res.Cantidad, res.Precio, err
}

func (r *kpiRepo) CountStockBajo(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Producto{}).
		Where("cantidad_disponible <= stock_minimo").Count(&total).Error
	return total, err
}

func (r *kpiRepo) InventarioTotal(ctx context.Context) (decimal.Decimal, error) {
	return r.sumDecimal(ctx,
		`SELECT COALESCE(SUM(cantidad_disponible * precio), 0) FROM productos`)
}

func (r *kpiRepo) PromedioVentaDiaria(ctx context.Context, desde time.Time) (decimal.Decimal, error) {
	return r.sumDecimal(ctx,
		`SELECT COALESCE(AVG(total), 0) FROM ventas WHERE fecha >= ?`, desde)
}

// CostoMateriaPrimaVendida recorre venta → item → producto → receta → materia
// prima y suma cantidad vendida × consumo por unidad × costo unitario.
func (r *kpiRepo) CostoMateriaPrimaVendida(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	return r.sumDecimal(ctx, `
		SELECT COALESCE(SUM(vp.cantidad * pmp.cantidad_por_unidad * mp.costo_unitario), 0)
		FROM venta_producto vp
		JOIN ventas v ON v.id = vp.venta_id
		JOIN productos p ON p.id = vp.producto_id
		JOIN producto_materia_prima pmp ON pmp.producto_id = p.id
		JOIN materia_primas mp ON mp.id = pmp.materia_prima_id
		WHERE v.fecha BETWEEN ? AND ?`, desde, hasta)
}

func (r *kpiRepo) SumGastosCompras(ctx context.Context, desde, hasta time.Time) (decimal.Decimal, error) {
	return r.sumDecimal(ctx, `
		SELECT COALESCE(SUM(monto), 0) FROM compras
		WHERE tipo_transaccion = 'compra' AND fecha BETWEEN ? AND ?`, desde, hasta)
}

func (r *kpiRepo) HorasPromedioHastaCompletada(ctx context.Context, desde, hasta time.Time) (float64, error) {
	return r.avgFloat(ctx, `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (evv.created_at - v.created_at)) / 3600), 0)
		FROM estado_venta_venta evv
		JOIN ventas v ON v.id = evv.venta_id
		WHERE v.fecha BETWEEN ? AND ?
		  AND evv.estado_venta_id = (SELECT id FROM estados_ventas WHERE nombre = 'Completada' LIMIT 1)`,
		desde, hasta)
}

func (r *kpiRepo) DiasPromedioReposicion(ctx context.Context, desde, hasta time.Time) (float64, error) {
	return r.avgFloat(ctx, `
		SELECT COALESCE(AVG(EXTRACT(EPOCH FROM (fecha - created_at)) / 86400), 0)
		FROM compras
		WHERE tipo_transaccion = 'compra' AND fecha BETWEEN ? AND ?`, desde, hasta)
}

func (r *kpiRepo) VentasPorUsuario(ctx context.Context, desde, hasta time.Time) ([]int64, error) {
	var counts []int64
	err := r.db.WithContext(ctx).Raw(`
		SELECT COUNT(*) FROM ventas
		WHERE fecha BETWEEN ? AND ?
		GROUP BY usuario_id`, desde, hasta).Scan(&counts).Error
	return counts, err
}

func (r *kpiRepo) CountUsuarios(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&model.Usuario{}).Count(&total).Error
	return total, err
}

func (r *kpiRepo) VentasPorMes(ctx context.Context, desde, hasta time.Time) ([]dto.VentaMensual, error) {
	var rows []dto.VentaMensual
	err := r.db.WithContext(ctx).Raw(`
		SELECT EXTRACT(YEAR FROM fecha)::int AS anio,
		       EXTRACT(MONTH FROM fecha)::int AS mes,
		       SUM(total) AS total
		FROM ventas
		WHERE fecha BETWEEN ? AND ?
		GROUP BY anio, mes
		ORDER BY anio, mes`, desde, hasta).Scan(&rows).Error
	return rows, err
}
