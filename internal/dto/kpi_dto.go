package dto

import "github.com/shopspring/decimal"

// KPIFilter is bound from the query string of GET /v1/kpi.
// periodo se acepta por compatibilidad pero las fórmulas solo usan el rango.
type KPIFilter struct {
	Periodo     string `form:"periodo,default=mensual"`
	FechaInicio string `form:"fecha_inicio" validate:"omitempty,datetime=2006-01-02"`
	FechaFin    string `form:"fecha_fin"    validate:"omitempty,datetime=2006-01-02"`
}

// ProductoVendido es una fila del top de productos por cantidad vendida.
type ProductoVendido struct {
	Nombre          string `json:"nombre"`
	CantidadVendida int64  `json:"cantidadVendida"`
}

// VentaMensual es el total de ventas agrupado por año y mes.
type VentaMensual struct {
	Anio  int             `json:"anio"`
	Mes   int             `json:"mes"`
	Total decimal.Decimal `json:"total"`
}

// KPIResponse agrupa las métricas del tablero. Los nombres de campo replican
// el payload histórico del endpoint.
type KPIResponse struct {
	VentasTotales              decimal.Decimal   `json:"ventasTotales"`
	CrecimientoVentas          float64           `json:"crecimientoVentas"`
	TicketPromedio             decimal.Decimal   `json:"ticketPromedio"`
	ProductosMasVendidos       []ProductoVendido `json:"productosMasVendidos"`
	ClientesActivos            int64             `json:"clientesActivos"`
	ClientesInactivos          int64             `json:"clientesInactivos"`
	FrecuenciaCompra           float64           `json:"frecuenciaCompra"`
	RetencionClientes          float64           `json:"retencionClientes"`
	RotacionInventario         float64           `json:"rotacionInventario"`
	AlertasStockBajo           int64             `json:"alertasStockBajo"`
	DiasInventarioRestante     float64           `json:"diasInventarioRestante"`
	IngresosBrutos             decimal.Decimal   `json:"ingresosBrutos"`
	IngresosNetos              decimal.Decimal   `json:"ingresosNetos"`
	MargenesGanancia           float64           `json:"margenesGanancia"`
	GastosMateriaPrima         decimal.Decimal   `json:"gastosMateriaPrima"`
	TiempoPromedioVentas       float64           `json:"tiempoPromedioVentas"`
	TiempoReposicionInventario float64           `json:"tiempoReposicionInventario"`
	EficienciaUsuarios         float64           `json:"eficienciaUsuarios"`
	VentasPorMes               []VentaMensual    `json:"ventasPorMes"`
}
