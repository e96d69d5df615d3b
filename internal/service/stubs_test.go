package service_test

import (
	"context"
	"errors"
	"time"

	"chocolateria/internal/dto"
	"chocolateria/internal/model"
	"chocolateria/internal/repository"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Stubs en memoria para los repositorios. Devuelven DB() == nil, de modo que
// runTx ejecuta el callback directamente sin transacción real y todas las
// mutaciones de cantidades se pueden verificar contra los mapas.

// ── Usuario ──────────────────────────────────────────────────────────────────

type stubUsuarioRepo struct {
	usuarios map[uint]*model.Usuario
	nextID   uint
}

func newStubUsuarioRepo() *stubUsuarioRepo {
	return &stubUsuarioRepo{usuarios: make(map[uint]*model.Usuario)}
}

func (r *stubUsuarioRepo) Create(_ context.Context, u *model.Usuario) error {
	if u.ID == 0 {
		r.nextID++
		u.ID = r.nextID
	}
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) FindByID(_ context.Context, id uint) (*model.Usuario, error) {
	u, ok := r.usuarios[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return u, nil
}

func (r *stubUsuarioRepo) FindByUsername(_ context.Context, username string) (*model.Usuario, error) {
	for _, u := range r.usuarios {
		if u.Username == username && u.Activo {
			return u, nil
		}
	}
	return nil, errors.New("record not found")
}

func (r *stubUsuarioRepo) List(_ context.Context, incluirInactivos bool) ([]model.Usuario, error) {
	var result []model.Usuario
	for _, u := range r.usuarios {
		if !incluirInactivos && !u.Activo {
			continue
		}
		result = append(result, *u)
	}
	return result, nil
}

func (r *stubUsuarioRepo) Update(_ context.Context, u *model.Usuario) error {
	r.usuarios[u.ID] = u
	return nil
}

func (r *stubUsuarioRepo) SoftDelete(_ context.Context, id uint) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("record not found")
	}
	u.Activo = false
	return nil
}

func (r *stubUsuarioRepo) Reactivar(_ context.Context, id uint) error {
	u, ok := r.usuarios[id]
	if !ok {
		return errors.New("record not found")
	}
	u.Activo = true
	return nil
}

var _ repository.UsuarioRepository = (*stubUsuarioRepo)(nil)

// ── Cliente ──────────────────────────────────────────────────────────────────

type stubClienteRepo struct {
	clientes map[uint]*model.Cliente
	nextID   uint
}

func newStubClienteRepo() *stubClienteRepo {
	return &stubClienteRepo{clientes: make(map[uint]*model.Cliente)}
}

func (r *stubClienteRepo) Create(_ context.Context, c *model.Cliente) error {
	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	}
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) FindByID(_ context.Context, id uint) (*model.Cliente, error) {
	c, ok := r.clientes[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return c, nil
}

func (r *stubClienteRepo) List(_ context.Context) ([]model.Cliente, error) {
	var result []model.Cliente
	for _, c := range r.clientes {
		result = append(result, *c)
	}
	return result, nil
}

func (r *stubClienteRepo) Update(_ context.Context, c *model.Cliente) error {
	r.clientes[c.ID] = c
	return nil
}

func (r *stubClienteRepo) Delete(_ context.Context, id uint) error {
	delete(r.clientes, id)
	return nil
}

func (r *stubClienteRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.clientes)), nil
}

var _ repository.ClienteRepository = (*stubClienteRepo)(nil)

// ── Producto ─────────────────────────────────────────────────────────────────

type stubProductoRepo struct {
	productos map[uint]*model.Producto
	vinculos  map[[2]uint]*model.ProductoMateriaPrima
	nextID    uint
}

func newStubProductoRepo() *stubProductoRepo {
	return &stubProductoRepo{
		productos: make(map[uint]*model.Producto),
		vinculos:  make(map[[2]uint]*model.ProductoMateriaPrima),
	}
}

func (r *stubProductoRepo) Create(_ context.Context, p *model.Producto) error {
	if p.ID == 0 {
		r.nextID++
		p.ID = r.nextID
	}
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) FindByID(_ context.Context, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return p, nil
}

func (r *stubProductoRepo) List(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		result = append(result, *p)
	}
	return result, nil
}

func (r *stubProductoRepo) Update(_ context.Context, p *model.Producto) error {
	r.productos[p.ID] = p
	return nil
}

func (r *stubProductoRepo) Delete(_ context.Context, id uint) error {
	delete(r.productos, id)
	return nil
}

func (r *stubProductoRepo) FindForUpdateTx(_ *gorm.DB, id uint) (*model.Producto, error) {
	p, ok := r.productos[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copia := *p
	return &copia, nil
}

func (r *stubProductoRepo) UpdateStockTx(_ *gorm.DB, id uint, delta int) error {
	p, ok := r.productos[id]
	if !ok {
		return errors.New("record not found")
	}
	p.CantidadDisponible += delta
	return nil
}

func (r *stubProductoRepo) CreateVinculo(_ context.Context, v *model.ProductoMateriaPrima) error {
	r.vinculos[[2]uint{v.ProductoID, v.MateriaPrimaID}] = v
	return nil
}

func (r *stubProductoRepo) DeleteVinculo(_ context.Context, productoID, materiaPrimaID uint) error {
	delete(r.vinculos, [2]uint{productoID, materiaPrimaID})
	return nil
}

func (r *stubProductoRepo) StockBajo(_ context.Context) ([]model.Producto, error) {
	var result []model.Producto
	for _, p := range r.productos {
		if p.CantidadDisponible <= p.StockMinimo {
			result = append(result, *p)
		}
	}
	return result, nil
}

func (r *stubProductoRepo) DB() *gorm.DB { return nil }

var _ repository.ProductoRepository = (*stubProductoRepo)(nil)

// ── Materia prima ────────────────────────────────────────────────────────────

type stubMateriaPrimaRepo struct {
	materias map[uint]*model.MateriaPrima
	nextID   uint
}

func newStubMateriaPrimaRepo() *stubMateriaPrimaRepo {
	return &stubMateriaPrimaRepo{materias: make(map[uint]*model.MateriaPrima)}
}

func (r *stubMateriaPrimaRepo) Create(_ context.Context, m *model.MateriaPrima) error {
	if m.ID == 0 {
		r.nextID++
		m.ID = r.nextID
	}
	r.materias[m.ID] = m
	return nil
}

func (r *stubMateriaPrimaRepo) FindByID(_ context.Context, id uint) (*model.MateriaPrima, error) {
	m, ok := r.materias[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return m, nil
}

func (r *stubMateriaPrimaRepo) List(_ context.Context) ([]model.MateriaPrima, error) {
	var result []model.MateriaPrima
	for _, m := range r.materias {
		result = append(result, *m)
	}
	return result, nil
}

func (r *stubMateriaPrimaRepo) Update(_ context.Context, m *model.MateriaPrima) error {
	r.materias[m.ID] = m
	return nil
}

func (r *stubMateriaPrimaRepo) Delete(_ context.Context, id uint) error {
	delete(r.materias, id)
	return nil
}

func (r *stubMateriaPrimaRepo) FindForUpdateTx(_ *gorm.DB, id uint) (*model.MateriaPrima, error) {
	m, ok := r.materias[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copia := *m
	return &copia, nil
}

func (r *stubMateriaPrimaRepo) AddCantidadTx(_ *gorm.DB, id uint, delta decimal.Decimal) error {
	m, ok := r.materias[id]
	if !ok {
		return errors.New("record not found")
	}
	m.CantidadDisponible = m.CantidadDisponible.Add(delta)
	return nil
}

func (r *stubMateriaPrimaRepo) SetCantidadTx(_ *gorm.DB, id uint, cantidad decimal.Decimal) error {
	m, ok := r.materias[id]
	if !ok {
		return errors.New("record not found")
	}
	m.CantidadDisponible = cantidad
	return nil
}

func (r *stubMateriaPrimaRepo) DB() *gorm.DB { return nil }

var _ repository.MateriaPrimaRepository = (*stubMateriaPrimaRepo)(nil)

// ── Compra ───────────────────────────────────────────────────────────────────

type stubCompraRepo struct {
	compras map[uint]*model.Compra
	nextID  uint
}

func newStubCompraRepo() *stubCompraRepo {
	return &stubCompraRepo{compras: make(map[uint]*model.Compra)}
}

func (r *stubCompraRepo) CreateTx(_ *gorm.DB, c *model.Compra) error {
	if c.ID == 0 {
		r.nextID++
		c.ID = r.nextID
	}
	copia := *c
	r.compras[c.ID] = &copia
	return nil
}

func (r *stubCompraRepo) FindByID(_ context.Context, id uint) (*model.Compra, error) {
	c, ok := r.compras[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copia := *c
	return &copia, nil
}

func (r *stubCompraRepo) FindForUpdateTx(_ *gorm.DB, id uint) (*model.Compra, error) {
	return r.FindByID(context.Background(), id)
}

func (r *stubCompraRepo) UpdateTx(_ *gorm.DB, c *model.Compra) error {
	if _, ok := r.compras[c.ID]; !ok {
		return errors.New("record not found")
	}
	copia := *c
	r.compras[c.ID] = &copia
	return nil
}

func (r *stubCompraRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.compras, id)
	return nil
}

func (r *stubCompraRepo) List(_ context.Context, _ dto.CompraFilter) ([]model.Compra, int64, error) {
	var result []model.Compra
	for _, c := range r.compras {
		result = append(result, *c)
	}
	return result, int64(len(result)), nil
}

func (r *stubCompraRepo) ListCategorias(_ context.Context) ([]string, error) {
	seen := make(map[string]bool)
	var result []string
	for _, c := range r.compras {
		if !seen[c.Categoria] {
			seen[c.Categoria] = true
			result = append(result, c.Categoria)
		}
	}
	return result, nil
}

func (r *stubCompraRepo) DB() *gorm.DB { return nil }

var _ repository.CompraRepository = (*stubCompraRepo)(nil)

// ── Estado de venta ──────────────────────────────────────────────────────────

type stubEstadoVentaRepo struct {
	estados map[uint]*model.EstadoVenta
	nextID  uint
}

func newStubEstadoVentaRepo() *stubEstadoVentaRepo {
	return &stubEstadoVentaRepo{estados: make(map[uint]*model.EstadoVenta)}
}

func (r *stubEstadoVentaRepo) Create(_ context.Context, e *model.EstadoVenta) error {
	if e.ID == 0 {
		r.nextID++
		e.ID = r.nextID
	}
	r.estados[e.ID] = e
	return nil
}

func (r *stubEstadoVentaRepo) FindByID(_ context.Context, id uint) (*model.EstadoVenta, error) {
	e, ok := r.estados[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	return e, nil
}

func (r *stubEstadoVentaRepo) List(_ context.Context) ([]model.EstadoVenta, error) {
	var result []model.EstadoVenta
	for _, e := range r.estados {
		result = append(result, *e)
	}
	return result, nil
}

func (r *stubEstadoVentaRepo) Update(_ context.Context, e *model.EstadoVenta) error {
	r.estados[e.ID] = e
	return nil
}

func (r *stubEstadoVentaRepo) Delete(_ context.Context, id uint) error {
	delete(r.estados, id)
	return nil
}

var _ repository.EstadoVentaRepository = (*stubEstadoVentaRepo)(nil)

// ── Venta ────────────────────────────────────────────────────────────────────

// stubVentaRepo resuelve los "preloads" de FindByID contra los otros stubs.
type stubVentaRepo struct {
	ventas    map[uint]*model.Venta
	items     map[uint][]model.VentaProducto
	estadoDe  map[uint]uint
	productos *stubProductoRepo
	clientes  *stubClienteRepo
	estados   *stubEstadoVentaRepo
	nextID    uint
}

func newStubVentaRepo(p *stubProductoRepo, c *stubClienteRepo, e *stubEstadoVentaRepo) *stubVentaRepo {
	return &stubVentaRepo{
		ventas:    make(map[uint]*model.Venta),
		items:     make(map[uint][]model.VentaProducto),
		estadoDe:  make(map[uint]uint),
		productos: p,
		clientes:  c,
		estados:   e,
	}
}

func (r *stubVentaRepo) CreateTx(_ *gorm.DB, v *model.Venta) error {
	if v.ID == 0 {
		r.nextID++
		v.ID = r.nextID
	}
	copia := *v
	r.ventas[v.ID] = &copia
	return nil
}

func (r *stubVentaRepo) FindByID(_ context.Context, id uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copia := *v
	copia.Items = nil
	for _, item := range r.items[id] {
		item.Producto = r.productos.productos[item.ProductoID]
		copia.Items = append(copia.Items, item)
	}
	if cliente, ok := r.clientes.clientes[v.ClienteID]; ok {
		copia.Cliente = cliente
	}
	if estadoID, ok := r.estadoDe[id]; ok {
		copia.Estados = []model.EstadoVentaVenta{{
			VentaID:       id,
			EstadoVentaID: estadoID,
			Estado:        r.estados.estados[estadoID],
		}}
	}
	return &copia, nil
}

func (r *stubVentaRepo) FindForUpdateTx(_ *gorm.DB, id uint) (*model.Venta, error) {
	v, ok := r.ventas[id]
	if !ok {
		return nil, errors.New("record not found")
	}
	copia := *v
	copia.Items = append([]model.VentaProducto(nil), r.items[id]...)
	return &copia, nil
}

func (r *stubVentaRepo) UpdateCamposTx(_ *gorm.DB, id uint, fecha time.Time, clienteID uint, total decimal.Decimal) error {
	v, ok := r.ventas[id]
	if !ok {
		return errors.New("record not found")
	}
	v.Fecha = fecha
	v.ClienteID = clienteID
	v.Total = total
	return nil
}

func (r *stubVentaRepo) UpdateTotalTx(_ *gorm.DB, id uint, total decimal.Decimal) error {
	v, ok := r.ventas[id]
	if !ok {
		return errors.New("record not found")
	}
	v.Total = total
	return nil
}

func (r *stubVentaRepo) DeleteTx(_ *gorm.DB, id uint) error {
	delete(r.ventas, id)
	return nil
}

func (r *stubVentaRepo) CreateItemTx(_ *gorm.DB, item *model.VentaProducto) error {
	r.items[item.VentaID] = append(r.items[item.VentaID], *item)
	return nil
}

func (r *stubVentaRepo) DetachProductosTx(_ *gorm.DB, ventaID uint) error {
	delete(r.items, ventaID)
	return nil
}

func (r *stubVentaRepo) SyncEstadoTx(_ *gorm.DB, ventaID, estadoID uint) error {
	r.estadoDe[ventaID] = estadoID
	return nil
}

func (r *stubVentaRepo) DetachEstadosTx(_ *gorm.DB, ventaID uint) error {
	delete(r.estadoDe, ventaID)
	return nil
}

func (r *stubVentaRepo) List(_ context.Context, _ dto.VentaFilter) ([]model.Venta, int64, error) {
	var result []model.Venta
	for id := range r.ventas {
		v, _ := r.FindByID(context.Background(), id)
		result = append(result, *v)
	}
	return result, int64(len(result)), nil
}

func (r *stubVentaRepo) DB() *gorm.DB { return nil }

var _ repository.VentaRepository = (*stubVentaRepo)(nil)
