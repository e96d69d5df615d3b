package router

import (
	"time"

	"chocolateria/internal/config"
	"chocolateria/internal/handler"
	"chocolateria/internal/middleware"
	"chocolateria/internal/repository"
	"chocolateria/internal/service"
	"chocolateria/internal/worker"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// New wires all dependencies and returns a configured Gin engine.
// Dependency graph: Handler ← Service ← Repository ← DB/Redis
func New(cfg *config.Config, db *gorm.DB, rdb *redis.Client, dispatcher *worker.Dispatcher) *gin.Engine {
	if cfg.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// Global middleware chain (order matters)
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger())
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimiter(1000, time.Minute)) // 1000 req/min per IP

	// ── Repositories ─────────────────────────────────────────────────────────
	usuarioRepo := repository.NewUsuarioRepository(db)
	clienteRepo := repository.NewClienteRepository(db)
	productoRepo := repository.NewProductoRepository(db)
	materiaRepo := repository.NewMateriaPrimaRepository(db)
	compraRepo := repository.NewCompraRepository(db)
	ventaRepo := repository.NewVentaRepository(db)
	estadoRepo := repository.NewEstadoVentaRepository(db)
	kpiRepo := repository.NewKPIRepository(db)

	// ── Services ─────────────────────────────────────────────────────────────
	authSvc := service.NewAuthService(usuarioRepo, cfg)
	clienteSvc := service.NewClienteService(clienteRepo)
	productoSvc := service.NewProductoService(productoRepo)
	materiaSvc := service.NewMateriaPrimaService(materiaRepo)
	estadoSvc := service.NewEstadoVentaService(estadoRepo)
	compraSvc := service.NewCompraService(compraRepo, materiaRepo, usuarioRepo)
	inventarioSvc := service.NewInventarioService(materiaRepo, productoRepo, compraRepo)
	ventaSvc := service.NewVentaService(
		ventaRepo, productoRepo, clienteRepo, estadoRepo, usuarioRepo,
		dispatcher, cfg.AllowNegativeStock)
	kpiSvc := service.NewKPIService(kpiRepo)

	// ── Handlers ─────────────────────────────────────────────────────────────
	authH := handler.NewAuthHandler(authSvc)
	clientesH := handler.NewClientesHandler(clienteSvc)
	productosH := handler.NewProductosHandler(productoSvc, inventarioSvc)
	materiasH := handler.NewMateriasPrimasHandler(materiaSvc, inventarioSvc)
	comprasH := handler.NewComprasHandler(compraSvc)
	ventasH := handler.NewVentasHandler(ventaSvc)
	estadosH := handler.NewEstadosVentasHandler(estadoSvc)
	kpiH := handler.NewKPIHandler(kpiSvc)

	// ── Routes ───────────────────────────────────────────────────────────────

	// Public
	r.GET("/health", handler.Health(db, rdb))

	// Auth (public)
	auth := r.Group("/v1/auth")
	{
		auth.POST("/login", middleware.LoginRateLimiter(), authH.Login)
		auth.POST("/refresh", authH.Refresh)
	}

	// Protected routes
	jwtMW := middleware.JWTAuth(cfg.JWTSecret)
	v1 := r.Group("/v1", jwtMW)
	{
		clientes := v1.Group("/clientes")
		{
			clientes.POST("", clientesH.Crear)
			clientes.GET("", clientesH.Listar)
			clientes.GET("/:id", clientesH.ObtenerPorID)
			clientes.PUT("/:id", clientesH.Actualizar)
			clientes.DELETE("/:id", clientesH.Eliminar)
		}

		productos := v1.Group("/productos")
		{
			productos.POST("", productosH.Crear)
			productos.GET("", productosH.Listar)
			productos.GET("/alertas", productosH.AlertasStockBajo)
			productos.GET("/:id", productosH.ObtenerPorID)
			productos.PUT("/:id", productosH.Actualizar)
			productos.DELETE("/:id", productosH.Eliminar)
			productos.POST("/:id/materias-primas", productosH.CrearVinculo)
			productos.DELETE("/:id/materias-primas/:materiaId", productosH.EliminarVinculo)
		}

		materias := v1.Group("/materias-primas")
		{
			materias.POST("", materiasH.Crear)
			materias.GET("", materiasH.Listar)
			materias.POST("/inventario", materiasH.AjustarInventario)
			materias.GET("/:id", materiasH.ObtenerPorID)
			materias.PUT("/:id", materiasH.Actualizar)
			materias.DELETE("/:id", materiasH.Eliminar)
		}

		compras := v1.Group("/compras")
		{
			compras.POST("", comprasH.Registrar)
			compras.GET("", comprasH.Listar)
			compras.GET("/categorias", comprasH.ListarCategorias)
			compras.GET("/:id", comprasH.ObtenerPorID)
			compras.PUT("/:id", comprasH.Actualizar)
			compras.DELETE("/:id", comprasH.Eliminar)
		}

		ventas := v1.Group("/ventas")
		{
			ventas.POST("", ventasH.Registrar)
			ventas.GET("", ventasH.Listar)
			ventas.GET("/:id", ventasH.ObtenerPorID)
			ventas.PUT("/:id", ventasH.Actualizar)
			ventas.PATCH("/:id/estado", ventasH.ActualizarEstado)
			ventas.DELETE("/:id", ventasH.Eliminar)
		}

		estados := v1.Group("/estados-ventas")
		{
			estados.POST("", estadosH.Crear)
			estados.GET("", estadosH.Listar)
			estados.GET("/:id", estadosH.ObtenerPorID)
			estados.PUT("/:id", estadosH.Actualizar)
			estados.DELETE("/:id", estadosH.Eliminar)
		}

		usuarios := v1.Group("/usuarios")
		{
			usuarios.POST("", authH.CrearUsuario)
			usuarios.GET("", authH.ListarUsuarios)
			usuarios.PUT("/:id", authH.ActualizarUsuario)
			usuarios.DELETE("/:id", authH.DesactivarUsuario)
			usuarios.PATCH("/:id/reactivar", authH.ReactivarUsuario)
		}

		v1.GET("/kpi", kpiH.Obtener)
	}

	// Swagger UI — only enabled outside production
	if cfg.Env != "production" {
		r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	return r
}
