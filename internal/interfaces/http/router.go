package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/devicepos-api/internal/application/analytics"
	"github.com/jhoicas/devicepos-api/internal/application/auth"
	"github.com/jhoicas/devicepos-api/internal/application/catalog"
	"github.com/jhoicas/devicepos-api/internal/application/sales"
	"github.com/jhoicas/devicepos-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Catalog   *catalog.CatalogUseCase
	Sales     *sales.SaleUseCase
	Analytics *appanalytics.AnalyticsUseCase
	Dashboard *appanalytics.DashboardUseCase
	Inventory *appanalytics.InventoryReportUseCase
	Auth      *auth.AuthUseCase
	JWTSecret string
}

// Router registra las rutas de la API bajo /api.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")
	authn := AuthMiddleware(deps.JWTSecret)
	owner := RequireRole(entity.ManagementRoles...)

	// Users: signup público solo para cashier, login público, administración para roles de gestión
	userHandler := NewUserHandler(deps.Auth)
	users := api.Group("/users")
	users.Post("/signup", OptionalAuth(deps.JWTSecret), userHandler.Signup)
	users.Post("/login", userHandler.Login)
	users.Get("/", authn, owner, userHandler.List)
	users.Patch("/:username", authn, owner, userHandler.Update)
	users.Delete("/:username", authn, owner, userHandler.Delete)

	// Sales: cualquier rol autenticado registra y consulta; analítica solo gestión
	salesHandler := NewSalesHandler(deps.Sales)
	analyticsHandler := NewAnalyticsHandler(deps.Analytics, deps.Dashboard)
	salesGroup := api.Group("/sales", authn)
	salesGroup.Post("/", salesHandler.Record)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/correlation-analytics", owner, analyticsHandler.AccessoryCorrelation)

	stats := salesGroup.Group("/analytics", owner)
	stats.Get("/realtime", analyticsHandler.Realtime)
	stats.Get("/revenue-distribution", analyticsHandler.RevenueDistribution)
	stats.Get("/total-profit", analyticsHandler.TotalProfit)
	stats.Get("/avg-basket-value", analyticsHandler.AvgBasketValue)
	stats.Get("/top-profit-makers", analyticsHandler.TopProfitMakers)
	stats.Get("/top-sellers", analyticsHandler.TopSellers)
	stats.Get("/dashboard", analyticsHandler.Dashboard)

	// Inventory reports (gestión)
	inventoryHandler := NewInventoryHandler(deps.Inventory)
	inv := api.Group("/inventory", authn, owner)
	inv.Get("/turnaround-times", inventoryHandler.Turnaround)
	inv.Get("/summary", inventoryHandler.Summary)
	for _, t := range []entity.DeviceType{entity.DeviceTypeMobile, entity.DeviceTypeLaptop, entity.DeviceTypeTablet, entity.DeviceTypeAddon} {
		inv.Get("/"+strings.ToLower(string(t)), inventoryHandler.ByType(string(t)))
	}

	// Catalog: lectura para cualquier rol, escritura para gestión
	deviceHandler := NewDeviceHandler(deps.Catalog)
	devices := api.Group("/devices", authn)
	devices.Get("/", deviceHandler.List)
	devices.Get("/:uid", deviceHandler.GetByUID)
	devices.Post("/", owner, deviceHandler.Create)
	devices.Delete("/:uid", owner, deviceHandler.Delete)
	devices.Patch("/:uid/stock", owner, deviceHandler.AdjustStock)

	addonHandler := NewAddonHandler(deps.Catalog)
	addons := api.Group("/addons", authn)
	addons.Get("/", addonHandler.List)
	addons.Get("/:uid", addonHandler.GetByUID)
	addons.Post("/", owner, addonHandler.Create)
	addons.Delete("/:uid", owner, addonHandler.Delete)
	addons.Patch("/:uid/stock", owner, addonHandler.AdjustStock)
}
