package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/devicepos-api/internal/application/analytics"
)

// AnalyticsHandler endpoints de /api/sales/analytics y correlación de accesorios.
type AnalyticsHandler struct {
	uc        *appanalytics.AnalyticsUseCase
	dashboard *appanalytics.DashboardUseCase
}

// NewAnalyticsHandler construye el handler.
func NewAnalyticsHandler(uc *appanalytics.AnalyticsUseCase, dashboard *appanalytics.DashboardUseCase) *AnalyticsHandler {
	return &AnalyticsHandler{uc: uc, dashboard: dashboard}
}

// reply ejecuta una consulta sin parámetros y serializa el resultado.
func reply(c *fiber.Ctx, fn func() (any, error)) error {
	out, err := fn()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Realtime godoc
// @Summary      Ventas de la última hora, 6 horas y 24 horas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.RealtimeAnalyticsDTO
// @Router       /api/sales/analytics/realtime [get]
func (h *AnalyticsHandler) Realtime(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return reply(c, func() (any, error) { return h.uc.Realtime(ctx) })
}

// RevenueDistribution godoc
// @Summary      Ingresos por producto (desc)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.NamedValueDTO
// @Router       /api/sales/analytics/revenue-distribution [get]
func (h *AnalyticsHandler) RevenueDistribution(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return reply(c, func() (any, error) { return h.uc.RevenueDistribution(ctx) })
}

// TotalProfit godoc
// @Summary      Ganancia total
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TotalProfitDTO
// @Router       /api/sales/analytics/total-profit [get]
func (h *AnalyticsHandler) TotalProfit(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return reply(c, func() (any, error) { return h.uc.TotalProfit(ctx) })
}

// AvgBasketValue godoc
// @Summary      Ticket promedio
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AvgBasketDTO
// @Router       /api/sales/analytics/avg-basket-value [get]
func (h *AnalyticsHandler) AvgBasketValue(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return reply(c, func() (any, error) { return h.uc.AvgBasketValue(ctx) })
}

// TopProfitMakers godoc
// @Summary      Top 10 por ganancia
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TopProfitMakersDTO
// @Router       /api/sales/analytics/top-profit-makers [get]
func (h *AnalyticsHandler) TopProfitMakers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return reply(c, func() (any, error) { return h.uc.TopProfitMakers(ctx) })
}

// TopSellers godoc
// @Summary      Top 10 por unidades vendidas
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TopSellersDTO
// @Router       /api/sales/analytics/top-sellers [get]
func (h *AnalyticsHandler) TopSellers(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return reply(c, func() (any, error) { return h.uc.TopSellers(ctx) })
}

// AccessoryCorrelation godoc
// @Summary      Porcentaje de ventas por tipo que incluyen cada accesorio
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.CorrelationRowDTO
// @Router       /api/sales/correlation-analytics [get]
func (h *AnalyticsHandler) AccessoryCorrelation(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return reply(c, func() (any, error) { return h.uc.AccessoryCorrelation(ctx) })
}

// Dashboard devuelve tiempo real, ganancia, ticket promedio y top sellers en una respuesta.
// GET /api/sales/analytics/dashboard
func (h *AnalyticsHandler) Dashboard(c *fiber.Ctx) error {
	ctx := c.UserContext()
	return reply(c, func() (any, error) { return h.dashboard.GetSummary(ctx) })
}
