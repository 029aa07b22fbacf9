package http

import (
	"github.com/gofiber/fiber/v2"

	appanalytics "github.com/jhoicas/devicepos-api/internal/application/analytics"
)

// InventoryHandler reportes de inventario para el dueño.
type InventoryHandler struct {
	uc *appanalytics.InventoryReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *appanalytics.InventoryReportUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc}
}

// Turnaround godoc
// @Summary      Top 5 por relación inventario/vendido (asc)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.TurnaroundDTO
// @Router       /api/inventory/turnaround-times [get]
func (h *InventoryHandler) Turnaround(c *fiber.Ctx) error {
	out, err := h.uc.Turnaround(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// ByType devuelve el handler del resumen de un tipo fijo
// (/api/inventory/mobile, /laptop, /tablet, /addon).
func (h *InventoryHandler) ByType(deviceType string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		out, err := h.uc.ByType(c.UserContext(), deviceType)
		if err != nil {
			return writeError(c, err)
		}
		return c.JSON(out)
	}
}

// Summary godoc
// @Summary      Resumen de inventario por tipo y totales
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.InventorySummaryDTO
// @Router       /api/inventory/summary [get]
func (h *InventoryHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
