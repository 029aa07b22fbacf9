package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devicepos-api/internal/application/catalog"
	"github.com/jhoicas/devicepos-api/internal/application/dto"
)

// DeviceHandler maneja /api/devices (Mobile, Laptop, Tablet).
type DeviceHandler struct {
	uc *catalog.CatalogUseCase
}

// NewDeviceHandler construye el handler.
func NewDeviceHandler(uc *catalog.CatalogUseCase) *DeviceHandler {
	return &DeviceHandler{uc: uc}
}

// Create godoc
// @Summary      Crear dispositivo
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateDeviceRequest  true  "Datos del dispositivo"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/devices [post]
func (h *DeviceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateDeviceRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateDevice(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar dispositivos
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        device_type   query  string  false  "mobile | laptop | tablet"
// @Param        manufacturer  query  string  false  "Fabricante"
// @Param        page          query  int     false  "Página (desde 1)"
// @Param        limit         query  int     false  "Tamaño de página (máx 100)"
// @Success      200  {object}  dto.DeviceListResponse
// @Router       /api/devices [get]
func (h *DeviceHandler) List(c *fiber.Ctx) error {
	var q dto.DeviceListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListDevices(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByUID godoc
// @Summary      Obtener dispositivo por UID
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        uid  path  string  true  "UID"
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{uid} [get]
func (h *DeviceHandler) GetByUID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("uid"), catalog.FamilyAny)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar dispositivo
// @Tags         devices
// @Security     Bearer
// @Produce      json
// @Param        uid  path  string  true  "UID"
// @Success      200  {object}  dto.DeviceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/devices/{uid} [delete]
func (h *DeviceHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("uid"), catalog.FamilyAny)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// AdjustStock godoc
// @Summary      Ajustar inventario
// @Description  Suma o resta unidades; restar por debajo de cero responde INSUFFICIENT_STOCK.
// @Tags         devices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        uid   path  string                  true  "UID"
// @Param        body  body  dto.StockAdjustRequest  true  "Cantidad y acción"
// @Success      200   {object}  dto.StockAdjustResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/devices/{uid}/stock [patch]
func (h *DeviceHandler) AdjustStock(c *fiber.Ctx) error {
	return adjustStock(c, h.uc, catalog.FamilyAny)
}

func adjustStock(c *fiber.Ctx, uc *catalog.CatalogUseCase, family catalog.Family) error {
	var in dto.StockAdjustRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := uc.AdjustStock(c.UserContext(), c.Params("uid"), family, in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}
