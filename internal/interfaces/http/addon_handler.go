package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devicepos-api/internal/application/catalog"
	"github.com/jhoicas/devicepos-api/internal/application/dto"
)

// AddonHandler maneja /api/addons; solo ve registros de tipo Addon.
type AddonHandler struct {
	uc *catalog.CatalogUseCase
}

// NewAddonHandler construye el handler.
func NewAddonHandler(uc *catalog.CatalogUseCase) *AddonHandler {
	return &AddonHandler{uc: uc}
}

// Create godoc
// @Summary      Crear accesorio
// @Tags         addons
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateAddonRequest  true  "Datos del accesorio"
// @Success      201   {object}  dto.DeviceResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/addons [post]
func (h *AddonHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateAddonRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.CreateAddon(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar accesorios
// @Tags         addons
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Headphone | Charger | Power Bank | Mouse | Screen Guard"
// @Param        page      query  int     false  "Página"
// @Param        limit     query  int     false  "Tamaño de página"
// @Success      200  {object}  dto.DeviceListResponse
// @Router       /api/addons [get]
func (h *AddonHandler) List(c *fiber.Ctx) error {
	var q dto.AddonListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.ListAddons(c.UserContext(), q)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// GetByUID devuelve un accesorio; 404 si el UID es de un dispositivo principal.
func (h *AddonHandler) GetByUID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("uid"), catalog.FamilyAddons)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *AddonHandler) Delete(c *fiber.Ctx) error {
	out, err := h.uc.Delete(c.UserContext(), c.Params("uid"), catalog.FamilyAddons)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

func (h *AddonHandler) AdjustStock(c *fiber.Ctx) error {
	return adjustStock(c, h.uc, catalog.FamilyAddons)
}
