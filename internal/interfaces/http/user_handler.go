package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devicepos-api/internal/application/auth"
	"github.com/jhoicas/devicepos-api/internal/application/dto"
)

// UserHandler registro, login y administración de usuarios.
type UserHandler struct {
	uc *auth.AuthUseCase
}

// NewUserHandler construye el handler.
func NewUserHandler(uc *auth.AuthUseCase) *UserHandler {
	return &UserHandler{uc: uc}
}

// Signup godoc
// @Summary      Registrar usuario
// @Description  Anónimo solo crea cashier; otros roles requieren Bearer de owner, manager o admin.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SignupRequest  true  "username, password, role"
// @Success      201   {object}  dto.AuthResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/users/signup [post]
func (h *UserHandler) Signup(c *fiber.Ctx) error {
	var in dto.SignupRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Signup(c.UserContext(), in, GetRole(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Login godoc
// @Summary      Login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "Credenciales"
// @Success      200   {object}  dto.AuthResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/users/login [post]
func (h *UserHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// List usuarios, ?role= filtra por rol.
func (h *UserHandler) List(c *fiber.Ctx) error {
	var q dto.UserListQuery
	if err := bindQuery(c, &q); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.List(c.UserContext(), q.Role)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Update cambia rol o contraseña de :username.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateUserRequest
	if err := bindBody(c, &in); err != nil {
		return writeError(c, err)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("username"), in)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Delete elimina :username.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	username := c.Params("username")
	if err := h.uc.Delete(c.UserContext(), username); err != nil {
		return writeError(c, err)
	}
	return c.JSON(dto.MessageResponse{Message: "usuario " + username + " eliminado"})
}
