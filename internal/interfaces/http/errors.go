package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/devicepos-api/internal/application/dto"
	"github.com/jhoicas/devicepos-api/internal/domain"
)

// writeError traduce un error de dominio al status y cuerpo HTTP correspondientes.
func writeError(c *fiber.Ctx, err error) error {
	var rerr *requestError
	if errors.As(err, &rerr) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: rerr.code, Message: rerr.message})
	}
	status, code := classify(err)
	body := dto.ErrorResponse{Code: code, Message: err.Error()}
	var verr *ValidationError
	if errors.As(err, &verr) {
		body.Message = verr.Message
		body.Details = verr.Fields
	}
	if status == fiber.StatusInternalServerError {
		body.Message = "error interno del servidor"
	}
	return c.Status(status).JSON(body)
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrInsufficientStock):
		return fiber.StatusBadRequest, "INSUFFICIENT_STOCK"
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, "DUPLICATE"
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		return fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		return fiber.StatusForbidden, "FORBIDDEN"
	default:
		return fiber.StatusInternalServerError, "INTERNAL"
	}
}

// ErrorHandler de fiber.Config: errores de fiber (404 de ruta, 405, body demasiado grande)
// conservan su status; el resto pasa por writeError.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		code := "INTERNAL"
		switch fe.Code {
		case fiber.StatusNotFound:
			code = "NOT_FOUND"
		case fiber.StatusMethodNotAllowed:
			code = "METHOD_NOT_ALLOWED"
		case fiber.StatusRequestEntityTooLarge:
			code = "BODY_TOO_LARGE"
		default:
			if fe.Code < fiber.StatusInternalServerError {
				code = "BAD_REQUEST"
			}
		}
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: code, Message: fe.Message})
	}
	return writeError(c, err)
}
