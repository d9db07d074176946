package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// Mensajes de error visibles.
const (
	msgInvalidBody       = "Cuerpo de la petición inválido."
	msgValidation        = "Corrige los errores del formulario."
	msgNotFound          = "No se encontró el registro solicitado."
	msgConflict          = "No se puede eliminar: el registro está referenciado por otros registros."
	msgDuplicateUsername = "Ya existe un usuario con ese nombre."
	msgInternal          = "Ocurrió un error interno."
)

// respondError traduce un error de caso de uso a {code, message, ...}.
// input se devuelve junto a los errores de validación para redibujar el formulario.
func respondError(c *fiber.Ctx, log *logger.Logger, err error, input interface{}) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    "VALIDATION",
			Message: msgValidation,
			Fields:  verr.Fields,
			Input:   input,
		})
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msgNotFound})
	case errors.Is(err, domain.ErrDuplicateUsername):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{
			Code:    "DUPLICATE_USERNAME",
			Message: msgDuplicateUsername,
			Fields:  map[string]string{"first_name": msgDuplicateUsername},
			Input:   input,
		})
	case errors.Is(err, domain.ErrConflict):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: msgConflict})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotAuthenticated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "NOT_AUTHENTICATED", Message: err.Error(), Redirect: "/login"})
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: err.Error()})
	default:
		return internalError(c, log, err)
	}
}

func internalError(c *fiber.Ctx, log *logger.Logger, err error) error {
	log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msgInternal})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: msgInvalidBody})
}

// confirmDelete arma la vista de confirmación; action es la ruta POST que ejecuta el borrado.
func confirmDelete(data interface{}, label, action string) dto.DeleteConfirmResponse {
	return dto.DeleteConfirmResponse{
		Data:    data,
		Message: "¿Seguro que deseas eliminar " + label + "?",
		Action:  action,
	}
}
