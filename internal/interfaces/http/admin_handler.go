package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/account"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const msgProfileSaved = "Perfil actualizado."

// AdminHandler administración de perfiles.
type AdminHandler struct {
	uc  *account.ProfileAdminUseCase
	log *logger.Logger
}

// NewAdminHandler construye el handler.
func NewAdminHandler(uc *account.ProfileAdminUseCase, log *logger.Logger) *AdminHandler {
	return &AdminHandler{uc: uc, log: log}
}

// ListProfiles godoc
// @Summary      Listar perfiles
// @Tags         admin
// @Security     Bearer
// @Produce      json
// @Param        role        query  string  false  "administrador|gerente|empleado|vendedor|cliente"
// @Param        active      query  string  false  "true|false"
// @Param        department  query  string  false  "Departamento exacto"
// @Param        q           query  string  false  "Búsqueda en usuario, correo o departamento"
// @Success      200  {object}  dto.ListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/admin/profiles [get]
func (h *AdminHandler) ListProfiles(c *fiber.Ctx) error {
	var in dto.ProfileFilterRequest
	if err := c.QueryParser(&in); err != nil {
		return invalidBody(c)
	}
	list, err := h.uc.List(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, in)
	}
	return c.JSON(dto.ListResponse{Items: list, Count: len(list)})
}

// UpdateProfile godoc
// @Summary      Editar rol o estado de un perfil
// @Tags         admin
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        user_id  path  string                    true  "ID del usuario"
// @Param        body     body  dto.UpdateProfileRequest  true  "role y/o active"
// @Success      200  {object}  dto.ResultResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/admin/profiles/{user_id} [patch]
func (h *AdminHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("user_id"), in)
	if err != nil {
		return respondError(c, h.log, err, in)
	}
	return c.JSON(dto.ResultResponse{Data: out, Message: msgProfileSaved})
}
