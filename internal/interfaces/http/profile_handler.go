package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/account"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// ProfileHandler "mi perfil" y "mis compras" de la cuenta en sesión.
type ProfileHandler struct {
	uc  *account.ProfileUseCase
	log *logger.Logger
}

// NewProfileHandler construye el handler.
func NewProfileHandler(uc *account.ProfileUseCase, log *logger.Logger) *ProfileHandler {
	return &ProfileHandler{uc: uc, log: log}
}

// Get godoc
// @Summary      Mi perfil
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.MyProfileResponse
// @Router       /api/me/profile [get]
func (h *ProfileHandler) Get(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Actualizar mi perfil
// @Description  Valida ambos sub-formularios antes de guardar; luego guarda usuario y cliente por separado.
// @Tags         me
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateMyProfileRequest  true  "Sub-formularios user y customer"
// @Success      200   {object}  dto.MyProfileResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/me/profile [put]
func (h *ProfileHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateMyProfileRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err, in)
	}
	return c.JSON(out)
}

// Purchases godoc
// @Summary      Mis compras
// @Description  Sin cliente asociado devuelve lista vacía y un aviso.
// @Tags         me
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.PurchasesResponse
// @Router       /api/me/purchases [get]
func (h *ProfileHandler) Purchases(c *fiber.Ctx) error {
	out, err := h.uc.Purchases(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(out)
}
