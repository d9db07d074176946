package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const (
	customersPath      = "/api/customers"
	msgCustomerCreated = "Cliente agregado."
	msgCustomerUpdated = "Cliente actualizado."
	msgCustomerDeleted = "Cliente eliminado."
)

// CustomerHandler maneja las peticiones HTTP para Customer.
type CustomerHandler struct {
	uc  *usecase.CustomerUseCase
	log *logger.Logger
}

// NewCustomerHandler construye el handler.
func NewCustomerHandler(uc *usecase.CustomerUseCase, log *logger.Logger) *CustomerHandler {
	return &CustomerHandler{uc: uc, log: log}
}

// List godoc
// @Summary      Listar clientes (apellido, nombre)
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ListResponse
// @Router       /api/customers [get]
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(dto.ListResponse{Items: list, Count: len(list)})
}

// Create godoc
// @Summary      Crear cliente
// @Description  Crea además la cuenta del cliente: usuario = nombre en minúsculas, contraseña = teléfono.
// @Description  Si el usuario ya existe no se guarda nada y se responde 409 DUPLICATE_USERNAME.
// @Tags         customers
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CustomerRequest  true  "Datos del cliente"
// @Success      201   {object}  dto.ResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/customers [post]
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err, in)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ResultResponse{Data: out, Message: msgCustomerCreated, Redirect: customersPath})
}

// GetByID godoc
// @Summary      Obtener cliente por ID
// @Tags         customers
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del cliente"
// @Success      200  {object}  dto.CustomerResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id} [get]
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(out)
}

// Update edita los datos del cliente; la cuenta vinculada no se modifica.
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, in)
	}
	return c.JSON(dto.ResultResponse{Data: out, Message: msgCustomerUpdated, Redirect: customersPath})
}

func (h *CustomerHandler) ConfirmDelete(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(confirmDelete(out, "al cliente "+out.FullName, c.Path()))
}

func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(dto.ResultResponse{Message: msgCustomerDeleted, Redirect: customersPath})
}
