package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/analytics"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const (
	salesPath      = "/api/sales"
	msgSaleCreated = "Venta registrada correctamente."
	msgSaleUpdated = "Venta actualizada."
	msgSaleDeleted = "Venta eliminada."
)

// SaleHandler maneja ventas y el reporte diario.
type SaleHandler struct {
	uc     *usecase.SaleUseCase
	report *analytics.SalesReportUseCase
	log    *logger.Logger
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *usecase.SaleUseCase, report *analytics.SalesReportUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, report: report, log: log}
}

// List godoc
// @Summary      Ventas de hoy
// @Description  Ventas cuya fecha local coincide con la fecha calendario actual.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesReportResponse
// @Router       /api/sales [get]
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListToday(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Registrar venta
// @Description  total = cantidad × precio actual del producto; vendedor = usuario de la sesión.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SaleRequest  true  "Cliente, producto y cantidad"
// @Success      201   {object}  dto.ResultResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), GetUserID(c), in)
	if err != nil {
		return respondError(c, h.log, err, in)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ResultResponse{Data: out, Message: msgSaleCreated, Redirect: salesPath})
}

// GetByID godoc
// @Summary      Obtener venta por ID
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(out)
}

// Update edita una venta; el total se recalcula con el precio vigente.
func (h *SaleHandler) Update(c *fiber.Ctx) error {
	var in dto.SaleRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return respondError(c, h.log, err, in)
	}
	return c.JSON(dto.ResultResponse{Data: out, Message: msgSaleUpdated, Redirect: salesPath})
}

func (h *SaleHandler) ConfirmDelete(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(confirmDelete(out, "la venta de "+out.ProductName, c.Path()))
}

func (h *SaleHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(dto.ResultResponse{Message: msgSaleDeleted, Redirect: salesPath})
}

// Report godoc
// @Summary      Reporte de ventas del día
// @Description  Ventana [00:00 local, 00:00 local del día siguiente) en la zona horaria de la tienda.
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.SalesReportResponse
// @Router       /api/sales/report [get]
func (h *SaleHandler) Report(c *fiber.Ctx) error {
	out, err := h.report.Daily(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(out)
}

// ReportPDF godoc
// @Summary      Reporte de ventas del día en PDF
// @Tags         sales
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/sales/report/pdf [get]
func (h *SaleHandler) ReportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.report.DailyPDF(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
