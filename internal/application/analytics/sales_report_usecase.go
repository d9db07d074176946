package analytics

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/sales"
)

// SalesReportPDFGenerator puerto para renderizar el reporte diario en PDF.
type SalesReportPDFGenerator interface {
	GenerateSalesReportPDF(ctx context.Context, storeName string, report *dto.SalesReportResponse) ([]byte, error)
}

// SalesReportUseCase reporte de ventas del día local (ventana semiabierta).
type SalesReportUseCase struct {
	saleRepo  repository.SaleRepository
	generator SalesReportPDFGenerator
	storeName string
	loc       *time.Location
}

// NewSalesReportUseCase construye el caso de uso. generator puede ser nil si no se sirve el PDF.
func NewSalesReportUseCase(
	saleRepo repository.SaleRepository,
	generator SalesReportPDFGenerator,
	storeName string,
	loc *time.Location,
) *SalesReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesReportUseCase{saleRepo: saleRepo, generator: generator, storeName: storeName, loc: loc}
}

// Daily devuelve las ventas de hoy [00:00 local, 00:00 local del día siguiente) con total y cantidad.
func (uc *SalesReportUseCase) Daily(ctx context.Context) (*dto.SalesReportResponse, error) {
	return uc.dailyAt(ctx, time.Now())
}

// DailyPDF genera el mismo reporte en PDF.
func (uc *SalesReportUseCase) DailyPDF(ctx context.Context) ([]byte, string, error) {
	if uc.generator == nil {
		return nil, "", errors.New("reporte de ventas: generador PDF no configurado")
	}
	report, err := uc.Daily(ctx)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateSalesReportPDF(ctx, uc.storeName, report)
	if err != nil {
		return nil, "", errors.Wrap(err, "reporte de ventas: pdf")
	}
	return pdfBytes, fmt.Sprintf("ventas-%s.pdf", report.Date), nil
}

func (uc *SalesReportUseCase) dailyAt(ctx context.Context, now time.Time) (*dto.SalesReportResponse, error) {
	window := sales.LocalDayWindow(now, uc.loc)
	list, err := uc.saleRepo.ListBetween(ctx, window.Start, window.End)
	if err != nil {
		return nil, errors.Wrap(err, "reporte de ventas")
	}
	return usecase.ToSalesReport(window.Start.Format(time.DateOnly), sales.Aggregate(list)), nil
}
