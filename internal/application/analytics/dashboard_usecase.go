// Package analytics contiene los casos de uso de reportes: el dashboard de inicio y el
// reporte diario de ventas.
package analytics

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/sales"
)

// DashboardUseCase genera el resumen de la pantalla de inicio.
type DashboardUseCase struct {
	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	loc          *time.Location
}

// NewDashboardUseCase construye el caso de uso. loc es la zona horaria de la tienda.
func NewDashboardUseCase(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	loc *time.Location,
) *DashboardUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &DashboardUseCase{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		supplierRepo: supplierRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		loc:          loc,
	}
}

// GetSummary construye el DashboardResponse.
//
// Las consultas son independientes y se lanzan en paralelo:
//  1. conteos de productos, categorías, proveedores y clientes
//  2. los 5 productos más recientes
//  3. ventas del día local [00:00, 00:00 del día siguiente)
func (uc *DashboardUseCase) GetSummary(ctx context.Context) (*dto.DashboardResponse, error) {
	window := sales.LocalDayWindow(time.Now(), uc.loc)

	type countResult struct {
		n   int
		err error
	}
	type productsResult struct {
		list []*entity.Product
		err  error
	}
	type salesResult struct {
		list []*entity.Sale
		err  error
	}

	count := func(fn func(context.Context) (int, error)) <-chan countResult {
		ch := make(chan countResult, 1)
		go func() {
			n, err := fn(ctx)
			ch <- countResult{n, err}
		}()
		return ch
	}

	productsCh := count(uc.productRepo.Count)
	categoriesCh := count(uc.categoryRepo.Count)
	suppliersCh := count(uc.supplierRepo.Count)
	customersCh := count(uc.customerRepo.Count)

	recentCh := make(chan productsResult, 1)
	todayCh := make(chan salesResult, 1)
	go func() {
		list, err := uc.productRepo.ListRecent(ctx, usecase.RecentProductsLimit)
		recentCh <- productsResult{list, err}
	}()
	go func() {
		list, err := uc.saleRepo.ListBetween(ctx, window.Start, window.End)
		todayCh <- salesResult{list, err}
	}()

	products := <-productsCh
	categories := <-categoriesCh
	suppliers := <-suppliersCh
	customers := <-customersCh
	recent := <-recentCh
	today := <-todayCh

	for _, c := range []struct {
		name string
		err  error
	}{
		{"productos", products.err},
		{"categorías", categories.err},
		{"proveedores", suppliers.err},
		{"clientes", customers.err},
		{"productos recientes", recent.err},
		{"ventas de hoy", today.err},
	} {
		if c.err != nil {
			return nil, errors.Wrapf(c.err, "dashboard: %s", c.name)
		}
	}

	summary := sales.Aggregate(today.list)
	return &dto.DashboardResponse{
		Date:            window.Start.Format(time.DateOnly),
		TotalProducts:   products.n,
		TotalCategories: categories.n,
		TotalSuppliers:  suppliers.n,
		TotalCustomers:  customers.n,
		RecentProducts:  usecase.ToProductResponses(recent.list),
		TodaySales:      usecase.ToSaleResponses(summary.Records),
		TodayTotal:      summary.Total,
		TodayCount:      summary.Count,
	}, nil
}
