package analytics_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/analytics"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/sales"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

type fakePDF struct {
	store  string
	report *dto.SalesReportResponse
}

func (f *fakePDF) GenerateSalesReportPDF(_ context.Context, storeName string, report *dto.SalesReportResponse) ([]byte, error) {
	f.store = storeName
	f.report = report
	return []byte("%PDF-fake"), nil
}

type fixture struct {
	store      *memory.Store
	categories *memory.CategoryRepo
	suppliers  *memory.SupplierRepo
	products   *memory.ProductRepo
	customers  *memory.CustomerRepo
	sales      *memory.SaleRepo
	loc        *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("America/Bogota")
	require.NoError(t, err)
	s := memory.NewStore()
	f := &fixture{
		store:      s,
		categories: memory.NewCategoryRepository(s),
		suppliers:  memory.NewSupplierRepository(s),
		products:   memory.NewProductRepository(s),
		customers:  memory.NewCustomerRepository(s),
		sales:      memory.NewSaleRepository(s),
		loc:        loc,
	}
	ctx := context.Background()
	require.NoError(t, f.categories.Create(ctx, &entity.Category{ID: "cat-1", Name: "Bebidas"}))
	require.NoError(t, f.products.Create(ctx, &entity.Product{
		ID: "prod-1", Name: "Cola", Price: decimal.RequireFromString("1.50"), CategoryID: "cat-1", CreatedAt: time.Now(),
	}))
	require.NoError(t, f.customers.Create(ctx, &entity.Customer{ID: "cus-1", FirstName: "Ana", LastName: "Pérez"}))
	return f
}

func (f *fixture) sale(t *testing.T, id, total string, soldAt time.Time) {
	t.Helper()
	require.NoError(t, f.sales.Create(context.Background(), &entity.Sale{
		ID: id, CustomerID: "cus-1", ProductID: "prod-1", Quantity: 1,
		Total: decimal.RequireFromString(total), SoldAt: soldAt,
	}))
}

func TestSalesReport_VentanaDelDiaLocal(t *testing.T) {
	f := newFixture(t)
	window := sales.LocalDayWindow(time.Now(), f.loc)
	f.sale(t, "inicio", "4.50", window.Start)
	f.sale(t, "mitad", "1.50", window.Start.Add(12*time.Hour))
	f.sale(t, "ayer", "9.00", window.Start.Add(-time.Second))
	f.sale(t, "manana", "9.00", window.End)

	uc := analytics.NewSalesReportUseCase(f.sales, nil, "Tienda", f.loc)
	report, err := uc.Daily(context.Background())
	require.NoError(t, err)
	assert.Equal(t, window.Start.Format(time.DateOnly), report.Date)
	assert.Equal(t, 2, report.Count)
	assert.True(t, decimal.RequireFromString("6.00").Equal(report.Total))
}

func TestSalesReport_PDF(t *testing.T) {
	f := newFixture(t)
	f.sale(t, "s1", "4.50", time.Now())
	gen := &fakePDF{}

	uc := analytics.NewSalesReportUseCase(f.sales, gen, "Tienda Centro", f.loc)
	raw, filename, err := uc.DailyPDF(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-fake", string(raw))
	assert.Equal(t, "ventas-"+gen.report.Date+".pdf", filename)
	assert.Equal(t, "Tienda Centro", gen.store)
	assert.Equal(t, 1, gen.report.Count)
}

func TestSalesReport_PDFSinGenerador(t *testing.T) {
	f := newFixture(t)
	uc := analytics.NewSalesReportUseCase(f.sales, nil, "Tienda", f.loc)
	_, _, err := uc.DailyPDF(context.Background())
	assert.Error(t, err)
}

func TestDashboard_Resumen(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	for i, name := range []string{"Agua", "Jugo", "Té", "Café", "Leche", "Soda"} {
		require.NoError(t, f.products.Create(ctx, &entity.Product{
			ID: "p-" + name, Name: name, CategoryID: "cat-1",
			CreatedAt: time.Now().Add(time.Duration(i+1) * time.Minute),
		}))
	}
	require.NoError(t, f.suppliers.Create(ctx, &entity.Supplier{ID: "sup-1", Name: "Postobón"}))
	f.sale(t, "hoy", "4.50", time.Now())
	f.sale(t, "viejo", "3.00", time.Now().Add(-72*time.Hour))

	uc := analytics.NewDashboardUseCase(f.products, f.categories, f.suppliers, f.customers, f.sales, f.loc)
	out, err := uc.GetSummary(ctx)
	require.NoError(t, err)
	assert.Equal(t, 7, out.TotalProducts)
	assert.Equal(t, 1, out.TotalCategories)
	assert.Equal(t, 1, out.TotalSuppliers)
	assert.Equal(t, 1, out.TotalCustomers)
	require.Len(t, out.RecentProducts, 5)
	assert.Equal(t, "Soda", out.RecentProducts[0].Name, "más reciente primero")
	assert.Equal(t, 1, out.TodayCount)
	assert.True(t, decimal.RequireFromString("4.50").Equal(out.TodayTotal))
	assert.Equal(t, time.Now().In(f.loc).Format(time.DateOnly), out.Date)
}
