package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/validation"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/sales"
)

// SaleUseCase casos de uso de ventas. El total se calcula al guardar; el stock no se descuenta.
type SaleUseCase struct {
	repo         repository.SaleRepository
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	loc          *time.Location
}

// NewSaleUseCase construye el caso de uso. loc es la zona horaria de la tienda.
func NewSaleUseCase(
	repo repository.SaleRepository,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	loc *time.Location,
) *SaleUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SaleUseCase{repo: repo, productRepo: productRepo, customerRepo: customerRepo, loc: loc}
}

// ListToday lista las ventas cuya fecha calendario coincide con la fecha UTC actual.
func (uc *SaleUseCase) ListToday(ctx context.Context) (*dto.SalesReportResponse, error) {
	date := sales.CalendarDate(time.Now())
	list, err := uc.repo.ListByDate(ctx, date, uc.loc)
	if err != nil {
		return nil, errors.Wrap(err, "list sales by date")
	}
	return ToSalesReport(date, sales.Aggregate(list)), nil
}

// Create registra una venta: total = cantidad × precio actual, vendedor = sellerID, fecha = ahora.
func (uc *SaleUseCase) Create(ctx context.Context, sellerID string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	product, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	sale := &entity.Sale{
		ID:         uuid.New().String(),
		CustomerID: in.CustomerID,
		ProductID:  in.ProductID,
		Quantity:   in.Quantity,
		Total:      sales.ComputeTotal(in.Quantity, product.Price),
		SoldAt:     time.Now(),
		SellerID:   sellerID,
	}
	if err := uc.repo.Create(ctx, sale); err != nil {
		return nil, errors.Wrap(err, "create sale")
	}
	return uc.reload(ctx, sale)
}

// GetByID obtiene una venta. ErrNotFound si no existe.
func (uc *SaleUseCase) GetByID(ctx context.Context, id string) (*dto.SaleResponse, error) {
	sale, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale), nil
}

// Update sobrescribe cliente, producto y cantidad, y recalcula el total con el precio actual.
// Fecha y vendedor se conservan.
func (uc *SaleUseCase) Update(ctx context.Context, id string, in dto.SaleRequest) (*dto.SaleResponse, error) {
	sale, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	product, err := uc.validate(ctx, in)
	if err != nil {
		return nil, err
	}
	sale.CustomerID = in.CustomerID
	sale.ProductID = in.ProductID
	sale.Quantity = in.Quantity
	sale.Total = sales.ComputeTotal(in.Quantity, product.Price)
	if err := uc.repo.Update(ctx, sale); err != nil {
		return nil, errors.Wrap(err, "update sale")
	}
	return uc.reload(ctx, sale)
}

// Delete elimina la venta.
func (uc *SaleUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete sale")
	}
	return nil
}

// validate aplica las etiquetas del DTO y devuelve el producto referenciado.
func (uc *SaleUseCase) validate(ctx context.Context, in dto.SaleRequest) (*entity.Product, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	verr := &domain.ValidationError{}
	customer, err := uc.customerRepo.GetByID(ctx, in.CustomerID)
	if err != nil {
		return nil, errors.Wrap(err, "get customer")
	}
	if customer == nil {
		verr.Merge("", domain.NewValidationError("customer_id", msgInvalidChoice))
	}
	product, err := uc.productRepo.GetByID(ctx, in.ProductID)
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	if product == nil {
		verr.Merge("", domain.NewValidationError("product_id", msgInvalidChoice))
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}
	return product, nil
}

func (uc *SaleUseCase) get(ctx context.Context, id string) (*entity.Sale, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	sale, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get sale")
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	return sale, nil
}

func (uc *SaleUseCase) reload(ctx context.Context, sale *entity.Sale) (*dto.SaleResponse, error) {
	stored, err := uc.repo.GetByID(ctx, sale.ID)
	if err != nil {
		return nil, errors.Wrap(err, "get sale")
	}
	if stored == nil {
		stored = sale
	}
	return toSaleResponse(stored), nil
}

// ToSalesReport convierte un resumen agregado en la respuesta del reporte.
func ToSalesReport(date string, s sales.Summary) *dto.SalesReportResponse {
	return &dto.SalesReportResponse{
		Date:  date,
		Sales: ToSaleResponses(s.Records),
		Total: s.Total,
		Count: s.Count,
	}
}

// ToSaleResponses convierte ventas a DTOs (lista vacía, nunca nil).
func ToSaleResponses(list []*entity.Sale) []dto.SaleResponse {
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s))
	}
	return items
}

// ToProductResponses convierte productos a DTOs.
func ToProductResponses(list []*entity.Product) []dto.ProductResponse {
	return toProductResponses(list)
}

func toSaleResponse(s *entity.Sale) *dto.SaleResponse {
	return &dto.SaleResponse{
		ID:             s.ID,
		CustomerID:     s.CustomerID,
		CustomerName:   s.CustomerName,
		ProductID:      s.ProductID,
		ProductName:    s.ProductName,
		Quantity:       s.Quantity,
		Total:          s.Total,
		SoldAt:         s.SoldAt,
		SellerID:       s.SellerID,
		SellerUsername: s.SellerUsername,
	}
}
