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
)

// msgInvalidChoice mensaje para una referencia a un registro inexistente.
const msgInvalidChoice = "Seleccione una opción válida. Esa opción no está entre las disponibles."

// RecentProductsLimit cantidad de productos recientes del dashboard.
const RecentProductsLimit = 5

// ProductUseCase casos de uso CRUD para productos. El stock se edita a mano; las ventas no lo descuentan.
type ProductUseCase struct {
	repo         repository.ProductRepository
	categoryRepo repository.CategoryRepository
	supplierRepo repository.SupplierRepository
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(
	repo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	supplierRepo repository.SupplierRepository,
) *ProductUseCase {
	return &ProductUseCase{repo: repo, categoryRepo: categoryRepo, supplierRepo: supplierRepo}
}

// List lista todos los productos.
func (uc *ProductUseCase) List(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list products")
	}
	return toProductResponses(list), nil
}

// Create valida y crea un producto.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.ProductRequest) (*dto.ProductResponse, error) {
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	product := &entity.Product{
		ID:        uuid.New().String(),
		CreatedAt: time.Now(),
	}
	applyProductRequest(product, in)
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, errors.Wrap(err, "create product")
	}
	return uc.reload(ctx, product)
}

// GetByID obtiene un producto. ErrNotFound si no existe.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// Update sobrescribe los campos editables conservando ID y fecha de creación.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.ProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := uc.validate(ctx, in); err != nil {
		return nil, err
	}
	applyProductRequest(product, in)
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, errors.Wrap(err, "update product")
	}
	return uc.reload(ctx, product)
}

// Delete elimina el producto. ErrConflict si tiene ventas.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete product")
	}
	return nil
}

// validate aplica las etiquetas del DTO y verifica que categoría y proveedor existan.
func (uc *ProductUseCase) validate(ctx context.Context, in dto.ProductRequest) error {
	if err := validation.Struct(in); err != nil {
		return err
	}
	verr := &domain.ValidationError{}
	category, err := uc.categoryRepo.GetByID(ctx, in.CategoryID)
	if err != nil {
		return errors.Wrap(err, "get category")
	}
	if category == nil {
		verr.Merge("", domain.NewValidationError("category_id", msgInvalidChoice))
	}
	if in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(ctx, in.SupplierID)
		if err != nil {
			return errors.Wrap(err, "get supplier")
		}
		if supplier == nil {
			verr.Merge("", domain.NewValidationError("supplier_id", msgInvalidChoice))
		}
	}
	if len(verr.Fields) > 0 {
		return verr
	}
	return nil
}

func (uc *ProductUseCase) get(ctx context.Context, id string) (*entity.Product, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return product, nil
}

// reload relee el producto para devolver los nombres de categoría y proveedor.
func (uc *ProductUseCase) reload(ctx context.Context, product *entity.Product) (*dto.ProductResponse, error) {
	stored, err := uc.repo.GetByID(ctx, product.ID)
	if err != nil {
		return nil, errors.Wrap(err, "get product")
	}
	if stored == nil {
		stored = product
	}
	return toProductResponse(stored), nil
}

func applyProductRequest(p *entity.Product, in dto.ProductRequest) {
	p.Name = in.Name
	p.Description = in.Description
	p.Price = in.Price.Round(2)
	p.Stock = in.Stock
	p.CategoryID = in.CategoryID
	p.SupplierID = in.SupplierID
	p.Active = in.Active
}

func toProductResponses(list []*entity.Product) []dto.ProductResponse {
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return items
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:           p.ID,
		Name:         p.Name,
		Description:  p.Description,
		Price:        p.Price,
		Stock:        p.Stock,
		CategoryID:   p.CategoryID,
		CategoryName: p.CategoryName,
		SupplierID:   p.SupplierID,
		SupplierName: p.SupplierName,
		Active:       p.Active,
		CreatedAt:    p.CreatedAt,
	}
}
