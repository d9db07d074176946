package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// Las lecturas rellenan CategoryName y SupplierName.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	Update(ctx context.Context, product *entity.Product) error
	List(ctx context.Context) ([]*entity.Product, error)
	// ListRecent devuelve los limit productos creados más recientemente.
	ListRecent(ctx context.Context, limit int) ([]*entity.Product, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
