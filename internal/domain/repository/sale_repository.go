package repository

import (
	"context"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para Sale.
// Las lecturas rellenan CustomerName, ProductName y SellerUsername.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	Update(ctx context.Context, sale *entity.Sale) error
	Delete(ctx context.Context, id string) error
	// ListBetween devuelve las ventas con start <= sold_at < end.
	ListBetween(ctx context.Context, start, end time.Time) ([]*entity.Sale, error)
	// ListByDate devuelve las ventas cuya fecha calendario (sold_at en loc) es igual a date (YYYY-MM-DD).
	ListByDate(ctx context.Context, date string, loc *time.Location) ([]*entity.Sale, error)
	// ListByCustomer devuelve las ventas del cliente, más recientes primero.
	ListByCustomer(ctx context.Context, customerID string) ([]*entity.Sale, error)
}
