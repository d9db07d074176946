package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// CustomerRepository define el puerto de persistencia para Customer.
// List ordena por apellido y luego por nombre.
type CustomerRepository interface {
	Create(ctx context.Context, customer *entity.Customer) error
	GetByID(ctx context.Context, id string) (*entity.Customer, error)
	GetByUserID(ctx context.Context, userID string) (*entity.Customer, error)
	Update(ctx context.Context, customer *entity.Customer) error
	List(ctx context.Context) ([]*entity.Customer, error)
	Count(ctx context.Context) (int, error)
	Delete(ctx context.Context, id string) error
}
