package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (identidad).
// No expone Delete: ninguna operación elimina identidades.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByUsername(ctx context.Context, username string) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
}
