package repository

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// ProfileFilter filtros del listado administrativo de perfiles. Campos vacíos/nil no filtran.
type ProfileFilter struct {
	Role       string
	Active     *bool
	Department string
	Search     string // username, email o departamento (contiene, sin distinguir mayúsculas)
}

// ProfileRepository define el puerto de persistencia para Profile.
type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	GetByUserID(ctx context.Context, userID string) (*entity.Profile, error)
	Update(ctx context.Context, profile *entity.Profile) error
	// List ordena por fecha de contratación descendente.
	List(ctx context.Context, filter ProfileFilter) ([]*entity.Profile, error)
}
