package auth

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// Gate resuelve la identidad de la sesión y aplica access.Authorize contra el almacén.
type Gate struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
}

// NewGate construye la compuerta.
func NewGate(userRepo repository.UserRepository, profileRepo repository.ProfileRepository) *Gate {
	return &Gate{userRepo: userRepo, profileRepo: profileRepo}
}

// Check decide si userID puede ejecutar una operación que exige required.
// userID vacío, identidad inexistente o inactiva cuentan como no autenticado.
// Devuelve también la identidad resuelta (nil si no está autenticada).
func (g *Gate) Check(ctx context.Context, userID string, required access.RoleSet) (access.Decision, *entity.User, error) {
	user, err := g.resolve(ctx, userID)
	if err != nil {
		return access.Decision{}, nil, err
	}
	lookup := func() (*entity.Profile, error) {
		p, err := g.profileRepo.GetByUserID(ctx, user.ID)
		return p, errors.Wrap(err, "get profile")
	}
	decision, err := access.Authorize(user, user != nil, lookup, required)
	if err != nil {
		return access.Decision{}, nil, err
	}
	return decision, user, nil
}

// Authenticate resuelve la identidad sin exigir rol. nil si no está autenticada.
func (g *Gate) Authenticate(ctx context.Context, userID string) (*entity.User, error) {
	return g.resolve(ctx, userID)
}

func (g *Gate) resolve(ctx context.Context, userID string) (*entity.User, error) {
	if userID == "" {
		return nil, nil
	}
	user, err := g.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	if user == nil || !user.IsActive {
		return nil, nil
	}
	return user, nil
}
