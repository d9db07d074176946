package usecase

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// AccountsTxRunner ejecuta fn dentro de una unidad transaccional con los repositorios de
// identidad, perfil y cliente atados a ella. Si fn devuelve error no queda nada escrito.
type AccountsTxRunner interface {
	RunAccounts(ctx context.Context, fn func(
		userRepo repository.UserRepository,
		profileRepo repository.ProfileRepository,
		customerRepo repository.CustomerRepository,
	) error) error
}
