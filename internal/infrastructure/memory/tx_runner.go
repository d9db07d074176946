package memory

import (
	"context"

	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ usecase.AccountsTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks sobre una copia del estado y la publica solo si fn no falla.
// Mantiene el lock exclusivo durante toda la unidad.
type TxRunner struct {
	store *Store
}

// NewTxRunner construye el runner.
func NewTxRunner(store *Store) *TxRunner {
	return &TxRunner{store: store}
}

// RunAccounts ejecuta fn con repos de identidad, perfil y cliente atados a la unidad.
func (r *TxRunner) RunAccounts(ctx context.Context, fn func(
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	customerRepo repository.CustomerRepository,
) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	txState := r.store.state.clone()
	v := view{store: r.store, tx: &txState}
	if err := fn(&UserRepo{v: v}, &ProfileRepo{v: v}, &CustomerRepo{v: v}); err != nil {
		return err
	}
	r.store.state = txState
	return nil
}
