package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

// CustomerRepo implementa repository.CustomerRepository.
type CustomerRepo struct{ v view }

// NewCustomerRepository construye el repositorio.
func NewCustomerRepository(store *Store) *CustomerRepo { return &CustomerRepo{v: view{store: store}} }

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.customers[c.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := checkCustomerUser(st, c); err != nil {
			return err
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.v.read(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetByUserID(_ context.Context, userID string) (*entity.Customer, error) {
	if userID == "" {
		return nil, nil
	}
	var out *entity.Customer
	err := r.v.read(func(st *state) error {
		for _, c := range st.customers {
			if c.UserID == userID {
				c := c
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) Update(_ context.Context, c *entity.Customer) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.customers[c.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkCustomerUser(st, c); err != nil {
			return err
		}
		st.customers[c.ID] = *c
		return nil
	})
}

// List ordena por apellido y luego por nombre.
func (r *CustomerRepo) List(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.v.read(func(st *state) error {
		out = make([]*entity.Customer, 0, len(st.customers))
		for _, c := range st.customers {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		li, lj := strings.ToLower(out[i].LastName), strings.ToLower(out[j].LastName)
		if li != lj {
			return li < lj
		}
		return lessFold(out[i].FirstName, out[j].FirstName, out[i].ID, out[j].ID)
	})
	return out, err
}

func (r *CustomerRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.v.read(func(st *state) error { n = len(st.customers); return nil })
	return n, err
}

// Delete falla con ErrConflict si alguna venta referencia al cliente.
func (r *CustomerRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.customers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, s := range st.sales {
			if s.CustomerID == id {
				return domain.ErrConflict
			}
		}
		delete(st.customers, id)
		return nil
	})
}

// checkCustomerUser: la identidad enlazada debe existir y no estar enlazada a otro cliente.
func checkCustomerUser(st *state, c *entity.Customer) error {
	if c.UserID == "" {
		return nil
	}
	if _, ok := st.users[c.UserID]; !ok {
		return domain.ErrConflict
	}
	for id, other := range st.customers {
		if id != c.ID && other.UserID == c.UserID {
			return domain.ErrDuplicate
		}
	}
	return nil
}
