package memory

import (
	"context"
	"sort"
	"time"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/sales"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

// SaleRepo implementa repository.SaleRepository.
type SaleRepo struct{ v view }

// NewSaleRepository construye el repositorio.
func NewSaleRepository(store *Store) *SaleRepo { return &SaleRepo{v: view{store: store}} }

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := checkSaleRefs(st, s); err != nil {
			return err
		}
		st.sales[s.ID] = stripSale(*s)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.v.read(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = joinSale(st, s)
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) Update(_ context.Context, s *entity.Sale) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.sales[s.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkSaleRefs(st, s); err != nil {
			return err
		}
		st.sales[s.ID] = stripSale(*s)
		return nil
	})
}

func (r *SaleRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.sales[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.sales, id)
		return nil
	})
}

func (r *SaleRepo) ListBetween(_ context.Context, start, end time.Time) ([]*entity.Sale, error) {
	w := sales.Window{Start: start, End: end}
	out, err := r.filter(func(s entity.Sale) bool { return w.Contains(s.SoldAt) })
	sortSales(out, false)
	return out, err
}

func (r *SaleRepo) ListByDate(_ context.Context, date string, loc *time.Location) ([]*entity.Sale, error) {
	if loc == nil {
		loc = time.UTC
	}
	out, err := r.filter(func(s entity.Sale) bool { return sales.SameCalendarDate(s.SoldAt, date, loc) })
	sortSales(out, false)
	return out, err
}

func (r *SaleRepo) ListByCustomer(_ context.Context, customerID string) ([]*entity.Sale, error) {
	out, err := r.filter(func(s entity.Sale) bool { return s.CustomerID == customerID })
	sortSales(out, true)
	return out, err
}

func (r *SaleRepo) filter(keep func(entity.Sale) bool) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.v.read(func(st *state) error {
		out = make([]*entity.Sale, 0)
		for _, s := range st.sales {
			if keep(s) {
				out = append(out, joinSale(st, s))
			}
		}
		return nil
	})
	return out, err
}

func sortSales(list []*entity.Sale, desc bool) {
	sort.Slice(list, func(i, j int) bool {
		a, b := list[i], list[j]
		if !a.SoldAt.Equal(b.SoldAt) {
			if desc {
				return a.SoldAt.After(b.SoldAt)
			}
			return a.SoldAt.Before(b.SoldAt)
		}
		return a.ID < b.ID
	})
}

func checkSaleRefs(st *state, s *entity.Sale) error {
	if _, ok := st.customers[s.CustomerID]; !ok {
		return domain.ErrConflict
	}
	if _, ok := st.products[s.ProductID]; !ok {
		return domain.ErrConflict
	}
	if s.SellerID != "" {
		if _, ok := st.users[s.SellerID]; !ok {
			return domain.ErrConflict
		}
	}
	return nil
}

func stripSale(s entity.Sale) entity.Sale {
	s.CustomerName = ""
	s.ProductName = ""
	s.SellerUsername = ""
	return s
}

func joinSale(st *state, s entity.Sale) *entity.Sale {
	if c, ok := st.customers[s.CustomerID]; ok {
		s.CustomerName = c.FullName()
	}
	s.ProductName = st.products[s.ProductID].Name
	if s.SellerID != "" {
		s.SellerUsername = st.users[s.SellerID].Username
	}
	return &s
}
