package memory

import (
	"context"
	"sort"
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

var (
	_ repository.CategoryRepository = (*CategoryRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
	_ repository.ProductRepository  = (*ProductRepo)(nil)
)

// CategoryRepo implementa repository.CategoryRepository.
type CategoryRepo struct{ v view }

// NewCategoryRepository construye el repositorio.
func NewCategoryRepository(store *Store) *CategoryRepo { return &CategoryRepo{v: view{store: store}} }

func (r *CategoryRepo) Create(_ context.Context, c *entity.Category) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.categories[c.ID]; ok {
			return domain.ErrDuplicate
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) GetByID(_ context.Context, id string) (*entity.Category, error) {
	var out *entity.Category
	err := r.v.read(func(st *state) error {
		if c, ok := st.categories[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CategoryRepo) Update(_ context.Context, c *entity.Category) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.categories[c.ID]; !ok {
			return domain.ErrNotFound
		}
		st.categories[c.ID] = *c
		return nil
	})
}

func (r *CategoryRepo) List(_ context.Context) ([]*entity.Category, error) {
	var out []*entity.Category
	err := r.v.read(func(st *state) error {
		out = make([]*entity.Category, 0, len(st.categories))
		for _, c := range st.categories {
			c := c
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return lessFold(out[i].Name, out[j].Name, out[i].ID, out[j].ID) })
	return out, err
}

func (r *CategoryRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.v.read(func(st *state) error { n = len(st.categories); return nil })
	return n, err
}

// Delete falla con ErrConflict si algún producto referencia la categoría.
func (r *CategoryRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.categories[id]; !ok {
			return domain.ErrNotFound
		}
		for _, p := range st.products {
			if p.CategoryID == id {
				return domain.ErrConflict
			}
		}
		delete(st.categories, id)
		return nil
	})
}

// SupplierRepo implementa repository.SupplierRepository.
type SupplierRepo struct{ v view }

// NewSupplierRepository construye el repositorio.
func NewSupplierRepository(store *Store) *SupplierRepo { return &SupplierRepo{v: view{store: store}} }

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; ok {
			return domain.ErrDuplicate
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.v.read(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) Update(_ context.Context, s *entity.Supplier) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.suppliers[s.ID]; !ok {
			return domain.ErrNotFound
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) List(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.v.read(func(st *state) error {
		out = make([]*entity.Supplier, 0, len(st.suppliers))
		for _, s := range st.suppliers {
			s := s
			out = append(out, &s)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return lessFold(out[i].Name, out[j].Name, out[i].ID, out[j].ID) })
	return out, err
}

func (r *SupplierRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.v.read(func(st *state) error { n = len(st.suppliers); return nil })
	return n, err
}

// Delete falla con ErrConflict si algún producto referencia al proveedor.
func (r *SupplierRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.suppliers[id]; !ok {
			return domain.ErrNotFound
		}
		for _, p := range st.products {
			if p.SupplierID == id {
				return domain.ErrConflict
			}
		}
		delete(st.suppliers, id)
		return nil
	})
}

// ProductRepo implementa repository.ProductRepository.
type ProductRepo struct{ v view }

// NewProductRepository construye el repositorio.
func NewProductRepository(store *Store) *ProductRepo { return &ProductRepo{v: view{store: store}} }

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		if err := checkProductRefs(st, p); err != nil {
			return err
		}
		st.products[p.ID] = stripProduct(*p)
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.v.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = joinProduct(st, p)
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		if err := checkProductRefs(st, p); err != nil {
			return err
		}
		st.products[p.ID] = stripProduct(*p)
		return nil
	})
}

func (r *ProductRepo) List(ctx context.Context) ([]*entity.Product, error) {
	out, err := r.all()
	sort.Slice(out, func(i, j int) bool { return lessFold(out[i].Name, out[j].Name, out[i].ID, out[j].ID) })
	return out, err
}

func (r *ProductRepo) ListRecent(_ context.Context, limit int) ([]*entity.Product, error) {
	out, err := r.all()
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	if limit >= 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, err
}

func (r *ProductRepo) Count(_ context.Context) (int, error) {
	var n int
	err := r.v.read(func(st *state) error { n = len(st.products); return nil })
	return n, err
}

// Delete falla con ErrConflict si alguna venta referencia el producto.
func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		for _, s := range st.sales {
			if s.ProductID == id {
				return domain.ErrConflict
			}
		}
		delete(st.products, id)
		return nil
	})
}

func (r *ProductRepo) all() ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.v.read(func(st *state) error {
		out = make([]*entity.Product, 0, len(st.products))
		for _, p := range st.products {
			out = append(out, joinProduct(st, p))
		}
		return nil
	})
	return out, err
}

func checkProductRefs(st *state, p *entity.Product) error {
	if _, ok := st.categories[p.CategoryID]; !ok {
		return domain.ErrConflict
	}
	if p.SupplierID != "" {
		if _, ok := st.suppliers[p.SupplierID]; !ok {
			return domain.ErrConflict
		}
	}
	return nil
}

func stripProduct(p entity.Product) entity.Product {
	p.CategoryName = ""
	p.SupplierName = ""
	return p
}

func joinProduct(st *state, p entity.Product) *entity.Product {
	p.CategoryName = st.categories[p.CategoryID].Name
	if p.SupplierID != "" {
		p.SupplierName = st.suppliers[p.SupplierID].Name
	}
	return &p
}

// lessFold orden alfabético sin distinguir mayúsculas, desempatando por ID.
func lessFold(a, b, idA, idB string) bool {
	la, lb := strings.ToLower(a), strings.ToLower(b)
	if la != lb {
		return la < lb
	}
	return idA < idB
}
