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
	_ repository.UserRepository    = (*UserRepo)(nil)
	_ repository.ProfileRepository = (*ProfileRepo)(nil)
)

// UserRepo implementa repository.UserRepository. El nombre de usuario es único.
type UserRepo struct{ v view }

// NewUserRepository construye el repositorio.
func NewUserRepository(store *Store) *UserRepo { return &UserRepo{v: view{store: store}} }

func (r *UserRepo) Create(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.users[u.ID]; ok {
			return domain.ErrDuplicate
		}
		if usernameTaken(st, u.Username, u.ID) {
			return domain.ErrDuplicateUsername
		}
		st.users[u.ID] = *u
		return nil
	})
}

func (r *UserRepo) GetByID(_ context.Context, id string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		if u, ok := st.users[id]; ok {
			out = &u
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) GetByUsername(_ context.Context, username string) (*entity.User, error) {
	var out *entity.User
	err := r.v.read(func(st *state) error {
		for _, u := range st.users {
			if u.Username == username {
				u := u
				out = &u
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *UserRepo) Update(_ context.Context, u *entity.User) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.users[u.ID]; !ok {
			return domain.ErrNotFound
		}
		if usernameTaken(st, u.Username, u.ID) {
			return domain.ErrDuplicateUsername
		}
		st.users[u.ID] = *u
		return nil
	})
}

func usernameTaken(st *state, username, exceptID string) bool {
	for id, u := range st.users {
		if id != exceptID && u.Username == username {
			return true
		}
	}
	return false
}

// ProfileRepo implementa repository.ProfileRepository. Un perfil por identidad.
type ProfileRepo struct{ v view }

// NewProfileRepository construye el repositorio.
func NewProfileRepository(store *Store) *ProfileRepo { return &ProfileRepo{v: view{store: store}} }

func (r *ProfileRepo) Create(_ context.Context, p *entity.Profile) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.users[p.UserID]; !ok {
			return domain.ErrConflict
		}
		if _, ok := st.profiles[p.UserID]; ok {
			return domain.ErrDuplicate
		}
		st.profiles[p.UserID] = stripProfile(*p)
		return nil
	})
}

func (r *ProfileRepo) GetByUserID(_ context.Context, userID string) (*entity.Profile, error) {
	var out *entity.Profile
	err := r.v.read(func(st *state) error {
		if p, ok := st.profiles[userID]; ok {
			out = joinProfile(st, p)
		}
		return nil
	})
	return out, err
}

func (r *ProfileRepo) Update(_ context.Context, p *entity.Profile) error {
	return r.v.write(func(st *state) error {
		if _, ok := st.profiles[p.UserID]; !ok {
			return domain.ErrNotFound
		}
		st.profiles[p.UserID] = stripProfile(*p)
		return nil
	})
}

// List ordena por fecha de contratación descendente.
func (r *ProfileRepo) List(_ context.Context, f repository.ProfileFilter) ([]*entity.Profile, error) {
	var out []*entity.Profile
	search := strings.ToLower(f.Search)
	err := r.v.read(func(st *state) error {
		out = make([]*entity.Profile, 0, len(st.profiles))
		for _, p := range st.profiles {
			jp := joinProfile(st, p)
			if f.Role != "" && jp.Role != f.Role {
				continue
			}
			if f.Active != nil && jp.Active != *f.Active {
				continue
			}
			if f.Department != "" && jp.Department != f.Department {
				continue
			}
			if search != "" &&
				!strings.Contains(strings.ToLower(jp.Username), search) &&
				!strings.Contains(strings.ToLower(jp.Email), search) &&
				!strings.Contains(strings.ToLower(jp.Department), search) {
				continue
			}
			out = append(out, jp)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].HireDate.Equal(out[j].HireDate) {
			return out[i].HireDate.After(out[j].HireDate)
		}
		return out[i].UserID < out[j].UserID
	})
	return out, err
}

func stripProfile(p entity.Profile) entity.Profile {
	p.Username = ""
	p.Email = ""
	return p
}

func joinProfile(st *state, p entity.Profile) *entity.Profile {
	u := st.users[p.UserID]
	p.Username = u.Username
	p.Email = u.Email
	return &p
}
