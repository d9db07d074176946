// Package memory implementa los repositorios sobre un almacén en memoria protegido por mutex.
// Se usa con STORE_DRIVER=memory y en las pruebas de casos de uso. Aplica las mismas reglas que
// el esquema PostgreSQL: nombre de usuario único, un perfil por identidad y borrado restringido
// de registros referenciados.
package memory

import (
	"sync"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

type state struct {
	categories map[string]entity.Category
	suppliers  map[string]entity.Supplier
	products   map[string]entity.Product
	customers  map[string]entity.Customer
	sales      map[string]entity.Sale
	users      map[string]entity.User
	profiles   map[string]entity.Profile // por UserID
}

func newState() state {
	return state{
		categories: map[string]entity.Category{},
		suppliers:  map[string]entity.Supplier{},
		products:   map[string]entity.Product{},
		customers:  map[string]entity.Customer{},
		sales:      map[string]entity.Sale{},
		users:      map[string]entity.User{},
		profiles:   map[string]entity.Profile{},
	}
}

// clone copia los mapas; las entidades son valores sin referencias compartidas.
func (s *state) clone() state {
	return state{
		categories: cloneMap(s.categories),
		suppliers:  cloneMap(s.suppliers),
		products:   cloneMap(s.products),
		customers:  cloneMap(s.customers),
		sales:      cloneMap(s.sales),
		users:      cloneMap(s.users),
		profiles:   cloneMap(s.profiles),
	}
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// Store almacén en memoria compartido por todos los repositorios.
type Store struct {
	mu    sync.RWMutex
	state state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{state: newState()}
}

// view da acceso al estado: al global (con bloqueo) o al de una transacción en curso (sin bloqueo,
// el runner ya tiene el lock exclusivo).
type view struct {
	store *Store
	tx    *state
}

func (v view) read(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.RLock()
	defer v.store.mu.RUnlock()
	return fn(&v.store.state)
}

// write ejecuta fn con bloqueo exclusivo. fn debe validar antes de mutar: no hay rollback fuera de RunAccounts.
func (v view) write(fn func(st *state) error) error {
	if v.tx != nil {
		return fn(v.tx)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(&v.store.state)
}
