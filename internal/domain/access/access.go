// Package access implementa la compuerta de control de acceso por rol.
//
// Authorize es una función pura: recibe la identidad, si está autenticada, una función para
// consultar su perfil y el conjunto de roles requerido, y devuelve una Decision tipada.
// No existe registro global de roles; cada ruta compone su propio RoleSet.
package access

import (
	"strings"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

// Mensajes de estado mostrados al usuario en cada rechazo.
const (
	MsgNotAuthenticated = "Debes iniciar sesión para acceder."
	MsgNoProfile        = "Tu cuenta no tiene un perfil asignado."
	msgRoleMismatch     = "Acceso denegado. Rol requerido: "
)

// Destinos de redirección tras un rechazo.
const (
	RedirectLogin = "/login"
	RedirectHome  = "/"
)

// DenyReason motivo tipado de un rechazo.
type DenyReason int

const (
	// Allowed no es un rechazo.
	Allowed DenyReason = iota
	NotAuthenticated
	NoProfile
	RoleMismatch
)

func (r DenyReason) String() string {
	switch r {
	case Allowed:
		return "allowed"
	case NotAuthenticated:
		return "not_authenticated"
	case NoProfile:
		return "no_profile"
	case RoleMismatch:
		return "role_mismatch"
	default:
		return "unknown"
	}
}

// Err devuelve el error de dominio asociado al motivo (nil si Allowed).
func (r DenyReason) Err() error {
	switch r {
	case NotAuthenticated:
		return domain.ErrNotAuthenticated
	case NoProfile:
		return domain.ErrNoProfile
	case RoleMismatch:
		return domain.ErrRoleMismatch
	default:
		return nil
	}
}

// RoleSet conjunto ordenado de roles requeridos por una operación.
type RoleSet []string

// Roles construye un RoleSet.
func Roles(roles ...string) RoleSet { return RoleSet(roles) }

// Contains informa si role pertenece al conjunto.
func (s RoleSet) Contains(role string) bool {
	for _, r := range s {
		if r == role {
			return true
		}
	}
	return false
}

// String enumera los roles separados por coma, en el orden declarado.
func (s RoleSet) String() string { return strings.Join(s, ", ") }

// Decision resultado de la compuerta.
type Decision struct {
	Reason   DenyReason
	Message  string // mensaje de estado (vacío si se permite)
	Redirect string // destino sugerido (vacío si se permite)
	Role     string // rol del perfil consultado (vacío para superusuario o sin perfil)
}

// Allowed informa si la operación puede continuar.
func (d Decision) Allowed() bool { return d.Reason == Allowed }

// ProfileLookup consulta el perfil de la identidad. Devuelve (nil, nil) si no tiene.
type ProfileLookup func() (*entity.Profile, error)

// Authorize aplica, en orden: autenticación, superusuario, existencia de perfil y pertenencia del rol.
// lookup solo se invoca si la identidad está autenticada y no es superusuario.
// Un error de lookup se devuelve tal cual (fallo de infraestructura, no un rechazo).
func Authorize(user *entity.User, authenticated bool, lookup ProfileLookup, required RoleSet) (Decision, error) {
	if !authenticated || user == nil {
		return Decision{Reason: NotAuthenticated, Message: MsgNotAuthenticated, Redirect: RedirectLogin}, nil
	}
	if user.IsSuperuser {
		return Decision{Reason: Allowed}, nil
	}
	profile, err := lookup()
	if err != nil {
		return Decision{}, err
	}
	if profile == nil {
		return Decision{Reason: NoProfile, Message: MsgNoProfile, Redirect: RedirectHome}, nil
	}
	if required.Contains(profile.Role) {
		return Decision{Reason: Allowed, Role: profile.Role}, nil
	}
	return Decision{
		Reason:   RoleMismatch,
		Message:  msgRoleMismatch + required.String(),
		Redirect: RedirectHome,
		Role:     profile.Role,
	}, nil
}
