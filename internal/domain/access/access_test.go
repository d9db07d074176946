package access_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
)

func profileOf(role string) access.ProfileLookup {
	return func() (*entity.Profile, error) {
		return &entity.Profile{UserID: "u1", Role: role, Active: true}, nil
	}
}

func TestAuthorize_NoAutenticadoRedirigeALogin(t *testing.T) {
	d, err := access.Authorize(nil, false, profileOf(entity.RoleAdmin), access.Roles(entity.RoleAdmin))
	require.NoError(t, err)
	assert.False(t, d.Allowed())
	assert.Equal(t, access.NotAuthenticated, d.Reason)
	assert.Equal(t, "Debes iniciar sesión para acceder.", d.Message)
	assert.Equal(t, "/login", d.Redirect)
	assert.ErrorIs(t, d.Reason.Err(), domain.ErrNotAuthenticated)
}

func TestAuthorize_SuperusuarioNoConsultaPerfil(t *testing.T) {
	called := false
	lookup := func() (*entity.Profile, error) {
		called = true
		return nil, nil
	}
	d, err := access.Authorize(&entity.User{ID: "root", IsSuperuser: true}, true, lookup, access.Roles(entity.RoleAdmin))
	require.NoError(t, err)
	assert.True(t, d.Allowed())
	assert.False(t, called, "el perfil no debe consultarse para un superusuario")
}

func TestAuthorize_SinPerfil(t *testing.T) {
	lookup := func() (*entity.Profile, error) { return nil, nil }
	d, err := access.Authorize(&entity.User{ID: "u1"}, true, lookup, access.Roles(entity.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, access.NoProfile, d.Reason)
	assert.Equal(t, "Tu cuenta no tiene un perfil asignado.", d.Message)
	assert.Equal(t, "/", d.Redirect)
}

func TestAuthorize_RolNoPermitidoListaRolesRequeridos(t *testing.T) {
	d, err := access.Authorize(&entity.User{ID: "u1"}, true, profileOf(entity.RoleSeller),
		access.Roles(entity.RoleAdmin, entity.RoleEmployee))
	require.NoError(t, err)
	assert.Equal(t, access.RoleMismatch, d.Reason)
	assert.Equal(t, "Acceso denegado. Rol requerido: administrador, empleado", d.Message)
	assert.Equal(t, "/", d.Redirect)
	assert.Equal(t, entity.RoleSeller, d.Role)
}

func TestAuthorize_RolPermitido(t *testing.T) {
	for _, role := range []string{entity.RoleAdmin, entity.RoleEmployee, entity.RoleSeller} {
		d, err := access.Authorize(&entity.User{ID: "u1"}, true, profileOf(role),
			access.Roles(entity.RoleAdmin, entity.RoleEmployee, entity.RoleSeller))
		require.NoError(t, err)
		assert.True(t, d.Allowed(), role)
		assert.Empty(t, d.Message)
	}
}

func TestAuthorize_GerenteNoPasaCompuertaDeAdmin(t *testing.T) {
	d, err := access.Authorize(&entity.User{ID: "u1"}, true, profileOf(entity.RoleManager), access.Roles(entity.RoleAdmin))
	require.NoError(t, err)
	assert.Equal(t, access.RoleMismatch, d.Reason)
}

func TestAuthorize_ErrorDeConsultaSePropaga(t *testing.T) {
	boom := errors.New("db caída")
	lookup := func() (*entity.Profile, error) { return nil, boom }
	_, err := access.Authorize(&entity.User{ID: "u1"}, true, lookup, access.Roles(entity.RoleAdmin))
	assert.ErrorIs(t, err, boom)
}
