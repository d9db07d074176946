package http_test

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// gateApp aplicación mínima con AuthMiddleware + RequireRole y un handler que cuenta sus ejecuciones.
type gateApp struct {
	app     *fiber.App
	users   *memory.UserRepo
	profile *memory.ProfileRepo
	logs    *bytes.Buffer
	reached int
}

func newGateApp(t *testing.T, roles ...string) *gateApp {
	t.Helper()
	store := memory.NewStore()
	g := &gateApp{
		users:   memory.NewUserRepository(store),
		profile: memory.NewProfileRepository(store),
		logs:    &bytes.Buffer{},
	}
	log := logger.NewWithWriter(g.logs, "info")
	gate := auth.NewGate(g.users, g.profile)

	g.app = fiber.New()
	g.app.Use(apphttp.AuthMiddleware(testJWTSecret, testCookie))
	g.app.Get("/protected",
		apphttp.RequireRole(gate, log, roles...),
		func(c *fiber.Ctx) error {
			g.reached++
			return c.JSON(fiber.Map{"ok": true, "role": apphttp.GetRole(c), "user_id": apphttp.GetUserID(c)})
		},
	)
	g.app.Get("/session", apphttp.RequireAuth(gate, log), func(c *fiber.Ctx) error {
		g.reached++
		return c.SendStatus(fiber.StatusNoContent)
	})
	return g
}

func (g *gateApp) addUser(t *testing.T, username, role string, superuser, active bool) *entity.User {
	t.Helper()
	ctx := context.Background()
	u := &entity.User{ID: username + "-id", Username: username, IsSuperuser: superuser, IsActive: active}
	require.NoError(t, g.users.Create(ctx, u))
	if role != "" {
		require.NoError(t, g.profile.Create(ctx, &entity.Profile{ID: username + "-p", UserID: u.ID, Role: role, Active: true}))
	}
	return u
}

func (g *gateApp) get(t *testing.T, path, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := g.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// Caso 1: el rol del perfil pertenece al conjunto → pasa y expone el rol.
func TestRequireRole_RolPermitidoAccede(t *testing.T) {
	g := newGateApp(t, entity.RoleAdmin, entity.RoleEmployee)
	u := g.addUser(t, "empleado1", entity.RoleEmployee, false, true)

	resp := g.get(t, "/protected", tokenFor(t, u))
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]interface{}
	decode(t, resp, &body)
	assert.Equal(t, entity.RoleEmployee, body["role"])
	assert.Equal(t, u.ID, body["user_id"])
	assert.Equal(t, 1, g.reached)
}

// Caso 2: rol fuera del conjunto → 403 con los roles requeridos en el mensaje.
func TestRequireRole_RolNoPermitido_Retorna403(t *testing.T) {
	g := newGateApp(t, entity.RoleAdmin, entity.RoleEmployee)
	u := g.addUser(t, "vende", entity.RoleSeller, false, true)

	resp := g.get(t, "/protected", tokenFor(t, u))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "ROLE_MISMATCH", body.Code)
	assert.Equal(t, "Acceso denegado. Rol requerido: administrador, empleado", body.Message)
	assert.Equal(t, "/", body.Redirect)
	assert.Zero(t, g.reached, "el handler no debe ejecutarse")
}

// Caso 3: identidad sin perfil → 403 NO_PROFILE y el handler nunca se alcanza.
func TestRequireRole_SinPerfil_Retorna403(t *testing.T) {
	g := newGateApp(t, entity.RoleAdmin)
	u := g.addUser(t, "huerfano", "", false, true)

	resp := g.get(t, "/protected", tokenFor(t, u))
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "NO_PROFILE", body.Code)
	assert.Equal(t, "Tu cuenta no tiene un perfil asignado.", body.Message)
	assert.Zero(t, g.reached)
}

// Caso 4: superusuario sin perfil → pasa sin importar los roles.
func TestRequireRole_SuperusuarioSiemprePasa(t *testing.T) {
	g := newGateApp(t, entity.RoleCustomer)
	u := g.addUser(t, "root", "", true, true)

	resp := g.get(t, "/protected", tokenFor(t, u))
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, g.reached)
}

// Caso 5: sin token → 401 con redirección a /login.
func TestRequireRole_SinToken_Retorna401(t *testing.T) {
	g := newGateApp(t, entity.RoleAdmin)

	resp := g.get(t, "/protected", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	var body dto.ErrorResponse
	decode(t, resp, &body)
	assert.Equal(t, "NOT_AUTHENTICATED", body.Code)
	assert.Equal(t, "Debes iniciar sesión para acceder.", body.Message)
	assert.Equal(t, "/login", body.Redirect)
}

// Caso 6: token malformado o firmado con otro secreto → sesión anónima → 401.
func TestRequireRole_TokenInvalido_Retorna401(t *testing.T) {
	g := newGateApp(t, entity.RoleAdmin)
	u := g.addUser(t, "admin", entity.RoleAdmin, false, true)
	foreign, err := pkgjwt.Generate("otro-secreto", u.ID, u.Username, testIssuer, testExpMin)
	require.NoError(t, err)

	for _, header := range []string{"Bearer token.invalido.aqui", "Bearer " + foreign, "Basic abc"} {
		resp := g.get(t, "/protected", header)
		resp.Body.Close()
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode, header)
	}
	assert.Zero(t, g.reached)
}

// Caso 7: identidad desactivada con token vigente → no autenticada.
func TestRequireRole_UsuarioInactivo_Retorna401(t *testing.T) {
	g := newGateApp(t, entity.RoleAdmin)
	u := g.addUser(t, "baja", entity.RoleAdmin, false, false)

	resp := g.get(t, "/protected", tokenFor(t, u))
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

// Caso 8: el token también se acepta desde la cookie de sesión.
func TestAuthMiddleware_TokenDesdeCookie(t *testing.T) {
	g := newGateApp(t, entity.RoleAdmin)
	u := g.addUser(t, "admin", entity.RoleAdmin, false, true)
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Username, testIssuer, testExpMin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.AddCookie(&http.Cookie{Name: testCookie, Value: tok, Expires: time.Now().Add(time.Hour)})
	resp, err := g.app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// Cada rechazo queda registrado en nivel warn con el motivo.
func TestRequireRole_RechazoSeRegistra(t *testing.T) {
	g := newGateApp(t, entity.RoleAdmin)
	u := g.addUser(t, "vende", entity.RoleSeller, false, true)

	resp := g.get(t, "/protected", tokenFor(t, u))
	resp.Body.Close()

	out := g.logs.String()
	assert.Contains(t, out, `"level":"warn"`)
	assert.Contains(t, out, `"reason":"role_mismatch"`)
	assert.Contains(t, out, `"path":"/protected"`)
	assert.Contains(t, out, u.ID)
}

func TestRequireAuth_SoloExigeSesion(t *testing.T) {
	g := newGateApp(t)
	sinPerfil := g.addUser(t, "sinperfil", "", false, true)

	resp := g.get(t, "/session", tokenFor(t, sinPerfil))
	resp.Body.Close()
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp = g.get(t, "/session", "")
	resp.Body.Close()
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, 1, g.reached)
}
