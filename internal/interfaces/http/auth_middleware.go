package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/pkg/jwt"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// Locals keys para la identidad de la sesión en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware lee el JWT desde "Authorization: Bearer <token>" o desde la cookie de sesión
// y deja UserID/Username en c.Locals. No rechaza: un token ausente o inválido deja la sesión
// anónima y la compuerta de cada ruta decide.
func AuthMiddleware(jwtSecret, cookieName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := bearerToken(c.Get(fiber.HeaderAuthorization))
		if token == "" {
			token = c.Cookies(cookieName)
		}
		if token == "" {
			return c.Next()
		}
		userID, username, err := jwt.Parse(jwtSecret, token)
		if err == nil {
			c.Locals(LocalUserID, userID)
			c.Locals(LocalUsername, username)
		}
		return c.Next()
	}
}

func bearerToken(header string) string {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// RequireRole compone la compuerta de acceso a la entrada de la ruta.
// Si la decisión es un rechazo el handler envuelto nunca se ejecuta.
func RequireRole(gate *auth.Gate, log *logger.Logger, roles ...string) fiber.Handler {
	required := access.Roles(roles...)
	return func(c *fiber.Ctx) error {
		decision, _, err := gate.Check(c.UserContext(), GetUserID(c), required)
		if err != nil {
			return internalError(c, log, err)
		}
		if !decision.Allowed() {
			return deny(c, log, decision)
		}
		c.Locals(LocalRole, decision.Role)
		return c.Next()
	}
}

// RequireAuth exige solo una sesión válida (identidad existente y activa), sin rol.
func RequireAuth(gate *auth.Gate, log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, err := gate.Authenticate(c.UserContext(), GetUserID(c))
		if err != nil {
			return internalError(c, log, err)
		}
		if user == nil {
			return deny(c, log, access.Decision{
				Reason:   access.NotAuthenticated,
				Message:  access.MsgNotAuthenticated,
				Redirect: access.RedirectLogin,
			})
		}
		return c.Next()
	}
}

func deny(c *fiber.Ctx, log *logger.Logger, d access.Decision) error {
	log.Warn().
		Str("user_id", GetUserID(c)).
		Str("reason", d.Reason.String()).
		Str("role", d.Role).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("acceso denegado")

	status := fiber.StatusForbidden
	if d.Reason == access.NotAuthenticated {
		status = fiber.StatusUnauthorized
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:     strings.ToUpper(d.Reason.String()),
		Message:  d.Message,
		Redirect: d.Redirect,
	})
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUserID).(string)
	return s
}

// GetRole devuelve el rol con el que la compuerta autorizó la petición (vacío para superusuario).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
