package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pkg/errors"

	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/access"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const msgAlreadyLoggedIn = "Ya tienes una sesión activa."

// SessionConfig cookie donde viaja el JWT.
type SessionConfig struct {
	CookieName string
	Secure     bool
	TTL        time.Duration
}

// AuthHandler maneja login, logout y la identidad de la sesión.
type AuthHandler struct {
	uc      *auth.AuthUseCase
	gate    *auth.Gate
	session SessionConfig
	log     *logger.Logger
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, gate *auth.Gate, session SessionConfig, log *logger.Logger) *AuthHandler {
	return &AuthHandler{uc: uc, gate: gate, session: session, log: log}
}

// Login godoc
// @Summary      Iniciar sesión
// @Description  Devuelve el token y lo deja en una cookie HTTP-only. Con sesión activa redirige al inicio.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "username, password"
// @Success      200   {object}  dto.LoginResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	current, err := h.gate.Authenticate(c.UserContext(), GetUserID(c))
	if err != nil {
		return internalError(c, h.log, err)
	}
	if current != nil {
		return c.JSON(dto.ResultResponse{Message: msgAlreadyLoggedIn, Redirect: access.RedirectHome})
	}

	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.Login(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrValidation) {
			h.log.Info().Str("username", in.Username).Msg("login fallido")
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "INVALID_CREDENTIALS",
				Message: auth.MsgInvalidCredentials,
				Input:   fiber.Map{"username": in.Username},
			})
		}
		return internalError(c, h.log, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    out.Token,
		Path:     "/",
		Expires:  time.Now().Add(h.session.TTL),
		HTTPOnly: true,
		Secure:   h.session.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Tags         auth
// @Produce      json
// @Success      200  {object}  dto.ResultResponse
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	c.Cookie(&fiber.Cookie{
		Name:     h.session.CookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HTTPOnly: true,
		Secure:   h.session.Secure,
		SameSite: fiber.CookieSameSiteLaxMode,
	})
	return c.JSON(dto.ResultResponse{Message: auth.MsgLoggedOut, Redirect: access.RedirectLogin})
}

// Me godoc
// @Summary      Identidad de la sesión
// @Tags         auth
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UserResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(c.UserContext(), GetUserID(c))
	if err != nil {
		return respondError(c, h.log, err, nil)
	}
	return c.JSON(out)
}
