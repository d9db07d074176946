package auth

import (
	"context"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/validation"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// Mensajes de sesión.
const (
	MsgInvalidCredentials = "Usuario o contraseña incorrectos."
	MsgLoggedOut          = "Sesión cerrada correctamente."
	msgWelcome            = "Bienvenido "
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: login.
type AuthUseCase struct {
	userRepo    repository.UserRepository
	profileRepo repository.ProfileRepository
	jwtCfg      JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, profileRepo repository.ProfileRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, profileRepo: profileRepo, jwtCfg: jwtCfg}
}

// Login verifica usuario/contraseña, genera JWT y retorna token + usuario.
// Usuario inexistente, contraseña incorrecta o cuenta inactiva devuelven ErrUnauthorized (mismo mensaje).
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	user, err := uc.userRepo.GetByUsername(ctx, in.Username)
	if err != nil {
		return nil, errors.Wrap(err, "get user by username")
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Username, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, errors.Wrap(err, "generate token")
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "get profile")
	}
	return &dto.LoginResponse{
		Token:    token,
		User:     *ToUserResponse(user, profile),
		Message:  msgWelcome + user.Username,
		Redirect: "/",
	}, nil
}

// Me devuelve la identidad de la sesión. ErrNotAuthenticated si ya no existe o está inactiva.
func (uc *AuthUseCase) Me(ctx context.Context, userID string) (*dto.UserResponse, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get user")
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrNotAuthenticated
	}
	profile, err := uc.profileRepo.GetByUserID(ctx, user.ID)
	if err != nil {
		return nil, errors.Wrap(err, "get profile")
	}
	return ToUserResponse(user, profile), nil
}

// ToUserResponse convierte la identidad (y su perfil, si existe) a DTO.
func ToUserResponse(u *entity.User, p *entity.Profile) *dto.UserResponse {
	out := &dto.UserResponse{
		ID:          u.ID,
		Username:    u.Username,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
		IsSuperuser: u.IsSuperuser,
	}
	if p != nil {
		out.Role = p.Role
	}
	return out
}
