package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// EnsureSuperuser crea el superusuario inicial con un perfil administrador si username no existe.
// Devuelve true si lo creó. Una identidad existente no se modifica.
func EnsureSuperuser(
	ctx context.Context,
	userRepo repository.UserRepository,
	profileRepo repository.ProfileRepository,
	username, password string,
) (bool, error) {
	if username == "" {
		return false, nil
	}
	existing, err := userRepo.GetByUsername(ctx, username)
	if err != nil {
		return false, errors.Wrap(err, "get user by username")
	}
	if existing != nil {
		return false, nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return false, errors.Wrap(err, "hash password")
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		IsSuperuser:  true,
		IsActive:     true,
		DateJoined:   now,
	}
	if err := userRepo.Create(ctx, user); err != nil {
		return false, errors.Wrap(err, "create superuser")
	}
	profile := &entity.Profile{
		ID:       uuid.New().String(),
		UserID:   user.ID,
		Role:     entity.RoleAdmin,
		Active:   true,
		HireDate: now,
	}
	if err := profileRepo.Create(ctx, profile); err != nil {
		return false, errors.Wrap(err, "create superuser profile")
	}
	return true, nil
}
