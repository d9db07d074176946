package account

import (
	"context"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/validation"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// ProfileAdminUseCase administración de perfiles: listado filtrable y edición de rol/estado.
type ProfileAdminUseCase struct {
	repo repository.ProfileRepository
}

// NewProfileAdminUseCase construye el caso de uso.
func NewProfileAdminUseCase(repo repository.ProfileRepository) *ProfileAdminUseCase {
	return &ProfileAdminUseCase{repo: repo}
}

// List lista perfiles ordenados por fecha de contratación descendente.
func (uc *ProfileAdminUseCase) List(ctx context.Context, in dto.ProfileFilterRequest) ([]dto.ProfileResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	filter := repository.ProfileFilter{
		Role:       in.Role,
		Department: in.Department,
		Search:     in.Q,
	}
	if in.Active != "" {
		active := in.Active == "true"
		filter.Active = &active
	}
	list, err := uc.repo.List(ctx, filter)
	if err != nil {
		return nil, errors.Wrap(err, "list profiles")
	}
	items := make([]dto.ProfileResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProfileResponse(p))
	}
	return items, nil
}

// Update cambia rol y/o estado del perfil de userID. ErrNotFound si no tiene perfil.
func (uc *ProfileAdminUseCase) Update(ctx context.Context, userID string, in dto.UpdateProfileRequest) (*dto.ProfileResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	if _, err := uuid.Parse(userID); err != nil {
		return nil, domain.ErrNotFound
	}
	profile, err := uc.repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get profile")
	}
	if profile == nil {
		return nil, domain.ErrNotFound
	}
	if in.Role != nil {
		profile.Role = *in.Role
	}
	if in.Active != nil {
		profile.Active = *in.Active
	}
	if err := uc.repo.Update(ctx, profile); err != nil {
		return nil, errors.Wrap(err, "update profile")
	}
	return toProfileResponse(profile), nil
}

func toProfileResponse(p *entity.Profile) *dto.ProfileResponse {
	return &dto.ProfileResponse{
		ID:         p.ID,
		UserID:     p.UserID,
		Username:   p.Username,
		Email:      p.Email,
		Role:       p.Role,
		Department: p.Department,
		Active:     p.Active,
		HireDate:   p.HireDate,
	}
}
