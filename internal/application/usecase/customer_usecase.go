package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/validation"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
)

// CustomerUseCase casos de uso CRUD para clientes.
// Crear un cliente también le crea una identidad (usuario = nombre en minúsculas, contraseña = teléfono)
// y un perfil con rol cliente.
type CustomerUseCase struct {
	repo     repository.CustomerRepository
	userRepo repository.UserRepository
	txRunner AccountsTxRunner
}

// NewCustomerUseCase construye el caso de uso.
func NewCustomerUseCase(
	repo repository.CustomerRepository,
	userRepo repository.UserRepository,
	txRunner AccountsTxRunner,
) *CustomerUseCase {
	return &CustomerUseCase{repo: repo, userRepo: userRepo, txRunner: txRunner}
}

// List lista los clientes ordenados por apellido y nombre.
func (uc *CustomerUseCase) List(ctx context.Context) ([]dto.CustomerResponse, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "list customers")
	}
	items := make([]dto.CustomerResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *toCustomerResponse(c))
	}
	return items, nil
}

// Create registra un cliente con su identidad y perfil.
// Si el nombre de usuario derivado ya existe devuelve ErrDuplicateUsername sin escribir nada.
// Identidad, perfil y cliente se crean en una sola transacción.
func (uc *CustomerUseCase) Create(ctx context.Context, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	username := CustomerUsername(in.FirstName)
	existing, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, errors.Wrap(err, "get user by username")
	}
	if existing != nil {
		return nil, domain.ErrDuplicateUsername
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Phone), bcrypt.DefaultCost)
	if err != nil {
		return nil, errors.Wrap(err, "hash password")
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		IsActive:     true,
		DateJoined:   now,
	}
	profile := &entity.Profile{
		ID:       uuid.New().String(),
		UserID:   user.ID,
		Role:     entity.RoleCustomer,
		Active:   true,
		HireDate: now,
	}
	customer := &entity.Customer{
		ID:           uuid.New().String(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		Phone:        in.Phone,
		Address:      in.Address,
		RegisteredAt: now,
		UserID:       user.ID,
	}

	err = uc.txRunner.RunAccounts(ctx, func(
		userRepo repository.UserRepository,
		profileRepo repository.ProfileRepository,
		customerRepo repository.CustomerRepository,
	) error {
		if err := userRepo.Create(ctx, user); err != nil {
			return err
		}
		if err := profileRepo.Create(ctx, profile); err != nil {
			return err
		}
		return customerRepo.Create(ctx, customer)
	})
	if err != nil {
		if errors.Is(err, domain.ErrDuplicateUsername) {
			return nil, domain.ErrDuplicateUsername
		}
		return nil, errors.Wrap(err, "create customer account")
	}
	return toCustomerResponse(customer), nil
}

// GetByID obtiene un cliente. ErrNotFound si no existe.
func (uc *CustomerUseCase) GetByID(ctx context.Context, id string) (*dto.CustomerResponse, error) {
	customer, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	return toCustomerResponse(customer), nil
}

// Update sobrescribe los datos del cliente. La identidad enlazada no se modifica.
func (uc *CustomerUseCase) Update(ctx context.Context, id string, in dto.CustomerRequest) (*dto.CustomerResponse, error) {
	customer, err := uc.get(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := validation.Struct(in); err != nil {
		return nil, err
	}
	customer.FirstName = in.FirstName
	customer.LastName = in.LastName
	customer.Email = in.Email
	customer.Phone = in.Phone
	customer.Address = in.Address
	if err := uc.repo.Update(ctx, customer); err != nil {
		return nil, errors.Wrap(err, "update customer")
	}
	return toCustomerResponse(customer), nil
}

// Delete elimina el cliente. ErrConflict si tiene ventas. La identidad enlazada se conserva.
func (uc *CustomerUseCase) Delete(ctx context.Context, id string) error {
	if _, err := uc.get(ctx, id); err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		return errors.Wrap(err, "delete customer")
	}
	return nil
}

func (uc *CustomerUseCase) get(ctx context.Context, id string) (*entity.Customer, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, domain.ErrNotFound
	}
	customer, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, "get customer")
	}
	if customer == nil {
		return nil, domain.ErrNotFound
	}
	return customer, nil
}

// CustomerUsername deriva el nombre de usuario de un cliente: su nombre en minúsculas.
func CustomerUsername(firstName string) string {
	return strings.ToLower(strings.TrimSpace(firstName))
}

func toCustomerResponse(c *entity.Customer) *dto.CustomerResponse {
	return &dto.CustomerResponse{
		ID:           c.ID,
		FirstName:    c.FirstName,
		LastName:     c.LastName,
		FullName:     c.FullName(),
		Email:        c.Email,
		Phone:        c.Phone,
		Address:      c.Address,
		RegisteredAt: c.RegisteredAt,
		UserID:       c.UserID,
	}
}
