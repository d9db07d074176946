// Package account contiene los casos de uso de autoservicio de la cuenta (mi perfil, mis compras)
// y la administración de perfiles.
package account

import (
	"context"

	"github.com/pkg/errors"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/application/validation"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/domain/sales"
)

// MsgNoLinkedCustomer aviso cuando la cuenta no tiene cliente asociado.
const MsgNoLinkedCustomer = "No hay un cliente asociado a tu cuenta."

// MsgProfileUpdated confirmación al guardar "mi perfil".
const MsgProfileUpdated = "Perfil actualizado correctamente."

// ProfileUseCase autoservicio de la identidad autenticada.
type ProfileUseCase struct {
	userRepo     repository.UserRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
}

// NewProfileUseCase construye el caso de uso.
func NewProfileUseCase(
	userRepo repository.UserRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
) *ProfileUseCase {
	return &ProfileUseCase{userRepo: userRepo, customerRepo: customerRepo, saleRepo: saleRepo}
}

// Get devuelve los datos de la cuenta y, si existe, del cliente enlazado.
func (uc *ProfileUseCase) Get(ctx context.Context, userID string) (*dto.MyProfileResponse, error) {
	user, customer, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return toMyProfileResponse(user, customer), nil
}

// Update valida ambos sub-formularios y, solo si los dos son válidos, guarda primero la identidad
// y luego el cliente. Son dos escrituras independientes: si la segunda falla, la primera queda guardada.
func (uc *ProfileUseCase) Update(ctx context.Context, userID string, in dto.UpdateMyProfileRequest) (*dto.MyProfileResponse, error) {
	user, customer, err := uc.load(ctx, userID)
	if err != nil {
		return nil, err
	}

	verr := &domain.ValidationError{}
	if err := validation.Struct(in.User); err != nil {
		if !mergeValidation(verr, "user.", err) {
			return nil, err
		}
	}
	if customer != nil {
		if in.Customer == nil {
			verr.Merge("", domain.NewValidationError("customer", "Este campo es obligatorio."))
		} else if err := validation.Struct(*in.Customer); err != nil {
			if !mergeValidation(verr, "customer.", err) {
				return nil, err
			}
		}
	}
	if len(verr.Fields) > 0 {
		return nil, verr
	}

	user.FirstName = in.User.FirstName
	user.LastName = in.User.LastName
	user.Email = in.User.Email
	if err := uc.userRepo.Update(ctx, user); err != nil {
		return nil, errors.Wrap(err, "update user")
	}
	if customer != nil {
		customer.FirstName = in.Customer.FirstName
		customer.LastName = in.Customer.LastName
		customer.Phone = in.Customer.Phone
		customer.Address = in.Customer.Address
		if err := uc.customerRepo.Update(ctx, customer); err != nil {
			return nil, errors.Wrap(err, "update customer")
		}
	}
	out := toMyProfileResponse(user, customer)
	out.Message = MsgProfileUpdated
	return out, nil
}

// Purchases lista las compras del cliente enlazado, más recientes primero, con su total.
// Sin cliente enlazado devuelve lista vacía y un aviso (no es un error).
func (uc *ProfileUseCase) Purchases(ctx context.Context, userID string) (*dto.PurchasesResponse, error) {
	customer, err := uc.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, errors.Wrap(err, "get customer by user")
	}
	if customer == nil {
		summary := sales.Aggregate(nil)
		return &dto.PurchasesResponse{
			Sales:   usecase.ToSaleResponses(summary.Records),
			Total:   summary.Total,
			Message: MsgNoLinkedCustomer,
		}, nil
	}
	list, err := uc.saleRepo.ListByCustomer(ctx, customer.ID)
	if err != nil {
		return nil, errors.Wrap(err, "list sales by customer")
	}
	summary := sales.Aggregate(list)
	return &dto.PurchasesResponse{
		Sales: usecase.ToSaleResponses(summary.Records),
		Total: summary.Total,
		Count: summary.Count,
	}, nil
}

func (uc *ProfileUseCase) load(ctx context.Context, userID string) (*entity.User, *entity.Customer, error) {
	user, err := uc.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "get user")
	}
	if user == nil {
		return nil, nil, domain.ErrNotAuthenticated
	}
	customer, err := uc.customerRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, nil, errors.Wrap(err, "get customer by user")
	}
	return user, customer, nil
}

// mergeValidation agrega err a verr si es de validación; false si es otro tipo de error.
func mergeValidation(verr *domain.ValidationError, prefix string, err error) bool {
	var v *domain.ValidationError
	if !errors.As(err, &v) {
		return false
	}
	verr.Merge(prefix, v)
	return true
}

func toMyProfileResponse(u *entity.User, c *entity.Customer) *dto.MyProfileResponse {
	out := &dto.MyProfileResponse{
		User: dto.UserForm{FirstName: u.FirstName, LastName: u.LastName, Email: u.Email},
	}
	if c != nil {
		out.Customer = &dto.CustomerProfileView{
			FullName: c.FullName(),
			CustomerProfileForm: dto.CustomerProfileForm{
				FirstName: c.FirstName,
				LastName:  c.LastName,
				Phone:     c.Phone,
				Address:   c.Address,
			},
		}
	}
	return out
}
