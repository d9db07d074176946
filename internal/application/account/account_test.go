package account_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/tienda-api/internal/application/account"
	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

type env struct {
	users     *memory.UserRepo
	profiles  *memory.ProfileRepo
	customers *memory.CustomerRepo
	sales     *memory.SaleRepo
	profileUC *account.ProfileUseCase
	adminUC   *account.ProfileAdminUseCase
}

func newEnv(t *testing.T) *env {
	t.Helper()
	s := memory.NewStore()
	e := &env{
		users:     memory.NewUserRepository(s),
		profiles:  memory.NewProfileRepository(s),
		customers: memory.NewCustomerRepository(s),
		sales:     memory.NewSaleRepository(s),
	}
	e.profileUC = account.NewProfileUseCase(e.users, e.customers, e.sales)
	e.adminUC = account.NewProfileAdminUseCase(e.profiles)

	ctx := context.Background()
	require.NoError(t, memory.NewCategoryRepository(s).Create(ctx, &entity.Category{ID: "cat-1", Name: "Bebidas"}))
	require.NoError(t, memory.NewProductRepository(s).Create(ctx, &entity.Product{
		ID: "prod-1", Name: "Cola", Price: decimal.RequireFromString("1.50"), CategoryID: "cat-1",
	}))
	return e
}

func (e *env) user(t *testing.T, id, username, role, department string, hired time.Time) {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, e.users.Create(ctx, &entity.User{
		ID: id, Username: username, Email: username + "@tienda.co", IsActive: true,
	}))
	require.NoError(t, e.profiles.Create(ctx, &entity.Profile{
		ID: "pr-" + id, UserID: id, Role: role, Department: department, Active: true, HireDate: hired,
	}))
}

func ptr[T any](v T) *T { return &v }

func TestPurchases_SinClienteAsociado(t *testing.T) {
	e := newEnv(t)
	e.user(t, "u-1", "luis", entity.RoleCustomer, "", time.Now())

	out, err := e.profileUC.Purchases(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Empty(t, out.Sales)
	assert.Equal(t, 0, out.Count)
	assert.True(t, out.Total.IsZero())
	assert.Equal(t, account.MsgNoLinkedCustomer, out.Message)
}

func TestPurchases_MasRecientesPrimero(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.user(t, "u-1", "ana", entity.RoleCustomer, "", time.Now())
	require.NoError(t, e.customers.Create(ctx, &entity.Customer{ID: "cus-1", FirstName: "Ana", LastName: "Ruiz", UserID: "u-1"}))
	require.NoError(t, e.customers.Create(ctx, &entity.Customer{ID: "cus-2", FirstName: "Otro", LastName: "Cliente"}))

	now := time.Now()
	for _, s := range []*entity.Sale{
		{ID: "v-1", CustomerID: "cus-1", ProductID: "prod-1", Quantity: 1, Total: decimal.RequireFromString("1.50"), SoldAt: now.Add(-2 * time.Hour)},
		{ID: "v-2", CustomerID: "cus-1", ProductID: "prod-1", Quantity: 2, Total: decimal.RequireFromString("3.00"), SoldAt: now},
		{ID: "v-3", CustomerID: "cus-2", ProductID: "prod-1", Quantity: 4, Total: decimal.RequireFromString("6.00"), SoldAt: now},
	} {
		require.NoError(t, e.sales.Create(ctx, s))
	}

	out, err := e.profileUC.Purchases(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, out.Sales, 2)
	assert.Equal(t, "v-2", out.Sales[0].ID)
	assert.Equal(t, 2, out.Count)
	assert.True(t, decimal.RequireFromString("4.50").Equal(out.Total))
	assert.Empty(t, out.Message)
}

func TestProfileGet_UsuarioInexistente(t *testing.T) {
	e := newEnv(t)
	_, err := e.profileUC.Get(context.Background(), "fantasma")
	assert.ErrorIs(t, err, domain.ErrNotAuthenticated)
}

func TestProfileUpdate_SinClienteIgnoraSubformulario(t *testing.T) {
	e := newEnv(t)
	e.user(t, "u-1", "marta", entity.RoleEmployee, "ventas", time.Now())

	out, err := e.profileUC.Update(context.Background(), "u-1", dto.UpdateMyProfileRequest{
		User:     dto.UserForm{FirstName: "Marta", LastName: "Gil", Email: "marta@tienda.co"},
		Customer: &dto.CustomerProfileForm{},
	})
	require.NoError(t, err)
	assert.Equal(t, account.MsgProfileUpdated, out.Message)
	assert.Nil(t, out.Customer)

	u, err := e.users.GetByID(context.Background(), "u-1")
	require.NoError(t, err)
	assert.Equal(t, "Marta", u.FirstName)
}

func TestProfileUpdate_ClienteObligatorio(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.user(t, "u-1", "ana", entity.RoleCustomer, "", time.Now())
	require.NoError(t, e.customers.Create(ctx, &entity.Customer{ID: "cus-1", FirstName: "Ana", LastName: "Ruiz", UserID: "u-1"}))

	_, err := e.profileUC.Update(ctx, "u-1", dto.UpdateMyProfileRequest{User: dto.UserForm{Email: "no-es-correo"}})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "user.email")
	assert.Contains(t, verr.Fields, "customer")

	u, err := e.users.GetByID(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.co", u.Email, "nada se guarda si un sub-formulario es inválido")
}

func TestProfileAdmin_ListFiltra(t *testing.T) {
	e := newEnv(t)
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	e.user(t, "u-1", "admin", entity.RoleAdmin, "gerencia", base)
	e.user(t, "u-2", "pedro", entity.RoleSeller, "ventas", base.AddDate(0, 1, 0))
	e.user(t, "u-3", "sofia", entity.RoleSeller, "ventas", base.AddDate(0, 2, 0))

	all, err := e.adminUC.List(context.Background(), dto.ProfileFilterRequest{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "sofia", all[0].Username, "contratación más reciente primero")

	sellers, err := e.adminUC.List(context.Background(), dto.ProfileFilterRequest{Role: entity.RoleSeller, Q: "PED"})
	require.NoError(t, err)
	require.Len(t, sellers, 1)
	assert.Equal(t, "u-2", sellers[0].UserID)

	_, err = e.adminUC.List(context.Background(), dto.ProfileFilterRequest{Active: "quizas"})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestProfileAdmin_Update(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	const pedro = "00000000-0000-0000-0000-000000000002"
	e.user(t, pedro, "pedro", entity.RoleSeller, "ventas", time.Now())

	out, err := e.adminUC.Update(ctx, pedro, dto.UpdateProfileRequest{Role: ptr(entity.RoleManager), Active: ptr(false)})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleManager, out.Role)
	assert.False(t, out.Active)

	inactive, err := e.adminUC.List(ctx, dto.ProfileFilterRequest{Active: "false"})
	require.NoError(t, err)
	require.Len(t, inactive, 1)
	assert.Equal(t, "pedro", inactive[0].Username)

	_, err = e.adminUC.Update(ctx, "nadie", dto.UpdateProfileRequest{Active: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.adminUC.Update(ctx, "00000000-0000-0000-0000-0000000000ff", dto.UpdateProfileRequest{Active: ptr(true)})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = e.adminUC.Update(ctx, pedro, dto.UpdateProfileRequest{Role: ptr("jefe")})
	assert.ErrorIs(t, err, domain.ErrValidation)
}
