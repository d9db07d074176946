package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
)

type env struct {
	users      *memory.UserRepo
	profiles   *memory.ProfileRepo
	customers  *memory.CustomerRepo
	products   *memory.ProductRepo
	categoryUC *usecase.CategoryUseCase
	supplierUC *usecase.SupplierUseCase
	productUC  *usecase.ProductUseCase
	customerUC *usecase.CustomerUseCase
	saleUC     *usecase.SaleUseCase
}

func newEnv() *env {
	store := memory.NewStore()
	e := &env{
		users:     memory.NewUserRepository(store),
		profiles:  memory.NewProfileRepository(store),
		customers: memory.NewCustomerRepository(store),
		products:  memory.NewProductRepository(store),
	}
	categories := memory.NewCategoryRepository(store)
	suppliers := memory.NewSupplierRepository(store)
	e.categoryUC = usecase.NewCategoryUseCase(categories)
	e.supplierUC = usecase.NewSupplierUseCase(suppliers)
	e.productUC = usecase.NewProductUseCase(e.products, categories, suppliers)
	e.customerUC = usecase.NewCustomerUseCase(e.customers, e.users, memory.NewTxRunner(store))
	e.saleUC = usecase.NewSaleUseCase(memory.NewSaleRepository(store), e.products, e.customers, time.UTC)
	return e
}

func price(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// cola crea Bebidas y Cola a 1.50.
func (e *env) cola(t *testing.T) *dto.ProductResponse {
	t.Helper()
	ctx := context.Background()
	cat, err := e.categoryUC.Create(ctx, dto.CategoryRequest{Name: "Bebidas"})
	require.NoError(t, err)
	p, err := e.productUC.Create(ctx, dto.ProductRequest{
		Name: "Cola", Price: price("1.50"), Stock: 20, CategoryID: cat.ID, Active: true,
	})
	require.NoError(t, err)
	return p
}

func (e *env) customer(t *testing.T, firstName string) *dto.CustomerResponse {
	t.Helper()
	c, err := e.customerUC.Create(context.Background(), dto.CustomerRequest{
		FirstName: firstName, LastName: "Torres", Email: "c@mail.com", Phone: "3000000000",
	})
	require.NoError(t, err)
	return c
}

func TestVenta_TotalEsCantidadPorPrecio(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p := e.cola(t)
	c := e.customer(t, "Ana")
	seller := &entity.User{ID: uuid.NewString(), Username: "vende", IsActive: true, DateJoined: time.Now()}
	require.NoError(t, e.users.Create(ctx, seller))

	sale, err := e.saleUC.Create(ctx, seller.ID, dto.SaleRequest{CustomerID: c.ID, ProductID: p.ID, Quantity: 3})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.50").Equal(sale.Total))
	assert.Equal(t, "Cola", sale.ProductName)
	assert.Equal(t, "Ana Torres", sale.CustomerName)
	assert.Equal(t, "vende", sale.SellerUsername)

	today, err := e.saleUC.ListToday(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, today.Count)
	assert.True(t, decimal.RequireFromString("4.50").Equal(today.Total))
}

func TestVenta_EditarRecalculaConPrecioActual(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p := e.cola(t)
	c := e.customer(t, "Ana")
	sale, err := e.saleUC.Create(ctx, "", dto.SaleRequest{CustomerID: c.ID, ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)

	_, err = e.productUC.Update(ctx, p.ID, dto.ProductRequest{
		Name: "Cola", Price: price("2.00"), Stock: 20, CategoryID: p.CategoryID, Active: true,
	})
	require.NoError(t, err)

	// Leer la venta no recalcula el total.
	stored, err := e.saleUC.GetByID(ctx, sale.ID)
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("3.00").Equal(stored.Total))

	edited, err := e.saleUC.Update(ctx, sale.ID, dto.SaleRequest{CustomerID: c.ID, ProductID: p.ID, Quantity: 2})
	require.NoError(t, err)
	assert.True(t, decimal.RequireFromString("4.00").Equal(edited.Total))
	assert.Equal(t, sale.SoldAt.Unix(), edited.SoldAt.Unix())
}

func TestVenta_ReferenciasInexistentesSonErrorDeCampo(t *testing.T) {
	e := newEnv()
	_, err := e.saleUC.Create(context.Background(), "", dto.SaleRequest{
		CustomerID: uuid.NewString(), ProductID: uuid.NewString(), Quantity: 1,
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "customer_id")
	assert.Contains(t, verr.Fields, "product_id")
}

func TestCliente_UsuarioDuplicadoNoGuardaNada(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	require.NoError(t, e.users.Create(ctx, &entity.User{ID: "u-ana", Username: "ana", IsActive: true}))

	_, err := e.customerUC.Create(ctx, dto.CustomerRequest{
		FirstName: "Ana", LastName: "Ruiz", Email: "ana@mail.com", Phone: "555",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicateUsername)

	list, err := e.customerUC.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCliente_CreaIdentidadPerfilYCliente(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.customer(t, "  Julián ")

	u, err := e.users.GetByUsername(ctx, "julián")
	require.NoError(t, err)
	require.NotNil(t, u)
	assert.Equal(t, c.UserID, u.ID)
	assert.True(t, u.IsActive)
	assert.False(t, u.IsSuperuser)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte("3000000000")))

	p, err := e.profiles.GetByUserID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, entity.RoleCustomer, p.Role)
	assert.True(t, p.Active)
}

func TestCliente_EditarNoTocaLaIdentidad(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	c := e.customer(t, "Ana")

	_, err := e.customerUC.Update(ctx, c.ID, dto.CustomerRequest{
		FirstName: "Anabel", LastName: "Torres", Email: "nuevo@mail.com", Phone: "1",
	})
	require.NoError(t, err)

	u, err := e.users.GetByUsername(ctx, "ana")
	require.NoError(t, err)
	require.NotNil(t, u, "el usuario conserva su nombre")
	assert.Equal(t, "c@mail.com", u.Email)
}

func TestCategoria_BorradoRestringido(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p := e.cola(t)

	err := e.categoryUC.Delete(ctx, p.CategoryID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	require.NoError(t, e.productUC.Delete(ctx, p.ID))
	require.NoError(t, e.categoryUC.Delete(ctx, p.CategoryID))
	_, err = e.categoryUC.GetByID(ctx, p.CategoryID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestProducto_EliminaExactamenteUno(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p := e.cola(t)
	other, err := e.productUC.Create(ctx, dto.ProductRequest{
		Name: "Agua", Price: price("1"), CategoryID: p.CategoryID,
	})
	require.NoError(t, err)

	require.NoError(t, e.productUC.Delete(ctx, p.ID))
	list, err := e.productUC.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, other.ID, list[0].ID)

	assert.ErrorIs(t, e.productUC.Delete(ctx, p.ID), domain.ErrNotFound)
}

func TestProducto_CategoriaYProveedorDebenExistir(t *testing.T) {
	e := newEnv()
	_, err := e.productUC.Create(context.Background(), dto.ProductRequest{
		Name: "Cola", Price: price("1.50"), CategoryID: uuid.NewString(), SupplierID: uuid.NewString(),
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "category_id")
	assert.Contains(t, verr.Fields, "supplier_id")
}

func TestProducto_EditarConservaIdentidad(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p := e.cola(t)
	sup, err := e.supplierUC.Create(ctx, dto.SupplierRequest{Name: "Postobón", Phone: "601"})
	require.NoError(t, err)

	out, err := e.productUC.Update(ctx, p.ID, dto.ProductRequest{
		Name: "Cola Zero", Price: price("1.75"), Stock: 3,
		CategoryID: p.CategoryID, SupplierID: sup.ID,
	})
	require.NoError(t, err)
	assert.Equal(t, p.ID, out.ID)
	assert.Equal(t, "Cola Zero", out.Name)
	assert.Equal(t, "Postobón", out.SupplierName)
	assert.False(t, out.Active)
	assert.Equal(t, p.CreatedAt.Unix(), out.CreatedAt.Unix())
}

func TestCliente_ListaOrdenadaPorApellidoYNombre(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	for _, in := range []dto.CustomerRequest{
		{FirstName: "Zoe", LastName: "Alvarez", Email: "z@m.com", Phone: "1"},
		{FirstName: "Beto", LastName: "Cano", Email: "b@m.com", Phone: "2"},
		{FirstName: "Abel", LastName: "Cano", Email: "a@m.com", Phone: "3"},
	} {
		_, err := e.customerUC.Create(ctx, in)
		require.NoError(t, err)
	}
	list, err := e.customerUC.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "Abel", list[1].FirstName)
	assert.Equal(t, "Beto", list[2].FirstName)
}

func TestCliente_NombreEnBlancoNoCreaIdentidad(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.customerUC.Create(ctx, dto.CustomerRequest{
		FirstName: "   ", LastName: "Torres", Email: "c@mail.com", Phone: "3000000000",
	})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Este campo es obligatorio.", verr.Fields["first_name"])

	u, err := e.users.GetByUsername(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, u, "no debe existir un usuario sin nombre")
	list, err := e.customerUC.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestProducto_PrecioObligatorio(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	p := e.cola(t)

	_, err := e.productUC.Create(ctx, dto.ProductRequest{Name: "Agua", CategoryID: p.CategoryID})
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "Este campo es obligatorio.", verr.Fields["price"])

	// Cero es un precio explícito válido.
	free, err := e.productUC.Create(ctx, dto.ProductRequest{Name: "Muestra", Price: price("0"), CategoryID: p.CategoryID})
	require.NoError(t, err)
	assert.True(t, free.Price.IsZero())

	list, err := e.productUC.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestIDNoUUID_EsNoEncontrado(t *testing.T) {
	e := newEnv()
	ctx := context.Background()

	_, err := e.categoryUC.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.supplierUC.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.productUC.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.customerUC.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = e.saleUC.GetByID(ctx, "abc")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, e.productUC.Delete(ctx, "abc"), domain.ErrNotFound)
}
