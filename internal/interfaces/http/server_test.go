package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/tienda-api/internal/application/account"
	"github.com/jhoicas/tienda-api/internal/application/analytics"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/tienda-api/internal/interfaces/http"
	pkgjwt "github.com/jhoicas/tienda-api/pkg/jwt"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

const (
	testJWTSecret = "test-secret-key-for-unit-tests"
	testIssuer    = "tienda-api-test"
	testExpMin    = 60
	testCookie    = "session"
	testPassword  = "clave-segura"
)

// testServer aplicación completa sobre el almacén en memoria.
type testServer struct {
	app       *fiber.App
	logs      *bytes.Buffer
	users     *memory.UserRepo
	profiles  *memory.ProfileRepo
	products  *memory.ProductRepo
	customers *memory.CustomerRepo
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	users := memory.NewUserRepository(store)
	profiles := memory.NewProfileRepository(store)
	categories := memory.NewCategoryRepository(store)
	suppliers := memory.NewSupplierRepository(store)
	products := memory.NewProductRepository(store)
	customers := memory.NewCustomerRepository(store)
	sales := memory.NewSaleRepository(store)

	var logs bytes.Buffer
	log := logger.NewWithWriter(&logs, "debug")

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC: auth.NewAuthUseCase(users, profiles, auth.JWTConfig{
			Secret: testJWTSecret, ExpMinutes: testExpMin, Issuer: testIssuer,
		}),
		Gate:           auth.NewGate(users, profiles),
		CategoryUC:     usecase.NewCategoryUseCase(categories),
		SupplierUC:     usecase.NewSupplierUseCase(suppliers),
		ProductUC:      usecase.NewProductUseCase(products, categories, suppliers),
		CustomerUC:     usecase.NewCustomerUseCase(customers, users, memory.NewTxRunner(store)),
		SaleUC:         usecase.NewSaleUseCase(sales, products, customers, time.UTC),
		SalesReportUC:  analytics.NewSalesReportUseCase(sales, infrapdf.NewMarotoPDFGenerator(), "Tienda Test", time.UTC),
		DashboardUC:    analytics.NewDashboardUseCase(products, categories, suppliers, customers, sales, time.UTC),
		ProfileUC:      account.NewProfileUseCase(users, customers, sales),
		ProfileAdminUC: account.NewProfileAdminUseCase(profiles),
		JWTSecret:      testJWTSecret,
		Session:        apphttp.SessionConfig{CookieName: testCookie, TTL: time.Hour},
		Logger:         log,
	})
	return &testServer{
		app:       app,
		logs:      &logs,
		users:     users,
		profiles:  profiles,
		products:  products,
		customers: customers,
	}
}

// addUser crea una identidad activa; role vacío deja la cuenta sin perfil.
func (s *testServer) addUser(t *testing.T, username, role string, superuser bool) *entity.User {
	t.Helper()
	ctx := context.Background()
	hash, err := bcrypt.GenerateFromPassword([]byte(testPassword), bcrypt.MinCost)
	require.NoError(t, err)
	u := &entity.User{
		ID:           uuid.NewString(),
		Username:     username,
		PasswordHash: string(hash),
		IsSuperuser:  superuser,
		IsActive:     true,
		DateJoined:   time.Now(),
	}
	require.NoError(t, s.users.Create(ctx, u))
	if role != "" {
		require.NoError(t, s.profiles.Create(ctx, &entity.Profile{
			ID: uuid.NewString(), UserID: u.ID, Role: role, Active: true, HireDate: time.Now(),
		}))
	}
	return u
}

// tokenFor genera el encabezado Authorization para u.
func tokenFor(t *testing.T, u *entity.User) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, u.ID, u.Username, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

// do lanza una petición con cuerpo JSON opcional y el encabezado de autorización dado.
func (s *testServer) do(t *testing.T, method, path, authHeader string, body interface{}) *http.Response {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if authHeader != "" {
		req.Header.Set(fiber.HeaderAuthorization, authHeader)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// decode lee el cuerpo JSON en out y cierra la respuesta.
func decode(t *testing.T, resp *http.Response, out interface{}) {
	t.Helper()
	defer resp.Body.Close()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(out))
}
