package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/account"
	"github.com/jhoicas/tienda-api/internal/application/analytics"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	Gate           *auth.Gate
	CategoryUC     *usecase.CategoryUseCase
	SupplierUC     *usecase.SupplierUseCase
	ProductUC      *usecase.ProductUseCase
	CustomerUC     *usecase.CustomerUseCase
	SaleUC         *usecase.SaleUseCase
	SalesReportUC  *analytics.SalesReportUseCase
	DashboardUC    *analytics.DashboardUseCase
	ProfileUC      *account.ProfileUseCase
	ProfileAdminUC *account.ProfileAdminUseCase
	JWTSecret      string
	Session        SessionConfig
	Logger         *logger.Logger
}

// Conjuntos de roles por operación.
var (
	rolesAdmin     = []string{entity.RoleAdmin}
	rolesCatalog   = []string{entity.RoleAdmin, entity.RoleEmployee}
	rolesFrontDesk = []string{entity.RoleAdmin, entity.RoleEmployee, entity.RoleSeller}
	rolesCustomer  = []string{entity.RoleCustomer}
)

// Router registra las rutas de la API. Cada ruta compone su propia compuerta de rol.
func Router(app *fiber.App, deps RouterDeps) {
	log := deps.Logger
	gate := deps.Gate
	role := func(roles []string) fiber.Handler { return RequireRole(gate, log, roles...) }
	authenticated := RequireAuth(gate, log)

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret, deps.Session.CookieName))

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, gate, deps.Session, log)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", authHandler.Logout)
	authGroup.Get("/me", authenticated, authHandler.Me)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC, log)
	api.Get("/dashboard", authenticated, dashboardHandler.GetSummary)

	// Products: listado para administrador y empleado, escritura solo administrador
	productHandler := NewProductHandler(deps.ProductUC, log)
	products := api.Group("/products")
	products.Get("/", role(rolesCatalog), productHandler.List)
	products.Post("/", role(rolesAdmin), productHandler.Create)
	products.Get("/:id", role(rolesAdmin), productHandler.GetByID)
	products.Put("/:id", role(rolesAdmin), productHandler.Update)
	products.Get("/:id/delete", role(rolesAdmin), productHandler.ConfirmDelete)
	products.Post("/:id/delete", role(rolesAdmin), productHandler.Delete)

	// Categories
	categoryHandler := NewCategoryHandler(deps.CategoryUC, log)
	categories := api.Group("/categories", role(rolesAdmin))
	categories.Get("/", categoryHandler.List)
	categories.Post("/", categoryHandler.Create)
	categories.Get("/:id", categoryHandler.GetByID)
	categories.Put("/:id", categoryHandler.Update)
	categories.Get("/:id/delete", categoryHandler.ConfirmDelete)
	categories.Post("/:id/delete", categoryHandler.Delete)

	// Suppliers
	supplierHandler := NewSupplierHandler(deps.SupplierUC, log)
	suppliers := api.Group("/suppliers", role(rolesAdmin))
	suppliers.Get("/", supplierHandler.List)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)
	suppliers.Get("/:id/delete", supplierHandler.ConfirmDelete)
	suppliers.Post("/:id/delete", supplierHandler.Delete)

	// Customers
	customerHandler := NewCustomerHandler(deps.CustomerUC, log)
	customers := api.Group("/customers", role(rolesFrontDesk))
	customers.Get("/", customerHandler.List)
	customers.Post("/", customerHandler.Create)
	customers.Get("/:id", customerHandler.GetByID)
	customers.Put("/:id", customerHandler.Update)
	customers.Get("/:id/delete", customerHandler.ConfirmDelete)
	customers.Post("/:id/delete", customerHandler.Delete)

	// Sales: registro y reportes para mostrador, edición y borrado solo administrador
	saleHandler := NewSaleHandler(deps.SaleUC, deps.SalesReportUC, log)
	sales := api.Group("/sales")
	sales.Get("/", role(rolesFrontDesk), saleHandler.List)
	sales.Post("/", role(rolesFrontDesk), saleHandler.Create)
	sales.Get("/report", role(rolesFrontDesk), saleHandler.Report)
	sales.Get("/report/pdf", role(rolesFrontDesk), saleHandler.ReportPDF)
	sales.Get("/:id", role(rolesAdmin), saleHandler.GetByID)
	sales.Put("/:id", role(rolesAdmin), saleHandler.Update)
	sales.Get("/:id/delete", role(rolesAdmin), saleHandler.ConfirmDelete)
	sales.Post("/:id/delete", role(rolesAdmin), saleHandler.Delete)

	// Cuenta propia
	profileHandler := NewProfileHandler(deps.ProfileUC, log)
	me := api.Group("/me")
	me.Get("/profile", authenticated, profileHandler.Get)
	me.Put("/profile", authenticated, profileHandler.Update)
	me.Get("/purchases", role(rolesCustomer), profileHandler.Purchases)

	// Administración de perfiles
	adminHandler := NewAdminHandler(deps.ProfileAdminUC, log)
	admin := api.Group("/admin", role(rolesAdmin))
	admin.Get("/profiles", adminHandler.ListProfiles)
	admin.Patch("/profiles/:user_id", adminHandler.UpdateProfile)
}
