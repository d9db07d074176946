package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/tienda-api/internal/application/account"
	"github.com/jhoicas/tienda-api/internal/application/analytics"
	"github.com/jhoicas/tienda-api/internal/application/auth"
	"github.com/jhoicas/tienda-api/internal/application/usecase"
	"github.com/jhoicas/tienda-api/internal/domain/repository"
	"github.com/jhoicas/tienda-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/tienda-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/tienda-api/internal/interfaces/http"
	"github.com/jhoicas/tienda-api/pkg/config"
	"github.com/jhoicas/tienda-api/pkg/logger"
)

// repositories agrupa los adaptadores del almacén elegido por STORE_DRIVER.
type repositories struct {
	users      repository.UserRepository
	profiles   repository.ProfileRepository
	categories repository.CategoryRepository
	suppliers  repository.SupplierRepository
	products   repository.ProductRepository
	customers  repository.CustomerRepository
	sales      repository.SaleRepository
	tx         usecase.AccountsTxRunner
	close      func()
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	loc, err := cfg.App.Location()
	if err != nil {
		log.Fatal().Err(err).Msg("zona horaria")
	}

	ctx := context.Background()
	repos, err := openStore(ctx, cfg, log.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Msg("almacén")
	}
	defer repos.close()

	created, err := auth.EnsureSuperuser(ctx, repos.users, repos.profiles, cfg.Admin.Username, cfg.Admin.Password)
	if err != nil {
		log.Fatal().Err(err).Msg("crear superusuario inicial")
	}
	if created {
		log.Info().Str("username", cfg.Admin.Username).Msg("superusuario inicial creado")
	}

	authUC := auth.NewAuthUseCase(repos.users, repos.profiles, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	gate := auth.NewGate(repos.users, repos.profiles)

	categoryUC := usecase.NewCategoryUseCase(repos.categories)
	supplierUC := usecase.NewSupplierUseCase(repos.suppliers)
	productUC := usecase.NewProductUseCase(repos.products, repos.categories, repos.suppliers)
	customerUC := usecase.NewCustomerUseCase(repos.customers, repos.users, repos.tx)
	saleUC := usecase.NewSaleUseCase(repos.sales, repos.products, repos.customers, loc)

	// PDF: reporte diario de ventas
	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	salesReportUC := analytics.NewSalesReportUseCase(repos.sales, pdfGenerator, cfg.App.Name, loc)
	dashboardUC := analytics.NewDashboardUseCase(
		repos.products, repos.categories, repos.suppliers, repos.customers, repos.sales, loc,
	)

	profileUC := account.NewProfileUseCase(repos.users, repos.customers, repos.sales)
	profileAdminUC := account.NewProfileAdminUseCase(repos.profiles)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(cfg.App.SwaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: cfg.App.SwaggerFile,
			Path:     "docs",
			Title:    "Tienda API",
		}))
	} else {
		log.Warn().Str("file", cfg.App.SwaggerFile).Msg("swagger no disponible")
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		Gate:           gate,
		CategoryUC:     categoryUC,
		SupplierUC:     supplierUC,
		ProductUC:      productUC,
		CustomerUC:     customerUC,
		SaleUC:         saleUC,
		SalesReportUC:  salesReportUC,
		DashboardUC:    dashboardUC,
		ProfileUC:      profileUC,
		ProfileAdminUC: profileAdminUC,
		JWTSecret:      cfg.JWT.Secret,
		Session: httpRouter.SessionConfig{
			CookieName: cfg.Session.CookieName,
			Secure:     cfg.Session.Secure,
			TTL:        time.Duration(cfg.JWT.Expiration) * time.Minute,
		},
		Logger: log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

// openStore abre PostgreSQL (aplicando migraciones si DB_AUTO_MIGRATE) o el almacén en memoria.
func openStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (*repositories, error) {
	if cfg.Store.Driver == config.StoreDriverMemory {
		log.Warn().Msg("almacén en memoria: los datos se pierden al detener el proceso")
		store := memory.NewStore()
		return &repositories{
			users:      memory.NewUserRepository(store),
			profiles:   memory.NewProfileRepository(store),
			categories: memory.NewCategoryRepository(store),
			suppliers:  memory.NewSupplierRepository(store),
			products:   memory.NewProductRepository(store),
			customers:  memory.NewCustomerRepository(store),
			sales:      memory.NewSaleRepository(store),
			tx:         memory.NewTxRunner(store),
			close:      func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, err
	}
	if cfg.Store.AutoMigrate {
		if err := postgres.Migrate(ctx, pool); err != nil {
			pool.Close()
			return nil, err
		}
		log.Info().Msg("migraciones aplicadas")
	}
	return &repositories{
		users:      postgres.NewUserRepository(pool),
		profiles:   postgres.NewProfileRepository(pool),
		categories: postgres.NewCategoryRepository(pool),
		suppliers:  postgres.NewSupplierRepository(pool),
		products:   postgres.NewProductRepository(pool),
		customers:  postgres.NewCustomerRepository(pool),
		sales:      postgres.NewSaleRepository(pool),
		tx:         postgres.NewTxRunner(pool),
		close:      pool.Close,
	}, nil
}
