package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/labstack/gommon/random"
	echoSwagger "github.com/swaggo/echo-swagger"

	"petshop2/internal/caching"
	"petshop2/internal/config"
	"petshop2/internal/handlers"
	"petshop2/internal/jobs/background"
	"petshop2/internal/middleware"
	"petshop2/internal/repositories"
	"petshop2/internal/services"
	"petshop2/internal/tenancy"
	"petshop2/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	ctx := context.Background()

	pool, err := database.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer pool.Close()

	jwtSecret := cfg.JWTSecret
	if jwtSecret == "" {
		jwtSecret = random.String(32)
		log.Printf("WARNING: JWT_SECRET not set, using a generated secret; tokens will not survive restarts")
	}

	var jwks *keyfunc.JWKS
	if cfg.JWKSURL != "" {
		jwks, err = keyfunc.Get(cfg.JWKSURL, keyfunc.Options{
			RefreshInterval:  time.Hour,
			RefreshRateLimit: time.Minute,
			RefreshErrorHandler: func(err error) {
				log.Printf("WARN: JWKS refresh failed: %v", err)
			},
		})
		if err != nil {
			log.Fatalf("Failed to fetch JWKS from %s: %v", cfg.JWKSURL, err)
		}
		defer jwks.EndBackground()
	}

	cacheSvc := caching.NewRedisCacheService(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)

	storageSvc, err := services.NewMinioStorage(cfg.MinioEndpoint, cfg.MinioAccessKey, cfg.MinioSecretKey, cfg.MinioBucket, cfg.MinioUseSSL)
	if err != nil {
		log.Fatalf("Failed to initialize object storage: %v", err)
	}
	if err := storageSvc.EnsureBucket(ctx); err != nil {
		log.Printf("WARN: could not ensure storage bucket %s: %v", cfg.MinioBucket, err)
	}

	// Repositories
	tenantRepo := repositories.NewTenantRepo(pool)
	userRepo := repositories.NewUserRepo(pool)
	clientRepo := repositories.NewClientRepo(pool)
	petRepo := repositories.NewPetRepo(pool)
	apptRepo := repositories.NewAppointmentRepo(pool)
	productRepo := repositories.NewProductRepo(pool)
	saleRepo := repositories.NewSaleRepo(pool)
	lodgingRepo := repositories.NewLodgingRepo(pool)
	financialRepo := repositories.NewFinancialRepo(pool)
	promoRepo := repositories.NewPromotionRepo(pool)

	// Services
	tenantSvc := services.NewTenantService(tenantRepo, cacheSvc)
	userSvc := services.NewUserService(userRepo)
	authSvc := services.NewAuthService(cacheSvc, jwtSecret, cfg.AccessTokenTTL, cfg.RefreshTTL)
	clientSvc := services.NewClientService(clientRepo)
	petSvc := services.NewPetService(petRepo, clientRepo)
	apptSvc := services.NewAppointmentService(apptRepo, petRepo)
	productSvc := services.NewProductService(productRepo)
	saleSvc := services.NewSaleService(saleRepo, financialRepo)
	lodgingSvc := services.NewLodgingService(lodgingRepo, petRepo)
	financialSvc := services.NewFinancialService(financialRepo)
	promoSvc := services.NewPromotionService(promoRepo)
	reportSvc := services.NewReportService(saleRepo, financialRepo, apptRepo, lodgingRepo, cacheSvc)

	tenantStore := tenancy.NewStore(cacheSvc, time.Duration(cfg.RefreshTTL)*time.Second)

	// Handlers
	authHandlers := handlers.NewAuthHandlers(userSvc, authSvc, tenantStore, cacheSvc)
	tenantHandlers := handlers.NewTenantHandlers(tenantSvc, storageSvc)
	userHandlers := handlers.NewUserHandlers(userSvc)
	clientHandlers := handlers.NewClientHandlers(clientSvc)
	petHandlers := handlers.NewPetHandlers(petSvc)
	apptHandlers := handlers.NewAppointmentHandlers(apptSvc)
	productHandlers := handlers.NewProductHandlers(productSvc)
	saleHandlers := handlers.NewSaleHandlers(saleSvc)
	lodgingHandlers := handlers.NewLodgingHandlers(lodgingSvc)
	financialHandlers := handlers.NewFinancialHandlers(financialSvc)
	promoHandlers := handlers.NewPromotionHandlers(promoSvc)
	reportHandlers := handlers.NewReportHandlers(reportSvc)
	healthHandlers := handlers.NewHealthHandlers(pool, cacheSvc)

	// Background jobs
	scheduler, err := background.NewJobScheduler(financialRepo, lodgingRepo, tenantRepo, reportSvc)
	if err != nil {
		log.Fatalf("Failed to create job scheduler: %v", err)
	}
	scheduler.Start()

	e := echo.New()
	e.HideBanner = true
	e.Pre(echoMiddleware.RemoveTrailingSlash())
	e.Use(echoMiddleware.Logger())
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	jwtMw := middleware.JWTMiddleware(jwtSecret, jwks)
	tenantMw := tenancy.Middleware(tenantSvc, tenancy.NewResolver(tenantStore))

	// Public
	e.GET("/health", healthHandlers.Health)
	e.GET("/health/ready", healthHandlers.Ready)
	e.GET("/health/detailed", healthHandlers.Detailed)
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.POST("/tenants/register", tenantHandlers.Register)
	e.POST("/auth/refresh", authHandlers.Refresh)

	// Tenant-resolved but unauthenticated: login and signup know their tenant
	// from the subdomain or X-Tenant-ID header
	authGroup := e.Group("/auth", tenantMw)
	authGroup.POST("/login", authHandlers.Login)
	authGroup.POST("/signup", authHandlers.Signup)

	// Authenticated API, tenant resolved on every request
	api := e.Group("/api/v1", jwtMw, tenantMw)

	api.GET("/auth/me", authHandlers.Me)
	api.POST("/auth/logout", authHandlers.Logout)

	api.GET("/tenant", tenantHandlers.Current)
	api.GET("/tenant/config", tenantHandlers.GetConfig)
	api.PUT("/tenant/config", tenantHandlers.UpdateConfig)
	api.POST("/tenant/logo", tenantHandlers.UploadLogo)

	api.GET("/users", userHandlers.ListUsers)
	api.GET("/users/:id", userHandlers.GetUserByID)
	api.PUT("/users/:id", userHandlers.UpdateUser)
	api.PATCH("/users/password", userHandlers.ChangePassword)
	api.DELETE("/users/:id", userHandlers.DeleteUser)

	api.POST("/clients", clientHandlers.CreateClient)
	api.GET("/clients", clientHandlers.ListClients)
	api.GET("/clients/:id", clientHandlers.GetClientByID)
	api.PUT("/clients/:id", clientHandlers.UpdateClient)
	api.DELETE("/clients/:id", clientHandlers.DeleteClient)

	api.POST("/pets", petHandlers.CreatePet)
	api.GET("/pets", petHandlers.ListPets)
	api.GET("/pets/:id", petHandlers.GetPetByID)
	api.PUT("/pets/:id", petHandlers.UpdatePet)
	api.DELETE("/pets/:id", petHandlers.DeletePet)

	api.POST("/appointments", apptHandlers.CreateAppointment)
	api.GET("/appointments", apptHandlers.ListAppointments)
	api.GET("/appointments/:id", apptHandlers.GetAppointmentByID)
	api.PUT("/appointments/:id", apptHandlers.UpdateAppointment)
	api.PATCH("/appointments/:id/status", apptHandlers.UpdateAppointmentStatus)
	api.DELETE("/appointments/:id", apptHandlers.DeleteAppointment)

	api.POST("/products", productHandlers.CreateProduct)
	api.GET("/products", productHandlers.ListProducts)
	api.GET("/products/:id", productHandlers.GetProductByID)
	api.PUT("/products/:id", productHandlers.UpdateProduct)
	api.PATCH("/products/:id/stock", productHandlers.AdjustProductStock)
	api.DELETE("/products/:id", productHandlers.DeleteProduct)

	api.POST("/sales", saleHandlers.CreateSale)
	api.GET("/sales", saleHandlers.ListSales)
	api.GET("/sales/:id", saleHandlers.GetSaleByID)
	api.DELETE("/sales/:id", saleHandlers.DeleteSale)

	api.POST("/lodgings", lodgingHandlers.CreateLodging)
	api.GET("/lodgings", lodgingHandlers.ListLodgings)
	api.GET("/lodgings/:id", lodgingHandlers.GetLodgingByID)
	api.PATCH("/lodgings/:id/status", lodgingHandlers.UpdateLodgingStatus)
	api.DELETE("/lodgings/:id", lodgingHandlers.DeleteLodging)

	api.POST("/financial", financialHandlers.CreateEntry)
	api.GET("/financial", financialHandlers.ListEntries)
	api.GET("/financial/:id", financialHandlers.GetEntryByID)
	api.PATCH("/financial/:id/pay", financialHandlers.MarkEntryPaid)
	api.DELETE("/financial/:id", financialHandlers.DeleteEntry)

	api.POST("/promotions", promoHandlers.CreatePromotion)
	api.GET("/promotions", promoHandlers.ListPromotions)
	api.GET("/promotions/:id", promoHandlers.GetPromotionByID)
	api.PUT("/promotions/:id", promoHandlers.UpdatePromotion)
	api.DELETE("/promotions/:id", promoHandlers.DeletePromotion)

	api.GET("/reports/summary", reportHandlers.Summary)

	// Platform administration: authenticated admins only, not tenant-scoped
	admin := e.Group("/admin", jwtMw, middleware.RequireAdmin(userRepo))
	admin.GET("/tenants", tenantHandlers.AdminList)
	admin.GET("/tenants/:id", tenantHandlers.AdminGet)
	admin.PUT("/tenants/:id", tenantHandlers.AdminUpdate)
	admin.DELETE("/tenants/:id", tenantHandlers.AdminDelete)

	go func() {
		addr := fmt.Sprintf(":%d", cfg.Port)
		log.Printf("Serving tenants under *.%s on %s", cfg.BaseDomain, addr)
		if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Printf("Shutting down")
	if err := scheduler.Stop(); err != nil {
		log.Printf("WARN: scheduler shutdown: %v", err)
	}
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Printf("WARN: server shutdown: %v", err)
	}
}
