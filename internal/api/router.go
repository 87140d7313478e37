// Package api wires the HTTP surface: routes, middleware, and the central
// error handler.
package api

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/modavn/storefront-api/docs"
	"github.com/modavn/storefront-api/internal/api/handler"
	"github.com/modavn/storefront-api/internal/api/middleware"
	"github.com/modavn/storefront-api/internal/core/domain"
	"github.com/modavn/storefront-api/internal/core/ports"
	"github.com/modavn/storefront-api/internal/core/service"
	"github.com/modavn/storefront-api/internal/core/token"
	"github.com/modavn/storefront-api/internal/infrastructure/db/postgres"
	redisdb "github.com/modavn/storefront-api/internal/infrastructure/db/redis"
)

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(
	pool *pgxpool.Pool,
	rdb *redis.Client,
	mdb *mongo.Database,
	issuer *token.Issuer,
	activity ports.ActivitySink,
	log zerolog.Logger,
) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("storefront"))

	// --- Dependencies ---
	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	cartRepo := postgres.NewCartRepository(pool)
	orderRepo := postgres.NewOrderRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	throttle := redisdb.NewLoginThrottle(rdb)

	authService := service.NewAuthService(userRepo, issuer, throttle, activity, log)
	productService := service.NewProductService(productRepo)
	cartService := service.NewCartService(cartRepo, productRepo, log)
	orderService := service.NewOrderService(orderRepo, cartRepo, activity, log)
	adminService := service.NewAdminService(userRepo, orderRepo, cartRepo, notificationRepo, activity, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	cartHandler := handler.NewCartHandler(cartService)
	orderHandler := handler.NewOrderHandler(orderService)
	adminHandler := handler.NewAdminHandler(adminService)

	requireAuth := middleware.Auth(issuer)
	requireAdmin := middleware.RequireRole(userRepo, domain.RoleAdmin)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)
	e.GET("/auth/profile", authHandler.Profile, requireAuth)

	// --- Catalog (public) ---
	e.GET("/products", productHandler.List)
	e.GET("/products/:id", productHandler.Get)
	e.GET("/products/categories/list", productHandler.Categories)

	// --- Cart (owner-scoped) ---
	cart := e.Group("/cart", requireAuth)
	cart.GET("", cartHandler.Get)
	cart.POST("/add", cartHandler.Add)
	cart.PUT("/update/:id", cartHandler.UpdateQuantity)
	cart.DELETE("/remove/:id", cartHandler.Remove)
	cart.DELETE("/clear", cartHandler.Clear)

	// --- Orders ---
	orders := e.Group("/orders", requireAuth)
	orders.POST("", orderHandler.Create)
	orders.GET("", orderHandler.List)
	orders.GET("/:id", orderHandler.Get)
	orders.PUT("/:id/status", orderHandler.UpdateStatus, requireAdmin)

	// --- Admin console (live role check on every request) ---
	admin := e.Group("/admin", requireAuth, requireAdmin)
	admin.GET("/customers", adminHandler.ListCustomers)
	admin.POST("/customers", adminHandler.CreateCustomer)
	admin.GET("/customers/:id", adminHandler.GetCustomer)
	admin.GET("/customers/:id/payments", adminHandler.CustomerPayments)
	admin.DELETE("/customers/:id", adminHandler.DeleteCustomer)
	admin.GET("/members", adminHandler.ListMembers)
	admin.POST("/members/invite", adminHandler.InviteMember)
	admin.DELETE("/members/:id", adminHandler.DeleteMember)
	admin.GET("/admin/profile", adminHandler.Profile)
	admin.PUT("/admin/profile", adminHandler.UpdateProfile)
	admin.PUT("/admin/password", adminHandler.ChangePassword)
	admin.PUT("/admin/avatar", adminHandler.UpdateAvatar)
	admin.DELETE("/admin", adminHandler.DeleteAccount)
	admin.GET("/admin/notifications", adminHandler.Notifications)
	admin.PUT("/admin/notifications", adminHandler.UpdateNotifications)

	// --- Health probes and operational endpoints ---
	healthHandler := handler.NewHealthHandler()
	healthDepsHandler := handler.NewHealthDependenciesHandler(pool, rdb, mdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	return e
}
