package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	echoswagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/invensys/inventory-api/docs"
	"github.com/invensys/inventory-api/internal/api/handler"
	"github.com/invensys/inventory-api/internal/api/middleware"
	"github.com/invensys/inventory-api/internal/core/domain"
	"github.com/invensys/inventory-api/internal/core/ports"
	"github.com/invensys/inventory-api/internal/core/service"
	mongodb "github.com/invensys/inventory-api/internal/infrastructure/db/mongo"
	redisdb "github.com/invensys/inventory-api/internal/infrastructure/db/redis"
	"github.com/invensys/inventory-api/internal/pkg/config"
)

// NewRouter builds and returns the Echo instance with all routes registered.
// Protection is declared route by route: the bearer-auth middleware verifies
// identity, RequireRole gates the routes that demand a specific role.
func NewRouter(db *mongo.Database, rdb *redis.Client, files ports.FileStore, cfg *config.Config, log zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("inventory"))

	// --- Dependencies ---
	userRepo := mongodb.NewUserRepository(db)
	roleRepo := mongodb.NewRoleRepository(db)
	productRepo := mongodb.NewProductRepository(db)
	imageRepo := mongodb.NewImageRepository(db)
	productCache := redisdb.NewProductCache(rdb)

	tokenService := service.NewJWTTokenService(cfg.JWTSecret, cfg.TokenTTL)
	authService := service.NewAuthService(userRepo, roleRepo, tokenService, log)
	productService := service.NewProductService(productRepo, imageRepo, files, productCache, log)
	imageService := service.NewImageService(productRepo, imageRepo, files, log)

	authHandler := handler.NewAuthHandler(authService)
	productHandler := handler.NewProductHandler(productService)
	imageHandler := handler.NewImageHandler(imageService)

	authn := middleware.Auth(tokenService)
	admin := middleware.RequireRole(domain.RoleAdmin)

	// --- Auth routes ---
	auth := e.Group("/api/v1/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/assign-role", authHandler.AssignRole, authn, admin)

	// --- Catalog routes: reads need a valid token, writes need ADMIN ---
	products := e.Group("/api/v1/products")
	products.GET("", productHandler.List, authn)
	products.POST("", productHandler.Create, authn, admin)
	products.GET("/:id", productHandler.Get, authn)
	products.PUT("/:id", productHandler.Update, authn, admin)
	products.DELETE("/:id", productHandler.Delete, authn, admin)

	// --- Image routes: serving is public, mutation needs ADMIN ---
	e.POST("/api/v1/products/:productID/images", imageHandler.Upload, authn, admin)
	e.GET("/api/v1/products/:productID/images", imageHandler.List, authn)
	e.GET("/api/v1/products/:productID/images/:filename", imageHandler.Serve)
	e.DELETE("/api/v1/products/:productID/images/:imageID", imageHandler.Delete, authn, admin)

	// --- Health probes (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)

	// --- Observability and docs ---
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoswagger.WrapHandler)

	return e
}
