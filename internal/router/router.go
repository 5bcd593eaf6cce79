// internal/router/router.go
package router

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/catalogadmin/backend/internal/config"
	"github.com/catalogadmin/backend/internal/handlers"
	"github.com/catalogadmin/backend/internal/i18n"
	"github.com/catalogadmin/backend/internal/middleware"
	"github.com/catalogadmin/backend/internal/repository"
	"github.com/catalogadmin/backend/internal/services"
	"github.com/catalogadmin/backend/internal/utils"
)

const version = "1.0.0"

// Initialize wires the gorm-backed stores and the configured image host into the router.
func Initialize(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Initialize repositories
	adminRepo := repository.NewAdminRepository(db)
	productRepo := repository.NewProductRepository(db)

	imageHost, err := services.NewImageHost(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize image host: %w", err)
	}

	// Initialize services
	authService := services.NewAuthService(adminRepo, cfg)
	productService := services.NewProductService(productRepo, adminRepo, imageHost)

	return New(cfg, authService, productService), nil
}

// New builds the route table around already constructed services.
func New(cfg *config.Config, authService *services.AuthService, productService *services.ProductService) *gin.Engine {
	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	productHandler := handlers.NewProductHandler(productService)

	// Initialize Gin router
	r := gin.New()
	r.MaxMultipartMemory = int64(cfg.Upload.MaxFiles) * cfg.Upload.MaxFileSize

	// Global middleware
	r.Use(gin.Recovery())
	r.Use(middleware.RequestLogger())
	r.Use(middleware.CORS(cfg.CORS))
	r.Use(middleware.I18nMiddleware())
	r.Use(middleware.PerMinute(cfg.RateLimit.General).Middleware())

	// Health check
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  i18n.T(utils.GetLangFromContext(c), i18n.KeyHealthy),
			"version": version,
		})
	})

	if cfg.ImageHost.Provider == "local" {
		r.Static("/uploads", cfg.ImageHost.LocalDir)
	}

	api := r.Group("/api")
	{
		// Authentication routes
		auth := api.Group("/auth")
		{
			authLimit := middleware.PerMinute(cfg.RateLimit.Auth).Middleware()
			auth.POST("/register", authLimit, authHandler.Register)
			auth.POST("/login", authLimit, authHandler.Login)
			auth.GET("/getCurrentAdmin", middleware.AuthRequired(), authHandler.GetCurrentAdmin)
		}

		// Product routes
		products := api.Group("/products")
		products.Use(middleware.AuthRequired())
		{
			uploadLimit := middleware.PerMinute(cfg.RateLimit.Upload).Middleware()
			imageUpload := middleware.ImageUpload(cfg.Upload.MaxFiles, cfg.Upload.MaxFileSize)

			products.POST("/addProduct", uploadLimit, imageUpload, productHandler.AddProduct)
			products.GET("/allProducts", productHandler.AllProducts)
			products.PUT("/product/:id", uploadLimit, imageUpload, productHandler.UpdateProduct)
			products.DELETE("/deleteProduct/:id", productHandler.DeleteProduct)
		}
	}

	return r
}
