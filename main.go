package main

import (
	"log"

	"partshelf/internal/catalog"
	"partshelf/internal/config"
	"partshelf/internal/email"
	"partshelf/internal/handlers"
	"partshelf/internal/labels"
	"partshelf/internal/logger"
	"partshelf/internal/middleware"
	"partshelf/internal/store"

	"github.com/gin-gonic/gin"
)

func main() {
	cfg := config.Load()
	logger.Initialize(logger.ParseLevel(cfg.LogLevel))

	images, err := store.NewImages(cfg.ImageDir)
	if err != nil {
		log.Fatal("Failed to initialize image store:", err)
	}

	suppliers, err := catalog.NewSupplierManager(cfg.SuppliersPath(), images, cfg.LogoDir)
	if err != nil {
		log.Fatal("Failed to initialize suppliers:", err)
	}

	categories, err := catalog.NewCategoryManager(cfg.CategoriesPath(), images)
	if err != nil {
		log.Fatal("Failed to initialize categories:", err)
	}

	items, err := catalog.NewItemManager(cfg.ItemsPath(), images, categories)
	if err != nil {
		log.Fatal("Failed to initialize items:", err)
	}

	templates, err := labels.NewTemplateManager(cfg.QRTemplatesPath())
	if err != nil {
		log.Fatal("Failed to initialize QR templates:", err)
	}

	settings, err := labels.NewSettingsManager(cfg.SettingsPath())
	if err != nil {
		log.Fatal("Failed to initialize settings:", err)
	}

	emailService := email.NewService(cfg)
	if emailService.IsEnabled() {
		log.Println("Email service enabled with Mailgun")
	} else {
		log.Println("Email service disabled - Mailgun not configured")
	}

	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.Default()
	r.Use(middleware.CORS(cfg.AllowedOrigins))
	r.Use(middleware.RateLimit(cfg))

	handlers.SetupRoutes(r, &handlers.Services{
		Suppliers:  suppliers,
		Categories: categories,
		Items:      items,
		Templates:  templates,
		Settings:   settings,
		Images:     images,
		Email:      emailService,
	})

	log.Printf("Server starting on port %s", cfg.Port)
	log.Fatal(r.Run(":" + cfg.Port))
}
