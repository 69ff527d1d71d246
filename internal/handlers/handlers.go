package handlers

import (
	"errors"
	"net/http"

	"partshelf/internal/catalog"
	"partshelf/internal/email"
	"partshelf/internal/labels"
	"partshelf/internal/logger"
	"partshelf/internal/middleware"
	"partshelf/internal/scraper"
	"partshelf/internal/store"

	"github.com/gin-gonic/gin"
)

// Services bundles the managers constructed in main. Handlers reach them
// through the request context, the same way the request-scoped dependencies
// are injected everywhere else in the stack.
type Services struct {
	Suppliers  *catalog.SupplierManager
	Categories *catalog.CategoryManager
	Items      *catalog.ItemManager
	Templates  *labels.TemplateManager
	Settings   *labels.SettingsManager
	Images     *store.Images
	Email      *email.Service
}

func SetupRoutes(r *gin.Engine, svc *Services) {
	r.Use(middleware.LogRequests())
	r.Use(middleware.SecurityHeaders())
	r.Use(addServicesContext(svc))

	api := r.Group("/api")
	{
		api.GET("/suppliers", handleListSuppliers)
		api.POST("/suppliers", handleCreateSupplier)
		api.PUT("/suppliers/:name", handleUpdateSupplier)
		api.POST("/suppliers/:name/image", handleUpdateSupplierImage)
		api.GET("/suppliers/:name/categories", handleListCategories)
		api.GET("/suppliers/:name/items", handleListSupplierItems)
		api.POST("/suppliers/:name/order", handleSendOrderSheet)

		api.POST("/categories", handleCreateCategory)
		api.POST("/categories/move", handleMoveCategory)
		api.DELETE("/categories", handleDeleteCategory)
		api.GET("/categories/items", handleCategoryItems)

		api.GET("/items", handleListItems)
		api.POST("/items", handleCreateItem)
		api.GET("/items/:id", handleGetItem)
		api.PUT("/items/:id", handleUpdateItem)
		api.DELETE("/items/:id", handleDeleteItem)
		api.PUT("/items/:id/category", handleMoveItem)
		api.GET("/items/:id/qr", handleItemQR)

		api.GET("/qr", handleRawQR)
		api.GET("/qr-templates", handleListQRTemplates)
		api.POST("/qr-templates", handleSetQRTemplate)
		api.DELETE("/qr-templates/:name", handleDeleteQRTemplate)

		api.GET("/settings", handleGetSettings)
		api.PUT("/settings", handleUpdateSettings)

		api.POST("/import/scrape", handleScrape)
	}
}

func addServicesContext(svc *Services) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("services", svc)
		c.Next()
	}
}

func services(c *gin.Context) *Services {
	return c.MustGet("services").(*Services)
}

// respondError maps the catalog error kinds onto HTTP statuses. Unrecognized
// errors are treated as internal and logged; validation-class failures echo
// their message so the client can re-prompt.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, catalog.ErrValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrDuplicateName):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrCrossSupplier):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, scraper.ErrScrape):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.Request.URL.Path, "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func categoryJSON(cat *catalog.Category) gin.H {
	subs := make([]gin.H, 0, len(cat.Subcategories))
	for _, sub := range cat.Subcategories {
		subs = append(subs, categoryJSON(sub))
	}
	return gin.H{
		"name":          cat.Name,
		"supplier":      cat.Supplier,
		"full_path":     cat.FullPath(),
		"image_path":    cat.ImagePath,
		"is_expanded":   cat.IsExpanded,
		"item_count":    len(cat.Items()),
		"subcategories": subs,
	}
}

func itemJSON(item *catalog.Item) gin.H {
	categoryPath := ""
	if item.Category() != nil {
		categoryPath = item.Category().FullPath()
	}
	return gin.H{
		"id":                     item.ID,
		"model_number":           item.ModelNumber,
		"description":            item.Description,
		"supplier":               item.Supplier,
		"default_order_quantity": item.DefaultOrderQuantity,
		"image_path":             item.ImagePath,
		"product_url":            item.ProductURL,
		"category_path":          categoryPath,
	}
}
