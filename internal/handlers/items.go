package handlers

import (
	"net/http"
	"strconv"

	"partshelf/internal/catalog"

	"github.com/gin-gonic/gin"
)

func handleListItems(c *gin.Context) {
	svc := services(c)

	var items []*catalog.Item
	switch {
	case c.Query("supplier") != "":
		items = svc.Items.ItemsBySupplier(c.Query("supplier"))
	case c.Query("category") != "":
		cat, err := svc.Categories.FindByPath(c.Query("category"))
		if err != nil {
			respondError(c, err)
			return
		}
		items = svc.Items.ItemsByCategory(cat)
	default:
		items = svc.Items.Items()
	}

	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, itemJSON(item))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}

func handleCreateItem(c *gin.Context) {
	svc := services(c)

	var req struct {
		ModelNumber          string `json:"model_number"`
		Description          string `json:"description"`
		Supplier             string `json:"supplier"`
		DefaultOrderQuantity int    `json:"default_order_quantity"`
		ProductURL           string `json:"product_url"`
		ImagePath            string `json:"image_path"`
		CategoryPath         string `json:"category_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.ModelNumber == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a model number is required"})
		return
	}

	cat, err := svc.Categories.FindByPath(req.CategoryPath)
	if err != nil {
		respondError(c, err)
		return
	}

	item := svc.Items.NewItem(req.ModelNumber, req.Description, req.DefaultOrderQuantity)
	item.ProductURL = req.ProductURL
	item.ImagePath = req.ImagePath
	if req.Supplier != "" {
		// A declared supplier that disagrees with the category triggers the
		// redirect-to-Uncategorized repair in the category manager.
		item.Supplier = req.Supplier
	}

	if err := svc.Categories.AddItemToCategory(item, cat); err != nil {
		respondError(c, err)
		return
	}
	if err := svc.Items.AddItem(item); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"item": itemJSON(item)})
}

func itemFromParam(c *gin.Context) (*catalog.Item, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return nil, false
	}
	item, err := services(c).Items.Get(id)
	if err != nil {
		respondError(c, err)
		return nil, false
	}
	return item, true
}

func handleGetItem(c *gin.Context) {
	item, ok := itemFromParam(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": itemJSON(item)})
}

func handleUpdateItem(c *gin.Context) {
	svc := services(c)

	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid item ID"})
		return
	}

	var req struct {
		ModelNumber          *string `json:"model_number"`
		Description          *string `json:"description"`
		DefaultOrderQuantity *int    `json:"default_order_quantity"`
		ProductURL           *string `json:"product_url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := svc.Items.UpdateItem(id, catalog.ItemUpdate{
		ModelNumber:          req.ModelNumber,
		Description:          req.Description,
		DefaultOrderQuantity: req.DefaultOrderQuantity,
		ProductURL:           req.ProductURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": itemJSON(item)})
}

func handleDeleteItem(c *gin.Context) {
	svc := services(c)

	item, ok := itemFromParam(c)
	if !ok {
		return
	}

	if err := svc.Items.RemoveItem(item); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": item.ID})
}

func handleMoveItem(c *gin.Context) {
	svc := services(c)

	item, ok := itemFromParam(c)
	if !ok {
		return
	}

	var req struct {
		CategoryPath string `json:"category_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cat, err := svc.Categories.FindByPath(req.CategoryPath)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := svc.Categories.AddItemToCategory(item, cat); err != nil {
		respondError(c, err)
		return
	}
	if err := svc.Items.Save(); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"item": itemJSON(item)})
}
