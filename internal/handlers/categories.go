package handlers

import (
	"net/http"

	"partshelf/internal/catalog"
	"partshelf/internal/logger"

	"github.com/gin-gonic/gin"
)

func handleListCategories(c *gin.Context) {
	svc := services(c)

	roots := svc.Categories.Categories(c.Param("name"))
	out := make([]gin.H, 0, len(roots))
	for _, root := range roots {
		out = append(out, categoryJSON(root))
	}
	c.JSON(http.StatusOK, gin.H{"categories": out})
}

func handleCreateCategory(c *gin.Context) {
	svc := services(c)

	var req struct {
		Name       string `json:"name"`
		Supplier   string `json:"supplier"`
		ParentPath string `json:"parent_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	var (
		cat *catalog.Category
		err error
	)
	if req.ParentPath != "" {
		var parent *catalog.Category
		parent, err = svc.Categories.FindByPath(req.ParentPath)
		if err != nil {
			respondError(c, err)
			return
		}
		cat, err = svc.Categories.AddSubCategory(parent, req.Name)
	} else {
		cat, err = svc.Categories.AddCategory(req.Name, req.Supplier)
	}
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"category": categoryJSON(cat)})
}

func handleMoveCategory(c *gin.Context) {
	svc := services(c)

	var req struct {
		Path          string `json:"path"`
		NewParentPath string `json:"new_parent_path"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cat, err := svc.Categories.FindByPath(req.Path)
	if err != nil {
		respondError(c, err)
		return
	}

	var newParent *catalog.Category
	if req.NewParentPath != "" {
		newParent, err = svc.Categories.FindByPath(req.NewParentPath)
		if err != nil {
			respondError(c, err)
			return
		}
	}

	if err := svc.Categories.MoveCategory(cat, newParent); err != nil {
		respondError(c, err)
		return
	}

	// Item records embed their category path; moving a subtree changes it.
	if err := svc.Items.Save(); err != nil {
		logger.Warn("failed to refresh item paths after category move", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"category": categoryJSON(cat)})
}

func handleDeleteCategory(c *gin.Context) {
	svc := services(c)

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a category path is required"})
		return
	}

	cat, err := svc.Categories.FindByPath(path)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := svc.Categories.RemoveCategory(cat); err != nil {
		respondError(c, err)
		return
	}

	// Orphaned items were relocated to "Uncategorized"; persist their new paths.
	if err := svc.Items.Save(); err != nil {
		logger.Warn("failed to refresh item paths after category removal", "error", err)
	}

	c.JSON(http.StatusOK, gin.H{"deleted": path})
}

func handleCategoryItems(c *gin.Context) {
	svc := services(c)

	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a category path is required"})
		return
	}

	cat, err := svc.Categories.FindByPath(path)
	if err != nil {
		respondError(c, err)
		return
	}

	items := cat.Items()
	if c.Query("recursive") == "true" {
		items = cat.AllItems()
	}
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, itemJSON(item))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
