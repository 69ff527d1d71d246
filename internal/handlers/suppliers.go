package handlers

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
)

func handleListSuppliers(c *gin.Context) {
	svc := services(c)
	c.JSON(http.StatusOK, gin.H{"suppliers": svc.Suppliers.Suppliers()})
}

func handleCreateSupplier(c *gin.Context) {
	svc := services(c)

	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	supplier, err := svc.Suppliers.AddSupplier(req.Name)
	if err != nil {
		respondError(c, err)
		return
	}
	if req.Description != "" {
		if err := svc.Suppliers.UpdateSupplier(supplier.Name, req.Description); err != nil {
			respondError(c, err)
			return
		}
	}

	c.JSON(http.StatusCreated, gin.H{"supplier": supplier})
}

func handleUpdateSupplier(c *gin.Context) {
	svc := services(c)

	var req struct {
		Description string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	name := c.Param("name")
	if err := svc.Suppliers.UpdateSupplier(name, req.Description); err != nil {
		respondError(c, err)
		return
	}

	supplier, err := svc.Suppliers.Get(name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

func handleUpdateSupplierImage(c *gin.Context) {
	svc := services(c)
	name := c.Param("name")

	file, err := c.FormFile("image")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "an image file is required"})
		return
	}

	// Stage under a unique name; concurrent uploads of files with the same
	// client-side name must not share a path.
	staged, err := os.CreateTemp("", "upload-*"+filepath.Ext(file.Filename))
	if err != nil {
		respondError(c, err)
		return
	}
	staged.Close()
	defer os.Remove(staged.Name())

	if err := c.SaveUploadedFile(file, staged.Name()); err != nil {
		respondError(c, err)
		return
	}

	if err := svc.Suppliers.UpdateSupplierImage(name, staged.Name()); err != nil {
		respondError(c, err)
		return
	}

	supplier, err := svc.Suppliers.Get(name)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"supplier": supplier})
}

func handleListSupplierItems(c *gin.Context) {
	svc := services(c)

	items := svc.Items.ItemsBySupplier(c.Param("name"))
	out := make([]gin.H, 0, len(items))
	for _, item := range items {
		out = append(out, itemJSON(item))
	}
	c.JSON(http.StatusOK, gin.H{"items": out})
}
