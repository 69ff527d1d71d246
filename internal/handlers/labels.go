package handlers

import (
	"bytes"
	"image/png"
	"net/http"
	"strconv"

	"partshelf/internal/labels"
	"partshelf/internal/models"

	"github.com/gin-gonic/gin"
)

func writeQR(c *gin.Context, content string) {
	size, _ := strconv.Atoi(c.Query("size"))
	img, err := labels.GenerateQR(content, size, c.Query("level"))
	if err != nil {
		respondError(c, err)
		return
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		respondError(c, err)
		return
	}
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}

func handleRawQR(c *gin.Context) {
	writeQR(c, c.Query("content"))
}

func handleItemQR(c *gin.Context) {
	svc := services(c)

	item, ok := itemFromParam(c)
	if !ok {
		return
	}

	var content string
	if name := c.Query("template"); name != "" {
		rendered, err := svc.Templates.Render(name, item)
		if err != nil {
			respondError(c, err)
			return
		}
		content = rendered
	} else {
		content = labels.RenderTemplate(svc.Settings.Get().DefaultTemplate, item)
	}
	writeQR(c, content)
}

func handleListQRTemplates(c *gin.Context) {
	svc := services(c)
	c.JSON(http.StatusOK, gin.H{"templates": svc.Templates.Templates()})
}

func handleSetQRTemplate(c *gin.Context) {
	svc := services(c)

	var req struct {
		Name    string `json:"name"`
		Content string `json:"content"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := svc.Templates.Set(req.Name, req.Content); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"name": req.Name, "content": req.Content})
}

func handleDeleteQRTemplate(c *gin.Context) {
	svc := services(c)

	name := c.Param("name")
	if err := svc.Templates.Remove(name); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"deleted": name})
}

func handleGetSettings(c *gin.Context) {
	svc := services(c)
	c.JSON(http.StatusOK, gin.H{"settings": svc.Settings.Get()})
}

func handleUpdateSettings(c *gin.Context) {
	svc := services(c)

	var req models.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	if err := svc.Settings.Update(req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"settings": svc.Settings.Get()})
}
