package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func handleSendOrderSheet(c *gin.Context) {
	svc := services(c)

	if svc.Email == nil || !svc.Email.IsEnabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "email is not configured"})
		return
	}

	var req struct {
		Recipient string `json:"recipient"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.Recipient == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a recipient is required"})
		return
	}

	supplier, err := svc.Suppliers.Get(c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}

	items := svc.Items.ItemsBySupplier(supplier.Name)
	if len(items) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "supplier has no items to order"})
		return
	}

	if err := svc.Email.SendOrderSheet(supplier, items, req.Recipient); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"sent": len(items)})
}
