package handlers

import (
	"context"
	"net/http"
	"time"

	"partshelf/internal/scraper"

	"github.com/gin-gonic/gin"
)

// scrapeTimeout bounds a whole import; a hung supplier site fails the
// request instead of pinning the connection.
const scrapeTimeout = 30 * time.Second

func handleScrape(c *gin.Context) {
	var req struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&req); err != nil || req.URL == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "a product URL is required"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), scrapeTimeout)
	defer cancel()

	records, err := scraper.ScrapeURL(ctx, nil, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"source":   scraper.KindForURL(req.URL).String(),
		"products": records,
	})
}
