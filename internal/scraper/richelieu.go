package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"partshelf/internal/models"
)

// Richelieu scrapes richelieu.com product pages. The pages carry OpenGraph
// metadata, and the model number is the trailing "sku-NNNNN" segment of the
// product URL.
type Richelieu struct {
	Client *http.Client
}

func (s *Richelieu) Scrape(ctx context.Context, pageURL string) ([]models.ProductRecord, error) {
	doc, err := fetchDocument(ctx, s.Client, pageURL)
	if err != nil {
		return nil, err
	}

	record := models.ProductRecord{
		ModelNumber: richelieuSKU(pageURL),
		Description: metaContent(doc, "og:title"),
		ImageURL:    metaContent(doc, "og:image"),
		ProductURL:  pageURL,
	}
	if record.Description == "" {
		record.Description = pageTitle(doc)
	}
	if record.Description == "" && record.ModelNumber == "" {
		return nil, fmt.Errorf("page %s has no recognizable product data: %w", pageURL, ErrScrape)
	}
	if record.ModelNumber == "" {
		record.ModelNumber = record.Description
	}
	return []models.ProductRecord{record}, nil
}

func richelieuSKU(pageURL string) string {
	trimmed := strings.TrimRight(pageURL, "/")
	idx := strings.LastIndex(trimmed, "sku-")
	if idx < 0 {
		return ""
	}
	sku := trimmed[idx+len("sku-"):]
	if cut := strings.IndexAny(sku, "?#"); cut >= 0 {
		sku = sku[:cut]
	}
	return sku
}
