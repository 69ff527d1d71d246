package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"partshelf/internal/models"

	"golang.org/x/net/html"
)

// Marathon scrapes marathonhardware.com pages. Product listings render one
// tile per product: an <img> whose alt text is the model number, with the
// description in the adjoining title attribute when present.
type Marathon struct {
	Client *http.Client
}

func (s *Marathon) Scrape(ctx context.Context, pageURL string) ([]models.ProductRecord, error) {
	doc, err := fetchDocument(ctx, s.Client, pageURL)
	if err != nil {
		return nil, err
	}

	var records []models.ProductRecord
	seen := make(map[string]bool)
	walk(doc, func(n *html.Node) bool {
		if n.Data != "img" {
			return true
		}
		alt := strings.TrimSpace(attr(n, "alt"))
		src := attr(n, "src")
		if alt == "" || !strings.Contains(strings.ToLower(src), "product") {
			return true
		}
		if seen[alt] {
			return true
		}
		seen[alt] = true
		records = append(records, models.ProductRecord{
			ModelNumber: alt,
			Description: strings.TrimSpace(attr(n, "title")),
			ImageURL:    src,
			ProductURL:  pageURL,
		})
		return true
	})

	if len(records) == 0 {
		// Single-product pages fall back to the page metadata.
		title := metaContent(doc, "og:title")
		if title == "" {
			title = pageTitle(doc)
		}
		if title == "" {
			return nil, fmt.Errorf("page %s has no recognizable product data: %w", pageURL, ErrScrape)
		}
		records = append(records, models.ProductRecord{
			ModelNumber: title,
			Description: metaContent(doc, "description"),
			ImageURL:    metaContent(doc, "og:image"),
			ProductURL:  pageURL,
		})
	}
	return records, nil
}
