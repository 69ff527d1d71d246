package scraper

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"partshelf/internal/models"

	"golang.org/x/net/html"
)

// ErrScrape marks network or HTML-shape failures during a product import.
// Callers match with errors.Is; scrape failures never retry.
var ErrScrape = errors.New("scrape failed")

// Kind identifies which supplier website a URL belongs to. Dispatch is a
// closed enum rather than string sniffing on the result shape.
type Kind int

const (
	KindUnknown Kind = iota
	KindRichelieu
	KindMarathon
)

func (k Kind) String() string {
	switch k {
	case KindRichelieu:
		return "richelieu"
	case KindMarathon:
		return "marathon"
	default:
		return "unknown"
	}
}

// KindForURL resolves the supplier kind from a product URL's host.
func KindForURL(rawURL string) Kind {
	u, err := url.Parse(rawURL)
	if err != nil {
		return KindUnknown
	}
	host := strings.ToLower(u.Hostname())
	switch {
	case strings.Contains(host, "richelieu"):
		return KindRichelieu
	case strings.Contains(host, "marathon"):
		return KindMarathon
	default:
		return KindUnknown
	}
}

// Scraper turns a supplier product page into best-effort product records.
type Scraper interface {
	Scrape(ctx context.Context, pageURL string) ([]models.ProductRecord, error)
}

// For returns the scraper implementation for a supplier kind.
func For(kind Kind, client *http.Client) (Scraper, error) {
	switch kind {
	case KindRichelieu:
		return &Richelieu{Client: client}, nil
	case KindMarathon:
		return &Marathon{Client: client}, nil
	default:
		return nil, fmt.Errorf("no scraper for this website: %w", ErrScrape)
	}
}

// ScrapeURL resolves the supplier from the URL and runs the matching scraper.
func ScrapeURL(ctx context.Context, client *http.Client, pageURL string) ([]models.ProductRecord, error) {
	s, err := For(KindForURL(pageURL), client)
	if err != nil {
		return nil, err
	}
	return s.Scrape(ctx, pageURL)
}

func fetchDocument(ctx context.Context, client *http.Client, pageURL string) (*html.Node, error) {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pageURL, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid product URL %q: %w", pageURL, ErrScrape)
	}
	req.Header.Set("User-Agent", "partshelf/1.0")

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %v: %w", pageURL, err, ErrScrape)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetching %s returned status %d: %w", pageURL, resp.StatusCode, ErrScrape)
	}

	doc, err := html.Parse(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %v: %w", pageURL, err, ErrScrape)
	}
	return doc, nil
}

// attr returns the value of the named attribute on a node.
func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if strings.EqualFold(a.Key, key) {
			return a.Val
		}
	}
	return ""
}

// walk visits every element node in document order until fn returns false.
func walk(n *html.Node, fn func(*html.Node) bool) bool {
	if n.Type == html.ElementNode && !fn(n) {
		return false
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if !walk(c, fn) {
			return false
		}
	}
	return true
}

// metaContent finds <meta property=... content=...> or the name= variant.
func metaContent(doc *html.Node, property string) string {
	var content string
	walk(doc, func(n *html.Node) bool {
		if n.Data != "meta" {
			return true
		}
		if strings.EqualFold(attr(n, "property"), property) || strings.EqualFold(attr(n, "name"), property) {
			content = attr(n, "content")
			return false
		}
		return true
	})
	return strings.TrimSpace(content)
}

// pageTitle returns the text of the first <title> element.
func pageTitle(doc *html.Node) string {
	var title string
	walk(doc, func(n *html.Node) bool {
		if n.Data != "title" {
			return true
		}
		if n.FirstChild != nil && n.FirstChild.Type == html.TextNode {
			title = n.FirstChild.Data
		}
		return false
	})
	return strings.TrimSpace(title)
}
