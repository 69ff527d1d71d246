package models

// Supplier is a top-level namespace partitioning the category forest.
// Suppliers are referenced by name everywhere else, never by identity.
type Supplier struct {
	Name        string `json:"name"`
	ImagePath   string `json:"image_path,omitempty"`
	Description string `json:"description,omitempty"`
}

// Settings holds the label designer defaults, persisted as one document.
type Settings struct {
	DefaultLabelType string  `json:"default_label_type"`
	DefaultTemplate  string  `json:"default_template"`
	MarginTopMM      float64 `json:"margin_top_mm"`
	MarginBottomMM   float64 `json:"margin_bottom_mm"`
	MarginLeftMM     float64 `json:"margin_left_mm"`
	MarginRightMM    float64 `json:"margin_right_mm"`
	Landscape        bool    `json:"landscape"`
}

// DefaultSettings are used until the user saves their own.
func DefaultSettings() Settings {
	return Settings{
		DefaultLabelType: "standard",
		DefaultTemplate:  "{ModelNumber}",
		MarginTopMM:      5,
		MarginBottomMM:   5,
		MarginLeftMM:     5,
		MarginRightMM:    5,
	}
}

// ProductRecord is a best-effort scrape result from a supplier website.
type ProductRecord struct {
	ModelNumber string `json:"model_number"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	ProductURL  string `json:"product_url"`
}
