package catalog

// Item is a product record with a stable process-wide identity. An attached
// item is a member of exactly one category; its supplier is denormalized from
// that category. CategoryPath is the serialized form of the reference and is
// refreshed from the live tree on every save.
type Item struct {
	ID                   int    `json:"id"`
	ModelNumber          string `json:"model_number"`
	Description          string `json:"description"`
	Supplier             string `json:"supplier"`
	DefaultOrderQuantity int    `json:"default_order_quantity"`
	ImagePath            string `json:"image_path,omitempty"`
	ProductURL           string `json:"product_url,omitempty"`
	CategoryPath         string `json:"category_path,omitempty"`

	category *Category
}

func (it *Item) Category() *Category {
	return it.category
}

// SetCategory moves the item between categories as one step: it leaves the
// old category's list, takes on the new category's supplier, and joins the
// new list. The item is never a member of zero or two categories in between.
// A nil category detaches the item; the denormalized supplier is kept.
func (it *Item) SetCategory(c *Category) {
	if it.category == c {
		return
	}
	if it.category != nil {
		it.category.RemoveItem(it)
	}
	it.category = c
	if c != nil {
		it.Supplier = c.Supplier
		c.AddItem(it)
	}
}
