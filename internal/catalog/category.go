package catalog

import (
	"fmt"
	"strings"
)

// UncategorizedName is the fallback category every supplier carries at root
// level. Items orphaned by a category removal always land there.
const UncategorizedName = "Uncategorized"

// Category is a node in a per-supplier tree. It owns its subcategories and
// holds references to the items filed under it. The parent pointer is runtime
// state only: the serialized form stores the forward tree and the manager
// rebuilds back-references after load.
type Category struct {
	Name          string      `json:"name"`
	Supplier      string      `json:"supplier"`
	ImagePath     string      `json:"image_path,omitempty"`
	IsExpanded    bool        `json:"is_expanded,omitempty"`
	Subcategories []*Category `json:"subcategories,omitempty"`

	parent *Category
	items  []*Item

	// lookup caches FindSubCategory results for this node's subtree, keyed
	// by bare lowercase name. Duplicate names in different branches collide
	// and resolve to the first hit in depth-first order.
	lookup map[string]*Category
}

func NewCategory(name, supplier string) *Category {
	return &Category{Name: name, Supplier: supplier}
}

func (c *Category) Parent() *Category {
	return c.parent
}

func (c *Category) Items() []*Item {
	return c.items
}

// AddSubCategory creates and attaches a child category inheriting this
// node's supplier. Sibling names are unique case-insensitively.
func (c *Category) AddSubCategory(name string) (*Category, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("subcategory name is required: %w", ErrValidation)
	}
	if c.Supplier == "" {
		return nil, fmt.Errorf("category %q has no supplier: %w", c.Name, ErrValidation)
	}
	for _, sub := range c.Subcategories {
		if strings.EqualFold(sub.Name, name) {
			return nil, fmt.Errorf("subcategory %q already exists under %q: %w", name, c.Name, ErrDuplicateName)
		}
	}

	sub := &Category{Name: name, Supplier: c.Supplier, parent: c}
	c.Subcategories = append(c.Subcategories, sub)
	c.invalidateLookup()
	return sub, nil
}

// AddItem files an item under this category. Membership is set-like: adding
// an item that is already present is a no-op. Reports whether the list changed.
func (c *Category) AddItem(item *Item) bool {
	for _, existing := range c.items {
		if existing.ID == item.ID {
			return false
		}
	}
	c.items = append(c.items, item)
	return true
}

// RemoveItem drops an item from this category's list. Reports whether the
// item was actually present.
func (c *Category) RemoveItem(item *Item) bool {
	for i, existing := range c.items {
		if existing.ID == item.ID {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// MoveToParent detaches this category from its current parent and attaches
// it under newParent. A nil newParent only detaches; promoting a category to
// the supplier root list is the manager's job since the root lists live there.
func (c *Category) MoveToParent(newParent *Category) error {
	if newParent != nil && !strings.EqualFold(newParent.Supplier, c.Supplier) {
		return fmt.Errorf("cannot move %q from supplier %q to %q: %w",
			c.Name, c.Supplier, newParent.Supplier, ErrCrossSupplier)
	}

	c.detach()
	if newParent != nil {
		c.parent = newParent
		newParent.Subcategories = append(newParent.Subcategories, c)
		newParent.invalidateLookup()
	}
	return nil
}

// detach removes this category from its parent's child list, leaving it
// parentless. No-op for root categories.
func (c *Category) detach() {
	p := c.parent
	if p == nil {
		return
	}
	for i, sub := range p.Subcategories {
		if sub == c {
			p.Subcategories = append(p.Subcategories[:i], p.Subcategories[i+1:]...)
			break
		}
	}
	c.parent = nil
	p.invalidateLookup()
}

// FullPath renders "Supplier > Parent > ... > Self". The path doubles as a
// stable serializable key for item-to-category references.
func (c *Category) FullPath() string {
	var names []string
	for node := c; node != nil; node = node.parent {
		names = append(names, node.Name)
	}
	segments := make([]string, 0, len(names)+1)
	segments = append(segments, c.Supplier)
	for i := len(names) - 1; i >= 0; i-- {
		segments = append(segments, names[i])
	}
	return strings.Join(segments, " > ")
}

// FindSubCategory searches the whole subtree depth-first for a category with
// the given name, case-insensitively. Results are cached per node until the
// subtree changes shape.
func (c *Category) FindSubCategory(name string) *Category {
	if c.lookup == nil {
		c.lookup = make(map[string]*Category)
		c.fillLookup(c.lookup)
	}
	return c.lookup[strings.ToLower(name)]
}

func (c *Category) fillLookup(m map[string]*Category) {
	for _, sub := range c.Subcategories {
		key := strings.ToLower(sub.Name)
		if _, taken := m[key]; !taken {
			m[key] = sub
		}
		sub.fillLookup(m)
	}
}

// invalidateLookup clears the name cache on this node and every ancestor,
// since all of them index the changed subtree.
func (c *Category) invalidateLookup() {
	for node := c; node != nil; node = node.parent {
		node.lookup = nil
	}
}

// AllItems collects this category's items plus all descendants', insertion
// order within each node, parents before children.
func (c *Category) AllItems() []*Item {
	items := make([]*Item, 0, len(c.items))
	items = append(items, c.items...)
	for _, sub := range c.Subcategories {
		items = append(items, sub.AllItems()...)
	}
	return items
}

// restore rebuilds parent pointers over a freshly deserialized tree and
// stamps the supplier down every branch so the homogeneity invariant holds
// even if the stored document drifted.
func (c *Category) restore(parent *Category, supplier string) {
	c.parent = parent
	if supplier != "" {
		c.Supplier = supplier
	}
	c.lookup = nil
	c.items = nil
	for _, sub := range c.Subcategories {
		sub.restore(c, c.Supplier)
	}
}
