package catalog

import (
	"fmt"
	"os"
	"strings"
	"sync"

	"partshelf/internal/store"
)

// PathSeparator joins the segments of a category's full path.
const PathSeparator = " > "

// supplierSentinel is the placeholder the original picker showed before a
// real supplier was chosen; it is never a valid supplier name.
const supplierSentinel = "Supplier"

// CategoryManager owns the supplier-to-root-categories forest. The whole
// forest is loaded once at construction and rewritten as one JSON document on
// every mutation. All methods are safe for concurrent use; one coarse mutex
// serializes mutation, matching the single-writer model of the catalog.
type CategoryManager struct {
	mu     sync.Mutex
	path   string
	images *store.Images
	forest map[string][]*Category
}

func NewCategoryManager(path string, images *store.Images) (*CategoryManager, error) {
	m := &CategoryManager{
		path:   path,
		images: images,
		forest: make(map[string][]*Category),
	}

	if err := store.Load(path, &m.forest); err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	// The stored form is the forward tree only. Rebuild parent pointers,
	// stamp suppliers down every branch, and drop image paths that no
	// longer point at a real file.
	for supplier, roots := range m.forest {
		for _, root := range roots {
			root.restore(nil, supplier)
		}
		m.ensureUncategorized(supplier)
	}
	m.clearStaleImagePaths()

	return m, nil
}

func (m *CategoryManager) clearStaleImagePaths() {
	var walk func(c *Category)
	walk = func(c *Category) {
		if c.ImagePath != "" {
			if _, err := os.Stat(c.ImagePath); err != nil {
				c.ImagePath = ""
			}
		}
		for _, sub := range c.Subcategories {
			walk(sub)
		}
	}
	for _, roots := range m.forest {
		for _, root := range roots {
			walk(root)
		}
	}
}

// resolveSupplier maps a supplier name onto the key already present in the
// forest, case-insensitively, so "acme" and "Acme" never split into two trees.
func (m *CategoryManager) resolveSupplier(name string) string {
	name = strings.TrimSpace(name)
	for key := range m.forest {
		if strings.EqualFold(key, name) {
			return key
		}
	}
	return name
}

// ensureUncategorized returns the supplier's fallback category, creating the
// root list and the fallback itself if needed. Caller holds the lock.
func (m *CategoryManager) ensureUncategorized(supplier string) *Category {
	for _, root := range m.forest[supplier] {
		if strings.EqualFold(root.Name, UncategorizedName) {
			return root
		}
	}
	uncat := NewCategory(UncategorizedName, supplier)
	m.forest[supplier] = append([]*Category{uncat}, m.forest[supplier]...)
	return uncat
}

func (m *CategoryManager) save() error {
	if err := store.Save(m.path, m.forest); err != nil {
		return fmt.Errorf("failed to save categories: %w", err)
	}
	return nil
}

// Categories returns the supplier's root-level categories, lazily creating
// the list and its "Uncategorized" entry on first reference. Never nil.
func (m *CategoryManager) Categories(supplier string) []*Category {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.resolveSupplier(supplier)
	m.ensureUncategorized(key)
	roots := m.forest[key]
	out := make([]*Category, len(roots))
	copy(out, roots)
	return out
}

// Uncategorized returns the supplier's fallback category.
func (m *CategoryManager) Uncategorized(supplier string) *Category {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureUncategorized(m.resolveSupplier(supplier))
}

// AddCategory creates a new root-level category for the supplier.
func (m *CategoryManager) AddCategory(name, supplier string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = strings.TrimSpace(name)
	supplier = strings.TrimSpace(supplier)
	if name == "" {
		return nil, fmt.Errorf("category name is required: %w", ErrValidation)
	}
	if supplier == "" || supplier == supplierSentinel {
		return nil, fmt.Errorf("a supplier must be selected: %w", ErrValidation)
	}

	key := m.resolveSupplier(supplier)
	m.ensureUncategorized(key)
	for _, root := range m.forest[key] {
		if strings.EqualFold(root.Name, name) {
			return nil, fmt.Errorf("category %q already exists for %q: %w", name, key, ErrDuplicateName)
		}
	}

	cat := NewCategory(name, key)
	m.forest[key] = append(m.forest[key], cat)
	return cat, m.save()
}

// AddSubCategory creates a child under parent and persists the forest.
func (m *CategoryManager) AddSubCategory(parent *Category, name string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	sub, err := parent.AddSubCategory(name)
	if err != nil {
		return nil, err
	}
	return sub, m.save()
}

// RemoveCategory deletes a category. Its direct items are relocated to the
// supplier's "Uncategorized" category, its image file is deleted, and its
// former subcategories are re-parented to the removed node's parent (or
// promoted to root level when the node was a root). Items are never discarded.
func (m *CategoryManager) RemoveCategory(cat *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := m.resolveSupplier(cat.Supplier)
	if _, ok := m.forest[key]; !ok {
		return fmt.Errorf("supplier %q has no categories: %w", cat.Supplier, ErrNotFound)
	}
	if !m.inForest(key, cat) {
		return fmt.Errorf("category %q is not registered: %w", cat.Name, ErrNotFound)
	}
	if cat.parent == nil && strings.EqualFold(cat.Name, UncategorizedName) {
		return fmt.Errorf("the fallback category cannot be removed: %w", ErrValidation)
	}

	uncat := m.ensureUncategorized(key)
	for _, item := range append([]*Item(nil), cat.items...) {
		item.SetCategory(uncat)
	}

	if m.images != nil {
		m.images.Remove(cat.ImagePath)
	}

	subs := append([]*Category(nil), cat.Subcategories...)
	parent := cat.parent

	if parent == nil {
		roots := m.forest[key]
		for i, root := range roots {
			if root == cat {
				m.forest[key] = append(roots[:i], roots[i+1:]...)
				break
			}
		}
		for _, sub := range subs {
			sub.parent = nil
			m.forest[key] = append(m.forest[key], sub)
		}
	} else {
		cat.detach()
		for _, sub := range subs {
			sub.parent = parent
			parent.Subcategories = append(parent.Subcategories, sub)
		}
		parent.invalidateLookup()
	}
	cat.Subcategories = nil
	cat.lookup = nil

	return m.save()
}

// inForest reports whether cat's root is registered under the supplier key.
// Caller holds the lock.
func (m *CategoryManager) inForest(key string, cat *Category) bool {
	root := cat
	for root.parent != nil {
		root = root.parent
	}
	for _, r := range m.forest[key] {
		if r == root {
			return true
		}
	}
	return false
}

// MoveCategory reattaches cat under newParent, or promotes it to the
// supplier's root list when newParent is nil.
func (m *CategoryManager) MoveCategory(cat *Category, newParent *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if newParent != nil && !strings.EqualFold(newParent.Supplier, cat.Supplier) {
		return fmt.Errorf("cannot move %q from supplier %q to %q: %w",
			cat.Name, cat.Supplier, newParent.Supplier, ErrCrossSupplier)
	}
	for node := newParent; node != nil; node = node.parent {
		if node == cat {
			return fmt.Errorf("cannot move %q under its own subtree: %w", cat.Name, ErrValidation)
		}
	}

	key := m.resolveSupplier(cat.Supplier)
	if cat.parent == nil {
		roots := m.forest[key]
		for i, root := range roots {
			if root == cat {
				m.forest[key] = append(roots[:i], roots[i+1:]...)
				break
			}
		}
	}

	if newParent == nil {
		cat.detach()
		m.forest[key] = append(m.forest[key], cat)
		return m.save()
	}

	if err := cat.MoveToParent(newParent); err != nil {
		// Reattach as root rather than losing the subtree.
		m.forest[key] = append(m.forest[key], cat)
		return err
	}
	return m.save()
}

// AddItemToCategory files the item under cat. When the item's declared
// supplier does not match the category's, the item is silently redirected to
// its own supplier's "Uncategorized" category instead of being rejected; a
// misfiled item beats a lost one. Filing an item where it already sits is a
// no-op and does not rewrite the document.
func (m *CategoryManager) AddItemToCategory(item *Item, cat *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	target := cat
	if item.Supplier != "" && !strings.EqualFold(item.Supplier, cat.Supplier) {
		target = m.ensureUncategorized(m.resolveSupplier(item.Supplier))
	}
	if item.category == target {
		return nil
	}
	item.SetCategory(target)
	return m.save()
}

// RemoveItemFromCategory drops the item from cat's list. A no-op when the
// item was not present; the document is only rewritten when something changed.
func (m *CategoryManager) RemoveItemFromCategory(item *Item, cat *Category) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !cat.RemoveItem(item) {
		return nil
	}
	if item.category == cat {
		item.category = nil
	}
	return m.save()
}

// FindByPath resolves a "Supplier > Parent > ... > Self" path produced by
// Category.FullPath back to the live node.
func (m *CategoryManager) FindByPath(path string) (*Category, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.findByPath(path)
}

func (m *CategoryManager) findByPath(path string) (*Category, error) {
	segments := strings.Split(path, PathSeparator)
	if len(segments) < 2 {
		return nil, fmt.Errorf("invalid category path %q: %w", path, ErrNotFound)
	}

	key := m.resolveSupplier(segments[0])
	var current *Category
	for _, root := range m.forest[key] {
		if strings.EqualFold(root.Name, strings.TrimSpace(segments[1])) {
			current = root
			break
		}
	}
	if current == nil {
		return nil, fmt.Errorf("category path %q does not resolve: %w", path, ErrNotFound)
	}

	for _, segment := range segments[2:] {
		segment = strings.TrimSpace(segment)
		var next *Category
		for _, sub := range current.Subcategories {
			if strings.EqualFold(sub.Name, segment) {
				next = sub
				break
			}
		}
		if next == nil {
			return nil, fmt.Errorf("category path %q does not resolve: %w", path, ErrNotFound)
		}
		current = next
	}
	return current, nil
}

// Attach reattaches a loaded item to the category its stored path names,
// falling back to the supplier's "Uncategorized" category when the path no
// longer resolves. Used by the item manager after both stores have loaded.
func (m *CategoryManager) Attach(item *Item) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.CategoryPath != "" {
		if cat, err := m.findByPath(item.CategoryPath); err == nil {
			item.SetCategory(cat)
			return
		}
	}
	if item.Supplier != "" {
		item.SetCategory(m.ensureUncategorized(m.resolveSupplier(item.Supplier)))
	}
}

// Save rewrites the categories document. Exposed for callers that mutate
// category fields directly (names, images, UI state).
func (m *CategoryManager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save()
}
