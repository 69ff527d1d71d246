package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"sync"

	"partshelf/internal/store"
)

// CategoryResolver is what the item manager needs from the category side:
// reattaching loaded items to their stored category paths.
type CategoryResolver interface {
	Attach(item *Item)
}

// ItemManager owns item identity. Categories only hold memberships; the flat
// item list here is the single source of truth for which items exist. Lookups
// are linear scans, which is fine at desktop-catalog scale.
type ItemManager struct {
	mu     sync.Mutex
	path   string
	images *store.Images
	items  []*Item
	nextID int
}

// itemEnvelope tolerates the legacy wrapped form of items.json. Older
// exports stored the collection as {"$values": [...]}.
type itemEnvelope struct {
	Values []*Item `json:"$values"`
}

func NewItemManager(path string, images *store.Images, categories CategoryResolver) (*ItemManager, error) {
	m := &ItemManager{path: path, images: images, nextID: 1}

	items, err := loadItems(path)
	if err != nil {
		return nil, err
	}
	m.items = items

	// Seed the id counter from the largest persisted id so identities stay
	// unique across restarts.
	for _, item := range m.items {
		if item.ID >= m.nextID {
			m.nextID = item.ID + 1
		}
	}

	if categories != nil {
		for _, item := range m.items {
			categories.Attach(item)
		}
	}
	return m, nil
}

func loadItems(path string) ([]*Item, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var items []*Item
	if err := json.Unmarshal(data, &items); err == nil {
		return items, nil
	}

	var envelope itemEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return envelope.Values, nil
}

// NewItem constructs an item with the next id. The item is not registered
// until AddItem; ids handed out before the next save are still unique because
// the counter only moves forward.
func (m *ItemManager) NewItem(modelNumber, description string, defaultOrderQuantity int) *Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	if defaultOrderQuantity < 1 {
		defaultOrderQuantity = 1
	}
	item := &Item{
		ID:                   m.nextID,
		ModelNumber:          strings.TrimSpace(modelNumber),
		Description:          strings.TrimSpace(description),
		DefaultOrderQuantity: defaultOrderQuantity,
	}
	m.nextID++
	return item
}

// AddItem registers an item. Every item must already belong to a category;
// registering an item twice is a no-op and does not rewrite the document.
func (m *ItemManager) AddItem(item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if item.category == nil {
		return fmt.Errorf("item %q has no category: %w", item.ModelNumber, ErrValidation)
	}
	for _, existing := range m.items {
		if existing.ID == item.ID {
			return nil
		}
	}
	m.items = append(m.items, item)
	return m.save()
}

// RemoveItem drops an item by identity, detaches it from its category, and
// deletes its owned image file. Removing an unknown item is a no-op.
func (m *ItemManager) RemoveItem(item *Item) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	found := false
	for i, existing := range m.items {
		if existing.ID == item.ID {
			m.items = append(m.items[:i], m.items[i+1:]...)
			found = true
			break
		}
	}
	if !found {
		return nil
	}

	item.SetCategory(nil)
	if m.images != nil {
		m.images.Remove(item.ImagePath)
	}
	return m.save()
}

// ItemUpdate carries the editable fields of an item. Nil fields are left
// unchanged.
type ItemUpdate struct {
	ModelNumber          *string
	Description          *string
	DefaultOrderQuantity *int
	ProductURL           *string
}

// UpdateItem applies an update to the registered item with the given id and
// persists. Field writes happen under the manager lock, the same as every
// other steady-state mutation; callers must not poke item fields directly
// once an item is registered.
func (m *ItemManager) UpdateItem(id int, upd ItemUpdate) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var item *Item
	for _, existing := range m.items {
		if existing.ID == id {
			item = existing
			break
		}
	}
	if item == nil {
		return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
	}

	if upd.ModelNumber != nil {
		modelNumber := strings.TrimSpace(*upd.ModelNumber)
		if modelNumber == "" {
			return nil, fmt.Errorf("item %d: a model number is required: %w", id, ErrValidation)
		}
		item.ModelNumber = modelNumber
	}
	if upd.Description != nil {
		item.Description = strings.TrimSpace(*upd.Description)
	}
	if upd.DefaultOrderQuantity != nil {
		if *upd.DefaultOrderQuantity < 1 {
			return nil, fmt.Errorf("item %d: order quantity must be positive: %w", id, ErrValidation)
		}
		item.DefaultOrderQuantity = *upd.DefaultOrderQuantity
	}
	if upd.ProductURL != nil {
		item.ProductURL = strings.TrimSpace(*upd.ProductURL)
	}
	return item, m.save()
}

// Get returns the registered item with the given id.
func (m *ItemManager) Get(id int) (*Item, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, item := range m.items {
		if item.ID == id {
			return item, nil
		}
	}
	return nil, fmt.Errorf("item %d: %w", id, ErrNotFound)
}

// Items returns all registered items.
func (m *ItemManager) Items() []*Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*Item, len(m.items))
	copy(out, m.items)
	return out
}

// ItemsByCategory filters items filed directly under the given category.
func (m *ItemManager) ItemsByCategory(cat *Category) []*Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Item
	for _, item := range m.items {
		if item.category == cat {
			out = append(out, item)
		}
	}
	return out
}

// ItemsBySupplier filters items by their denormalized supplier name.
func (m *ItemManager) ItemsBySupplier(supplier string) []*Item {
	m.mu.Lock()
	defer m.mu.Unlock()

	var out []*Item
	for _, item := range m.items {
		if strings.EqualFold(item.Supplier, supplier) {
			out = append(out, item)
		}
	}
	return out
}

// Save rewrites the items document, refreshing each item's stored category
// path from the live tree first.
func (m *ItemManager) Save() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.save()
}

func (m *ItemManager) save() error {
	for _, item := range m.items {
		if item.category != nil {
			item.CategoryPath = item.category.FullPath()
		} else {
			item.CategoryPath = ""
		}
	}
	if err := store.Save(m.path, m.items); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}
