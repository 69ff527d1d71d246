package catalog

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"partshelf/internal/logger"
	"partshelf/internal/models"
	"partshelf/internal/store"
)

// bootstrapSuppliers are created on first run. The original catalog shipped
// preloaded with these two hardware vendors.
var bootstrapSuppliers = []string{"Richelieu", "Marathon"}

// SupplierManager owns the supplier list. Names are unique
// case-insensitively; suppliers are never deleted.
type SupplierManager struct {
	mu        sync.Mutex
	path      string
	images    *store.Images
	suppliers []*models.Supplier
}

// NewSupplierManager loads the supplier list and bootstraps the well-known
// suppliers when absent. logoDir, when non-empty, is probed for default
// logos named after each bootstrap supplier.
func NewSupplierManager(path string, images *store.Images, logoDir string) (*SupplierManager, error) {
	m := &SupplierManager{path: path, images: images}

	if err := store.Load(path, &m.suppliers); err != nil {
		return nil, fmt.Errorf("failed to load suppliers: %w", err)
	}

	changed := false
	for _, name := range bootstrapSuppliers {
		if m.find(name) != nil {
			continue
		}
		supplier := &models.Supplier{Name: name}
		if logo := defaultLogo(logoDir, name); logo != "" {
			supplier.ImagePath = logo
		}
		m.suppliers = append(m.suppliers, supplier)
		changed = true
	}
	if changed {
		if err := m.save(); err != nil {
			logger.Warn("failed to persist bootstrap suppliers", "error", err)
		}
	}
	return m, nil
}

// defaultLogo looks for "<dir>/<name>.png" (lowercase), the convention the
// shipped logo pack uses.
func defaultLogo(dir, name string) string {
	if dir == "" {
		return ""
	}
	path := filepath.Join(dir, strings.ToLower(name)+".png")
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

// find returns the supplier with the given name, case-insensitively.
// Caller holds the lock (or is the constructor).
func (m *SupplierManager) find(name string) *models.Supplier {
	for _, s := range m.suppliers {
		if strings.EqualFold(s.Name, name) {
			return s
		}
	}
	return nil
}

func (m *SupplierManager) save() error {
	if err := store.Save(m.path, m.suppliers); err != nil {
		return fmt.Errorf("failed to save suppliers: %w", err)
	}
	return nil
}

// AddSupplier registers a supplier, returning the existing entry when the
// name is already taken under case-insensitive comparison.
func (m *SupplierManager) AddSupplier(name string) (*models.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("supplier name is required: %w", ErrValidation)
	}
	if existing := m.find(name); existing != nil {
		return existing, nil
	}

	supplier := &models.Supplier{Name: name}
	m.suppliers = append(m.suppliers, supplier)
	return supplier, m.save()
}

// Get returns the supplier with the given name.
func (m *SupplierManager) Get(name string) (*models.Supplier, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s := m.find(name); s != nil {
		return s, nil
	}
	return nil, fmt.Errorf("supplier %q: %w", name, ErrNotFound)
}

// Suppliers returns all registered suppliers.
func (m *SupplierManager) Suppliers() []*models.Supplier {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]*models.Supplier, len(m.suppliers))
	copy(out, m.suppliers)
	return out
}

// UpdateSupplier replaces the supplier's description. Renames are always
// explicit; nothing here touches the name.
func (m *SupplierManager) UpdateSupplier(name, description string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.find(name)
	if s == nil {
		return fmt.Errorf("supplier %q: %w", name, ErrNotFound)
	}
	s.Description = strings.TrimSpace(description)
	return m.save()
}

// UpdateSupplierImage copies the image at srcPath into the managed image
// directory under a generated name, deletes the previous logo, and persists
// the new path.
func (m *SupplierManager) UpdateSupplierImage(name, srcPath string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := m.find(name)
	if s == nil {
		return fmt.Errorf("supplier %q: %w", name, ErrNotFound)
	}

	imported, err := m.images.Import(srcPath)
	if err != nil {
		return fmt.Errorf("failed to import supplier image: %w", err)
	}
	m.images.Remove(s.ImagePath)
	s.ImagePath = imported
	return m.save()
}
