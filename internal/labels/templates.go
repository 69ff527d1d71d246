package labels

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"partshelf/internal/catalog"
	"partshelf/internal/store"
)

// DefaultTemplateName is seeded into an empty template store so the label
// designer always has something to offer.
const DefaultTemplateName = "Model number"

// TemplateManager holds the named QR content templates. A template is a
// plain string with placeholder tokens ({ModelNumber}, {ProductURL}, ...)
// substituted from an item at render time.
type TemplateManager struct {
	mu        sync.Mutex
	path      string
	templates map[string]string
}

func NewTemplateManager(path string) (*TemplateManager, error) {
	m := &TemplateManager{path: path, templates: make(map[string]string)}

	if err := store.Load(path, &m.templates); err != nil {
		return nil, fmt.Errorf("failed to load QR templates: %w", err)
	}
	if len(m.templates) == 0 {
		m.templates[DefaultTemplateName] = "{ModelNumber}"
	}
	return m, nil
}

func (m *TemplateManager) save() error {
	if err := store.Save(m.path, m.templates); err != nil {
		return fmt.Errorf("failed to save QR templates: %w", err)
	}
	return nil
}

// Templates returns a copy of the name-to-content mapping.
func (m *TemplateManager) Templates() map[string]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make(map[string]string, len(m.templates))
	for name, content := range m.templates {
		out[name] = content
	}
	return out
}

// Get returns the template content for name.
func (m *TemplateManager) Get(name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	content, ok := m.templates[name]
	if !ok {
		return "", fmt.Errorf("QR template %q: %w", name, catalog.ErrNotFound)
	}
	return content, nil
}

// Set creates or replaces a template and persists the mapping.
func (m *TemplateManager) Set(name, content string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("template name is required: %w", catalog.ErrValidation)
	}
	if strings.TrimSpace(content) == "" {
		return fmt.Errorf("template content is required: %w", catalog.ErrValidation)
	}
	m.templates[name] = content
	return m.save()
}

// Remove deletes a template. A no-op for unknown names.
func (m *TemplateManager) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.templates[name]; !ok {
		return nil
	}
	delete(m.templates, name)
	return m.save()
}

// Render resolves the named template against an item.
func (m *TemplateManager) Render(name string, item *catalog.Item) (string, error) {
	content, err := m.Get(name)
	if err != nil {
		return "", err
	}
	return RenderTemplate(content, item), nil
}

// RenderTemplate substitutes the placeholder tokens in a template with the
// item's fields. Unknown tokens are left verbatim.
func RenderTemplate(content string, item *catalog.Item) string {
	replacer := strings.NewReplacer(
		"{ID}", strconv.Itoa(item.ID),
		"{ModelNumber}", item.ModelNumber,
		"{Description}", item.Description,
		"{Supplier}", item.Supplier,
		"{ProductURL}", item.ProductURL,
		"{OrderQuantity}", strconv.Itoa(item.DefaultOrderQuantity),
	)
	return replacer.Replace(content)
}
