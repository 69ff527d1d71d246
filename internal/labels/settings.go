package labels

import (
	"fmt"
	"sync"

	"partshelf/internal/catalog"
	"partshelf/internal/models"
	"partshelf/internal/store"
)

// SettingsManager holds the single label/print settings record.
type SettingsManager struct {
	mu       sync.Mutex
	path     string
	settings models.Settings
}

func NewSettingsManager(path string) (*SettingsManager, error) {
	m := &SettingsManager{path: path, settings: models.DefaultSettings()}

	if err := store.Load(path, &m.settings); err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	return m, nil
}

// Get returns the current settings.
func (m *SettingsManager) Get() models.Settings {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.settings
}

// Update replaces the settings record and persists it.
func (m *SettingsManager) Update(s models.Settings) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if s.MarginTopMM < 0 || s.MarginBottomMM < 0 || s.MarginLeftMM < 0 || s.MarginRightMM < 0 {
		return fmt.Errorf("margins must not be negative: %w", catalog.ErrValidation)
	}
	if s.DefaultLabelType == "" {
		s.DefaultLabelType = m.settings.DefaultLabelType
	}
	m.settings = s

	if err := store.Save(m.path, &m.settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}
