package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"ptx/internal/domain"
)

// Save writes the inventory to the configured JSON output file.
func (s *JSONStorage) Save(inventory *domain.Inventory) error {
	data, err := json.MarshalIndent(inventory, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal inventory: %w", err)
	}

	path := s.cfg.GetOutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write inventory: %w", err)
	}
	return nil
}

// Load reads the last saved inventory from the configured JSON output file.
func (s *JSONStorage) Load() (*domain.Inventory, error) {
	path := s.cfg.GetOutputPath()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read inventory file: %w", err)
	}
	var inventory domain.Inventory
	if err := json.Unmarshal(data, &inventory); err != nil {
		return nil, fmt.Errorf("parse inventory: %w", err)
	}
	return &inventory, nil
}
