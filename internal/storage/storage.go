package storage

import (
	"ptx/internal/config"
	"ptx/internal/domain"
)

// Storage persists and loads workspace scan inventories (e.g. for the browse
// viewer).
type Storage interface {
	Save(inventory *domain.Inventory) error
	Load() (*domain.Inventory, error)
}

// JSONStorage stores the inventory in a JSON file under the configured output
// path.
type JSONStorage struct {
	cfg *config.Config
}

// NewJSONStorage returns a Storage that reads/writes the config's output JSON
// path.
func NewJSONStorage(cfg *config.Config) *JSONStorage {
	return &JSONStorage{cfg: cfg}
}
