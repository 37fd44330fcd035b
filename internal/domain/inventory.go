package domain

// FileEntry is the discovery result for one test file.
type FileEntry struct {
	Path     string        `json:"path"`
	Entities []*TestEntity `json:"entities"`
}

// CountRunnable returns the number of runnable entities in the file.
func (f *FileEntry) CountRunnable() int {
	count := 0
	for _, e := range f.Entities {
		count += e.CountRunnable()
	}
	return count
}

// InventoryMeta describes a workspace scan.
type InventoryMeta struct {
	Root            string  `json:"root"`
	TotalTestFiles  int     `json:"total_test_files"`
	TotalTests      int     `json:"total_tests"`
	Duration        string  `json:"duration"`
	DurationSeconds float64 `json:"duration_seconds"`
	Timestamp       string  `json:"timestamp"`
}

// Inventory is the persisted output of a workspace scan: every test file found
// under the root together with its discovered entity tree.
type Inventory struct {
	Meta  InventoryMeta `json:"meta"`
	Files []FileEntry   `json:"files"`
}
