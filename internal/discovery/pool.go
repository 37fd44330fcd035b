package discovery

import (
	"context"
	"sort"
	"sync"

	"ptx/internal/domain"
)

// ParsePool fans file parsing out over a fixed number of workers. Used by
// workspace scans, where one subprocess per file would otherwise serialize.
type ParsePool struct {
	coordinator *Coordinator
	workers     int
	progress    func(done, found int)
}

// NewParsePool creates a pool over the given coordinator.
func NewParsePool(coordinator *Coordinator, workers int) *ParsePool {
	if workers <= 0 {
		workers = 1
	}
	return &ParsePool{coordinator: coordinator, workers: workers}
}

// SetProgress registers a callback invoked after each parsed file with the
// number of files done and runnable tests found so far.
func (p *ParsePool) SetProgress(fn func(done, found int)) {
	p.progress = fn
}

// ParseAll discovers entities in every file and returns one entry per file
// that contained at least one entity, ordered by path.
func (p *ParsePool) ParseAll(ctx context.Context, files []string) []domain.FileEntry {
	if len(files) == 0 {
		return nil
	}

	queue := make(chan string, len(files))
	for _, f := range files {
		queue <- f
	}
	close(queue)

	var mu sync.Mutex
	var entries []domain.FileEntry
	var done, found int

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for file := range queue {
				tree, err := p.coordinator.Discover(ctx, file)

				mu.Lock()
				done++
				if err == nil && len(tree) > 0 {
					entry := domain.FileEntry{Path: file, Entities: tree}
					found += entry.CountRunnable()
					entries = append(entries, entry)
				}
				if p.progress != nil {
					p.progress(done, found)
				}
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].Path < entries[j].Path
	})
	return entries
}
