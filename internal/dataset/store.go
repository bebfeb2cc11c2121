package dataset

import (
	"context"
	"os"
	"sort"
	"strings"
	"sync"
	"time"
)

// storeEntry holds one memoized load result together with the source file
// state it was computed from.
type storeEntry struct {
	records  []Measurement
	loadedAt time.Time
	modTime  time.Time
	hitCount int
}

// Store memoizes Loader results keyed by (kind, city set). Entries are
// invalidated when the source file's modification time changes on disk, and
// optionally by TTL. Cached slices are never mutated after insertion, so
// concurrent readers may share them.
type Store struct {
	loader *Loader
	ttl    time.Duration

	mu        sync.RWMutex
	entries   map[string]storeEntry
	hitCount  int64
	missCount int64
}

// NewStore creates a memoizing store over the loader. A ttl of zero means
// entries live until the source file changes.
func NewStore(loader *Loader, ttl time.Duration) *Store {
	return &Store{
		loader:  loader,
		ttl:     ttl,
		entries: make(map[string]storeEntry),
	}
}

// Load returns the memoized result for (kind, cities), reloading from disk
// when there is no fresh entry. The returned slice must not be modified.
func (s *Store) Load(ctx context.Context, kind Kind, cities []string) ([]Measurement, error) {
	key := cacheKey(kind, cities)
	modTime := s.sourceModTime(kind)

	s.mu.RLock()
	entry, ok := s.entries[key]
	s.mu.RUnlock()

	if ok && s.fresh(entry, modTime) {
		s.mu.Lock()
		entry.hitCount++
		s.entries[key] = entry
		s.hitCount++
		s.mu.Unlock()
		return entry.records, nil
	}

	records, err := s.loader.Load(ctx, kind, cities)
	if err != nil {
		s.mu.Lock()
		s.missCount++
		delete(s.entries, key)
		s.mu.Unlock()
		return nil, err
	}

	s.mu.Lock()
	s.missCount++
	s.entries[key] = storeEntry{
		records:  records,
		loadedAt: time.Now(),
		modTime:  modTime,
	}
	s.mu.Unlock()

	return records, nil
}

// Invalidate drops every cached entry for the kind
func (s *Store) Invalidate(kind Kind) {
	prefix := kind.String() + "|"

	s.mu.Lock()
	defer s.mu.Unlock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
}

// SourceModTime returns the modification time of the kind's source file,
// zero when the file is absent.
func (s *Store) SourceModTime(kind Kind) time.Time {
	return s.sourceModTime(kind)
}

// Stats returns cache statistics
func (s *Store) Stats() map[string]interface{} {
	s.mu.RLock()
	defer s.mu.RUnlock()

	total := s.hitCount + s.missCount
	hitRatio := float64(0)
	if total > 0 {
		hitRatio = float64(s.hitCount) / float64(total)
	}

	return map[string]interface{}{
		"entries":     len(s.entries),
		"hit_count":   s.hitCount,
		"miss_count":  s.missCount,
		"hit_ratio":   hitRatio,
		"ttl_seconds": s.ttl.Seconds(),
	}
}

func (s *Store) fresh(entry storeEntry, modTime time.Time) bool {
	if !entry.modTime.Equal(modTime) {
		return false
	}
	if s.ttl > 0 && time.Since(entry.loadedAt) > s.ttl {
		return false
	}
	return true
}

func (s *Store) sourceModTime(kind Kind) time.Time {
	info, err := os.Stat(s.loader.SourcePath(kind))
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// cacheKey builds a deterministic key from the kind and the requested city
// set. The nil set ("all cities") and the empty set ("no cities") are
// distinct requests and get distinct keys.
func cacheKey(kind Kind, cities []string) string {
	if cities == nil {
		return kind.String() + "|*"
	}

	sorted := make([]string, len(cities))
	copy(sorted, cities)
	sort.Strings(sorted)

	return kind.String() + "|" + strings.Join(sorted, ",")
}
