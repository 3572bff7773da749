package internal

import (
	"crypto/md5"
	"encoding/gob"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"
)

const cacheFileName = "qmc_cache.gob"

type CacheEntry struct {
	Vars         int
	Minterms     []int
	Patterns     []string
	CreatedAt    time.Time
	LastAccessed time.Time
}

// Cache stores minimized covers on disk, keyed by the function they were
// computed for.
type Cache struct {
	CacheDir string
	entries  map[string]CacheEntry
	mutex    sync.Mutex
	maxAge   time.Duration
}

func NewCache(cacheDir string, maxAge time.Duration) (*Cache, error) {
	if err := os.MkdirAll(cacheDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	cache := &Cache{
		CacheDir: cacheDir,
		entries:  make(map[string]CacheEntry),
		maxAge:   maxAge,
	}

	if err := cache.load(); err != nil {
		return nil, fmt.Errorf("failed to load cache: %w", err)
	}

	return cache, nil
}

func (c *Cache) path() string {
	return filepath.Join(c.CacheDir, cacheFileName)
}

func (c *Cache) load() error {
	file, err := os.Open(c.path())
	if os.IsNotExist(err) {
		return nil // cache file doesn't exist yet. This is fine.
	}
	if err != nil {
		return fmt.Errorf("failed to open cache file: %w", err)
	}
	defer file.Close()

	decoder := gob.NewDecoder(file)
	if err := decoder.Decode(&c.entries); err != nil {
		return fmt.Errorf("failed to decode cache file: %w", err)
	}

	return nil
}

func (c *Cache) save() error {
	file, err := os.Create(c.path())
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer file.Close()

	encoder := gob.NewEncoder(file)
	if err := encoder.Encode(c.entries); err != nil {
		return fmt.Errorf("failed to encode cache file: %w", err)
	}

	return nil
}

func (c *Cache) Set(vars int, minterms []int, patterns []string) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	now := time.Now()
	c.entries[fingerprint(vars, minterms)] = CacheEntry{
		Vars:         vars,
		Minterms:     slices.Clone(minterms),
		Patterns:     slices.Clone(patterns),
		CreatedAt:    now,
		LastAccessed: now,
	}

	return c.save()
}

func (c *Cache) Get(vars int, minterms []int) ([]string, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	key := fingerprint(vars, minterms)
	entry, exists := c.entries[key]
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(vars, minterms, entry) {
		delete(c.entries, key)
		return nil, false
	}

	entry.LastAccessed = time.Now()
	c.entries[key] = entry

	return slices.Clone(entry.Patterns), true
}

func (c *Cache) isEntryInvalid(vars int, minterms []int, entry CacheEntry) bool {
	// too old
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	// fingerprint collision
	return entry.Vars != vars || !slices.Equal(entry.Minterms, minterms)
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]CacheEntry)
	_ = c.save() // ignore error as this is a manual operation
}

// fingerprint keys a function by its variable count and ordered minterm
// list. Order matters: it decides tie-breaks in the cover.
func fingerprint(vars int, minterms []int) string {
	hash := md5.New()
	fmt.Fprintf(hash, "%d:", vars)
	for _, m := range minterms {
		fmt.Fprintf(hash, "%d,", m)
	}
	return fmt.Sprintf("%x", hash.Sum(nil))
}
