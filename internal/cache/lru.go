// Package cache provides an LRU cache for lowered parse trees with
// cost-based eviction.
package cache

import (
	"sync"
	"sync/atomic"

	"github.com/Sumatoshi-tech/shapematch/pkg/tree"
)

// DefaultTreeCacheSize is the default maximum source size held by the tree
// cache (64 MB of parsed source).
const DefaultTreeCacheSize = 64 * 1024 * 1024

// bytesPerKB is the number of bytes in a kilobyte.
const bytesPerKB = 1024.0

// TreeCache is an LRU cache mapping file paths to lowered parse trees.
// Entry size is the byte length of the parsed source, a cheap proxy for the
// tree's memory footprint. Entries are invalidated when the source length
// changes.
type TreeCache struct {
	mu          sync.Mutex
	entries     map[string]*lruEntry
	head        *lruEntry // Most recently used.
	tail        *lruEntry // Least recently used.
	maxSize     int64
	currentSize int64

	// Metrics (atomic for lock-free reads).
	hits   atomic.Int64
	misses atomic.Int64
}

// lruEntry is a doubly-linked list node for LRU tracking.
type lruEntry struct {
	path        string
	root        *tree.Node
	size        int64
	accessCount int64
	prev        *lruEntry
	next        *lruEntry
}

// evictionCost calculates the cost of evicting this entry.
// Higher cost = less desirable to evict. Large, rarely-accessed trees are
// evicted first.
func (e *lruEntry) evictionCost() float64 {
	if e.size == 0 {
		return float64(e.accessCount)
	}

	sizeKB := float64(e.size) / bytesPerKB
	if sizeKB < 1 {
		sizeKB = 1
	}

	return float64(e.accessCount) / sizeKB
}

// NewTreeCache creates a tree cache with the specified maximum total source
// size in bytes.
func NewTreeCache(maxSize int64) *TreeCache {
	if maxSize <= 0 {
		maxSize = DefaultTreeCacheSize
	}

	return &TreeCache{
		entries: make(map[string]*lruEntry),
		maxSize: maxSize,
	}
}

// Get retrieves the cached tree for path, provided the source length still
// matches. Returns nil on a miss or a stale entry.
func (c *TreeCache) Get(path string, sourceLen int64) *tree.Node {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[path]
	if !ok || entry.size != sourceLen {
		c.misses.Add(1)

		return nil
	}

	c.hits.Add(1)

	entry.accessCount++
	c.moveToFront(entry)

	return entry.root
}

// Put caches the tree for path. If the cache exceeds its size limit, entries
// are evicted cost-first (large, infrequently accessed trees go first).
func (c *TreeCache) Put(path string, root *tree.Node, sourceLen int64) {
	if root == nil || sourceLen > c.maxSize {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[path]; ok {
		entry.accessCount++
		entry.root = root
		c.currentSize += sourceLen - entry.size
		entry.size = sourceLen
		c.moveToFront(entry)

		return
	}

	for c.currentSize+sourceLen > c.maxSize && c.tail != nil {
		c.evictLowestCost()
	}

	if c.currentSize+sourceLen > c.maxSize {
		return
	}

	entry := &lruEntry{
		path:        path,
		root:        root,
		size:        sourceLen,
		accessCount: 1,
	}

	c.entries[path] = entry
	c.currentSize += sourceLen
	c.addToFront(entry)
}

// Stats returns cache statistics.
func (c *TreeCache) Stats() Stats {
	c.mu.Lock()
	defer c.mu.Unlock()

	return Stats{
		Hits:        c.hits.Load(),
		Misses:      c.misses.Load(),
		Entries:     len(c.entries),
		CurrentSize: c.currentSize,
		MaxSize:     c.maxSize,
	}
}

// Stats holds cache performance metrics.
type Stats struct {
	Hits        int64
	Misses      int64
	Entries     int
	CurrentSize int64
	MaxSize     int64
}

// HitRate returns the cache hit rate (0.0 to 1.0).
func (s Stats) HitRate() float64 {
	total := s.Hits + s.Misses
	if total == 0 {
		return 0.0
	}

	return float64(s.Hits) / float64(total)
}

// Clear removes all entries from the cache.
func (c *TreeCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*lruEntry)
	c.head = nil
	c.tail = nil
	c.currentSize = 0
}

// moveToFront moves an entry to the front of the LRU list (most recently used).
func (c *TreeCache) moveToFront(entry *lruEntry) {
	if entry == c.head {
		return
	}

	c.removeFromList(entry)
	c.addToFront(entry)
}

// addToFront adds an entry to the front of the LRU list.
func (c *TreeCache) addToFront(entry *lruEntry) {
	entry.prev = nil
	entry.next = c.head

	if c.head != nil {
		c.head.prev = entry
	}

	c.head = entry

	if c.tail == nil {
		c.tail = entry
	}
}

// removeFromList removes an entry from the LRU list.
func (c *TreeCache) removeFromList(entry *lruEntry) {
	if entry.prev != nil {
		entry.prev.next = entry.next
	} else {
		c.head = entry.next
	}

	if entry.next != nil {
		entry.next.prev = entry.prev
	} else {
		c.tail = entry.prev
	}
}

// evictionSampleSize is the number of LRU candidates sampled for cost-based
// eviction, bounding the scan to O(k).
const evictionSampleSize = 5

// evictLowestCost removes the entry with the lowest eviction cost from the
// LRU tail region.
func (c *TreeCache) evictLowestCost() {
	if c.tail == nil {
		return
	}

	var candidates [evictionSampleSize]*lruEntry

	count := 0
	entry := c.tail

	for entry != nil && count < evictionSampleSize {
		candidates[count] = entry
		count++
		entry = entry.prev
	}

	if count == 0 {
		return
	}

	victim := candidates[0]
	lowestCost := victim.evictionCost()

	for i := 1; i < count; i++ {
		cost := candidates[i].evictionCost()
		if cost < lowestCost {
			lowestCost = cost
			victim = candidates[i]
		}
	}

	c.removeFromList(victim)
	delete(c.entries, victim.path)
	c.currentSize -= victim.size
}
