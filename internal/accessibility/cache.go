package accessibility

import (
	"container/heap"
	"container/list"
	"sync"
	"sync/atomic"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.uber.org/zap"

	"github.com/deskautomate/engine/internal/element"
)

const (
	// DefaultCacheSize is the default cache size.
	DefaultCacheSize = 100

	// DefaultMaxCacheSize is the default maximum cache size with LRU eviction.
	DefaultMaxCacheSize = 1000

	// CacheCleanupDivisor is the divisor for cleanup interval.
	CacheCleanupDivisor = 2

	// StaticElementTTL is the TTL for static UI elements (buttons, links, etc.).
	StaticElementTTL = 30 * time.Second

	// DynamicElementTTL is the TTL for dynamic UI elements (text fields, scrollable content, etc.).
	DynamicElementTTL = 2 * time.Second

	// promotionBufSize is the capacity of the lock-free ring buffer used to
	// defer LRU promotions from the read-only Get() fast path. Hits beyond
	// this capacity are silently dropped (minor LRU accuracy loss under
	// extreme concurrency, but no correctness impact).
	promotionBufSize = 64
)

// cacheStats collects aggregate counters during cache operations.
// All fields use atomic operations for goroutine safety.
type cacheStats struct {
	hits           atomic.Int64
	misses         atomic.Int64
	sets           atomic.Int64
	updates        atomic.Int64
	evictions      atomic.Int64
	expiredRemoved atomic.Int64
	currentSize    atomic.Int64
}

// CachedInfo wraps a resolved Element with an expiration timestamp and LRU tracking.
type CachedInfo struct {
	id          string
	elem        *element.Element
	expiresAt   time.Time
	key         uint64
	elementNode *list.Element // For LRU tracking
	heapIndex   int           // Index in expirationHeap (-1 = not in heap)
	removed     bool          // Marked as removed from cache (lazy heap cleanup)
}

// expirationHeap implements a min-heap ordered by expiresAt for efficient expired entry removal.
type expirationHeap []*CachedInfo

func (h *expirationHeap) Len() int { return len(*h) }

func (h *expirationHeap) Less(i, j int) bool { return (*h)[i].expiresAt.Before((*h)[j].expiresAt) }

func (h *expirationHeap) Swap(i, j int) {
	(*h)[i], (*h)[j] = (*h)[j], (*h)[i]
	(*h)[i].heapIndex = i
	(*h)[j].heapIndex = j
}

func (h *expirationHeap) Push(x any) {
	item := x.(*CachedInfo) //nolint:forcetypeassert
	item.heapIndex = len(*h)
	*h = append(*h, item)
}

func (h *expirationHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[0 : n-1]
	item.heapIndex = -1

	return item
}

// staticRoles defines roles that should use longer (static) TTL.
var staticRoles = map[element.Role]bool{
	element.RoleButton:      true,
	element.RoleHyperlink:   true,
	element.RoleMenuItem:    true,
	element.RoleCheckbox:    true,
	element.RoleRadioButton: true,
	element.RoleComboBox:    true,
	element.RoleSlider:      true,
	element.RoleText:        true,
	element.RoleImage:       true,
	element.RoleTab:         true,
}

// isStaticElement determines if an element should use static (longer) TTL based on its role.
func isStaticElement(elem *element.Element) bool {
	if elem == nil {
		return false
	}

	return staticRoles[elem.Role()]
}

// InfoCache implements a thread-safe time-to-live cache for resolved elements,
// keyed by the element's stable ID.
type InfoCache struct {
	mu              sync.RWMutex
	data            map[uint64][]*CachedInfo // Bucket for hash collisions
	lru             *list.List               // For LRU eviction
	expirationQueue expirationHeap           // Min-heap ordered by expiresAt for cleanup
	maxSize         int                      // Maximum cache size (0 = unlimited)
	stopCh          chan struct{}
	stopped         bool
	logger          *zap.Logger
	stats           *cacheStats

	// promotionBuf collects deferred LRU promotions from the read-only
	// Get() fast path. Entries are flushed to the LRU list the next time
	// a write lock is acquired (Set, cleanup, or expired-entry removal).
	promotionBuf chan *list.Element
}

// NewInfoCache initializes a new cache with per-role TTLs and the default maximum size.
func NewInfoCache(logger *zap.Logger) *InfoCache {
	return NewInfoCacheWithSize(DefaultMaxCacheSize, logger)
}

// NewInfoCacheWithSize initializes a new cache with per-role TTLs and the specified maximum size.
func NewInfoCacheWithSize(maxSize int, logger *zap.Logger) *InfoCache {
	if logger == nil {
		logger = zap.NewNop()
	}

	cache := &InfoCache{
		data:         make(map[uint64][]*CachedInfo, DefaultCacheSize),
		lru:          list.New(),
		maxSize:      maxSize,
		stopCh:       make(chan struct{}),
		logger:       logger,
		stats:        &cacheStats{},
		promotionBuf: make(chan *list.Element, promotionBufSize),
	}

	go cache.cleanupLoop()

	return cache
}

func bucketHash(id string) uint64 {
	return xxhash.Sum64String(id)
}

// Get retrieves a cached element if it exists and hasn't expired.
//
// It uses a two-phase locking strategy to reduce contention during parallel
// tree building: a read lock for the common cache-hit path, upgrading to a
// write lock only when an expired entry must be removed. On a cache hit the
// LRU promotion is deferred to a buffered channel and flushed the next time a
// write lock is acquired, keeping the hot path fully concurrent.
func (c *InfoCache) Get(id string) *element.Element {
	if id == "" {
		return nil
	}

	hash := bucketHash(id)

	c.mu.RLock()

	if c.stopped {
		c.mu.RUnlock()

		return nil
	}

	bucket, exists := c.data[hash]
	if !exists {
		c.mu.RUnlock()

		return nil
	}

	var (
		foundElem    *element.Element
		foundIdx     = -1
		foundExpired bool
	)

	for idx, cached := range bucket {
		if cached.id == id {
			if time.Now().After(cached.expiresAt) {
				foundIdx = idx
				foundExpired = true
			} else {
				foundElem = cached.elem
				select {
				case c.promotionBuf <- cached.elementNode:
				default:
				}
			}

			break
		}
	}

	c.mu.RUnlock()

	if foundElem != nil {
		if c.stats != nil {
			c.stats.hits.Add(1)
		}

		return foundElem
	}

	if foundIdx == -1 && !foundExpired {
		if c.stats != nil {
			c.stats.misses.Add(1)
		}

		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		if c.stats != nil {
			c.stats.misses.Add(1)
		}

		return nil
	}

	c.drainPromotions()

	bucket, exists = c.data[hash]
	if !exists {
		if c.stats != nil {
			c.stats.misses.Add(1)
		}

		return nil
	}

	for idx, cached := range bucket {
		if cached.id == id {
			if time.Now().After(cached.expiresAt) {
				c.removeFromBucket(hash, idx)
				cached.removed = true

				if cached.elementNode != nil {
					c.lru.Remove(cached.elementNode)
				}

				if c.stats != nil {
					c.stats.misses.Add(1)
					c.stats.expiredRemoved.Add(1)
					c.stats.currentSize.Store(int64(c.lru.Len()))
				}

				return nil
			}

			c.lru.MoveToFront(cached.elementNode)

			if c.stats != nil {
				c.stats.hits.Add(1)
			}

			return cached.elem
		}
	}

	if c.stats != nil {
		c.stats.misses.Add(1)
	}

	return nil
}

// Set stores a resolved element in the cache with a TTL based on its role.
func (c *InfoCache) Set(elem *element.Element) {
	if elem == nil || elem.ID() == "" {
		return
	}

	id := string(elem.ID())
	hash := bucketHash(id)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	c.drainPromotions()

	bucket := c.data[hash]

	for _, cached := range bucket {
		if cached.id == id {
			cached.elem = elem
			cached.expiresAt = time.Now().Add(c.getTTL(elem))
			c.lru.MoveToFront(cached.elementNode)

			if cached.heapIndex >= 0 {
				heap.Fix(&c.expirationQueue, cached.heapIndex)
			} else {
				heap.Push(&c.expirationQueue, cached)
			}

			if c.stats != nil {
				c.stats.updates.Add(1)
			}

			return
		}
	}

	if c.maxSize > 0 && c.lru.Len() >= c.maxSize {
		c.evictLRU()
	}

	ttl := c.getTTL(elem)
	expiresAt := time.Now().Add(ttl)

	cachedInfo := &CachedInfo{
		id:        id,
		elem:      elem,
		expiresAt: expiresAt,
		key:       hash,
		heapIndex: -1,
	}

	cachedInfo.elementNode = c.lru.PushFront(cachedInfo)
	heap.Push(&c.expirationQueue, cachedInfo)
	c.data[hash] = append(c.data[hash], cachedInfo)

	if c.stats != nil {
		c.stats.sets.Add(1)
		c.stats.currentSize.Store(int64(c.lru.Len()))
	}
}

// Size returns the current number of entries in the cache.
func (c *InfoCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stopped {
		return 0
	}

	return c.lru.Len()
}

// Stats returns the current cache statistics.
func (c *InfoCache) Stats() *cacheStats {
	return c.stats
}

// EmitStats logs aggregate cache statistics at debug level.
func (c *InfoCache) EmitStats() {
	if c.stats == nil {
		return
	}

	if ce := c.logger.Check(zap.DebugLevel, "cache statistics"); ce != nil {
		ce.Write(
			zap.Int64("hits", c.stats.hits.Load()),
			zap.Int64("misses", c.stats.misses.Load()),
			zap.Int64("sets", c.stats.sets.Load()),
			zap.Int64("updates", c.stats.updates.Load()),
			zap.Int64("evictions", c.stats.evictions.Load()),
			zap.Int64("expired_removed", c.stats.expiredRemoved.Load()),
			zap.Int64("current_size", c.stats.currentSize.Load()))
	}
}

// Clear removes all entries from the cache.
func (c *InfoCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.drainPromotions()

	c.data = make(map[uint64][]*CachedInfo, DefaultCacheSize)
	c.lru = list.New()
	c.expirationQueue = nil

	if c.stats != nil {
		c.stats.currentSize.Store(0)
	}

	if ce := c.logger.Check(zap.DebugLevel, "cache cleared"); ce != nil {
		ce.Write()
	}
}

// Stop terminates the cache cleanup goroutine and releases resources.
func (c *InfoCache) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped {
		return
	}

	c.drainPromotions()

	close(c.stopCh)
	c.stopped = true

	c.data = nil
	c.lru = nil
	c.expirationQueue = nil

	c.logger.Debug("cache stopped")
}

// drainPromotions flushes all pending LRU promotions from the promotion
// buffer. Must be called while c.mu is held for writing.
func (c *InfoCache) drainPromotions() {
	for {
		select {
		case node := <-c.promotionBuf:
			c.lru.MoveToFront(node)
		default:
			return
		}
	}
}

// cleanupLoop runs a periodic cleanup process to remove expired cache entries.
func (c *InfoCache) cleanupLoop() {
	ticker := time.NewTicker(DynamicElementTTL / CacheCleanupDivisor)

	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			c.cleanup()
		case <-c.stopCh:
			c.logger.Debug("cache cleanup loop stopped")

			return
		}
	}
}

// cleanup removes all expired entries from the cache using the expiration heap.
func (c *InfoCache) cleanup() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stopped || c.lru == nil {
		return
	}

	c.drainPromotions()

	now := time.Now()
	expiredCount := 0

	for c.expirationQueue.Len() > 0 {
		cached := c.expirationQueue[0]

		if cached.removed {
			heap.Pop(&c.expirationQueue)

			continue
		}

		if !now.After(cached.expiresAt) {
			break
		}

		heap.Pop(&c.expirationQueue)

		bucket := c.data[cached.key]
		for itemIdx, item := range bucket {
			if item == cached {
				c.removeFromBucket(cached.key, itemIdx)

				break
			}
		}

		if cached.elementNode != nil {
			c.lru.Remove(cached.elementNode)
		}

		cached.removed = true

		expiredCount++
	}

	if expiredCount > 0 && c.stats != nil {
		c.stats.expiredRemoved.Add(int64(expiredCount))
		c.stats.currentSize.Store(int64(c.lru.Len()))
		c.EmitStats()
	}
}

// removeFromBucket removes an item from a bucket at index i.
func (c *InfoCache) removeFromBucket(key uint64, index int) {
	bucket := c.data[key]
	if index < 0 || index >= len(bucket) {
		return
	}

	lastIdx := len(bucket) - 1
	bucket[index] = bucket[lastIdx]
	bucket[lastIdx] = nil
	c.data[key] = bucket[:lastIdx]

	if len(c.data[key]) == 0 {
		delete(c.data, key)
	}
}

// getTTL returns the appropriate TTL duration based on element type.
func (c *InfoCache) getTTL(elem *element.Element) time.Duration {
	if isStaticElement(elem) {
		return StaticElementTTL
	}

	return DynamicElementTTL
}

// evictLRU removes the least recently used item from the cache.
func (c *InfoCache) evictLRU() {
	lruElement := c.lru.Back()
	if lruElement == nil {
		return
	}

	cachedInfo, ok := lruElement.Value.(*CachedInfo)
	if !ok {
		c.logger.Error("invalid cache entry type in LRU list")

		return
	}

	// Mark as removed for lazy heap cleanup instead of calling heap.Remove
	// (O(log n)) on the hot path. Ghost entries remain in the heap until their
	// expiresAt is reached, at which point cleanup() pops and discards them.
	cachedInfo.removed = true

	hash := cachedInfo.key

	bucket := c.data[hash]
	for i, item := range bucket {
		if item == cachedInfo {
			c.removeFromBucket(hash, i)

			break
		}
	}

	c.lru.Remove(lruElement)

	if c.stats != nil {
		c.stats.evictions.Add(1)
		c.stats.currentSize.Store(int64(c.lru.Len()))
	}
}
