package memory

import (
	"context"
	"sync"
	"time"

	"github.com/aretw0/levelance/pkg/domain"
	"github.com/aretw0/levelance/pkg/ports"
)

// Cache implements ports.ResultCache in memory.
// Safe for concurrent use.
type Cache struct {
	data map[string]ports.Result
	mu   sync.RWMutex
	now  func() time.Time
}

// NewCache creates a new in-memory cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]ports.Result),
		now:  time.Now,
	}
}

// Get returns the stored result.
func (c *Cache) Get(ctx context.Context, key string) (ports.Result, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	res, ok := c.data[key]
	if !ok {
		return ports.Result{}, domain.ErrCacheMiss
	}
	return copyResult(res), nil
}

// Put stores a copy of result so the caller cannot mutate cached digits.
func (c *Cache) Put(ctx context.Context, key string, result ports.Result) error {
	res := copyResult(result)
	if res.StoredAt.IsZero() {
		res.StoredAt = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = res
	return nil
}

// Len returns the number of stored results.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

func copyResult(r ports.Result) ports.Result {
	if r.Digits != nil {
		r.Digits = append([]int(nil), r.Digits...)
	}
	return r
}
